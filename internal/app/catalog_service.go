package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// CatalogService manages products, customers, and cash registers for one
// tenant at a time. The tenant scope always comes from the requester, never
// from ambient state.
type CatalogService struct {
	catalog   domain.CatalogRepository
	registers domain.RegisterRepository
}

// NewCatalogService creates a service with the given repositories.
func NewCatalogService(catalog domain.CatalogRepository, registers domain.RegisterRepository) *CatalogService {
	return &CatalogService{catalog: catalog, registers: registers}
}

// CreateProduct adds a product to the requester's catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, requester domain.Operator, name, description string, price decimal.Decimal, stock int64) (domain.Product, error) {
	if price.IsNegative() {
		return domain.Product{}, &domain.ValidationError{Field: "preco", Reason: "price cannot be negative"}
	}
	if stock < 0 {
		return domain.Product{}, &domain.ValidationError{Field: "estoque", Reason: "stock cannot be negative"}
	}

	product := domain.NewProduct(newID(), requester.TenantID, name, description, price, stock)
	if err := s.catalog.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("creating product: %w", err)
	}
	return product, nil
}

// UpdateProductInput carries partial changes to a product; nil fields are
// left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int64
}

// UpdateProduct applies the given changes to a product in the requester's
// catalog.
func (s *CatalogService) UpdateProduct(ctx context.Context, requester domain.Operator, id string, in UpdateProductInput) (domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, requester.TenantID, id)
	if err != nil {
		return domain.Product{}, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return domain.Product{}, &domain.ValidationError{Field: "nome", Reason: "name cannot be empty"}
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return domain.Product{}, &domain.ValidationError{Field: "preco", Reason: "price cannot be negative"}
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return domain.Product{}, &domain.ValidationError{Field: "estoque", Reason: "stock cannot be negative"}
		}
		product.Stock = *in.Stock
	}

	if err := s.catalog.UpdateProduct(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("updating product: %w", err)
	}
	return product, nil
}

// DeleteProduct soft-deletes a product in the requester's catalog. The row
// stays behind historic sale lines but disappears from lookups and listings.
func (s *CatalogService) DeleteProduct(ctx context.Context, requester domain.Operator, id string) error {
	return s.catalog.DeleteProduct(ctx, requester.TenantID, id, time.Now().UTC())
}

// GetProduct returns one product in the requester's tenant scope.
func (s *CatalogService) GetProduct(ctx context.Context, requester domain.Operator, id string) (domain.Product, error) {
	return s.catalog.GetProduct(ctx, requester.TenantID, id)
}

// ListProducts returns the requester's catalog.
func (s *CatalogService) ListProducts(ctx context.Context, requester domain.Operator) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx, requester.TenantID)
}

// CreateCustomer adds a customer; CPF is unique within the tenant.
func (s *CatalogService) CreateCustomer(ctx context.Context, requester domain.Operator, name, cpf, email, phone, address string) (domain.Customer, error) {
	if cpf == "" {
		return domain.Customer{}, &domain.ValidationError{Field: "cpf", Reason: "cpf is required"}
	}
	customer := domain.NewCustomer(newID(), requester.TenantID, name, cpf)
	customer.Email = email
	customer.Phone = phone
	customer.Address = address
	if err := s.catalog.CreateCustomer(ctx, customer); err != nil {
		return domain.Customer{}, fmt.Errorf("creating customer: %w", err)
	}
	return customer, nil
}

// ListCustomers returns the requester's customers.
func (s *CatalogService) ListCustomers(ctx context.Context, requester domain.Operator) ([]domain.Customer, error) {
	return s.catalog.ListCustomers(ctx, requester.TenantID)
}

// DeleteCustomer soft-deletes a customer; past sales keep referencing the row.
func (s *CatalogService) DeleteCustomer(ctx context.Context, requester domain.Operator, id string) error {
	return s.catalog.DeleteCustomer(ctx, requester.TenantID, id, time.Now().UTC())
}

// CreateRegister adds a cash register; name is unique within the tenant.
func (s *CatalogService) CreateRegister(ctx context.Context, requester domain.Operator, name string, typ domain.RegisterType) (domain.CashRegister, error) {
	if typ != domain.RegisterPrincipal && typ != domain.RegisterSatellite {
		return domain.CashRegister{}, &domain.ValidationError{Field: "tipo", Reason: "type must be principal or satellite"}
	}
	register := domain.NewCashRegister(newID(), requester.TenantID, name, typ)
	if err := s.registers.Create(ctx, register); err != nil {
		return domain.CashRegister{}, fmt.Errorf("creating register: %w", err)
	}
	return register, nil
}

// ListRegisters returns the requester's registers.
func (s *CatalogService) ListRegisters(ctx context.Context, requester domain.Operator) ([]domain.CashRegister, error) {
	return s.registers.List(ctx, requester.TenantID)
}

// DeleteRegister soft-deletes a cash register; its session history survives.
func (s *CatalogService) DeleteRegister(ctx context.Context, requester domain.Operator, id string) error {
	return s.registers.Delete(ctx, requester.TenantID, id, time.Now().UTC())
}
