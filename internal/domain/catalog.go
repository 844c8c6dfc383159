package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry scoped to one tenant. Price is the current list
// price; sales snapshot it per line item, so later price edits never change
// past sales. Stock is adjusted by the sale engine and by direct catalog
// edits, and never goes negative through a sale the engine accepts.
type Product struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewProduct creates a product in the given tenant's catalog.
func NewProduct(id, tenantID, name, description string, price decimal.Decimal, stock int64) Product {
	now := time.Now().UTC()
	return Product{
		ID:          id,
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Customer belongs to one tenant; CPF is unique per tenant.
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	CPF       string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewCustomer creates a customer for the given tenant.
func NewCustomer(id, tenantID, name, cpf string) Customer {
	now := time.Now().UTC()
	return Customer{
		ID:        id,
		TenantID:  tenantID,
		Name:      name,
		CPF:       cpf,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
