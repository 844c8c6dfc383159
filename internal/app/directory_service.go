package app

import (
	"context"
	"fmt"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// DirectoryService resolves tenants and operators. It backs the identity
// middleware: every request's operator is looked up here before any other
// component runs.
type DirectoryService struct {
	tenants   domain.TenantRepository
	operators domain.OperatorRepository
}

// NewDirectoryService creates a service with the given repositories.
func NewDirectoryService(tenants domain.TenantRepository, operators domain.OperatorRepository) *DirectoryService {
	return &DirectoryService{tenants: tenants, operators: operators}
}

// CreateTenant provisions a company account.
func (s *DirectoryService) CreateTenant(ctx context.Context, name, cnpj string) (domain.Tenant, error) {
	tenant := domain.NewTenant(newID(), name, cnpj)
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return domain.Tenant{}, fmt.Errorf("creating tenant: %w", err)
	}
	return tenant, nil
}

// GetTenant returns a tenant by id.
func (s *DirectoryService) GetTenant(ctx context.Context, id string) (domain.Tenant, error) {
	return s.tenants.GetByID(ctx, id)
}

// CreateOperator provisions an operator under a tenant.
func (s *DirectoryService) CreateOperator(ctx context.Context, tenantID, username string, staff bool) (domain.Operator, error) {
	if _, err := s.tenants.GetByID(ctx, tenantID); err != nil {
		return domain.Operator{}, err
	}
	operator := domain.NewOperator(newID(), tenantID, username, staff)
	if err := s.operators.Create(ctx, operator); err != nil {
		return domain.Operator{}, fmt.Errorf("creating operator: %w", err)
	}
	return operator, nil
}

// Operator resolves an authenticated operator by id. Inactive operators are
// rejected the same as missing ones.
func (s *DirectoryService) Operator(ctx context.Context, id string) (domain.Operator, error) {
	operator, err := s.operators.GetByID(ctx, id)
	if err != nil {
		return domain.Operator{}, err
	}
	if !operator.Active {
		return domain.Operator{}, domain.ErrOperatorNotFound
	}
	return operator, nil
}
