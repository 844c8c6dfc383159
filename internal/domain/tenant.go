package domain

import "time"

// Tenant is the top-level aggregate root: a company ("empresa") whose data is
// isolated from every other tenant. Every other entity belongs to exactly one
// tenant, and every repository method takes the tenant scope as an explicit
// parameter rather than an ambient filter.
type Tenant struct {
	ID        string
	Name      string
	CNPJ      string // legal id, globally unique
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewTenant creates an active tenant.
func NewTenant(id, name, cnpj string) Tenant {
	now := time.Now().UTC()
	return Tenant{
		ID:        id,
		Name:      name,
		CNPJ:      cnpj,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Operator is a user who opens register sessions and records sales for a
// single tenant. CurrentRegisterID tracks the register of their last
// successfully opened, still-open session; it is cleared when that specific
// session closes.
type Operator struct {
	ID                string
	TenantID          string
	Username          string
	Staff             bool // elevated privilege: may close any session of the tenant
	Active            bool
	CurrentRegisterID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// NewOperator creates an active operator for the given tenant.
func NewOperator(id, tenantID, username string, staff bool) Operator {
	now := time.Now().UTC()
	return Operator{
		ID:        id,
		TenantID:  tenantID,
		Username:  username,
		Staff:     staff,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
