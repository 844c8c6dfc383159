package domain

import "time"

// RegisterType distinguishes the principal terminal (local database) from
// satellite terminals that connect to it.
type RegisterType string

const (
	RegisterPrincipal RegisterType = "principal"
	RegisterSatellite RegisterType = "satellite"
)

// CashRegister is a point-of-sale terminal ("caixa") belonging to one tenant.
// Name is unique per tenant. A register has zero or more sessions over its
// lifetime, at most one open at any time.
type CashRegister struct {
	ID        string
	TenantID  string
	Name      string
	Type      RegisterType
	Active    bool
	Addr      string // registration only, never dialed by the backend
	Port      int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewCashRegister creates an active register for the given tenant.
func NewCashRegister(id, tenantID, name string, typ RegisterType) CashRegister {
	now := time.Now().UTC()
	return CashRegister{
		ID:        id,
		TenantID:  tenantID,
		Name:      name,
		Type:      typ,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
