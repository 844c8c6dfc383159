package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TenantRepository defines the persistence contract for tenants.
type TenantRepository interface {
	Create(ctx context.Context, tenant Tenant) error
	GetByID(ctx context.Context, id string) (Tenant, error)
}

// OperatorRepository defines the persistence contract for operators.
type OperatorRepository interface {
	Create(ctx context.Context, operator Operator) error
	GetByID(ctx context.Context, id string) (Operator, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Operator, error)
}

// CatalogRepository persists products and customers, always scoped by an
// explicit tenant id.
type CatalogRepository interface {
	CreateProduct(ctx context.Context, product Product) error
	GetProduct(ctx context.Context, tenantID, id string) (Product, error)
	ListProducts(ctx context.Context, tenantID string) ([]Product, error)
	UpdateProduct(ctx context.Context, product Product) error
	// DeleteProduct soft-deletes by stamping deleted_at; the row survives for
	// existing sale lines but leaves listings and lookups.
	DeleteProduct(ctx context.Context, tenantID, id string, deletedAt time.Time) error

	CreateCustomer(ctx context.Context, customer Customer) error
	GetCustomer(ctx context.Context, tenantID, id string) (Customer, error)
	ListCustomers(ctx context.Context, tenantID string) ([]Customer, error)
	DeleteCustomer(ctx context.Context, tenantID, id string, deletedAt time.Time) error
}

// RegisterRepository persists cash registers, scoped by tenant.
type RegisterRepository interface {
	Create(ctx context.Context, register CashRegister) error
	GetByID(ctx context.Context, tenantID, id string) (CashRegister, error)
	List(ctx context.Context, tenantID string) ([]CashRegister, error)
	Delete(ctx context.Context, tenantID, id string, deletedAt time.Time) error
}

// SessionRepository persists register sessions. Open and Close are the two
// transactional operations of the lifecycle:
//
//   - Open inserts the session and points the operator at the register in
//     one transaction; the no-open-session check and the insert share that
//     transaction, so two concurrent opens on the same register cannot both
//     pass. Fails with *SessionAlreadyOpenError.
//   - Close stamps ClosedAt and ClosingBalance only if the session is still
//     open, and clears the operator's current register if it points at this
//     session's register, in one transaction. Fails with *SessionClosedError
//     on a second attempt, leaving the first close untouched.
type SessionRepository interface {
	Open(ctx context.Context, session Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	// OpenForRegister returns the register's open session, or
	// ErrSessionNotFound when every session is closed.
	OpenForRegister(ctx context.Context, registerID string) (Session, error)
	Close(ctx context.Context, sessionID string, closedAt time.Time, closingBalance decimal.Decimal) error
}

// SaleDraft is a fully resolved sale ready to persist: every reference has
// been validated and every unit price snapshotted before any write.
type SaleDraft struct {
	Sale    Sale
	Items   []SaleItem
	Invoice *Invoice
	Returns []Return
}

// SaleUpdate describes an update to an existing sale. Nil slices mean "leave
// unchanged"; Returns are appended, never replaced.
type SaleUpdate struct {
	TenantID string
	SaleID   string
	// NewItems replaces the full item list when non-nil. The store restores
	// stock for the old items before decrementing for the new ones, and
	// rewrites the sale total to NewTotal.
	NewItems []SaleItem
	NewTotal decimal.Decimal
	// Invoice upserts the sale's invoice when non-nil (already merged by the
	// caller against any existing invoice).
	Invoice *Invoice
	Returns []Return
}

// SaleRepository persists sales. CreateSale and UpdateSale execute inside a
// single transaction: all rows and stock adjustments land, or none do. Stock
// decrements are conditional; a decrement below zero fails the transaction
// with *InsufficientStockError.
type SaleRepository interface {
	CreateSale(ctx context.Context, draft SaleDraft) error
	UpdateSale(ctx context.Context, update SaleUpdate) error
	GetByID(ctx context.Context, tenantID, id string) (Sale, error)
	GetItems(ctx context.Context, saleID string) ([]SaleItem, error)
	// GetItemByID resolves a sale line item within the tenant's scope; an
	// item belonging to another tenant is indistinguishable from a missing
	// one and yields ErrSaleItemNotFound.
	GetItemByID(ctx context.Context, tenantID, id string) (SaleItem, error)
	GetInvoice(ctx context.Context, saleID string) (Invoice, error)
	ListReturns(ctx context.Context, saleID string) ([]Return, error)
	ListBySession(ctx context.Context, sessionID string) ([]Sale, error)
}

// TenantSnapshot is the unit served to offline clients, either in full or
// restricted to rows changed since a sync point.
type TenantSnapshot struct {
	Tenant    Tenant
	Customers []Customer
	Products  []Product
	Registers []CashRegister
	Operators []Operator
}

// SyncRepository reads tenant data for the delta sync gateway.
type SyncRepository interface {
	Snapshot(ctx context.Context, tenantID string) (TenantSnapshot, error)
	ChangedSince(ctx context.Context, tenantID string, since time.Time) (TenantSnapshot, error)
}

// EventPayload is a snapshot of the entities an event refers to, carried so
// consumers never need to query the database.
type EventPayload struct {
	TenantID   string
	RegisterID string
	SessionID  string
	SaleID     string
	OperatorID string
	Amount     decimal.Decimal
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, payload EventPayload) error
}

// TransitionValidator checks whether an event may be applied to a session
// lifecycle state and returns the resulting state.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}
