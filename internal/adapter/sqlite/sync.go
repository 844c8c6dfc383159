package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// SyncRepository implements domain.SyncRepository using SQLite. Delta reads
// compare the stored timestamp strings lexicographically, which matches
// chronological order for the fixed-width format the store writes.
type SyncRepository struct {
	db *sql.DB
}

var _ domain.SyncRepository = (*SyncRepository)(nil)

func (r *SyncRepository) Snapshot(ctx context.Context, tenantID string) (domain.TenantSnapshot, error) {
	return r.load(ctx, tenantID, nil)
}

func (r *SyncRepository) ChangedSince(ctx context.Context, tenantID string, since time.Time) (domain.TenantSnapshot, error) {
	return r.load(ctx, tenantID, &since)
}

func (r *SyncRepository) load(ctx context.Context, tenantID string, since *time.Time) (domain.TenantSnapshot, error) {
	tenant, err := scanTenant(r.db.QueryRowContext(ctx,
		`SELECT id, name, cnpj, active, created_at, updated_at, deleted_at
		 FROM tenants WHERE id = ? AND deleted_at IS NULL`, tenantID,
	))
	if err != nil {
		return domain.TenantSnapshot{}, err
	}

	snapshot := domain.TenantSnapshot{Tenant: tenant}

	// Rows changed after the sync point: created or updated strictly later.
	delta := ``
	var args []any
	if since != nil {
		delta = ` AND (created_at > ? OR updated_at > ?)`
		cutoff := fmtTime(*since)
		args = []any{cutoff, cutoff}
	}

	customers, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, cpf, email, phone, address, created_at, updated_at, deleted_at
		 FROM customers WHERE tenant_id = ? AND deleted_at IS NULL`+delta+` ORDER BY name`,
		append([]any{tenantID}, args...)...,
	)
	if err != nil {
		return domain.TenantSnapshot{}, fmt.Errorf("loading customers: %w", err)
	}
	defer customers.Close()
	for customers.Next() {
		c, err := scanCustomer(customers)
		if err != nil {
			return domain.TenantSnapshot{}, err
		}
		snapshot.Customers = append(snapshot.Customers, c)
	}
	if err := customers.Err(); err != nil {
		return domain.TenantSnapshot{}, err
	}

	products, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, description, price, stock, created_at, updated_at, deleted_at
		 FROM products WHERE tenant_id = ? AND deleted_at IS NULL`+delta+` ORDER BY name`,
		append([]any{tenantID}, args...)...,
	)
	if err != nil {
		return domain.TenantSnapshot{}, fmt.Errorf("loading products: %w", err)
	}
	defer products.Close()
	for products.Next() {
		p, err := scanProduct(products)
		if err != nil {
			return domain.TenantSnapshot{}, err
		}
		snapshot.Products = append(snapshot.Products, p)
	}
	if err := products.Err(); err != nil {
		return domain.TenantSnapshot{}, err
	}

	registers, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, type, active, addr, port, created_at, updated_at, deleted_at
		 FROM cash_registers WHERE tenant_id = ? AND deleted_at IS NULL`+delta+` ORDER BY name`,
		append([]any{tenantID}, args...)...,
	)
	if err != nil {
		return domain.TenantSnapshot{}, fmt.Errorf("loading cash registers: %w", err)
	}
	defer registers.Close()
	for registers.Next() {
		reg, err := scanRegister(registers)
		if err != nil {
			return domain.TenantSnapshot{}, err
		}
		snapshot.Registers = append(snapshot.Registers, reg)
	}
	if err := registers.Err(); err != nil {
		return domain.TenantSnapshot{}, err
	}

	operators, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, username, staff, active, current_register_id, created_at, updated_at, deleted_at
		 FROM operators WHERE tenant_id = ? AND active = 1 AND deleted_at IS NULL`+delta+` ORDER BY username`,
		append([]any{tenantID}, args...)...,
	)
	if err != nil {
		return domain.TenantSnapshot{}, fmt.Errorf("loading operators: %w", err)
	}
	defer operators.Close()
	for operators.Next() {
		o, err := scanOperator(operators)
		if err != nil {
			return domain.TenantSnapshot{}, err
		}
		snapshot.Operators = append(snapshot.Operators, o)
	}
	if err := operators.Err(); err != nil {
		return domain.TenantSnapshot{}, err
	}

	return snapshot, nil
}
