package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// TenantRepository implements domain.TenantRepository using SQLite.
type TenantRepository struct {
	db *sql.DB
}

var _ domain.TenantRepository = (*TenantRepository)(nil)

func (r *TenantRepository) Create(ctx context.Context, t domain.Tenant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, cnpj, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.CNPJ, t.Active, fmtTime(t.CreatedAt), fmtTime(t.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateError{Entity: "tenant", Field: "cnpj", Value: t.CNPJ}
		}
		return fmt.Errorf("inserting tenant: %w", err)
	}
	return nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	return scanTenant(r.db.QueryRowContext(ctx,
		`SELECT id, name, cnpj, active, created_at, updated_at, deleted_at
		 FROM tenants WHERE id = ? AND deleted_at IS NULL`, id,
	))
}

func scanTenant(row rowScanner) (domain.Tenant, error) {
	var t domain.Tenant
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(&t.ID, &t.Name, &t.CNPJ, &t.Active, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tenant{}, domain.ErrTenantNotFound
		}
		return domain.Tenant{}, fmt.Errorf("scanning tenant: %w", err)
	}

	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	t.DeletedAt = parseNullTime(deletedAt)

	return t, nil
}

// OperatorRepository implements domain.OperatorRepository using SQLite.
type OperatorRepository struct {
	db *sql.DB
}

var _ domain.OperatorRepository = (*OperatorRepository)(nil)

func (r *OperatorRepository) Create(ctx context.Context, o domain.Operator) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operators (id, tenant_id, username, staff, active, current_register_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.TenantID, o.Username, o.Staff, o.Active, o.CurrentRegisterID,
		fmtTime(o.CreatedAt), fmtTime(o.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateError{Entity: "operator", Field: "username", Value: o.Username}
		}
		return fmt.Errorf("inserting operator: %w", err)
	}
	return nil
}

func (r *OperatorRepository) GetByID(ctx context.Context, id string) (domain.Operator, error) {
	return scanOperator(r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, username, staff, active, current_register_id, created_at, updated_at, deleted_at
		 FROM operators WHERE id = ? AND deleted_at IS NULL`, id,
	))
}

func (r *OperatorRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Operator, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, username, staff, active, current_register_id, created_at, updated_at, deleted_at
		 FROM operators WHERE tenant_id = ? AND active = 1 AND deleted_at IS NULL
		 ORDER BY username`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing operators: %w", err)
	}
	defer rows.Close()

	var operators []domain.Operator
	for rows.Next() {
		o, err := scanOperator(rows)
		if err != nil {
			return nil, err
		}
		operators = append(operators, o)
	}

	return operators, rows.Err()
}

func scanOperator(row rowScanner) (domain.Operator, error) {
	var o domain.Operator
	var currentRegister sql.NullString
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(&o.ID, &o.TenantID, &o.Username, &o.Staff, &o.Active, &currentRegister, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Operator{}, domain.ErrOperatorNotFound
		}
		return domain.Operator{}, fmt.Errorf("scanning operator: %w", err)
	}

	if currentRegister.Valid {
		o.CurrentRegisterID = &currentRegister.String
	}
	o.CreatedAt = parseTime(createdAt)
	o.UpdatedAt = parseTime(updatedAt)
	o.DeletedAt = parseNullTime(deletedAt)

	return o, nil
}
