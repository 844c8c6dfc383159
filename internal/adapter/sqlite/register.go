package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// RegisterRepository implements domain.RegisterRepository using SQLite.
type RegisterRepository struct {
	db *sql.DB
}

var _ domain.RegisterRepository = (*RegisterRepository)(nil)

func (r *RegisterRepository) Create(ctx context.Context, reg domain.CashRegister) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cash_registers (id, tenant_id, name, type, active, addr, port, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.ID, reg.TenantID, reg.Name, string(reg.Type), reg.Active, reg.Addr, reg.Port,
		fmtTime(reg.CreatedAt), fmtTime(reg.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateError{Entity: "cash register", Field: "name", Value: reg.Name}
		}
		return fmt.Errorf("inserting cash register: %w", err)
	}
	return nil
}

func (r *RegisterRepository) GetByID(ctx context.Context, tenantID, id string) (domain.CashRegister, error) {
	return scanRegister(r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, type, active, addr, port, created_at, updated_at, deleted_at
		 FROM cash_registers WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`, id, tenantID,
	))
}

func (r *RegisterRepository) List(ctx context.Context, tenantID string) ([]domain.CashRegister, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, type, active, addr, port, created_at, updated_at, deleted_at
		 FROM cash_registers WHERE tenant_id = ? AND deleted_at IS NULL ORDER BY name`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing cash registers: %w", err)
	}
	defer rows.Close()

	var registers []domain.CashRegister
	for rows.Next() {
		reg, err := scanRegister(rows)
		if err != nil {
			return nil, err
		}
		registers = append(registers, reg)
	}

	return registers, rows.Err()
}

func (r *RegisterRepository) Delete(ctx context.Context, tenantID, id string, deletedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE cash_registers SET deleted_at = ?, updated_at = ?
		 WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`,
		fmtTime(deletedAt), fmtTime(deletedAt), id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("deleting cash register: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRegisterNotFound
	}

	return nil
}

func scanRegister(row rowScanner) (domain.CashRegister, error) {
	var reg domain.CashRegister
	var typ, createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(&reg.ID, &reg.TenantID, &reg.Name, &typ, &reg.Active, &reg.Addr, &reg.Port, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CashRegister{}, domain.ErrRegisterNotFound
		}
		return domain.CashRegister{}, fmt.Errorf("scanning cash register: %w", err)
	}

	reg.Type = domain.RegisterType(typ)
	reg.CreatedAt = parseTime(createdAt)
	reg.UpdatedAt = parseTime(updatedAt)
	reg.DeletedAt = parseNullTime(deletedAt)

	return reg, nil
}
