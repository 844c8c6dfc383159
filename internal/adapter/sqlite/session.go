package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// SessionRepository implements domain.SessionRepository using SQLite.
type SessionRepository struct {
	db *sql.DB
}

var _ domain.SessionRepository = (*SessionRepository)(nil)

// Open inserts the session and points its operator at the register, in one
// transaction. The no-open-session check shares that transaction, and a
// partial unique index on (register_id) WHERE closed_at IS NULL backstops it,
// so two concurrent opens on the same register cannot both succeed.
func (r *SessionRepository) Open(ctx context.Context, s domain.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning open transaction: %w", err)
	}
	defer tx.Rollback()

	var hasOpen bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sessions WHERE register_id = ? AND closed_at IS NULL)`,
		s.RegisterID,
	).Scan(&hasOpen)
	if err != nil {
		return fmt.Errorf("checking for open session: %w", err)
	}
	if hasOpen {
		return &domain.SessionAlreadyOpenError{RegisterID: s.RegisterID}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, register_id, operator_id, opened_at, closed_at, opening_balance, closing_balance, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, NULL, ?, NULL, ?, ?, ?)`,
		s.ID, s.RegisterID, s.OperatorID, fmtTime(s.OpenedAt),
		s.OpeningBalance.String(), s.Notes, fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.SessionAlreadyOpenError{RegisterID: s.RegisterID}
		}
		return fmt.Errorf("inserting session: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE operators SET current_register_id = ?, updated_at = ? WHERE id = ?`,
		s.RegisterID, fmtTime(time.Now().UTC()), s.OperatorID,
	)
	if err != nil {
		return fmt.Errorf("assigning operator register: %w", err)
	}

	return tx.Commit()
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (domain.Session, error) {
	return scanSession(r.db.QueryRowContext(ctx,
		`SELECT id, register_id, operator_id, opened_at, closed_at, opening_balance, closing_balance, notes, created_at, updated_at
		 FROM sessions WHERE id = ?`, id,
	))
}

func (r *SessionRepository) OpenForRegister(ctx context.Context, registerID string) (domain.Session, error) {
	return scanSession(r.db.QueryRowContext(ctx,
		`SELECT id, register_id, operator_id, opened_at, closed_at, opening_balance, closing_balance, notes, created_at, updated_at
		 FROM sessions WHERE register_id = ? AND closed_at IS NULL`, registerID,
	))
}

// Close stamps the closing timestamp and balance only if the session is
// still open, then clears the operator's current register if it points at
// this session's register, all in one transaction. A second close finds zero
// affected rows and reports SessionClosedError without touching the state
// written by the first.
func (r *SessionRepository) Close(ctx context.Context, sessionID string, closedAt time.Time, closingBalance decimal.Decimal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning close transaction: %w", err)
	}
	defer tx.Rollback()

	var registerID, operatorID string
	err = tx.QueryRowContext(ctx,
		`SELECT register_id, operator_id FROM sessions WHERE id = ?`, sessionID,
	).Scan(&registerID, &operatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrSessionNotFound
		}
		return fmt.Errorf("loading session: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE sessions SET closed_at = ?, closing_balance = ?, updated_at = ?
		 WHERE id = ? AND closed_at IS NULL`,
		fmtTime(closedAt), closingBalance.String(), fmtTime(closedAt), sessionID,
	)
	if err != nil {
		return fmt.Errorf("closing session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.SessionClosedError{SessionID: sessionID}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE operators SET current_register_id = NULL, updated_at = ?
		 WHERE id = ? AND current_register_id = ?`,
		fmtTime(closedAt), operatorID, registerID,
	)
	if err != nil {
		return fmt.Errorf("clearing operator register: %w", err)
	}

	return tx.Commit()
}

func scanSession(row rowScanner) (domain.Session, error) {
	var s domain.Session
	var openedAt, openingBalance, createdAt, updatedAt string
	var closedAt, closingBalance sql.NullString

	err := row.Scan(&s.ID, &s.RegisterID, &s.OperatorID, &openedAt, &closedAt,
		&openingBalance, &closingBalance, &s.Notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("scanning session: %w", err)
	}

	s.OpenedAt = parseTime(openedAt)
	s.ClosedAt = parseNullTime(closedAt)

	s.OpeningBalance, err = decimal.NewFromString(openingBalance)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parsing opening balance: %w", err)
	}
	if closingBalance.Valid {
		balance, err := decimal.NewFromString(closingBalance.String)
		if err != nil {
			return domain.Session{}, fmt.Errorf("parsing closing balance: %w", err)
		}
		s.ClosingBalance = &balance
	}

	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)

	return s, nil
}
