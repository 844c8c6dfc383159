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

// SaleRepository implements domain.SaleRepository using SQLite. CreateSale
// and UpdateSale run inside a single transaction so that the sale header,
// line items, stock adjustments, invoice, and returns land together or not
// at all.
type SaleRepository struct {
	db *sql.DB
}

var _ domain.SaleRepository = (*SaleRepository)(nil)

func (r *SaleRepository) CreateSale(ctx context.Context, draft domain.SaleDraft) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning sale transaction: %w", err)
	}
	defer tx.Rollback()

	s := draft.Sale
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sales (id, tenant_id, customer_id, session_id, operator_id, total, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.TenantID, s.CustomerID, s.SessionID, s.OperatorID, s.Total.String(),
		fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	if err := insertItems(ctx, tx, s.TenantID, draft.Items); err != nil {
		return err
	}

	if draft.Invoice != nil {
		if err := upsertInvoice(ctx, tx, *draft.Invoice); err != nil {
			return err
		}
	}

	if err := insertReturns(ctx, tx, draft.Returns); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SaleRepository) UpdateSale(ctx context.Context, update domain.SaleUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning sale transaction: %w", err)
	}
	defer tx.Rollback()

	if update.NewItems != nil {
		// Restore stock for the outgoing items before deleting them, then
		// apply the new set with fresh decrements. The net stock change is
		// new quantities minus old quantities per product.
		if err := restoreStock(ctx, tx, update.SaleID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = ?`, update.SaleID); err != nil {
			return fmt.Errorf("deleting sale items: %w", err)
		}

		if err := insertItems(ctx, tx, update.TenantID, update.NewItems); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE sales SET total = ?, updated_at = ? WHERE id = ?`,
			update.NewTotal.String(), fmtTime(time.Now().UTC()), update.SaleID,
		)
		if err != nil {
			return fmt.Errorf("updating sale total: %w", err)
		}
	}

	if update.Invoice != nil {
		if err := upsertInvoice(ctx, tx, *update.Invoice); err != nil {
			return err
		}
	}

	if err := insertReturns(ctx, tx, update.Returns); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SaleRepository) GetByID(ctx context.Context, tenantID, id string) (domain.Sale, error) {
	return scanSale(r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, customer_id, session_id, operator_id, total, created_at, updated_at, deleted_at
		 FROM sales WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`, id, tenantID,
	))
}

func (r *SaleRepository) GetItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price, created_at, updated_at
		 FROM sale_items WHERE sale_id = ? ORDER BY created_at`, saleID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sale items: %w", err)
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		item, err := scanSaleItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *SaleRepository) GetItemByID(ctx context.Context, tenantID, id string) (domain.SaleItem, error) {
	return scanSaleItem(r.db.QueryRowContext(ctx,
		`SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.created_at, si.updated_at
		 FROM sale_items si
		 JOIN sales s ON s.id = si.sale_id
		 WHERE si.id = ? AND s.tenant_id = ? AND s.deleted_at IS NULL`, id, tenantID,
	))
}

func (r *SaleRepository) GetInvoice(ctx context.Context, saleID string) (domain.Invoice, error) {
	var inv domain.Invoice
	var issueDate, dueDate, total, createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, sale_id, issue_date, due_date, total, paid, created_at, updated_at
		 FROM invoices WHERE sale_id = ?`, saleID,
	).Scan(&inv.ID, &inv.SaleID, &issueDate, &dueDate, &total, &inv.Paid, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Invoice{}, domain.ErrInvoiceNotFound
		}
		return domain.Invoice{}, fmt.Errorf("scanning invoice: %w", err)
	}

	inv.IssueDate = parseTime(issueDate)
	inv.DueDate = parseTime(dueDate)
	inv.Total, err = decimal.NewFromString(total)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("parsing invoice total: %w", err)
	}
	inv.CreatedAt = parseTime(createdAt)
	inv.UpdatedAt = parseTime(updatedAt)

	return inv, nil
}

func (r *SaleRepository) ListReturns(ctx context.Context, saleID string) ([]domain.Return, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sale_id, sale_item_id, quantity, reason, created_at, updated_at
		 FROM returns WHERE sale_id = ? ORDER BY created_at`, saleID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing returns: %w", err)
	}
	defer rows.Close()

	var returns []domain.Return
	for rows.Next() {
		var ret domain.Return
		var createdAt, updatedAt string
		if err := rows.Scan(&ret.ID, &ret.SaleID, &ret.SaleItemID, &ret.Quantity, &ret.Reason, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning return: %w", err)
		}
		ret.CreatedAt = parseTime(createdAt)
		ret.UpdatedAt = parseTime(updatedAt)
		returns = append(returns, ret)
	}

	return returns, rows.Err()
}

func (r *SaleRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, customer_id, session_id, operator_id, total, created_at, updated_at, deleted_at
		 FROM sales WHERE session_id = ? AND deleted_at IS NULL ORDER BY created_at DESC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing session sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}

	return sales, rows.Err()
}

// insertItems writes the line items and decrements stock per line. The
// decrement is conditional on sufficient stock; zero affected rows means the
// product is gone or the sale would drive its stock negative, either way the
// transaction fails and nothing is kept.
func insertItems(ctx context.Context, tx *sql.Tx, tenantID string, items []domain.SaleItem) error {
	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice.String(),
			fmtTime(item.CreatedAt), fmtTime(item.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting sale item: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - ?, updated_at = ?
			 WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL AND stock >= ?`,
			item.Quantity, fmtTime(time.Now().UTC()), item.ProductID, tenantID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("decrementing stock: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking rows affected: %w", err)
		}
		if rows == 0 {
			var available int64
			err := tx.QueryRowContext(ctx,
				`SELECT stock FROM products WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`,
				item.ProductID, tenantID,
			).Scan(&available)
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrProductNotFound
			}
			if err != nil {
				return fmt.Errorf("reading stock: %w", err)
			}
			return &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: available,
			}
		}
	}
	return nil
}

// restoreStock adds each current line item's quantity back to its product.
func restoreStock(ctx context.Context, tx *sql.Tx, saleID string) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM sale_items WHERE sale_id = ?`, saleID,
	)
	if err != nil {
		return fmt.Errorf("reading current sale items: %w", err)
	}
	defer rows.Close()

	type line struct {
		productID string
		quantity  int64
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			return fmt.Errorf("scanning sale item: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	now := fmtTime(time.Now().UTC())
	for _, l := range lines {
		_, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`,
			l.quantity, now, l.productID,
		)
		if err != nil {
			return fmt.Errorf("restoring stock: %w", err)
		}
	}
	return nil
}

func upsertInvoice(ctx context.Context, tx *sql.Tx, inv domain.Invoice) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO invoices (id, sale_id, issue_date, due_date, total, paid, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (sale_id) DO UPDATE SET
		     issue_date = excluded.issue_date,
		     due_date = excluded.due_date,
		     total = excluded.total,
		     paid = excluded.paid,
		     updated_at = excluded.updated_at`,
		inv.ID, inv.SaleID, fmtTime(inv.IssueDate), fmtTime(inv.DueDate),
		inv.Total.String(), inv.Paid, fmtTime(inv.CreatedAt), fmtTime(inv.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting invoice: %w", err)
	}
	return nil
}

func insertReturns(ctx context.Context, tx *sql.Tx, returns []domain.Return) error {
	for _, ret := range returns {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO returns (id, sale_id, sale_item_id, quantity, reason, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			ret.ID, ret.SaleID, ret.SaleItemID, ret.Quantity, ret.Reason,
			fmtTime(ret.CreatedAt), fmtTime(ret.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting return: %w", err)
		}
	}
	return nil
}

func scanSale(row rowScanner) (domain.Sale, error) {
	var s domain.Sale
	var operatorID sql.NullString
	var total, createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(&s.ID, &s.TenantID, &s.CustomerID, &s.SessionID, &operatorID, &total, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Sale{}, domain.ErrSaleNotFound
		}
		return domain.Sale{}, fmt.Errorf("scanning sale: %w", err)
	}

	if operatorID.Valid {
		s.OperatorID = &operatorID.String
	}
	s.Total, err = decimal.NewFromString(total)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("parsing sale total: %w", err)
	}
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)
	s.DeletedAt = parseNullTime(deletedAt)

	return s, nil
}

func scanSaleItem(row rowScanner) (domain.SaleItem, error) {
	var item domain.SaleItem
	var unitPrice, createdAt, updatedAt string

	err := row.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &unitPrice, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SaleItem{}, domain.ErrSaleItemNotFound
		}
		return domain.SaleItem{}, fmt.Errorf("scanning sale item: %w", err)
	}

	item.UnitPrice, err = decimal.NewFromString(unitPrice)
	if err != nil {
		return domain.SaleItem{}, fmt.Errorf("parsing unit price: %w", err)
	}
	item.CreatedAt = parseTime(createdAt)
	item.UpdatedAt = parseTime(updatedAt)

	return item, nil
}
