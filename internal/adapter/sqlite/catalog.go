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

// CatalogRepository implements domain.CatalogRepository using SQLite.
type CatalogRepository struct {
	db *sql.DB
}

var _ domain.CatalogRepository = (*CatalogRepository)(nil)

func (r *CatalogRepository) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, tenant_id, name, description, price, stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Name, p.Description, p.Price.String(), p.Stock,
		fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, tenantID, id string) (domain.Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, description, price, stock, created_at, updated_at, deleted_at
		 FROM products WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`, id, tenantID,
	))
}

func (r *CatalogRepository) ListProducts(ctx context.Context, tenantID string) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, description, price, stock, created_at, updated_at, deleted_at
		 FROM products WHERE tenant_id = ? AND deleted_at IS NULL ORDER BY name`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, p domain.Product) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, stock = ?, updated_at = ?
		 WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`,
		p.Name, p.Description, p.Price.String(), p.Stock, fmtTime(time.Now().UTC()),
		p.ID, p.TenantID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, tenantID, id string, deletedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET deleted_at = ?, updated_at = ?
		 WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`,
		fmtTime(deletedAt), fmtTime(deletedAt), id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *CatalogRepository) CreateCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, tenant_id, name, cpf, email, phone, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TenantID, c.Name, c.CPF, c.Email, c.Phone, c.Address,
		fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateError{Entity: "customer", Field: "cpf", Value: c.CPF}
		}
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetCustomer(ctx context.Context, tenantID, id string) (domain.Customer, error) {
	return scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, cpf, email, phone, address, created_at, updated_at, deleted_at
		 FROM customers WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`, id, tenantID,
	))
}

func (r *CatalogRepository) ListCustomers(ctx context.Context, tenantID string) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, cpf, email, phone, address, created_at, updated_at, deleted_at
		 FROM customers WHERE tenant_id = ? AND deleted_at IS NULL ORDER BY name`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (r *CatalogRepository) DeleteCustomer(ctx context.Context, tenantID, id string, deletedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET deleted_at = ?, updated_at = ?
		 WHERE id = ? AND tenant_id = ? AND deleted_at IS NULL`,
		fmtTime(deletedAt), fmtTime(deletedAt), id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}

	return nil
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var price, createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &price, &p.Stock, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("scanning product: %w", err)
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parsing product price: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	p.DeletedAt = parseNullTime(deletedAt)

	return p, nil
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var c domain.Customer
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.CPF, &c.Email, &c.Phone, &c.Address, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("scanning customer: %w", err)
	}

	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	c.DeletedAt = parseNullTime(deletedAt)

	return c, nil
}
