package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a completed transaction ("venda") recorded against an open session.
// TenantID is denormalized from the session's register at creation time.
// OperatorID degrades to nil if the operator is later removed; the sale is
// retained. CreatedAt is fixed at creation and never updated.
type Sale struct {
	ID         string
	TenantID   string
	CustomerID string
	SessionID  string
	OperatorID *string
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// SaleItem is one line of a sale. UnitPrice is the product price captured at
// sale time and is decoupled from later catalog price changes.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal returns quantity × unit-price snapshot.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// SaleTotal sums the line subtotals. A sale's stored total always equals this
// sum after any create or update.
func SaleTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Invoice ("fatura") is the billing document, one-to-one with a sale.
type Invoice struct {
	ID        string
	SaleID    string
	IssueDate time.Time
	DueDate   time.Time
	Total     decimal.Decimal
	Paid      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Return ("devolução") reverses part or all of one sale line item. Returns
// are additive: updates append, never replace or remove.
type Return struct {
	ID         string
	SaleID     string
	SaleItemID string
	Quantity   int64
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
