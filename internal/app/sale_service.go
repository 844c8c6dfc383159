package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// SaleItemInput is one requested line item, referencing a product by id.
type SaleItemInput struct {
	ProductID string
	Quantity  int64
}

// InvoiceInput carries invoice fields; nil fields are "not provided". On
// creation a nil Total defaults to the sale's computed total.
type InvoiceInput struct {
	IssueDate *time.Time
	DueDate   *time.Time
	Total     *decimal.Decimal
	Paid      *bool
}

// ReturnInput requests a return against an existing sale line item.
type ReturnInput struct {
	SaleItemID string
	Quantity   int64
	Reason     string
}

// CreateSaleInput is the full request for a new sale.
type CreateSaleInput struct {
	SessionID  string
	CustomerID string
	Items      []SaleItemInput
	Invoice    *InvoiceInput
	Returns    []ReturnInput
}

// UpdateSaleInput describes a sale update. A nil Items slice keeps the
// current line items; a non-nil slice replaces them wholesale. Returns are
// appended.
type UpdateSaleInput struct {
	Items   []SaleItemInput
	Invoice *InvoiceInput
	Returns []ReturnInput
}

// SaleDetail is a sale with its owned rows, as served to clients.
type SaleDetail struct {
	Sale    domain.Sale
	Items   []domain.SaleItem
	Invoice *domain.Invoice
	Returns []domain.Return
}

// SaleService is the sale transaction engine: it resolves every reference
// up front, snapshots prices, computes the total, and hands the store a
// fully resolved draft to persist atomically.
type SaleService struct {
	catalog   domain.CatalogRepository
	registers domain.RegisterRepository
	sessions  domain.SessionRepository
	sales     domain.SaleRepository
	publisher domain.EventPublisher
}

// NewSaleService creates a service with the given adapters.
func NewSaleService(catalog domain.CatalogRepository, registers domain.RegisterRepository, sessions domain.SessionRepository, sales domain.SaleRepository, publisher domain.EventPublisher) *SaleService {
	return &SaleService{
		catalog:   catalog,
		registers: registers,
		sessions:  sessions,
		sales:     sales,
		publisher: publisher,
	}
}

// Create records a sale against the requester's open session. All resolution
// happens before any write: an invalid session, customer, product, or return
// target aborts the operation with nothing persisted.
func (s *SaleService) Create(ctx context.Context, requester domain.Operator, in CreateSaleInput) (SaleDetail, error) {
	if err := validateItemInputs(in.Items); err != nil {
		return SaleDetail{}, err
	}

	session, err := s.resolveSession(ctx, requester, in.SessionID)
	if err != nil {
		return SaleDetail{}, err
	}
	if !session.IsOpen() {
		return SaleDetail{}, &domain.SessionClosedError{SessionID: session.ID}
	}

	// The sale's tenant is derived from the session's register, which has
	// already been resolved within the requester's tenant scope.
	tenantID := requester.TenantID

	if _, err := s.catalog.GetCustomer(ctx, tenantID, in.CustomerID); err != nil {
		return SaleDetail{}, err
	}

	saleID := newID()
	items, total, err := s.resolveItems(ctx, tenantID, saleID, in.Items)
	if err != nil {
		return SaleDetail{}, err
	}

	returns, err := s.resolveReturns(ctx, tenantID, saleID, in.Returns)
	if err != nil {
		return SaleDetail{}, err
	}

	now := time.Now().UTC()
	operatorID := requester.ID
	sale := domain.Sale{
		ID:         saleID,
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		SessionID:  session.ID,
		OperatorID: &operatorID,
		Total:      total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var invoice *domain.Invoice
	if in.Invoice != nil {
		inv, err := buildInvoice(saleID, total, *in.Invoice)
		if err != nil {
			return SaleDetail{}, err
		}
		invoice = &inv
	}

	draft := domain.SaleDraft{Sale: sale, Items: items, Invoice: invoice, Returns: returns}
	if err := s.sales.CreateSale(ctx, draft); err != nil {
		return SaleDetail{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventSaleRecorded, domain.EventPayload{
		TenantID:   tenantID,
		RegisterID: session.RegisterID,
		SessionID:  session.ID,
		SaleID:     sale.ID,
		OperatorID: requester.ID,
		Amount:     total,
	}); err != nil {
		return SaleDetail{}, fmt.Errorf("publishing sale event: %w", err)
	}

	return SaleDetail{Sale: sale, Items: items, Invoice: invoice, Returns: returns}, nil
}

// Update mutates an existing sale inside one transaction. Providing items
// replaces the full line-item list: stock for the old items is restored
// before the new decrements apply, and the total is recomputed from the new
// set. Invoice fields merge onto any existing invoice, or create one.
func (s *SaleService) Update(ctx context.Context, requester domain.Operator, saleID string, in UpdateSaleInput) (SaleDetail, error) {
	sale, err := s.sales.GetByID(ctx, requester.TenantID, saleID)
	if err != nil {
		return SaleDetail{}, err
	}

	update := domain.SaleUpdate{
		TenantID: sale.TenantID,
		SaleID:   sale.ID,
		NewTotal: sale.Total,
	}

	if in.Items != nil {
		if err := validateItemInputs(in.Items); err != nil {
			return SaleDetail{}, err
		}
		items, total, err := s.resolveItems(ctx, sale.TenantID, sale.ID, in.Items)
		if err != nil {
			return SaleDetail{}, err
		}
		update.NewItems = items
		update.NewTotal = total
	}

	if in.Invoice != nil {
		invoice, err := s.mergeInvoice(ctx, sale.ID, update.NewTotal, *in.Invoice)
		if err != nil {
			return SaleDetail{}, err
		}
		update.Invoice = &invoice
	}

	if len(in.Returns) > 0 {
		returns, err := s.resolveReturns(ctx, sale.TenantID, sale.ID, in.Returns)
		if err != nil {
			return SaleDetail{}, err
		}
		update.Returns = returns
	}

	if err := s.sales.UpdateSale(ctx, update); err != nil {
		return SaleDetail{}, err
	}

	return s.Get(ctx, requester, sale.ID)
}

// Get returns a sale with its items, invoice, and returns.
func (s *SaleService) Get(ctx context.Context, requester domain.Operator, saleID string) (SaleDetail, error) {
	sale, err := s.sales.GetByID(ctx, requester.TenantID, saleID)
	if err != nil {
		return SaleDetail{}, err
	}

	items, err := s.sales.GetItems(ctx, sale.ID)
	if err != nil {
		return SaleDetail{}, err
	}

	detail := SaleDetail{Sale: sale, Items: items}

	invoice, err := s.sales.GetInvoice(ctx, sale.ID)
	switch {
	case err == nil:
		detail.Invoice = &invoice
	case !errors.Is(err, domain.ErrInvoiceNotFound):
		return SaleDetail{}, err
	}

	returns, err := s.sales.ListReturns(ctx, sale.ID)
	if err != nil {
		return SaleDetail{}, err
	}
	detail.Returns = returns

	return detail, nil
}

// ListOpenSessionSales returns the sales of the requester's current open
// session, most recent first.
func (s *SaleService) ListOpenSessionSales(ctx context.Context, requester domain.Operator) ([]domain.Sale, error) {
	if requester.CurrentRegisterID == nil {
		return nil, &domain.ValidationError{Field: "caixa_atual", Reason: "operator has no active register session"}
	}

	session, err := s.sessions.OpenForRegister(ctx, *requester.CurrentRegisterID)
	if err != nil {
		return nil, err
	}
	if session.OperatorID != requester.ID {
		return nil, domain.ErrSessionNotFound
	}

	return s.sales.ListBySession(ctx, session.ID)
}

// resolveSession fetches the session and checks it belongs to the requester
// and to a register of the requester's tenant.
func (s *SaleService) resolveSession(ctx context.Context, requester domain.Operator, sessionID string) (domain.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	if session.OperatorID != requester.ID {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if _, err := s.registers.GetByID(ctx, requester.TenantID, session.RegisterID); err != nil {
		if errors.Is(err, domain.ErrRegisterNotFound) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, err
	}
	return session, nil
}

// resolveItems resolves product references within the tenant and snapshots
// the current price per line. Returns the built items and their total.
func (s *SaleService) resolveItems(ctx context.Context, tenantID, saleID string, inputs []SaleItemInput) ([]domain.SaleItem, decimal.Decimal, error) {
	now := time.Now().UTC()
	items := make([]domain.SaleItem, 0, len(inputs))
	for _, in := range inputs {
		product, err := s.catalog.GetProduct(ctx, tenantID, in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, decimal.Zero, fmt.Errorf("product %q: %w", in.ProductID, domain.ErrProductNotFound)
			}
			return nil, decimal.Zero, err
		}
		items = append(items, domain.SaleItem{
			ID:        newID(),
			SaleID:    saleID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: product.Price,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return items, domain.SaleTotal(items), nil
}

// resolveReturns validates each return request against an existing sale item
// within the tenant's scope, so a line item from another tenant reads as
// missing rather than leaking across tenants.
func (s *SaleService) resolveReturns(ctx context.Context, tenantID, saleID string, inputs []ReturnInput) ([]domain.Return, error) {
	now := time.Now().UTC()
	returns := make([]domain.Return, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, &domain.ValidationError{Field: "devolucoes.quantidade", Reason: "quantity must be a positive integer"}
		}
		item, err := s.sales.GetItemByID(ctx, tenantID, in.SaleItemID)
		if err != nil {
			return nil, err
		}
		returns = append(returns, domain.Return{
			ID:         newID(),
			SaleID:     saleID,
			SaleItemID: item.ID,
			Quantity:   in.Quantity,
			Reason:     in.Reason,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return returns, nil
}

// mergeInvoice merges provided fields onto the sale's existing invoice, or
// builds a new one defaulting the total to the sale's total.
func (s *SaleService) mergeInvoice(ctx context.Context, saleID string, saleTotal decimal.Decimal, in InvoiceInput) (domain.Invoice, error) {
	existing, err := s.sales.GetInvoice(ctx, saleID)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return buildInvoice(saleID, saleTotal, in)
		}
		return domain.Invoice{}, err
	}

	if in.IssueDate != nil {
		existing.IssueDate = *in.IssueDate
	}
	if in.DueDate != nil {
		existing.DueDate = *in.DueDate
	}
	if in.Total != nil {
		existing.Total = *in.Total
	}
	if in.Paid != nil {
		existing.Paid = *in.Paid
	}
	existing.UpdatedAt = time.Now().UTC()

	return existing, nil
}

// buildInvoice constructs a new invoice for the sale. Issue and due dates are
// required on creation; a missing total defaults to the sale's total.
func buildInvoice(saleID string, saleTotal decimal.Decimal, in InvoiceInput) (domain.Invoice, error) {
	if in.IssueDate == nil {
		return domain.Invoice{}, &domain.ValidationError{Field: "fatura.data_emissao", Reason: "issue date is required"}
	}
	if in.DueDate == nil {
		return domain.Invoice{}, &domain.ValidationError{Field: "fatura.data_vencimento", Reason: "due date is required"}
	}

	total := saleTotal
	if in.Total != nil {
		total = *in.Total
	}
	paid := false
	if in.Paid != nil {
		paid = *in.Paid
	}

	now := time.Now().UTC()
	return domain.Invoice{
		ID:        newID(),
		SaleID:    saleID,
		IssueDate: *in.IssueDate,
		DueDate:   *in.DueDate,
		Total:     total,
		Paid:      paid,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// validateItemInputs rejects empty item lists and non-positive quantities
// before any resolution begins.
func validateItemInputs(items []SaleItemInput) error {
	if len(items) == 0 {
		return &domain.ValidationError{Field: "itens", Reason: "a sale needs at least one line item"}
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return &domain.ValidationError{Field: "itens.quantidade", Reason: "quantity must be a positive integer"}
		}
	}
	return nil
}
