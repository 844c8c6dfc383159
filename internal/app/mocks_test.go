package app_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// --- Mocks ---
//
// The mocks reproduce the store's observable behavior (tenant scoping,
// one-open-session, one-way close, conditional stock decrements) without a
// database, so service rules can be tested in isolation.

type mockTenantRepo struct {
	tenants map[string]domain.Tenant
}

func newMockTenantRepo() *mockTenantRepo {
	return &mockTenantRepo{tenants: make(map[string]domain.Tenant)}
}

func (m *mockTenantRepo) Create(_ context.Context, t domain.Tenant) error {
	m.tenants[t.ID] = t
	return nil
}

func (m *mockTenantRepo) GetByID(_ context.Context, id string) (domain.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return domain.Tenant{}, domain.ErrTenantNotFound
	}
	return t, nil
}

type mockOperatorRepo struct {
	operators map[string]domain.Operator
}

func newMockOperatorRepo() *mockOperatorRepo {
	return &mockOperatorRepo{operators: make(map[string]domain.Operator)}
}

func (m *mockOperatorRepo) Create(_ context.Context, o domain.Operator) error {
	m.operators[o.ID] = o
	return nil
}

func (m *mockOperatorRepo) GetByID(_ context.Context, id string) (domain.Operator, error) {
	o, ok := m.operators[id]
	if !ok {
		return domain.Operator{}, domain.ErrOperatorNotFound
	}
	return o, nil
}

func (m *mockOperatorRepo) ListByTenant(_ context.Context, tenantID string) ([]domain.Operator, error) {
	var out []domain.Operator
	for _, o := range m.operators {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	return out, nil
}

type mockCatalogRepo struct {
	products  map[string]domain.Product
	customers map[string]domain.Customer
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		products:  make(map[string]domain.Product),
		customers: make(map[string]domain.Customer),
	}
}

func (m *mockCatalogRepo) CreateProduct(_ context.Context, p domain.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockCatalogRepo) GetProduct(_ context.Context, tenantID, id string) (domain.Product, error) {
	p, ok := m.products[id]
	if !ok || p.TenantID != tenantID {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *mockCatalogRepo) ListProducts(_ context.Context, tenantID string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) UpdateProduct(_ context.Context, p domain.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockCatalogRepo) DeleteProduct(_ context.Context, tenantID, id string, _ time.Time) error {
	p, ok := m.products[id]
	if !ok || p.TenantID != tenantID {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockCatalogRepo) CreateCustomer(_ context.Context, c domain.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *mockCatalogRepo) GetCustomer(_ context.Context, tenantID, id string) (domain.Customer, error) {
	c, ok := m.customers[id]
	if !ok || c.TenantID != tenantID {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return c, nil
}

func (m *mockCatalogRepo) ListCustomers(_ context.Context, tenantID string) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, c := range m.customers {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) DeleteCustomer(_ context.Context, tenantID, id string, _ time.Time) error {
	c, ok := m.customers[id]
	if !ok || c.TenantID != tenantID {
		return domain.ErrCustomerNotFound
	}
	delete(m.customers, id)
	return nil
}

type mockRegisterRepo struct {
	registers map[string]domain.CashRegister
}

func newMockRegisterRepo() *mockRegisterRepo {
	return &mockRegisterRepo{registers: make(map[string]domain.CashRegister)}
}

func (m *mockRegisterRepo) Create(_ context.Context, r domain.CashRegister) error {
	m.registers[r.ID] = r
	return nil
}

func (m *mockRegisterRepo) GetByID(_ context.Context, tenantID, id string) (domain.CashRegister, error) {
	r, ok := m.registers[id]
	if !ok || r.TenantID != tenantID {
		return domain.CashRegister{}, domain.ErrRegisterNotFound
	}
	return r, nil
}

func (m *mockRegisterRepo) List(_ context.Context, tenantID string) ([]domain.CashRegister, error) {
	var out []domain.CashRegister
	for _, r := range m.registers {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRegisterRepo) Delete(_ context.Context, tenantID, id string, _ time.Time) error {
	r, ok := m.registers[id]
	if !ok || r.TenantID != tenantID {
		return domain.ErrRegisterNotFound
	}
	delete(m.registers, id)
	return nil
}

type mockSessionRepo struct {
	sessions map[string]domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]domain.Session)}
}

func (m *mockSessionRepo) Open(_ context.Context, session domain.Session) error {
	for _, s := range m.sessions {
		if s.RegisterID == session.RegisterID && s.ClosedAt == nil {
			return &domain.SessionAlreadyOpenError{RegisterID: session.RegisterID}
		}
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) OpenForRegister(_ context.Context, registerID string) (domain.Session, error) {
	for _, s := range m.sessions {
		if s.RegisterID == registerID && s.ClosedAt == nil {
			return s, nil
		}
	}
	return domain.Session{}, domain.ErrSessionNotFound
}

func (m *mockSessionRepo) Close(_ context.Context, sessionID string, closedAt time.Time, closingBalance decimal.Decimal) error {
	s, ok := m.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if s.ClosedAt != nil {
		return &domain.SessionClosedError{SessionID: sessionID}
	}
	s.ClosedAt = &closedAt
	s.ClosingBalance = &closingBalance
	s.UpdatedAt = closedAt
	m.sessions[sessionID] = s
	return nil
}

type mockSaleRepo struct {
	catalog  *mockCatalogRepo
	sales    map[string]domain.Sale
	items    map[string][]domain.SaleItem
	invoices map[string]domain.Invoice
	returns  map[string][]domain.Return
}

func newMockSaleRepo(catalog *mockCatalogRepo) *mockSaleRepo {
	return &mockSaleRepo{
		catalog:  catalog,
		sales:    make(map[string]domain.Sale),
		items:    make(map[string][]domain.SaleItem),
		invoices: make(map[string]domain.Invoice),
		returns:  make(map[string][]domain.Return),
	}
}

func (m *mockSaleRepo) decrementStock(items []domain.SaleItem) error {
	for _, item := range items {
		p := m.catalog.products[item.ProductID]
		if p.Stock < item.Quantity {
			return &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: p.Stock,
			}
		}
	}
	for _, item := range items {
		p := m.catalog.products[item.ProductID]
		p.Stock -= item.Quantity
		m.catalog.products[item.ProductID] = p
	}
	return nil
}

func (m *mockSaleRepo) CreateSale(_ context.Context, draft domain.SaleDraft) error {
	if err := m.decrementStock(draft.Items); err != nil {
		return err
	}
	m.sales[draft.Sale.ID] = draft.Sale
	m.items[draft.Sale.ID] = draft.Items
	if draft.Invoice != nil {
		m.invoices[draft.Sale.ID] = *draft.Invoice
	}
	m.returns[draft.Sale.ID] = append(m.returns[draft.Sale.ID], draft.Returns...)
	return nil
}

func (m *mockSaleRepo) UpdateSale(_ context.Context, update domain.SaleUpdate) error {
	sale, ok := m.sales[update.SaleID]
	if !ok || sale.TenantID != update.TenantID {
		return domain.ErrSaleNotFound
	}

	if update.NewItems != nil {
		for _, old := range m.items[update.SaleID] {
			p := m.catalog.products[old.ProductID]
			p.Stock += old.Quantity
			m.catalog.products[old.ProductID] = p
		}
		if err := m.decrementStock(update.NewItems); err != nil {
			return err
		}
		m.items[update.SaleID] = update.NewItems
		sale.Total = update.NewTotal
	}

	if update.Invoice != nil {
		m.invoices[update.SaleID] = *update.Invoice
	}
	m.returns[update.SaleID] = append(m.returns[update.SaleID], update.Returns...)

	sale.UpdatedAt = time.Now().UTC()
	m.sales[update.SaleID] = sale
	return nil
}

func (m *mockSaleRepo) GetByID(_ context.Context, tenantID, id string) (domain.Sale, error) {
	s, ok := m.sales[id]
	if !ok || s.TenantID != tenantID {
		return domain.Sale{}, domain.ErrSaleNotFound
	}
	return s, nil
}

func (m *mockSaleRepo) GetItems(_ context.Context, saleID string) ([]domain.SaleItem, error) {
	return m.items[saleID], nil
}

func (m *mockSaleRepo) GetItemByID(_ context.Context, tenantID, id string) (domain.SaleItem, error) {
	for saleID, items := range m.items {
		if m.sales[saleID].TenantID != tenantID {
			continue
		}
		for _, item := range items {
			if item.ID == id {
				return item, nil
			}
		}
	}
	return domain.SaleItem{}, domain.ErrSaleItemNotFound
}

func (m *mockSaleRepo) GetInvoice(_ context.Context, saleID string) (domain.Invoice, error) {
	inv, ok := m.invoices[saleID]
	if !ok {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return inv, nil
}

func (m *mockSaleRepo) ListReturns(_ context.Context, saleID string) ([]domain.Return, error) {
	return m.returns[saleID], nil
}

func (m *mockSaleRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Sale, error) {
	var out []domain.Sale
	for _, s := range m.sales {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

type mockSyncRepo struct {
	snapshot domain.TenantSnapshot
	since    *time.Time
}

func (m *mockSyncRepo) Snapshot(_ context.Context, _ string) (domain.TenantSnapshot, error) {
	return m.snapshot, nil
}

func (m *mockSyncRepo) ChangedSince(_ context.Context, _ string, since time.Time) (domain.TenantSnapshot, error) {
	m.since = &since
	return m.snapshot, nil
}

type publishedEvent struct {
	event   domain.Event
	payload domain.EventPayload
}

type mockPublisher struct {
	events []publishedEvent
}

func (m *mockPublisher) Publish(_ context.Context, e domain.Event, p domain.EventPayload) error {
	m.events = append(m.events, publishedEvent{event: e, payload: p})
	return nil
}

// stubValidator applies the domain transition table directly.
type stubValidator struct{}

func (stubValidator) Apply(_ context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	for _, tr := range domain.Transitions {
		if tr.Event == event && tr.Src == current {
			return tr.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}
