package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/adapter/sqlite"
	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// newTestStore creates an in-memory SQLite store for testing.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seedBase creates tenant t-1 with register reg-1, operator op-1, customer
// cust-1, and products prod-1 (10 × 5.00) and prod-2 (3 × 20.00).
func seedBase(t *testing.T, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.Tenants().Create(ctx, domain.NewTenant("t-1", "Mercado Central", "11222333000181")); err != nil {
		t.Fatalf("seeding tenant: %v", err)
	}
	if err := store.Registers().Create(ctx, domain.NewCashRegister("reg-1", "t-1", "Caixa 01", domain.RegisterPrincipal)); err != nil {
		t.Fatalf("seeding register: %v", err)
	}
	if err := store.Operators().Create(ctx, domain.NewOperator("op-1", "t-1", "maria", false)); err != nil {
		t.Fatalf("seeding operator: %v", err)
	}
	if err := store.Catalog().CreateCustomer(ctx, domain.NewCustomer("cust-1", "t-1", "Ana Lima", "12345678901")); err != nil {
		t.Fatalf("seeding customer: %v", err)
	}
	if err := store.Catalog().CreateProduct(ctx, domain.NewProduct("prod-1", "t-1", "Arroz 5kg", "", decimal.RequireFromString("5.00"), 10)); err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	if err := store.Catalog().CreateProduct(ctx, domain.NewProduct("prod-2", "t-1", "Azeite 500ml", "", decimal.RequireFromString("20.00"), 3)); err != nil {
		t.Fatalf("seeding product: %v", err)
	}
}

func stockOf(t *testing.T, store *sqlite.Store, productID string) int64 {
	t.Helper()
	p, err := store.Catalog().GetProduct(context.Background(), "t-1", productID)
	if err != nil {
		t.Fatalf("product %q: %v", productID, err)
	}
	return p.Stock
}

func TestTenantCreate_And_GetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tenant := domain.NewTenant("t-1", "Mercado Central", "11222333000181")
	if err := store.Tenants().Create(ctx, tenant); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Tenants().GetByID(ctx, "t-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Mercado Central" {
		t.Errorf("Name = %q, want %q", got.Name, "Mercado Central")
	}
	if got.CNPJ != "11222333000181" {
		t.Errorf("CNPJ = %q, want %q", got.CNPJ, "11222333000181")
	}
	if !got.Active {
		t.Error("tenant should be active")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
}

func TestTenantCreate_DuplicateCNPJ(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Tenants().Create(ctx, domain.NewTenant("t-1", "Loja A", "11222333000181")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := store.Tenants().Create(ctx, domain.NewTenant("t-2", "Loja B", "11222333000181"))
	var dupErr *domain.DuplicateError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
}

func TestTenantGetByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Tenants().GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestOperatorListByTenant_SkipsInactive(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	gone := domain.NewOperator("op-2", "t-1", "desligado", false)
	gone.Active = false
	if err := store.Operators().Create(ctx, gone); err != nil {
		t.Fatalf("creating operator: %v", err)
	}

	operators, err := store.Operators().ListByTenant(ctx, "t-1")
	if err != nil {
		t.Fatalf("ListByTenant failed: %v", err)
	}
	if len(operators) != 1 || operators[0].ID != "op-1" {
		t.Errorf("got %+v, want only op-1", operators)
	}
}

func TestProductGet_CrossTenant(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)

	_, err := store.Catalog().GetProduct(context.Background(), "t-other", "prod-1")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductDelete_HidesFromLookups(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Catalog().DeleteProduct(ctx, "t-1", "prod-1", time.Now().UTC()); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}

	if _, err := store.Catalog().GetProduct(ctx, "t-1", "prod-1"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound after delete, got %v", err)
	}

	products, err := store.Catalog().ListProducts(ctx, "t-1")
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != "prod-2" {
		t.Errorf("got %+v, want only prod-2", products)
	}

	if err := store.Catalog().DeleteProduct(ctx, "t-1", "prod-1", time.Now().UTC()); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func TestProductDelete_CrossTenant(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)

	err := store.Catalog().DeleteProduct(context.Background(), "t-other", "prod-1", time.Now().UTC())
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCustomerDelete_HidesFromLookups(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Catalog().DeleteCustomer(ctx, "t-1", "cust-1", time.Now().UTC()); err != nil {
		t.Fatalf("DeleteCustomer failed: %v", err)
	}

	if _, err := store.Catalog().GetCustomer(ctx, "t-1", "cust-1"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound after delete, got %v", err)
	}

	customers, err := store.Catalog().ListCustomers(ctx, "t-1")
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(customers) != 0 {
		t.Errorf("got %d customers after delete, want 0", len(customers))
	}
}

func TestRegisterDelete_HidesFromLookups(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Registers().Delete(ctx, "t-1", "reg-1", time.Now().UTC()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Registers().GetByID(ctx, "t-1", "reg-1"); !errors.Is(err, domain.ErrRegisterNotFound) {
		t.Errorf("expected ErrRegisterNotFound after delete, got %v", err)
	}

	if err := store.Registers().Delete(ctx, "t-1", "reg-1", time.Now().UTC()); !errors.Is(err, domain.ErrRegisterNotFound) {
		t.Errorf("expected ErrRegisterNotFound on second delete, got %v", err)
	}
}

func TestCustomerCreate_DuplicateCPF(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	err := store.Catalog().CreateCustomer(ctx, domain.NewCustomer("cust-2", "t-1", "Homônima", "12345678901"))
	var dupErr *domain.DuplicateError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
}

func TestCustomerCreate_SameCPFOtherTenant(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Tenants().Create(ctx, domain.NewTenant("t-2", "Loja B", "99888777000166")); err != nil {
		t.Fatalf("creating tenant: %v", err)
	}

	// CPF uniqueness is per tenant, not global.
	if err := store.Catalog().CreateCustomer(ctx, domain.NewCustomer("cust-9", "t-2", "Ana Lima", "12345678901")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegisterCreate_DuplicateNamePerTenant(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	err := store.Registers().Create(ctx, domain.NewCashRegister("reg-2", "t-1", "Caixa 01", domain.RegisterSatellite))
	var dupErr *domain.DuplicateError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}

	if err := store.Tenants().Create(ctx, domain.NewTenant("t-2", "Loja B", "99888777000166")); err != nil {
		t.Fatalf("creating tenant: %v", err)
	}
	if err := store.Registers().Create(ctx, domain.NewCashRegister("reg-3", "t-2", "Caixa 01", domain.RegisterPrincipal)); err != nil {
		t.Errorf("same name in another tenant should be allowed: %v", err)
	}
}
