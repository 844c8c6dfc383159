package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

func TestSessionOpen_PersistsAndSetsOperator(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	session := domain.NewSession("sess-1", "reg-1", "op-1", decimal.RequireFromString("150.00"))
	if err := store.Sessions().Open(ctx, session); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	got, err := store.Sessions().GetByID(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsOpen() {
		t.Error("session should be open")
	}
	if !got.OpeningBalance.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("OpeningBalance = %s, want 150.00", got.OpeningBalance)
	}

	operator, err := store.Operators().GetByID(ctx, "op-1")
	if err != nil {
		t.Fatalf("loading operator: %v", err)
	}
	if operator.CurrentRegisterID == nil || *operator.CurrentRegisterID != "reg-1" {
		t.Errorf("CurrentRegisterID = %v, want reg-1", operator.CurrentRegisterID)
	}
}

func TestSessionOpen_SecondRejected(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Sessions().Open(ctx, domain.NewSession("sess-1", "reg-1", "op-1", decimal.Zero)); err != nil {
		t.Fatalf("first open: %v", err)
	}

	err := store.Sessions().Open(ctx, domain.NewSession("sess-2", "reg-1", "op-1", decimal.Zero))
	var openErr *domain.SessionAlreadyOpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected SessionAlreadyOpenError, got %v", err)
	}

	// The rejected open left nothing behind.
	if _, err := store.Sessions().GetByID(ctx, "sess-2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("sess-2 should not exist, got %v", err)
	}
}

func TestSessionOpen_AfterCloseAllowed(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Sessions().Open(ctx, domain.NewSession("sess-1", "reg-1", "op-1", decimal.Zero)); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Sessions().Close(ctx, "sess-1", time.Now().UTC(), decimal.NewFromInt(10)); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := store.Sessions().Open(ctx, domain.NewSession("sess-2", "reg-1", "op-1", decimal.Zero)); err != nil {
		t.Errorf("open after close should succeed: %v", err)
	}
}

func TestSessionClose_SetsFieldsAndClearsOperator(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Sessions().Open(ctx, domain.NewSession("sess-1", "reg-1", "op-1", decimal.NewFromInt(100))); err != nil {
		t.Fatalf("open: %v", err)
	}

	closedAt := time.Now().UTC()
	balance := decimal.RequireFromString("423.50")
	if err := store.Sessions().Close(ctx, "sess-1", closedAt, balance); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	got, err := store.Sessions().GetByID(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsOpen() {
		t.Error("session should be closed")
	}
	if got.ClosingBalance == nil || !got.ClosingBalance.Equal(balance) {
		t.Errorf("ClosingBalance = %v, want %s", got.ClosingBalance, balance)
	}

	operator, err := store.Operators().GetByID(ctx, "op-1")
	if err != nil {
		t.Fatalf("loading operator: %v", err)
	}
	if operator.CurrentRegisterID != nil {
		t.Errorf("CurrentRegisterID = %v, want nil after close", operator.CurrentRegisterID)
	}
}

func TestSessionClose_Twice(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Sessions().Open(ctx, domain.NewSession("sess-1", "reg-1", "op-1", decimal.Zero)); err != nil {
		t.Fatalf("open: %v", err)
	}

	first := decimal.NewFromInt(500)
	firstAt := time.Now().UTC()
	if err := store.Sessions().Close(ctx, "sess-1", firstAt, first); err != nil {
		t.Fatalf("first close: %v", err)
	}

	err := store.Sessions().Close(ctx, "sess-1", time.Now().UTC().Add(time.Hour), decimal.NewFromInt(999))
	var closedErr *domain.SessionClosedError
	if !errors.As(err, &closedErr) {
		t.Fatalf("expected SessionClosedError, got %v", err)
	}

	got, err := store.Sessions().GetByID(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.ClosingBalance.Equal(first) {
		t.Errorf("ClosingBalance = %s, want %s (first close must win)", got.ClosingBalance, first)
	}
}

func TestSessionClose_NotFound(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)

	err := store.Sessions().Close(context.Background(), "sess-missing", time.Now().UTC(), decimal.Zero)
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionClose_KeepsOperatorOnNewerRegister(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if err := store.Registers().Create(ctx, domain.NewCashRegister("reg-2", "t-1", "Caixa 02", domain.RegisterSatellite)); err != nil {
		t.Fatalf("creating register: %v", err)
	}

	// Operator opens on reg-1, closes it, then opens on reg-2. Closing the
	// first session again later must not clear the reg-2 assignment.
	if err := store.Sessions().Open(ctx, domain.NewSession("sess-1", "reg-1", "op-1", decimal.Zero)); err != nil {
		t.Fatalf("open sess-1: %v", err)
	}
	if err := store.Sessions().Close(ctx, "sess-1", time.Now().UTC(), decimal.Zero); err != nil {
		t.Fatalf("close sess-1: %v", err)
	}
	if err := store.Sessions().Open(ctx, domain.NewSession("sess-2", "reg-2", "op-1", decimal.Zero)); err != nil {
		t.Fatalf("open sess-2: %v", err)
	}

	operator, err := store.Operators().GetByID(ctx, "op-1")
	if err != nil {
		t.Fatalf("loading operator: %v", err)
	}
	if operator.CurrentRegisterID == nil || *operator.CurrentRegisterID != "reg-2" {
		t.Errorf("CurrentRegisterID = %v, want reg-2", operator.CurrentRegisterID)
	}
}

func TestOpenForRegister(t *testing.T) {
	store := newTestStore(t)
	seedBase(t, store)
	ctx := context.Background()

	if _, err := store.Sessions().OpenForRegister(ctx, "reg-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound with no sessions, got %v", err)
	}

	if err := store.Sessions().Open(ctx, domain.NewSession("sess-1", "reg-1", "op-1", decimal.Zero)); err != nil {
		t.Fatalf("open: %v", err)
	}

	got, err := store.Sessions().OpenForRegister(ctx, "reg-1")
	if err != nil {
		t.Fatalf("OpenForRegister failed: %v", err)
	}
	if got.ID != "sess-1" {
		t.Errorf("ID = %q, want sess-1", got.ID)
	}

	if err := store.Sessions().Close(ctx, "sess-1", time.Now().UTC(), decimal.Zero); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := store.Sessions().OpenForRegister(ctx, "reg-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after close, got %v", err)
	}
}
