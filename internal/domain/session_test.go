package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

func TestNewSession(t *testing.T) {
	before := time.Now().UTC()
	session := domain.NewSession("sess-1", "reg-1", "op-1", decimal.NewFromInt(100))
	after := time.Now().UTC()

	if session.ID != "sess-1" {
		t.Errorf("ID = %q, want %q", session.ID, "sess-1")
	}
	if session.RegisterID != "reg-1" {
		t.Errorf("RegisterID = %q, want %q", session.RegisterID, "reg-1")
	}
	if session.OperatorID != "op-1" {
		t.Errorf("OperatorID = %q, want %q", session.OperatorID, "op-1")
	}
	if !session.OpeningBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("OpeningBalance = %s, want 100", session.OpeningBalance)
	}
	if session.ClosedAt != nil {
		t.Error("ClosedAt should be nil on a new session")
	}
	if session.ClosingBalance != nil {
		t.Error("ClosingBalance should be nil on a new session")
	}
	if session.OpenedAt.Before(before) || session.OpenedAt.After(after) {
		t.Errorf("OpenedAt = %v, want between %v and %v", session.OpenedAt, before, after)
	}
	if session.UpdatedAt != session.CreatedAt {
		t.Error("UpdatedAt should equal CreatedAt on a new session")
	}
}

func TestSession_IsOpen(t *testing.T) {
	session := domain.NewSession("sess-1", "reg-1", "op-1", decimal.Zero)
	if !session.IsOpen() {
		t.Error("new session should be open")
	}
	if session.Status() != domain.StatusOpen {
		t.Errorf("Status = %q, want %q", session.Status(), domain.StatusOpen)
	}

	closedAt := time.Now().UTC()
	session.ClosedAt = &closedAt
	if session.IsOpen() {
		t.Error("session with ClosedAt should not be open")
	}
	if session.Status() != domain.StatusClosed {
		t.Errorf("Status = %q, want %q", session.Status(), domain.StatusClosed)
	}
}

func TestTransitions_ClosedIsTerminal(t *testing.T) {
	for _, tr := range domain.Transitions {
		if tr.Src == domain.StatusClosed {
			t.Errorf("transition %q leaves the closed state; closed must be terminal", tr.Event)
		}
	}
}

func TestTransitions_OpenAndCloseDefined(t *testing.T) {
	events := []domain.Event{
		domain.EventOpenSession,
		domain.EventCloseSession,
	}

	for _, event := range events {
		found := false
		for _, tr := range domain.Transitions {
			if tr.Event == event {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("event %q has no transition defined", event)
		}
	}
}
