package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a register's session slot.
type Status string

const (
	StatusNoSession Status = "no_session"
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
)

// Event represents an action that triggers a state transition.
type Event string

const (
	EventOpenSession  Event = "open_session"
	EventCloseSession Event = "close_session"

	// EventSaleRecorded is published when a sale commits; it is not a
	// session transition.
	EventSaleRecorded Event = "sale_recorded"
)

// Transition defines a valid state change: an event moves a session slot from
// Src to Dst.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions defines all valid state changes in the session lifecycle.
// Closed is terminal: no event reopens a closed session.
// This is domain knowledge consumed by the FSM adapter.
var Transitions = []Transition{
	{Event: EventOpenSession, Src: StatusNoSession, Dst: StatusOpen},
	{Event: EventCloseSession, Src: StatusOpen, Dst: StatusClosed},
}

// Session is one open/close cycle of a cash register by one operator.
// Open ⇔ ClosedAt is nil. Created by open, mutated only by close.
type Session struct {
	ID             string
	RegisterID     string
	OperatorID     string
	OpenedAt       time.Time
	ClosedAt       *time.Time
	OpeningBalance decimal.Decimal
	ClosingBalance *decimal.Decimal
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewSession creates an open session on the given register.
func NewSession(id, registerID, operatorID string, openingBalance decimal.Decimal) Session {
	now := time.Now().UTC()
	return Session{
		ID:             id,
		RegisterID:     registerID,
		OperatorID:     operatorID,
		OpenedAt:       now,
		OpeningBalance: openingBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsOpen reports whether the session has not been closed yet.
func (s Session) IsOpen() bool {
	return s.ClosedAt == nil
}

// Status returns the lifecycle state of the session.
func (s Session) Status() Status {
	if s.IsOpen() {
		return StatusOpen
	}
	return StatusClosed
}
