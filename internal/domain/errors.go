package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple not-found conditions. "Not found" covers both a
// missing row and a row outside the requester's tenant scope; callers never
// learn which.
var (
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrOperatorNotFound = errors.New("operator not found")
	ErrRegisterNotFound = errors.New("cash register not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrSaleItemNotFound = errors.New("sale item not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")

	ErrRegisterInactive = errors.New("cash register is inactive")
)

// ValidationError reports malformed or missing input before any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ForbiddenError reports a privilege or ownership mismatch.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// SessionAlreadyOpenError is returned when opening a session on a register
// that already has one open.
type SessionAlreadyOpenError struct {
	RegisterID string
}

func (e *SessionAlreadyOpenError) Error() string {
	return fmt.Sprintf("register %q already has an open session", e.RegisterID)
}

// SessionClosedError is returned when an operation requires an open session.
type SessionClosedError struct {
	SessionID string
}

func (e *SessionClosedError) Error() string {
	return fmt.Sprintf("session %q is already closed", e.SessionID)
}

// InsufficientStockError is returned when a sale would drive a product's
// stock negative. The whole sale is rejected, nothing is written.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %q has %d in stock, sale needs %d", e.ProductID, e.Available, e.Requested)
}

// DuplicateError reports a per-tenant uniqueness violation.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// TransitionError is returned when a session state transition is not allowed.
type TransitionError struct {
	Event   Event
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}
