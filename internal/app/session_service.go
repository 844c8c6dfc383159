package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// SessionService orchestrates the cash-register session lifecycle.
type SessionService struct {
	registers domain.RegisterRepository
	sessions  domain.SessionRepository
	publisher domain.EventPublisher
	validator domain.TransitionValidator
}

// NewSessionService creates a service with the given adapters.
func NewSessionService(registers domain.RegisterRepository, sessions domain.SessionRepository, publisher domain.EventPublisher, validator domain.TransitionValidator) *SessionService {
	return &SessionService{
		registers: registers,
		sessions:  sessions,
		publisher: publisher,
		validator: validator,
	}
}

// Open opens a session on the given register for the requesting operator.
// The register must belong to the operator's tenant and be active, and the
// register must not already have an open session; the uniqueness check runs
// inside the store's open transaction, so concurrent opens cannot both pass.
func (s *SessionService) Open(ctx context.Context, requester domain.Operator, registerID string, openingBalance decimal.Decimal) (domain.Session, error) {
	register, err := s.registers.GetByID(ctx, requester.TenantID, registerID)
	if err != nil {
		return domain.Session{}, err
	}
	if !register.Active {
		return domain.Session{}, domain.ErrRegisterInactive
	}

	session := domain.NewSession(newID(), register.ID, requester.ID, openingBalance)

	if err := s.sessions.Open(ctx, session); err != nil {
		return domain.Session{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventOpenSession, domain.EventPayload{
		TenantID:   register.TenantID,
		RegisterID: register.ID,
		SessionID:  session.ID,
		OperatorID: requester.ID,
		Amount:     openingBalance,
	}); err != nil {
		return domain.Session{}, fmt.Errorf("publishing session open event: %w", err)
	}

	return session, nil
}

// Close closes an open session. Only the session's own operator, or a staff
// operator of the same tenant, may close it. Closing is one-way: a second
// attempt reports SessionClosedError and leaves the first close untouched.
func (s *SessionService) Close(ctx context.Context, requester domain.Operator, sessionID string, closingBalance *decimal.Decimal) (domain.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}

	// Tenant scoping: the session's register must resolve within the
	// requester's tenant. Cross-tenant sessions look like missing ones.
	register, err := s.registers.GetByID(ctx, requester.TenantID, session.RegisterID)
	if err != nil {
		if errors.Is(err, domain.ErrRegisterNotFound) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, err
	}

	if session.OperatorID != requester.ID && !requester.Staff {
		return domain.Session{}, &domain.ForbiddenError{Reason: "not authorized to close this session"}
	}

	if closingBalance == nil {
		return domain.Session{}, &domain.ValidationError{Field: "saldo_final", Reason: "closing balance is required"}
	}

	if _, err := s.validator.Apply(ctx, session.Status(), domain.EventCloseSession); err != nil {
		var trErr *domain.TransitionError
		if errors.As(err, &trErr) {
			return domain.Session{}, &domain.SessionClosedError{SessionID: session.ID}
		}
		return domain.Session{}, err
	}

	closedAt := time.Now().UTC()
	if err := s.sessions.Close(ctx, session.ID, closedAt, *closingBalance); err != nil {
		return domain.Session{}, err
	}

	closed, err := s.sessions.GetByID(ctx, session.ID)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventCloseSession, domain.EventPayload{
		TenantID:   register.TenantID,
		RegisterID: register.ID,
		SessionID:  closed.ID,
		OperatorID: requester.ID,
		Amount:     *closingBalance,
	}); err != nil {
		return domain.Session{}, fmt.Errorf("publishing session close event: %w", err)
	}

	return closed, nil
}

// Get returns a session visible to the requester's tenant.
func (s *SessionService) Get(ctx context.Context, requester domain.Operator, sessionID string) (domain.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	if _, err := s.registers.GetByID(ctx, requester.TenantID, session.RegisterID); err != nil {
		if errors.Is(err, domain.ErrRegisterNotFound) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, err
	}
	return session, nil
}
