package app

import (
	"context"
	"time"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

// SyncService serves full and incremental snapshots of tenant data to
// disconnected clients. Both calls also report the server time so the client
// can use it as its next sync point.
type SyncService struct {
	tenants domain.TenantRepository
	sync    domain.SyncRepository
}

// NewSyncService creates a service with the given repositories.
func NewSyncService(tenants domain.TenantRepository, sync domain.SyncRepository) *SyncService {
	return &SyncService{tenants: tenants, sync: sync}
}

// InitialData returns the full snapshot of a tenant's data. Operators may
// only read their own tenant unless they hold the staff flag.
func (s *SyncService) InitialData(ctx context.Context, requester domain.Operator, tenantID string) (domain.TenantSnapshot, time.Time, error) {
	if err := s.authorize(ctx, requester, tenantID); err != nil {
		return domain.TenantSnapshot{}, time.Time{}, err
	}

	snapshot, err := s.sync.Snapshot(ctx, tenantID)
	if err != nil {
		return domain.TenantSnapshot{}, time.Time{}, err
	}
	return snapshot, time.Now().UTC(), nil
}

// UpdatedData returns only rows created or updated after the given instant.
func (s *SyncService) UpdatedData(ctx context.Context, requester domain.Operator, tenantID string, since time.Time) (domain.TenantSnapshot, time.Time, error) {
	if err := s.authorize(ctx, requester, tenantID); err != nil {
		return domain.TenantSnapshot{}, time.Time{}, err
	}

	snapshot, err := s.sync.ChangedSince(ctx, tenantID, since)
	if err != nil {
		return domain.TenantSnapshot{}, time.Time{}, err
	}
	return snapshot, time.Now().UTC(), nil
}

func (s *SyncService) authorize(ctx context.Context, requester domain.Operator, tenantID string) error {
	if _, err := s.tenants.GetByID(ctx, tenantID); err != nil {
		return err
	}
	if requester.TenantID != tenantID && !requester.Staff {
		return &domain.ForbiddenError{Reason: "not authorized to access this tenant's data"}
	}
	return nil
}
