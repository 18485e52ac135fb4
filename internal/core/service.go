package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/regions/internal/logging"
)

// DefaultBulkDeleteConcurrency bounds the deletes DeleteMany runs at once.
const DefaultBulkDeleteConcurrency = 8

// Service provides region operations on top of a Store.
type Service struct {
	store           Store
	bulkConcurrency int
}

// NewService creates a Service over store.
// A non-positive bulkConcurrency falls back to DefaultBulkDeleteConcurrency.
func NewService(store Store, bulkConcurrency int) *Service {
	if bulkConcurrency <= 0 {
		bulkConcurrency = DefaultBulkDeleteConcurrency
	}
	return &Service{
		store:           store,
		bulkConcurrency: bulkConcurrency,
	}
}

// List returns the full collection in storage order.
func (s *Service) List(ctx context.Context) ([]Region, error) {
	regions, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	logging.FromContext(ctx).Debug("regions listed", "count", len(regions))
	return regions, nil
}

// Get returns a single region by id.
func (s *Service) Get(ctx context.Context, id string) (Region, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return Region{}, fmt.Errorf("get region %s: %w", id, err)
	}
	return r, nil
}

// Create stores r under the id the caller assigned.
func (s *Service) Create(ctx context.Context, r Region) (Region, error) {
	created, err := s.store.Create(ctx, r)
	if err != nil {
		return Region{}, fmt.Errorf("create region %s: %w", r.ID, err)
	}

	s.logMutation(ctx, "region created", created.ID, "name", created.Name)
	return created, nil
}

// Update replaces the region that shares r's id.
func (s *Service) Update(ctx context.Context, r Region) (Region, error) {
	updated, err := s.store.Update(ctx, r)
	if err != nil {
		return Region{}, fmt.Errorf("update region %s: %w", r.ID, err)
	}

	s.logMutation(ctx, "region updated", updated.ID, "name", updated.Name)
	return updated, nil
}

// Delete removes the region with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete region %s: %w", id, err)
	}

	s.logMutation(ctx, "region deleted", id)
	return nil
}

// logMutation records a successful write with the caller's request metadata.
func (s *Service) logMutation(ctx context.Context, msg, id string, args ...any) {
	logger := logging.WithFields(ctx, RequestMetaFromContext(ctx).logArgs()...).With("region_id", id)
	logger.Info(msg, args...)
}
