package core

// bulk.go implements the bulk delete fan-out.
//
// Each id gets its own delete, run with bounded parallelism through an
// errgroup. Workers never return an error to the group, so one failure
// cannot cancel or hide its siblings; every outcome lands in a slot indexed
// by request position and is reported in that order.

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/regions/internal/logging"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DeleteFailure is a single failed delete within a bulk request.
type DeleteFailure struct {
	ID  string
	Err error
}

// BulkDeleteResult reports the outcome of every id in a bulk delete.
type BulkDeleteResult struct {
	Requested int
	Deleted   []string
	Failed    []DeleteFailure
}

// Err returns nil when every delete succeeded, otherwise a *BulkDeleteError.
func (r BulkDeleteResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}

	var combined error
	for _, f := range r.Failed {
		combined = multierr.Append(combined, fmt.Errorf("delete region %s: %w", f.ID, f.Err))
	}
	return &BulkDeleteError{
		Requested: r.Requested,
		Failed:    len(r.Failed),
		cause:     combined,
	}
}

// BulkDeleteError aggregates the failures of a partially applied bulk delete.
// errors.Is sees through it to the individual causes.
type BulkDeleteError struct {
	Requested int
	Failed    int
	cause     error
}

func (e *BulkDeleteError) Error() string {
	return fmt.Sprintf("bulk delete: %d of %d deletes failed: %v", e.Failed, e.Requested, e.cause)
}

// Unwrap returns the individual failures.
func (e *BulkDeleteError) Unwrap() []error {
	return multierr.Errors(e.cause)
}

// DeleteMany deletes every id, collecting one outcome per distinct id.
// Repeated ids are collapsed to their first occurrence. Deletes that succeed
// stay applied even when siblings fail.
func (s *Service) DeleteMany(ctx context.Context, ids []string) BulkDeleteResult {
	ids = uniqueIDs(ids)
	outcomes := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(s.bulkConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			outcomes[i] = s.store.Delete(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	result := BulkDeleteResult{Requested: len(ids)}
	for i, err := range outcomes {
		if err != nil {
			result.Failed = append(result.Failed, DeleteFailure{ID: ids[i], Err: err})
			continue
		}
		result.Deleted = append(result.Deleted, ids[i])
	}

	logger := logging.WithFields(ctx, RequestMetaFromContext(ctx).logArgs()...)
	if len(result.Failed) > 0 {
		logger.Warn("bulk delete partially failed",
			"requested", result.Requested,
			"deleted", len(result.Deleted),
			"failed", len(result.Failed),
			"error", result.Err(),
		)
	} else {
		logger.Info("bulk delete completed", "deleted", len(result.Deleted))
	}

	return result
}

// uniqueIDs drops repeated ids, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
