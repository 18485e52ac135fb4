package core

import "context"

// Store is the data access contract over the region collection.
//
// Implementations return copies: callers may freely modify what they get
// back without affecting stored state.
type Store interface {
	// List returns the whole collection in storage order.
	List(ctx context.Context) ([]Region, error)

	// Get returns the region with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Region, error)

	// Create appends r as given. The caller assigns r.ID.
	Create(ctx context.Context, r Region) (Region, error)

	// Update replaces the region with r.ID wholesale, or returns ErrNotFound.
	Update(ctx context.Context, r Region) (Region, error)

	// Delete removes the region with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
