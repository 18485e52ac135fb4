package core

// memstore.go implements Store over an in-process slice.
//
// The collection keeps storage order: creates append, updates replace in
// place, deletes splice. Every value crossing the API boundary is deep-copied
// so the slice can only change through the store's own methods.

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is a mutex-guarded, in-memory Store.
// Its lifetime is the lifetime of the process that owns it.
type MemoryStore struct {
	mu      sync.RWMutex
	regions []Region
}

// NewMemoryStore creates a store holding a copy of seed.
// Returns an error if the seed contains an empty or repeated id.
func NewMemoryStore(seed []Region) (*MemoryStore, error) {
	seen := make(map[string]bool, len(seed))
	for i, r := range seed {
		if r.ID == "" {
			return nil, fmt.Errorf("seed region %d: %w", i, ErrMissingID)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("seed region %d (%s): %w", i, r.ID, ErrDuplicateID)
		}
		seen[r.ID] = true
	}

	return &MemoryStore{regions: cloneRegions(seed)}, nil
}

// List returns every region in storage order.
func (m *MemoryStore) List(ctx context.Context) ([]Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneRegions(m.regions), nil
}

// Get returns the region with the given id.
func (m *MemoryStore) Get(ctx context.Context, id string) (Region, error) {
	if err := ctx.Err(); err != nil {
		return Region{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return Region{}, ErrNotFound
	}
	return m.regions[i].Clone(), nil
}

// Create appends r. The id must be non-empty and unused.
func (m *MemoryStore) Create(ctx context.Context, r Region) (Region, error) {
	if err := ctx.Err(); err != nil {
		return Region{}, err
	}
	if r.ID == "" {
		return Region{}, ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(r.ID) >= 0 {
		return Region{}, ErrDuplicateID
	}

	m.regions = append(m.regions, r.Clone())
	return r.Clone(), nil
}

// Update replaces the stored region sharing r's id.
func (m *MemoryStore) Update(ctx context.Context, r Region) (Region, error) {
	if err := ctx.Err(); err != nil {
		return Region{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(r.ID)
	if i < 0 {
		return Region{}, ErrNotFound
	}

	m.regions[i] = r.Clone()
	return r.Clone(), nil
}

// Delete removes the region with the given id.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	m.regions = append(m.regions[:i], m.regions[i+1:]...)
	return nil
}

// Len returns the number of stored regions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.regions)
}

// indexOf returns the position of id, or -1. Caller holds mu.
func (m *MemoryStore) indexOf(id string) int {
	for i := range m.regions {
		if m.regions[i].ID == id {
			return i
		}
	}
	return -1
}
