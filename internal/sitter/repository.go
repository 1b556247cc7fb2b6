package sitter

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrSitterNotFound is returned when updating a sitter that does not exist.
var ErrSitterNotFound = errors.New("sitter not found")

// Repository defines the record-store boundary for the search engine.
// Reads fetch the full candidate set; writes update coordinates for one
// record by id. No transactional guarantees are assumed across writes.
type Repository interface {
	// ListAll retrieves every sitter record. Implementations must return
	// copies that callers may mutate per-request.
	ListAll(ctx context.Context) ([]*Sitter, error)

	// UpdateCoordinates persists resolved coordinates for one sitter.
	// Used by coordinate backfill as a best-effort cache fill.
	UpdateCoordinates(ctx context.Context, id int64, lat, lng float64) error
}

// InMemoryRepository is an in-memory implementation of Repository.
// Used for testing and development. Thread-safe via RWMutex.
type InMemoryRepository struct {
	mu      sync.RWMutex
	sitters map[int64]*Sitter
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		sitters: make(map[int64]*Sitter),
	}
}

// Seed inserts or replaces sitter records.
func (r *InMemoryRepository) Seed(sitters ...*Sitter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range sitters {
		r.sitters[s.ID] = s.Clone()
	}
}

// ListAll returns deep copies of all records ordered by id so output is
// deterministic run-to-run.
func (r *InMemoryRepository) ListAll(_ context.Context) ([]*Sitter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Sitter, 0, len(r.sitters))
	for _, s := range r.sitters {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateCoordinates sets the stored coordinates for one sitter.
func (r *InMemoryRepository) UpdateCoordinates(_ context.Context, id int64, lat, lng float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sitters[id]
	if !ok {
		return ErrSitterNotFound
	}
	s.Latitude = &lat
	s.Longitude = &lng
	return nil
}
