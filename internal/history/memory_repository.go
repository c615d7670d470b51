package history

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository keeps entries in process memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Append stores a copy of e.
func (r *InMemoryRepository) Append(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *e
	r.entries = append(r.entries, &cpy)
	return nil
}

// ListByUser returns copies of the newest matching entries.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string, kind Kind, limit int) ([]*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Entry
	for _, e := range r.entries {
		if e.UserID == userID && e.Kind == kind {
			cpy := *e
			out = append(out, &cpy)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit = clampLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteByUser drops every entry of userID.
func (r *InMemoryRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
