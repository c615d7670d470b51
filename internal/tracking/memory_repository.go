package tracking

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository keeps samples in process memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	samples map[string]*Sample
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{samples: make(map[string]*Sample)}
}

func (r *InMemoryRepository) findByDate(userID string, s *Sample) *Sample {
	day := Day(s.Date)
	for _, existing := range r.samples {
		if existing.UserID == userID && existing.Date.Equal(day) {
			return existing
		}
	}
	return nil
}

// Upsert stores s or replaces the sample on the same day.
func (r *InMemoryRepository) Upsert(_ context.Context, s *Sample) (*Sample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findByDate(s.UserID, s); existing != nil {
		existing.WeightKg = s.WeightKg
		existing.Notes = s.Notes
		existing.UpdatedAt = s.UpdatedAt
		cpy := *existing
		return &cpy, nil
	}

	cpy := *s
	cpy.Date = Day(s.Date)
	r.samples[cpy.ID] = &cpy
	out := cpy
	return &out, nil
}

// Get returns a copy of the sample.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Sample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.samples[id]
	if !ok {
		return nil, ErrSampleNotFound
	}
	cpy := *s
	return &cpy, nil
}

// Update overwrites an existing sample.
func (r *InMemoryRepository) Update(_ context.Context, s *Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.samples[s.ID]; !ok {
		return ErrSampleNotFound
	}
	if clash := r.findByDate(s.UserID, s); clash != nil && clash.ID != s.ID {
		return ErrDuplicateDate
	}

	cpy := *s
	cpy.Date = Day(s.Date)
	r.samples[s.ID] = &cpy
	return nil
}

// Delete removes a sample.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.samples[id]; !ok {
		return ErrSampleNotFound
	}
	delete(r.samples, id)
	return nil
}

// ListByUser returns copies of a user's samples, oldest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Sample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Sample
	for _, s := range r.samples {
		if s.UserID == userID {
			cpy := *s
			out = append(out, &cpy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// DeleteByUser drops every sample of userID.
func (r *InMemoryRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.samples {
		if s.UserID == userID {
			delete(r.samples, id)
		}
	}
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
