package tracking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Service manages weight samples and their analysis.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a tracking service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetClock overrides the service clock.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SampleInput is a new sample. A zero Date means today.
type SampleInput struct {
	Date     time.Time
	WeightKg float64
	Notes    string
}

// SamplePatch is a partial update; nil fields are left unchanged.
type SamplePatch struct {
	Date     *time.Time
	WeightKg *float64
	Notes    *string
}

func validWeight(w float64) error {
	if w <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidSample)
	}
	return nil
}

// Record stores a sample for userID, replacing any sample on the same date.
func (s *Service) Record(ctx context.Context, userID string, in SampleInput) (*Sample, error) {
	if err := validWeight(in.WeightKg); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	return s.repo.Upsert(ctx, &Sample{
		ID:        "wgt_" + uuid.New().String()[:22],
		UserID:    userID,
		Date:      Day(date),
		WeightKg:  in.WeightKg,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// RecordWeight stores today's weight for userID.
func (s *Service) RecordWeight(ctx context.Context, userID string, weightKg float64) error {
	_, err := s.Record(ctx, userID, SampleInput{WeightKg: weightKg})
	return err
}

// Get returns one of userID's samples.
func (s *Service) Get(ctx context.Context, userID, id string) (*Sample, error) {
	sample, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sample.UserID != userID {
		return nil, ErrSampleNotFound
	}
	return sample, nil
}

// Update applies patch to one of userID's samples.
func (s *Service) Update(ctx context.Context, userID, id string, patch SamplePatch) (*Sample, error) {
	sample, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.WeightKg != nil {
		if err := validWeight(*patch.WeightKg); err != nil {
			return nil, err
		}
		sample.WeightKg = *patch.WeightKg
	}
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, fmt.Errorf("%w: date is required", ErrInvalidSample)
		}
		sample.Date = Day(*patch.Date)
	}
	if patch.Notes != nil {
		sample.Notes = *patch.Notes
	}
	sample.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

// Delete removes one of userID's samples.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List returns userID's samples, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*Sample, error) {
	samples, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Date.After(samples[j].Date) })
	return samples, nil
}

// History returns userID's series with statistics, trend and projection.
func (s *Service) History(ctx context.Context, userID string) (*History, error) {
	samples, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading weight samples: %w", err)
	}
	return Analyze(samples), nil
}

// Forget removes every sample of userID.
func (s *Service) Forget(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}
