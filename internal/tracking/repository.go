package tracking

import (
	"context"
	"errors"
)

// ErrDuplicateDate is returned when moving a sample onto a date that already
// has one.
var ErrDuplicateDate = errors.New("a weight sample already exists for this date")

// Repository persists weight samples.
type Repository interface {
	// Upsert stores s, replacing the weight and notes of an existing sample on
	// the same (user, date). It returns the stored sample, which keeps the
	// existing ID and creation time on replacement.
	Upsert(ctx context.Context, s *Sample) (*Sample, error)

	// Get retrieves a sample by ID.
	Get(ctx context.Context, id string) (*Sample, error)

	// Update overwrites a sample. Returns ErrDuplicateDate on a date clash.
	Update(ctx context.Context, s *Sample) error

	// Delete removes a sample by ID.
	Delete(ctx context.Context, id string) error

	// ListByUser returns a user's samples in chronological order.
	ListByUser(ctx context.Context, userID string) ([]*Sample, error)

	// DeleteByUser removes every sample of a user.
	DeleteByUser(ctx context.Context, userID string) error
}
