package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service records and lists generated reports.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a history service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record serialises input and result and appends them as a new entry.
func (s *Service) Record(ctx context.Context, userID string, kind Kind, input, result any) (*Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	in, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encoding input: %w", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}

	entry := &Entry{
		ID:        "rpt_" + uuid.New().String()[:22],
		UserID:    userID,
		Kind:      kind,
		Input:     in,
		Result:    out,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the newest entries of kind for userID.
func (s *Service) List(ctx context.Context, userID string, kind Kind, limit int) ([]*Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return s.repo.ListByUser(ctx, userID, kind, limit)
}

// Forget removes every entry of userID.
func (s *Service) Forget(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}
