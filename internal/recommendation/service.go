package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/history"
)

// Stored is a report read back from history.
type Stored struct {
	ID        string    `json:"id"`
	Input     Input     `json:"input"`
	Report    Report    `json:"report"`
	CreatedAt time.Time `json:"created_at"`
}

// Service composes reports and keeps a history of them.
type Service struct {
	composer *Composer
	history  *history.Service
	logger   zerolog.Logger
}

// NewService creates a recommendation service.
func NewService(composer *Composer, hist *history.Service, logger zerolog.Logger) *Service {
	return &Service{composer: composer, history: hist, logger: logger}
}

// Generate composes a report for userID and records it. A failure to record
// is logged and does not fail the request.
func (s *Service) Generate(ctx context.Context, userID string, in Input) (Report, error) {
	report, err := s.composer.Compose(in)
	if err != nil {
		return Report{}, err
	}

	if _, err := s.history.Record(ctx, userID, history.KindRecommendation, in, report); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to record recommendation history")
	}
	return report, nil
}

// History returns the newest stored reports for userID.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Stored, error) {
	entries, err := s.history.List(ctx, userID, history.KindRecommendation, limit)
	if err != nil {
		return nil, err
	}

	out := make([]Stored, 0, len(entries))
	for _, e := range entries {
		item := Stored{ID: e.ID, CreatedAt: e.CreatedAt}
		if err := json.Unmarshal(e.Input, &item.Input); err != nil {
			return nil, fmt.Errorf("decoding history input %s: %w", e.ID, err)
		}
		if err := json.Unmarshal(e.Result, &item.Report); err != nil {
			return nil, fmt.Errorf("decoding history result %s: %w", e.ID, err)
		}
		out = append(out, item)
	}
	return out, nil
}
