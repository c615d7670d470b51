package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/history"
)

// Stored is a plan read back from history.
type Stored struct {
	ID        string    `json:"id"`
	Input     Input     `json:"input"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// Service generates plans and keeps a history of them.
type Service struct {
	generator *Generator
	history   *history.Service
	logger    zerolog.Logger
}

// NewService creates a nutrition service.
func NewService(generator *Generator, hist *history.Service, logger zerolog.Logger) *Service {
	return &Service{generator: generator, history: hist, logger: logger}
}

// Generate builds a plan for userID and records it. A failure to record is
// logged and does not fail the request.
func (s *Service) Generate(ctx context.Context, userID string, in Input) (Plan, error) {
	plan, err := s.generator.Generate(in)
	if err != nil {
		return Plan{}, err
	}

	if _, unknown := ParseRestrictions(in.DietaryRestrictions); len(unknown) > 0 {
		s.logger.Debug().Strs("restrictions", unknown).Msg("ignoring unknown dietary restrictions")
	}

	if _, err := s.history.Record(ctx, userID, history.KindNutrition, in, plan); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to record nutrition plan history")
	}
	return plan, nil
}

// History returns the newest stored plans for userID.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Stored, error) {
	entries, err := s.history.List(ctx, userID, history.KindNutrition, limit)
	if err != nil {
		return nil, err
	}

	out := make([]Stored, 0, len(entries))
	for _, e := range entries {
		item := Stored{ID: e.ID, CreatedAt: e.CreatedAt}
		if err := json.Unmarshal(e.Input, &item.Input); err != nil {
			return nil, fmt.Errorf("decoding history input %s: %w", e.ID, err)
		}
		if err := json.Unmarshal(e.Result, &item.Plan); err != nil {
			return nil, fmt.Errorf("decoding history result %s: %w", e.ID, err)
		}
		out = append(out, item)
	}
	return out, nil
}
