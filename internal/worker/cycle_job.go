package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/cycle"
	"github.com/fitplan/fitplan/internal/events"
	"github.com/fitplan/fitplan/internal/user"
)

// ProfileStore is the part of the profile service the prediction job uses.
type ProfileStore interface {
	PredictionRequest(ctx context.Context, userID string) (cycle.PredictionRequest, error)
	StorePrediction(ctx context.Context, userID string, p cycle.Prediction) error
}

// CyclePredictionJob refreshes the stored cycle prediction of one user.
type CyclePredictionJob struct {
	profiles  ProfileStore
	predictor cycle.Predictor
	logger    zerolog.Logger
}

// NewCyclePredictionJob creates the job.
func NewCyclePredictionJob(profiles ProfileStore, predictor cycle.Predictor, logger zerolog.Logger) *CyclePredictionJob {
	return &CyclePredictionJob{profiles: profiles, predictor: predictor, logger: logger}
}

// Handle implements Handler. Jobs for deleted users or users without cycle
// dates finish without calling the predictor. A failed prediction is still
// stored, so the profile shows the error.
func (j *CyclePredictionJob) Handle(ctx context.Context, job events.Job) error {
	if job.UserID == "" {
		j.logger.Warn().Msg("cycle prediction job without user id")
		return nil
	}

	req, err := j.profiles.PredictionRequest(ctx, job.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			j.logger.Debug().Str("user_id", job.UserID).Msg("user gone, skipping prediction")
			return nil
		}
		return fmt.Errorf("loading profile: %w", err)
	}
	if len(req.CycleDates) == 0 {
		return nil
	}

	prediction, err := j.predictor.Predict(ctx, req)
	if err != nil {
		return fmt.Errorf("predicting cycle: %w", err)
	}
	if prediction.Failed() {
		j.logger.Warn().
			Str("user_id", job.UserID).
			Str("error", prediction.Error.Error).
			Int("status", prediction.Error.Status).
			Msg("cycle predictor failed")
	}

	if err := j.profiles.StorePrediction(ctx, job.UserID, prediction); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("storing prediction: %w", err)
	}
	return nil
}
