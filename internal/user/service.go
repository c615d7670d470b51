package user

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
	"github.com/fitplan/fitplan/internal/events"
)

// WeightRecorder stores a dated weight sample.
type WeightRecorder interface {
	RecordWeight(ctx context.Context, userID string, weightKg float64) error
}

// ServiceConfig holds dependencies for the user service.
type ServiceConfig struct {
	Repository Repository
	// Weights receives a sample whenever the profile weight is set.
	Weights WeightRecorder
	// Publisher receives cycle prediction jobs. Optional.
	Publisher events.Publisher
	Logger    zerolog.Logger
}

// Service provides profile operations.
type Service struct {
	repo      Repository
	weights   WeightRecorder
	publisher events.Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a new user service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:      cfg.Repository,
		weights:   cfg.Weights,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

// SetClock overrides the service clock.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CreateInput is a new profile. ID is assigned by the caller, usually the
// auth service.
type CreateInput struct {
	ID             string
	Email          string
	FullName       string
	Gender         bm.Gender
	BirthDate      *time.Time
	Age            int
	HeightCm       float64
	WeightKg       float64
	Goal           bm.Goal
	Activity       bm.ActivityLevel
	TargetWeightKg *float64
	CycleDates     []time.Time
}

// Patch is a partial profile update. Nil fields are left unchanged.
type Patch struct {
	FullName        *string
	Gender          *bm.Gender
	BirthDate       *time.Time
	Age             *int
	HeightCm        *float64
	WeightKg        *float64
	Goal            *bm.Goal
	Activity        *bm.ActivityLevel
	TargetWeightKg  *float64
	CycleDates      *[]time.Time
	CycleLengthDays *int
	CycleDay        *int
}

func (p Patch) touchesCycle() bool {
	return p.CycleDates != nil || p.CycleLengthDays != nil || p.CycleDay != nil
}

// validate checks the fields every computation depends on.
func validate(u *User, today time.Time) error {
	switch {
	case !u.Gender.Valid():
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, u.Gender)
	case !u.Goal.Valid():
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidProfile, u.Goal)
	case !u.Activity.Valid():
		return fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfile, u.Activity)
	case u.HeightCm <= 0:
		return fmt.Errorf("%w: height must be positive", ErrInvalidProfile)
	case u.WeightKg <= 0:
		return fmt.Errorf("%w: weight must be positive", ErrInvalidProfile)
	case u.AgeOn(today) <= 0:
		return fmt.Errorf("%w: age must be positive", ErrInvalidProfile)
	case u.TargetWeightKg != nil && *u.TargetWeightKg <= 0:
		return fmt.Errorf("%w: target weight must be positive", ErrInvalidProfile)
	}
	for _, d := range u.CycleDates {
		if d.After(today) {
			return fmt.Errorf("%w: cycle dates cannot be in the future", ErrInvalidProfile)
		}
	}
	return nil
}

// Create stores a new profile, records its starting weight and queues a
// cycle prediction when cycle dates were given.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	now := s.now().UTC()
	activity := in.Activity
	if activity == "" {
		activity = bm.ActivitySedentary
	}

	u := &User{
		ID:             in.ID,
		Email:          in.Email,
		FullName:       in.FullName,
		Gender:         in.Gender,
		BirthDate:      in.BirthDate,
		Age:            in.Age,
		HeightCm:       in.HeightCm,
		WeightKg:       in.WeightKg,
		Goal:           in.Goal,
		Activity:       activity,
		TargetWeightKg: in.TargetWeightKg,
		CycleDates:     normalizeCycleDates(in.CycleDates),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validate(u, now); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.recordWeight(ctx, u)
	if u.TracksCycle() {
		s.requestPrediction(ctx, u.ID)
	}
	return u, nil
}

// Get retrieves a profile.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.Get(ctx, userID)
}

// Update applies patch. A new weight is also recorded as today's sample.
// Changing cycle data of a female user queues a new prediction; the
// predictor itself is never called inline.
func (s *Service) Update(ctx context.Context, userID string, patch Patch) (*User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Gender != nil {
		u.Gender = *patch.Gender
	}
	if patch.BirthDate != nil {
		u.BirthDate = patch.BirthDate
	}
	if patch.Age != nil {
		u.Age = *patch.Age
		if patch.BirthDate == nil {
			u.BirthDate = nil
		}
	}
	if patch.HeightCm != nil {
		u.HeightCm = *patch.HeightCm
	}
	if patch.WeightKg != nil {
		u.WeightKg = *patch.WeightKg
	}
	if patch.Goal != nil {
		u.Goal = *patch.Goal
	}
	if patch.Activity != nil {
		u.Activity = *patch.Activity
	}
	if patch.TargetWeightKg != nil {
		u.TargetWeightKg = patch.TargetWeightKg
	}
	if patch.CycleDates != nil {
		u.CycleDates = normalizeCycleDates(*patch.CycleDates)
	}
	if patch.CycleLengthDays != nil {
		u.CycleLengthDays = patch.CycleLengthDays
	}
	if patch.CycleDay != nil {
		u.CycleDay = patch.CycleDay
	}

	now := s.now().UTC()
	if err := validate(u, now); err != nil {
		return nil, err
	}
	u.UpdatedAt = now

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if patch.WeightKg != nil {
		s.recordWeight(ctx, u)
	}
	if patch.touchesCycle() && u.TracksCycle() {
		s.requestPrediction(ctx, u.ID)
	}
	return u, nil
}

// Delete removes a profile.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

// StorePrediction saves the outcome of a predictor call on the profile.
func (s *Service) StorePrediction(ctx context.Context, userID string, p cycle.Prediction) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	u.Prediction = &p
	u.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, u)
}

// PredictionRequest builds the predictor input for a profile.
func (s *Service) PredictionRequest(ctx context.Context, userID string) (cycle.PredictionRequest, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return cycle.PredictionRequest{}, err
	}
	return cycle.PredictionRequest{UserID: u.ID, CycleDates: u.CycleDates}, nil
}

func (s *Service) recordWeight(ctx context.Context, u *User) {
	if s.weights == nil {
		return
	}
	if err := s.weights.RecordWeight(ctx, u.ID, u.WeightKg); err != nil {
		s.logger.Warn().Err(err).Str("user_id", u.ID).Msg("failed to record weight sample")
	}
}

func (s *Service) requestPrediction(ctx context.Context, userID string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.NewJob(events.JobCyclePrediction, userID))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to queue cycle prediction")
		return
	}
	s.logger.Debug().Str("user_id", userID).Msg("cycle prediction queued")
}
