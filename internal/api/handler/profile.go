package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/auth"
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
	"github.com/fitplan/fitplan/internal/user"
)

// Forgetter removes everything a component stores about a user.
type Forgetter interface {
	Forget(ctx context.Context, userID string) error
}

// ProfileConfig holds dependencies for ProfileHandler.
type ProfileConfig struct {
	Users  *user.Service
	Auth   *auth.Service
	Policy bm.CaloriePolicy
	// Forget is run on account deletion, e.g. weight samples and report
	// history.
	Forget []Forgetter
	Logger zerolog.Logger
}

// ProfileHandler handles the caller's profile.
type ProfileHandler struct {
	users  *user.Service
	auth   *auth.Service
	policy bm.CaloriePolicy
	forget []Forgetter
	logger zerolog.Logger
	now    func() time.Time
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(cfg ProfileConfig) *ProfileHandler {
	return &ProfileHandler{
		users:  cfg.Users,
		auth:   cfg.Auth,
		policy: cfg.Policy,
		forget: cfg.Forget,
		logger: cfg.Logger,
		now:    time.Now,
	}
}

// GetProfile handles GET /v1/me/profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, profileResponse(u, h.now(), h.policy))
}

// UpdateProfile handles PATCH /v1/me/profile.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.ProfilePatch
	if !decodeJSON(w, r, &req, false) {
		return
	}
	patch, err := userPatch(req)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	u, err := h.users.Update(r.Context(), userID, patch)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, profileResponse(u, h.now(), h.policy))
}

// DeleteProfile handles DELETE /v1/me/profile. It deletes the whole
// account: profile, weight samples, report history and credentials.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if err := h.users.Delete(ctx, userID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete profile")
		response.InternalError(w, r, "failed to delete account")
		return
	}
	for _, f := range h.forget {
		if err := f.Forget(ctx, userID); err != nil {
			h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete user data")
			response.InternalError(w, r, "failed to delete account")
			return
		}
	}
	if err := h.auth.Unregister(ctx, userID); err != nil && !errors.Is(err, auth.ErrCredentialsNotFound) {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete credentials")
		response.InternalError(w, r, "failed to delete account")
		return
	}

	h.logger.Info().Str("user_id", userID).Msg("account deleted")
	response.NoContent(w, r)
}

func (h *ProfileHandler) writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(w, r, "profile not found")
	case errors.Is(err, user.ErrInvalidProfile):
		response.BadRequest(w, r, err.Error(), nil)
	default:
		h.logger.Error().Err(err).Msg("profile operation failed")
		response.InternalError(w, r, "internal server error")
	}
}

// profileResponse renders u with its derived metrics and, for users who
// track a cycle, today's phase.
func profileResponse(u *user.User, now time.Time, policy bm.CaloriePolicy) models.Profile {
	p := models.Profile{
		UserID:          u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		Gender:          u.Gender,
		Age:             u.AgeOn(now),
		HeightCm:        u.HeightCm,
		WeightKg:        u.WeightKg,
		Goal:            u.Goal,
		ActivityLevel:   u.Activity,
		TargetWeightKg:  u.TargetWeightKg,
		CycleLengthDays: u.CycleLengthDays,
		CycleDay:        u.CycleDay,
		CyclePrediction: u.Prediction,
		CreatedAt:       models.Timestamp(u.CreatedAt),
		UpdatedAt:       models.Timestamp(u.UpdatedAt),
	}
	if u.BirthDate != nil {
		d := models.NewDate(*u.BirthDate)
		p.BirthDate = &d
	}
	if len(u.CycleDates) > 0 {
		p.CycleDates = models.FromDates(u.CycleDates)
	}
	if u.TracksCycle() {
		p.CyclePhase = cycle.PhaseOn(u.LatestCycleStart(), now)
	}
	if derived, err := bm.Derive(u.Profile(now), policy); err == nil {
		p.Metrics = &derived
	}
	return p
}

// createInput converts a validated registration profile.
func createInput(userID, email string, in models.ProfileInput) (user.CreateInput, error) {
	gender, err := bm.ParseGender(in.Gender)
	if err != nil {
		return user.CreateInput{}, err
	}
	goal, err := bm.ParseGoal(in.Goal)
	if err != nil {
		return user.CreateInput{}, err
	}
	activity, err := bm.ParseActivityLevel(in.ActivityLevel)
	if err != nil {
		return user.CreateInput{}, err
	}

	out := user.CreateInput{
		ID:             userID,
		Email:          email,
		FullName:       in.FullName,
		Gender:         gender,
		HeightCm:       in.HeightCm,
		WeightKg:       in.WeightKg,
		Goal:           goal,
		Activity:       activity,
		TargetWeightKg: in.TargetWeightKg,
		CycleDates:     models.Dates(in.CycleDates),
	}
	if in.BirthDate != nil {
		t := in.BirthDate.Time()
		out.BirthDate = &t
	}
	if in.Age != nil {
		out.Age = *in.Age
	}
	return out, nil
}

// userPatch converts a validated profile patch.
func userPatch(in models.ProfilePatch) (user.Patch, error) {
	out := user.Patch{
		FullName:        in.FullName,
		Age:             in.Age,
		HeightCm:        in.HeightCm,
		WeightKg:        in.WeightKg,
		TargetWeightKg:  in.TargetWeightKg,
		CycleLengthDays: in.CycleLengthDays,
		CycleDay:        in.CycleDay,
	}
	if in.Gender != nil {
		g, err := bm.ParseGender(*in.Gender)
		if err != nil {
			return user.Patch{}, err
		}
		out.Gender = &g
	}
	if in.Goal != nil {
		g, err := bm.ParseGoal(*in.Goal)
		if err != nil {
			return user.Patch{}, err
		}
		out.Goal = &g
	}
	if in.ActivityLevel != nil {
		a, err := bm.ParseActivityLevel(*in.ActivityLevel)
		if err != nil {
			return user.Patch{}, err
		}
		out.Activity = &a
	}
	if in.BirthDate != nil {
		t := in.BirthDate.Time()
		out.BirthDate = &t
	}
	if in.CycleDates != nil {
		dates := models.Dates(*in.CycleDates)
		out.CycleDates = &dates
	}
	return out, nil
}
