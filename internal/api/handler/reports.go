package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
	"github.com/fitplan/fitplan/internal/nutrition"
	"github.com/fitplan/fitplan/internal/recommendation"
	"github.com/fitplan/fitplan/internal/user"
)

// ReportHandler serves recommendations and nutrition plans. Both are
// computed from the caller's stored profile with any request fields taking
// precedence.
type ReportHandler struct {
	users           *user.Service
	recommendations *recommendation.Service
	nutrition       *nutrition.Service
	logger          zerolog.Logger
	now             func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(users *user.Service, recommendations *recommendation.Service, nutritionService *nutrition.Service, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		users:           users,
		recommendations: recommendations,
		nutrition:       nutritionService,
		logger:          logger,
		now:             time.Now,
	}
}

// resolved is a stored profile with request overrides applied.
type resolved struct {
	bm.Profile
	TargetWeightKg *float64
	CycleStart     time.Time
}

// resolveProfile merges o over the caller's stored profile. A caller
// without a profile must supply every required field.
func (h *ReportHandler) resolveProfile(ctx context.Context, userID string, o models.ProfileOverrides) (resolved, error) {
	var out resolved
	today := h.now()

	u, err := h.users.Get(ctx, userID)
	switch {
	case err == nil:
		out.Profile = u.Profile(today)
		out.TargetWeightKg = u.TargetWeightKg
		if u.TracksCycle() {
			out.CycleStart = u.LatestCycleStart()
		}
	case errors.Is(err, user.ErrUserNotFound):
	default:
		return resolved{}, fmt.Errorf("loading profile: %w", err)
	}

	if o.Gender != nil {
		if out.Gender, err = bm.ParseGender(*o.Gender); err != nil {
			return resolved{}, err
		}
	}
	if o.Goal != nil {
		if out.Goal, err = bm.ParseGoal(*o.Goal); err != nil {
			return resolved{}, err
		}
	}
	if o.ActivityLevel != nil {
		if out.Activity, err = bm.ParseActivityLevel(*o.ActivityLevel); err != nil {
			return resolved{}, err
		}
	}
	if o.Age != nil {
		out.Age = *o.Age
	}
	if o.HeightCm != nil {
		out.HeightCm = *o.HeightCm
	}
	if o.WeightKg != nil {
		out.WeightKg = *o.WeightKg
	}
	if o.TargetWeightKg != nil {
		out.TargetWeightKg = o.TargetWeightKg
	}
	if o.CycleStartDate != nil {
		out.CycleStart = o.CycleStartDate.Time()
	}
	if out.Activity == "" {
		out.Activity = bm.ActivitySedentary
	}

	switch {
	case !out.Gender.Valid():
		return resolved{}, fmt.Errorf("%w: gender is required", bm.ErrInvalidInput)
	case !out.Goal.Valid():
		return resolved{}, fmt.Errorf("%w: goal is required", bm.ErrInvalidInput)
	case out.Age <= 0:
		return resolved{}, fmt.Errorf("%w: age is required", bm.ErrInvalidInput)
	case out.HeightCm <= 0:
		return resolved{}, fmt.Errorf("%w: height_cm is required", bm.ErrInvalidInput)
	case out.WeightKg <= 0:
		return resolved{}, fmt.Errorf("%w: weight_kg is required", bm.ErrInvalidInput)
	}
	return out, nil
}

// CreateRecommendation handles POST /v1/recommendations.
func (h *ReportHandler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.RecommendationRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	p, err := h.resolveProfile(r.Context(), userID, req.ProfileOverrides)
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}

	in := recommendation.Input{
		Gender:         p.Gender,
		Age:            p.Age,
		HeightCm:       p.HeightCm,
		WeightKg:       p.WeightKg,
		Goal:           p.Goal,
		Activity:       p.Activity,
		TargetWeightKg: p.TargetWeightKg,
	}
	if !p.CycleStart.IsZero() {
		in.CycleStartDate = p.CycleStart.Format(cycle.DateLayout)
	}

	report, err := h.recommendations.Generate(r.Context(), userID, in)
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, report)
}

// ListRecommendations handles GET /v1/recommendations.
func (h *ReportHandler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	items, err := h.recommendations.History(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list recommendations")
		response.InternalError(w, r, "failed to list recommendations")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewList(items))
}

// CreateNutritionPlan handles POST /v1/nutrition-plans.
func (h *ReportHandler) CreateNutritionPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.NutritionPlanRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	p, err := h.resolveProfile(r.Context(), userID, req.ProfileOverrides)
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}

	plan, err := h.nutrition.Generate(r.Context(), userID, nutrition.Input{
		Gender:              p.Gender,
		Age:                 p.Age,
		HeightCm:            p.HeightCm,
		WeightKg:            p.WeightKg,
		Goal:                p.Goal,
		Activity:            p.Activity,
		DietaryRestrictions: req.DietaryRestrictions,
		Allergies:           req.Allergies,
		PreferredCuisine:    req.PreferredCuisine,
	})
	if err != nil {
		h.writeComputeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, plan)
}

// ListNutritionPlans handles GET /v1/nutrition-plans.
func (h *ReportHandler) ListNutritionPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	items, err := h.nutrition.History(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list nutrition plans")
		response.InternalError(w, r, "failed to list nutrition plans")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewList(items))
}

func (h *ReportHandler) writeComputeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, bm.ErrInvalidInput) {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	h.logger.Error().Err(err).Str("user_id", GetUserID(r.Context())).Msg("report generation failed")
	response.InternalError(w, r, "report generation failed")
}
