package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/tracking"
)

// WeightHandler handles weight entries and their history.
type WeightHandler struct {
	weights *tracking.Service
	logger  zerolog.Logger
}

// NewWeightHandler creates a new WeightHandler.
func NewWeightHandler(weights *tracking.Service, logger zerolog.Logger) *WeightHandler {
	return &WeightHandler{weights: weights, logger: logger}
}

// ListEntries handles GET /v1/weight-entries - newest first.
func (h *WeightHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	samples, err := h.weights.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewList(models.WeightEntries(samples)))
}

// CreateEntry handles POST /v1/weight-entries. An entry on a date that
// already has one replaces it.
func (h *WeightHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.WeightEntryInput
	if !decodeJSON(w, r, &req, false) {
		return
	}

	in := tracking.SampleInput{WeightKg: req.WeightKg, Notes: req.Notes}
	if req.Date != nil {
		in.Date = req.Date.Time()
	}

	sample, err := h.weights.Record(r.Context(), userID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/weight-entries/"+sample.ID, models.NewWeightEntry(sample))
}

// UpdateEntry handles PUT /v1/weight-entries/{entryId}.
func (h *WeightHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.WeightEntryPatch
	if !decodeJSON(w, r, &req, false) {
		return
	}

	patch := tracking.SamplePatch{WeightKg: req.WeightKg, Notes: req.Notes}
	if req.Date != nil {
		t := req.Date.Time()
		patch.Date = &t
	}

	sample, err := h.weights.Update(r.Context(), userID, chi.URLParam(r, "entryId"), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewWeightEntry(sample))
}

// DeleteEntry handles DELETE /v1/weight-entries/{entryId}.
func (h *WeightHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.weights.Delete(r.Context(), userID, chi.URLParam(r, "entryId")); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// GetHistory handles GET /v1/weight-history.
func (h *WeightHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	hist, err := h.weights.History(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewWeightHistory(hist))
}

func (h *WeightHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tracking.ErrSampleNotFound):
		response.NotFound(w, r, "weight entry not found")
	case errors.Is(err, tracking.ErrDuplicateDate):
		response.Conflict(w, r, err.Error())
	case errors.Is(err, tracking.ErrInvalidSample):
		response.BadRequest(w, r, err.Error(), nil)
	default:
		h.logger.Error().Err(err).Str("user_id", GetUserID(r.Context())).Msg("weight operation failed")
		response.InternalError(w, r, "internal server error")
	}
}
