package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/api/models"
)

func TestProblemForStatus(t *testing.T) {
	tests := []struct {
		status int
		typ    string
		title  string
	}{
		{http.StatusBadRequest, models.ProblemTypeValidation, "Validation error"},
		{http.StatusUnauthorized, models.ProblemTypeUnauthorized, "Unauthorized"},
		{http.StatusNotFound, models.ProblemTypeNotFound, "Not found"},
		{http.StatusConflict, models.ProblemTypeConflict, "Conflict"},
		{http.StatusServiceUnavailable, models.ProblemTypeUnavailable, "Service unavailable"},
		{http.StatusTeapot, "about:blank", "I'm a teapot"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			p := models.ProblemForStatus(tt.status, "req_1", "detail")
			assert.Equal(t, tt.typ, p.Type)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, "detail", p.Detail)
		})
	}
}

func TestProblem_Builders(t *testing.T) {
	p := models.NewProblem(models.ProblemTypeValidation, "Validation error", http.StatusBadRequest, "req_test123").
		WithDetail("height_cm must be between 50 and 250").
		WithInstance("/v1/me/profile").
		WithErrors([]models.FieldError{{Field: "height_cm", Message: "must be at most 250", Code: "lte"}})

	assert.Equal(t, "height_cm must be between 50 and 250", p.Detail)
	assert.Equal(t, "/v1/me/profile", p.Instance)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "height_cm", p.Errors[0].Field)
}

func TestProblem_Write(t *testing.T) {
	p := models.NewBadRequest("req_abc", "invalid body", []models.FieldError{
		{Field: "weight_kg", Message: "is required", Code: "required"},
	}).WithInstance("/v1/weight-entries")

	rec := httptest.NewRecorder()
	p.Write(rec)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req_abc", rec.Header().Get("X-Request-Id"))

	var got models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.ProblemTypeValidation, got.Type)
	assert.Equal(t, "req_abc", got.TraceID)
	assert.Equal(t, "/v1/weight-entries", got.Instance)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "required", got.Errors[0].Code)
}

func TestProblem_WriteOmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	models.NewUnauthorized("req_1", "").Write(rec)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "detail")
	assert.NotContains(t, raw, "errors")
	assert.Contains(t, raw, "traceId")
}
