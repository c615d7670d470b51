package handler

import (
	"net/http"

	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/modelinfo"
)

// ModelInfoHandler serves the model catalogue.
type ModelInfoHandler struct {
	catalogue *modelinfo.Catalogue
}

// NewModelInfoHandler creates a new ModelInfoHandler.
func NewModelInfoHandler(catalogue *modelinfo.Catalogue) *ModelInfoHandler {
	return &ModelInfoHandler{catalogue: catalogue}
}

// GetFeatures handles GET /v1/model-features.
func (h *ModelInfoHandler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.catalogue)
}
