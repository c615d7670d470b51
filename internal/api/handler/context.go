package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/response"
)

// defaultHistoryLimit is used when a history request has no limit.
const defaultHistoryLimit = 10

// GetUserID retrieves the authenticated user ID from the context.
// This is a convenience wrapper around middleware.GetUserID.
func GetUserID(ctx context.Context) string {
	return middleware.GetUserID(ctx)
}

// requireUser returns the caller's user ID, writing a 401 when the request
// did not pass the auth middleware.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return "", false
	}
	return userID, true
}

// limitParam parses the optional ?limit= query parameter (1..100).
func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultHistoryLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		response.BadRequest(w, r, "limit must be an integer between 1 and 100", nil)
		return 0, false
	}
	return limit, true
}
