package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/auth"
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/user"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *auth.Service
	users       *user.Service
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *auth.Service, users *user.Service, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       users,
		logger:      logger,
	}
}

// Register handles POST /v1/auth/register - create an account with its
// profile and sign in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	ctx := r.Context()

	creds, err := h.authService.Register(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			response.Conflict(w, r, "an account with this email already exists")
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
			response.BadRequest(w, r, err.Error(), nil)
		default:
			h.logger.Error().Err(err).Msg("failed to register credentials")
			response.InternalError(w, r, "registration failed")
		}
		return
	}

	in, err := createInput(creds.ID, creds.Email, req.Profile)
	if err == nil {
		_, err = h.users.Create(ctx, in)
	}
	if err != nil {
		// The profile is part of the account; without it the credentials
		// are unusable.
		if uerr := h.authService.Unregister(ctx, creds.ID); uerr != nil {
			h.logger.Error().Err(uerr).Str("user_id", creds.ID).Msg("failed to roll back credentials")
		}
		switch {
		case errors.Is(err, user.ErrInvalidProfile), errors.Is(err, bm.ErrInvalidInput):
			response.BadRequest(w, r, err.Error(), nil)
		case errors.Is(err, user.ErrUserExists):
			response.Conflict(w, r, "profile already exists")
		default:
			h.logger.Error().Err(err).Str("user_id", creds.ID).Msg("failed to create profile")
			response.InternalError(w, r, "registration failed")
		}
		return
	}

	tokens, err := h.authService.IssueTokens(ctx, creds.ID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", creds.ID).Msg("failed to issue tokens")
		response.InternalError(w, r, "registration failed")
		return
	}

	h.logger.Info().Str("user_id", creds.ID).Msg("account registered")
	response.Created(w, r, "/v1/me/profile", tokens)
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	tokens, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(w, r, "invalid email or password")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		response.InternalError(w, r, "login failed")
		return
	}

	response.JSON(w, r, http.StatusOK, tokens)
}

// RefreshToken handles POST /v1/auth/refresh - refresh access token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	tokens, err := h.authService.RefreshAccessToken(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRefreshToken):
			response.Unauthorized(w, r, "invalid refresh token")
		case errors.Is(err, auth.ErrRefreshTokenExpired):
			response.Unauthorized(w, r, "refresh token has expired")
		default:
			h.logger.Error().Err(err).Msg("token refresh failed")
			response.InternalError(w, r, "token refresh failed")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, tokens)
}

// Logout handles POST /v1/auth/logout - revoke current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.RefreshTokenRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if err := h.authService.Logout(r.Context(), userID, req.RefreshToken); err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			response.Unauthorized(w, r, "invalid refresh token")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("logout failed")
		response.InternalError(w, r, "logout failed")
		return
	}

	response.NoContent(w, r)
}

// LogoutAll handles POST /v1/auth/logout-all - revoke every session.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.authService.LogoutAll(r.Context(), userID); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("logout-all failed")
		response.InternalError(w, r, "logout failed")
		return
	}

	response.NoContent(w, r)
}
