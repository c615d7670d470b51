// Package auth provides email and password authentication with short-lived
// JWT access tokens and rotating opaque refresh tokens.
package auth

import "time"

// Credentials are the login details of one account. The ID is shared with
// the user's profile record.
type Credentials struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// TokenResponse represents the response after successful authentication.
type TokenResponse struct {
	// AccessToken is the JWT access token for API authentication.
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the number of seconds until the access token expires.
	ExpiresIn int64 `json:"expires_in"`

	// RefreshToken is the opaque token used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`

	UserID string `json:"user_id"`
}

// RefreshToken represents a stored refresh token. Only a hash of the token
// value is persisted.
type RefreshToken struct {
	ID        string
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
