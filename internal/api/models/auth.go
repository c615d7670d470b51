package models

// RegisterRequest creates an account and its profile in one call.
type RegisterRequest struct {
	Email    string       `json:"email" validate:"required,email,max=254"`
	Password string       `json:"password" validate:"required,min=8,max=72"`
	Profile  ProfileInput `json:"profile"`
}

// LoginRequest exchanges credentials for tokens.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest carries a refresh token for refresh and logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
