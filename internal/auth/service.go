package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Predefined service errors.
var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email")
)

// Service provides authentication operations.
type Service struct {
	jwtService  *JWTService
	credentials CredentialRepository
	refreshRepo RefreshTokenRepository
	refreshTTL  time.Duration
	bcryptCost  int
	now         func() time.Time
}

// ServiceConfig holds configuration for the auth service.
type ServiceConfig struct {
	JWTService  *JWTService
	Credentials CredentialRepository
	RefreshRepo RefreshTokenRepository

	// RefreshTokenTTL defaults to DefaultRefreshTokenTTL.
	RefreshTokenTTL time.Duration

	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// NewService creates a new auth service.
func NewService(cfg ServiceConfig) *Service {
	ttl := cfg.RefreshTokenTTL
	if ttl <= 0 {
		ttl = DefaultRefreshTokenTTL
	}
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Service{
		jwtService:  cfg.JWTService,
		credentials: cfg.Credentials,
		refreshRepo: cfg.RefreshRepo,
		refreshTTL:  ttl,
		bcryptCost:  cost,
		now:         time.Now,
	}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates credentials for a new account. The returned ID is the
// user ID the caller should create the profile under.
func (s *Service) Register(ctx context.Context, email, password string) (*Credentials, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if err := CheckPassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	creds := &Credentials{
		ID:           generateUserID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.credentials.Create(ctx, creds); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("creating credentials: %w", err)
	}
	return creds, nil
}

// Login checks an email and password and issues a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	creds, err := s.credentials.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrCredentialsNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding credentials: %w", err)
	}

	if !passwordMatches(creds.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.credentials.RecordLogin(ctx, creds.ID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}

	return s.IssueTokens(ctx, creds.ID)
}

// RefreshAccessToken exchanges a refresh token for a new token pair. The
// presented token is revoked.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshTokenStr string) (*TokenResponse, error) {
	hash := HashRefreshToken(refreshTokenStr)

	refreshToken, err := s.refreshRepo.FindByHash(ctx, hash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if refreshToken.RevokedAt != nil {
		return nil, ErrInvalidRefreshToken
	}

	if s.now().After(refreshToken.ExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	if _, err := s.credentials.FindByID(ctx, refreshToken.UserID); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// A concurrent refresh with the same token loses here.
	revoked, err := s.refreshRepo.Revoke(ctx, hash, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("revoking old refresh token: %w", err)
	}
	if !revoked {
		return nil, ErrInvalidRefreshToken
	}

	return s.IssueTokens(ctx, refreshToken.UserID)
}

// ValidateAccessToken validates an access token and returns the user ID.
func (s *Service) ValidateAccessToken(tokenString string) (string, error) {
	claims, err := s.jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Logout revokes one refresh token. It must belong to userID.
func (s *Service) Logout(ctx context.Context, userID, refreshTokenStr string) error {
	hash := HashRefreshToken(refreshTokenStr)

	token, err := s.refreshRepo.FindByHash(ctx, hash)
	if err != nil || token.UserID != userID {
		return ErrInvalidRefreshToken
	}
	if _, err := s.refreshRepo.Revoke(ctx, hash, s.now().UTC()); err != nil {
		return fmt.Errorf("revoking refresh token: %w", err)
	}
	return nil
}

// LogoutAll revokes every refresh token of a user.
func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if err := s.refreshRepo.RevokeAllForUser(ctx, userID, s.now().UTC()); err != nil {
		return fmt.Errorf("revoking refresh tokens: %w", err)
	}
	return nil
}

// Unregister deletes a user's credentials and refresh tokens.
func (s *Service) Unregister(ctx context.Context, userID string) error {
	if err := s.credentials.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrCredentialsNotFound) {
			return err
		}
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}

// IssueTokens generates both access and refresh tokens for a user.
func (s *Service) IssueTokens(ctx context.Context, userID string) (*TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refreshTokenStr, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	refreshToken := &RefreshToken{
		ID:        uuid.New().String(),
		TokenHash: HashRefreshToken(refreshTokenStr),
		UserID:    userID,
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}

	if err := s.refreshRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(expiresAt.Sub(s.now()).Seconds()),
		RefreshToken: refreshTokenStr,
		UserID:       userID,
	}, nil
}

// SetClock replaces the time source of the service and its JWT service.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
	s.jwtService.now = now
}

// generateUserID generates a unique user ID with prefix.
func generateUserID() string {
	return "usr_" + uuid.New().String()[:22]
}
