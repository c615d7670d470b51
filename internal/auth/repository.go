package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Repository errors.
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrRefreshTokenUnknown = errors.New("refresh token not found")
)

// CredentialRepository stores login credentials.
type CredentialRepository interface {
	// Create stores new credentials. Returns ErrEmailTaken if the email is in use.
	Create(ctx context.Context, c *Credentials) error

	// FindByEmail looks up credentials by normalized email.
	FindByEmail(ctx context.Context, email string) (*Credentials, error)

	// FindByID looks up credentials by user ID.
	FindByID(ctx context.Context, id string) (*Credentials, error)

	// RecordLogin sets the last login time.
	RecordLogin(ctx context.Context, id string, at time.Time) error

	// Delete removes credentials and every refresh token of the user.
	Delete(ctx context.Context, id string) error
}

// RefreshTokenRepository defines the interface for refresh token operations.
type RefreshTokenRepository interface {
	// Create stores a new refresh token.
	Create(ctx context.Context, token *RefreshToken) error

	// FindByHash finds a refresh token by the hash of its value.
	FindByHash(ctx context.Context, hash string) (*RefreshToken, error)

	// Revoke marks a refresh token as revoked. It reports whether a live
	// token was revoked by this call.
	Revoke(ctx context.Context, hash string, at time.Time) (bool, error)

	// RevokeAllForUser revokes all refresh tokens for a user.
	RevokeAllForUser(ctx context.Context, userID string, at time.Time) error
}

// InMemoryCredentialRepository is an in-memory CredentialRepository.
type InMemoryCredentialRepository struct {
	mu      sync.RWMutex
	byID    map[string]*Credentials
	byEmail map[string]string
	tokens  *InMemoryRefreshTokenRepository
}

// NewInMemoryCredentialRepository creates a credential store. When tokens is
// non-nil, Delete also drops the user's refresh tokens.
func NewInMemoryCredentialRepository(tokens *InMemoryRefreshTokenRepository) *InMemoryCredentialRepository {
	return &InMemoryCredentialRepository{
		byID:    make(map[string]*Credentials),
		byEmail: make(map[string]string),
		tokens:  tokens,
	}
}

// Create stores new credentials.
func (r *InMemoryCredentialRepository) Create(_ context.Context, c *Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(c.Email)
	if _, ok := r.byEmail[key]; ok {
		return ErrEmailTaken
	}
	if _, ok := r.byID[c.ID]; ok {
		return ErrEmailTaken
	}
	cp := *c
	r.byID[c.ID] = &cp
	r.byEmail[key] = c.ID
	return nil
}

// FindByEmail looks up credentials by email.
func (r *InMemoryCredentialRepository) FindByEmail(_ context.Context, email string) (*Credentials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

// FindByID looks up credentials by user ID.
func (r *InMemoryCredentialRepository) FindByID(_ context.Context, id string) (*Credentials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	cp := *c
	return &cp, nil
}

// RecordLogin sets the last login time.
func (r *InMemoryCredentialRepository) RecordLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return ErrCredentialsNotFound
	}
	c.LastLoginAt = &at
	return nil
}

// Delete removes credentials.
func (r *InMemoryCredentialRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	c, ok := r.byID[id]
	if ok {
		delete(r.byEmail, strings.ToLower(c.Email))
		delete(r.byID, id)
	}
	r.mu.Unlock()

	if !ok {
		return ErrCredentialsNotFound
	}
	if r.tokens != nil {
		r.tokens.deleteForUser(id)
	}
	return nil
}

// InMemoryRefreshTokenRepository is an in-memory RefreshTokenRepository.
type InMemoryRefreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*RefreshToken // keyed by token hash
	byUser map[string][]string      // userID -> token hashes
}

// NewInMemoryRefreshTokenRepository creates a new in-memory refresh token repository.
func NewInMemoryRefreshTokenRepository() *InMemoryRefreshTokenRepository {
	return &InMemoryRefreshTokenRepository{
		tokens: make(map[string]*RefreshToken),
		byUser: make(map[string][]string),
	}
}

// Create stores a new refresh token.
func (r *InMemoryRefreshTokenRepository) Create(_ context.Context, token *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *token
	r.tokens[token.TokenHash] = &cp
	r.byUser[token.UserID] = append(r.byUser[token.UserID], token.TokenHash)
	return nil
}

// FindByHash finds a refresh token by its hash.
func (r *InMemoryRefreshTokenRepository) FindByHash(_ context.Context, hash string) (*RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[hash]
	if !ok {
		return nil, ErrRefreshTokenUnknown
	}
	cp := *t
	return &cp, nil
}

// Revoke marks a refresh token as revoked.
func (r *InMemoryRefreshTokenRepository) Revoke(_ context.Context, hash string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[hash]
	if !ok {
		return false, ErrRefreshTokenUnknown
	}
	if t.RevokedAt != nil {
		return false, nil
	}
	t.RevokedAt = &at
	return true, nil
}

// RevokeAllForUser revokes all refresh tokens for a user.
func (r *InMemoryRefreshTokenRepository) RevokeAllForUser(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, hash := range r.byUser[userID] {
		if t, ok := r.tokens[hash]; ok && t.RevokedAt == nil {
			t.RevokedAt = &at
		}
	}
	return nil
}

func (r *InMemoryRefreshTokenRepository) deleteForUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, hash := range r.byUser[userID] {
		delete(r.tokens, hash)
	}
	delete(r.byUser, userID)
}

var (
	_ CredentialRepository   = (*InMemoryCredentialRepository)(nil)
	_ RefreshTokenRepository = (*InMemoryRefreshTokenRepository)(nil)
)
