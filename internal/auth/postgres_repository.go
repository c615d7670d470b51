package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresCredentialRepository is a PostgreSQL implementation of CredentialRepository.
type PostgresCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCredentialRepository creates a new PostgreSQL credential repository.
func NewPostgresCredentialRepository(pool *pgxpool.Pool) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{pool: pool}
}

// Create stores new credentials.
func (r *PostgresCredentialRepository) Create(ctx context.Context, c *Credentials) error {
	query := `
		INSERT INTO auth_users (user_id, email, password_hash, created_at, last_login_at)
		VALUES ($1, lower($2), $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, c.ID, c.Email, c.PasswordHash, c.CreatedAt, c.LastLoginAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("inserting credentials: %w", err)
	}
	return nil
}

// FindByEmail looks up credentials by email.
func (r *PostgresCredentialRepository) FindByEmail(ctx context.Context, email string) (*Credentials, error) {
	return r.findOne(ctx, `WHERE email = lower($1)`, email)
}

// FindByID looks up credentials by user ID.
func (r *PostgresCredentialRepository) FindByID(ctx context.Context, id string) (*Credentials, error) {
	return r.findOne(ctx, `WHERE user_id = $1`, id)
}

func (r *PostgresCredentialRepository) findOne(ctx context.Context, where string, arg string) (*Credentials, error) {
	query := `
		SELECT user_id, email, password_hash, created_at, last_login_at
		FROM auth_users
		` + where

	var c Credentials
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.CreatedAt,
		&c.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialsNotFound
		}
		return nil, err
	}
	return &c, nil
}

// RecordLogin sets the last login time.
func (r *PostgresCredentialRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE auth_users SET last_login_at = $1 WHERE user_id = $2`, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCredentialsNotFound
	}
	return nil
}

// Delete removes credentials. Refresh tokens go with them via ON DELETE CASCADE.
func (r *PostgresCredentialRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM auth_users WHERE user_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCredentialsNotFound
	}
	return nil
}

// PostgresRefreshTokenRepository is a PostgreSQL implementation of RefreshTokenRepository.
type PostgresRefreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRefreshTokenRepository creates a new PostgreSQL refresh token repository.
func NewPostgresRefreshTokenRepository(pool *pgxpool.Pool) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{pool: pool}
}

// Create stores a new refresh token.
func (r *PostgresRefreshTokenRepository) Create(ctx context.Context, token *RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (token_id, token_hash, user_id, expires_at, created_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.TokenHash,
		token.UserID,
		token.ExpiresAt,
		token.CreatedAt,
		token.RevokedAt,
	)
	return err
}

// FindByHash finds a refresh token by its hash.
func (r *PostgresRefreshTokenRepository) FindByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	query := `
		SELECT token_id, token_hash, user_id, expires_at, created_at, revoked_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`

	var token RefreshToken
	err := r.pool.QueryRow(ctx, query, hash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.UserID,
		&token.ExpiresAt,
		&token.CreatedAt,
		&token.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRefreshTokenUnknown
		}
		return nil, err
	}

	return &token, nil
}

// Revoke marks a refresh token as revoked.
func (r *PostgresRefreshTokenRepository) Revoke(ctx context.Context, hash string, at time.Time) (bool, error) {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE token_hash = $2 AND revoked_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, at, hash)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE token_hash = $1)`, hash).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrRefreshTokenUnknown
	}
	return false, nil
}

// RevokeAllForUser revokes all refresh tokens for a user.
func (r *PostgresRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string, at time.Time) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE user_id = $2 AND revoked_at IS NULL
	`

	_, err := r.pool.Exec(ctx, query, at, userID)
	return err
}

var (
	_ CredentialRepository   = (*PostgresCredentialRepository)(nil)
	_ RefreshTokenRepository = (*PostgresRefreshTokenRepository)(nil)
)
