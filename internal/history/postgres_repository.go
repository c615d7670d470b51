package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores entries in the report_history table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL history repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Append inserts e.
func (r *PostgresRepository) Append(ctx context.Context, e *Entry) error {
	query := `
		INSERT INTO report_history (id, user_id, kind, input, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, e.ID, e.UserID, string(e.Kind), []byte(e.Input), []byte(e.Result), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// ListByUser returns the newest entries of kind for userID.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, kind Kind, limit int) ([]*Entry, error) {
	query := `
		SELECT id, user_id, kind, input, result, created_at
		FROM report_history
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, userID, string(kind), clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			e             Entry
			kindStr       string
			input, result []byte
		)
		if err := rows.Scan(&e.ID, &e.UserID, &kindStr, &input, &result, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.Kind = Kind(kindStr)
		e.Input = input
		e.Result = result
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// DeleteByUser removes every entry of userID.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM report_history WHERE user_id = $1`, userID)
	return err
}

var _ Repository = (*PostgresRepository)(nil)
