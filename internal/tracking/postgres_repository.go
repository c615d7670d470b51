package tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresRepository stores samples in the weight_samples table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL weight sample repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const sampleColumns = `id, user_id, sample_date, weight_kg, notes, created_at, updated_at`

func scanSample(row pgx.Row) (*Sample, error) {
	var (
		s     Sample
		notes *string
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.Date, &s.WeightKg, &notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if notes != nil {
		s.Notes = *notes
	}
	s.Date = Day(s.Date)
	return &s, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Upsert inserts s or replaces the sample on the same (user, date).
func (r *PostgresRepository) Upsert(ctx context.Context, s *Sample) (*Sample, error) {
	query := `
		INSERT INTO weight_samples (` + sampleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, sample_date) DO UPDATE SET
			weight_kg = EXCLUDED.weight_kg,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + sampleColumns

	stored, err := scanSample(r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, Day(s.Date), s.WeightKg, nullable(s.Notes), s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upserting weight sample: %w", err)
	}
	return stored, nil
}

// Get retrieves a sample by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM weight_samples WHERE id = $1`

	s, err := scanSample(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSampleNotFound
		}
		return nil, fmt.Errorf("getting weight sample: %w", err)
	}
	return s, nil
}

// Update overwrites a sample.
func (r *PostgresRepository) Update(ctx context.Context, s *Sample) error {
	query := `
		UPDATE weight_samples
		SET sample_date = $2, weight_kg = $3, notes = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, s.ID, Day(s.Date), s.WeightKg, nullable(s.Notes), s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateDate
		}
		return fmt.Errorf("updating weight sample: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSampleNotFound
	}
	return nil
}

// Delete removes a sample.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM weight_samples WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting weight sample: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSampleNotFound
	}
	return nil
}

// ListByUser returns a user's samples, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM weight_samples WHERE user_id = $1 ORDER BY sample_date`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying weight samples: %w", err)
	}
	defer rows.Close()

	var samples []*Sample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning weight sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// DeleteByUser removes every sample of userID.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM weight_samples WHERE user_id = $1`, userID)
	return err
}

var _ Repository = (*PostgresRepository)(nil)
