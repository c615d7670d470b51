package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a user by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT
			user_id, email, full_name, gender, birth_date, age,
			height_cm, weight_kg, goal, activity_level, target_weight_kg,
			cycle_dates, cycle_length_days, cycle_day, cycle_prediction,
			created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var (
		user       User
		gender     string
		goal       string
		activity   string
		age        *int
		height     *float64
		weight     *float64
		prediction []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&gender,
		&user.BirthDate,
		&age,
		&height,
		&weight,
		&goal,
		&activity,
		&user.TargetWeightKg,
		&user.CycleDates,
		&user.CycleLengthDays,
		&user.CycleDay,
		&prediction,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	user.Gender = bm.Gender(gender)
	user.Goal = bm.Goal(goal)
	user.Activity = bm.ActivityLevel(activity)
	if age != nil {
		user.Age = *age
	}
	if height != nil {
		user.HeightCm = *height
	}
	if weight != nil {
		user.WeightKg = *weight
	}
	if len(prediction) > 0 {
		var p cycle.Prediction
		if err := json.Unmarshal(prediction, &p); err != nil {
			return nil, fmt.Errorf("decoding cycle prediction: %w", err)
		}
		user.Prediction = &p
	}

	return &user, nil
}

func predictionJSON(p *cycle.Prediction) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func cycleDates(u *User) []time.Time {
	if u.CycleDates == nil {
		return []time.Time{}
	}
	return u.CycleDates
}

// Create creates a new user profile.
func (r *PostgresRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO user_profiles (
			user_id, email, full_name, gender, birth_date, age,
			height_cm, weight_kg, goal, activity_level, target_weight_kg,
			cycle_dates, cycle_length_days, cycle_day, cycle_prediction,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	prediction, err := predictionJSON(user.Prediction)
	if err != nil {
		return fmt.Errorf("encoding cycle prediction: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		string(user.Gender),
		user.BirthDate,
		user.Age,
		user.HeightCm,
		user.WeightKg,
		string(user.Goal),
		string(user.Activity),
		user.TargetWeightKg,
		cycleDates(user),
		user.CycleLengthDays,
		user.CycleDay,
		prediction,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// Update updates an existing user profile.
func (r *PostgresRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE user_profiles SET
			full_name = $2,
			gender = $3,
			birth_date = $4,
			age = $5,
			height_cm = $6,
			weight_kg = $7,
			goal = $8,
			activity_level = $9,
			target_weight_kg = $10,
			cycle_dates = $11,
			cycle_length_days = $12,
			cycle_day = $13,
			cycle_prediction = $14,
			updated_at = $15
		WHERE user_id = $1
	`

	prediction, err := predictionJSON(user.Prediction)
	if err != nil {
		return fmt.Errorf("encoding cycle prediction: %w", err)
	}

	result, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		string(user.Gender),
		user.BirthDate,
		user.Age,
		user.HeightCm,
		user.WeightKg,
		string(user.Goal),
		string(user.Activity),
		user.TargetWeightKg,
		cycleDates(user),
		user.CycleLengthDays,
		user.CycleDay,
		prediction,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete deletes a user profile.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, id)
	return err
}

var _ Repository = (*PostgresRepository)(nil)
