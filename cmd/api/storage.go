package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/handler"
	"github.com/fitplan/fitplan/internal/auth"
	"github.com/fitplan/fitplan/internal/config"
	"github.com/fitplan/fitplan/internal/database"
	"github.com/fitplan/fitplan/internal/history"
	"github.com/fitplan/fitplan/internal/tracking"
	"github.com/fitplan/fitplan/internal/user"
)

// storage bundles the repositories of the selected backend.
type storage struct {
	credentials   auth.CredentialRepository
	refreshTokens auth.RefreshTokenRepository
	users         user.Repository
	weights       tracking.Repository
	history       history.Repository

	checks []handler.Check
	close  func()
}

func (s *storage) Close() {
	if s.close != nil {
		s.close()
	}
}

func openStorage(ctx context.Context, cfg config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("using in-memory storage - data is lost on restart")
		tokens := auth.NewInMemoryRefreshTokenRepository()
		return &storage{
			credentials:   auth.NewInMemoryCredentialRepository(tokens),
			refreshTokens: tokens,
			users:         user.NewInMemoryRepository(),
			weights:       tracking.NewInMemoryRepository(),
			history:       history.NewInMemoryRepository(),
		}, nil
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.Database).
		Msg("database connected")

	return &storage{
		credentials:   auth.NewPostgresCredentialRepository(pool),
		refreshTokens: auth.NewPostgresRefreshTokenRepository(pool),
		users:         user.NewPostgresRepository(pool),
		weights:       tracking.NewPostgresRepository(pool),
		history:       history.NewPostgresRepository(pool),
		checks:        []handler.Check{{Name: "database", Probe: pool.Ping}},
		close:         pool.Close,
	}, nil
}
