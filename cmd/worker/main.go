// Package main provides the entrypoint for the fitplan background worker.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/config"
	"github.com/fitplan/fitplan/internal/cycle/httppredictor"
	"github.com/fitplan/fitplan/internal/database"
	"github.com/fitplan/fitplan/internal/events"
	"github.com/fitplan/fitplan/internal/provider/resilience"
	"github.com/fitplan/fitplan/internal/telemetry"
	"github.com/fitplan/fitplan/internal/user"
	"github.com/fitplan/fitplan/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "fitplan-worker"

func main() {
	configPath := flag.String("config", os.Getenv("FITPLAN_CONFIG"), "path to an optional YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().Str("build_time", BuildTime).Msg("starting fitplan worker")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("worker exited")
	}
	log.Info().Msg("worker stopped")
}

func run(cfg config.Config, log zerolog.Logger) error {
	// The worker shares state with the API only through PostgreSQL and
	// Pub/Sub; the in-memory setup runs jobs inside the API process.
	if cfg.PubSub.ProjectID == "" {
		return errors.New("pubsub.project_id is required")
	}
	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("worker requires %q storage", config.StoragePostgres)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.App.Env,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
		SampleRatio:    cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	users := user.NewService(user.ServiceConfig{
		Repository: user.NewPostgresRepository(pool),
		Logger:     log,
	})

	breaker := resilience.DefaultCircuitBreakerConfig(httppredictor.ProviderName)
	breaker.OnStateChange = resilience.LogStateChanges(log)
	predictor := httppredictor.NewClient(httppredictor.ClientConfig{
		BaseURL: cfg.Predictor.BaseURL,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:           httppredictor.ProviderName,
			Timeout:        cfg.Predictor.Timeout,
			MaxRetries:     uint64(cfg.Predictor.MaxRetries), //nolint:gosec // validated non-negative
			CircuitBreaker: &breaker,
		}),
		Logger: log,
	})

	dispatcher := worker.NewDispatcher(log)
	dispatcher.Register(events.JobCyclePrediction, worker.NewCyclePredictionJob(users, predictor, log).Handle)
	if _, err := telemetry.ObserveJobs(tp.Meter, dispatcher); err != nil {
		log.Warn().Err(err).Msg("failed to register job metrics")
	}

	subscriber, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
		ProjectID:        cfg.PubSub.ProjectID,
		SubscriptionName: cfg.PubSub.SubscriptionID,
		Dispatcher:       dispatcher,
		Logger:           log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := subscriber.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close pubsub client")
		}
	}()

	// Health endpoint for the container platform.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "healthy",
			"version": Version,
			"jobs":    dispatcher.Metrics(),
		})
	})
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	receiveErr := subscriber.Start(ctx)

	log.Info().Msg("shutting down worker")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	if receiveErr != nil && !errors.Is(receiveErr, context.Canceled) {
		return receiveErr
	}
	return nil
}
