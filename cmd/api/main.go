// Package main provides the entrypoint for the fitplan API server.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api"
	"github.com/fitplan/fitplan/internal/api/handler"
	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/auth"
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/config"
	"github.com/fitplan/fitplan/internal/cycle/httppredictor"
	"github.com/fitplan/fitplan/internal/events"
	"github.com/fitplan/fitplan/internal/history"
	"github.com/fitplan/fitplan/internal/modelinfo"
	"github.com/fitplan/fitplan/internal/nutrition"
	"github.com/fitplan/fitplan/internal/provider/resilience"
	"github.com/fitplan/fitplan/internal/recommendation"
	"github.com/fitplan/fitplan/internal/telemetry"
	"github.com/fitplan/fitplan/internal/tracking"
	"github.com/fitplan/fitplan/internal/user"
	"github.com/fitplan/fitplan/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "fitplan-api"

func main() {
	configPath := flag.String("config", os.Getenv("FITPLAN_CONFIG"), "path to an optional YAML config file")
	flag.Parse()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := newLogger(cfg.App)
	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage).
		Msg("starting fitplan API")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api exited")
	}
	log.Info().Msg("server stopped")
}

func newLogger(cfg config.AppConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.LogPretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stdout)
	}
	return log.Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()
}

func run(cfg config.Config, log zerolog.Logger) error {
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
	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		return err
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	// Auth
	authService := auth.NewService(auth.ServiceConfig{
		JWTService: auth.NewJWTService(auth.JWTConfig{
			SigningKey: cfg.Auth.JWTSigningKey,
			Issuer:     "fitplan-api",
			Audience:   "fitplan-clients",
			TTL:        cfg.Auth.AccessTokenTTL,
		}),
		Credentials:     store.credentials,
		RefreshRepo:     store.refreshTokens,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		BcryptCost:      cfg.Auth.BcryptCost,
	})
	if cfg.Auth.JWTSigningKey == config.Default().Auth.JWTSigningKey && !cfg.IsDevelopment() {
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	// Cycle predictor behind a resilient client
	providers := resilience.NewRegistry()
	breaker := resilience.DefaultCircuitBreakerConfig(httppredictor.ProviderName)
	breaker.OnStateChange = resilience.LogStateChanges(log)
	predictorHTTP := resilience.NewClient(resilience.ClientConfig{
		Name:           httppredictor.ProviderName,
		Timeout:        cfg.Predictor.Timeout,
		MaxRetries:     uint64(cfg.Predictor.MaxRetries), //nolint:gosec // validated non-negative
		CircuitBreaker: &breaker,
		Registry:       providers,
	})
	predictor := httppredictor.NewClient(httppredictor.ClientConfig{
		BaseURL:    cfg.Predictor.BaseURL,
		HTTPClient: predictorHTTP,
		Logger:     log,
	})

	// Job queue: Pub/Sub when a project is configured, otherwise in process.
	var (
		publisher  events.Publisher
		dispatcher *worker.Dispatcher
		queue      *events.MemoryQueue
	)
	if cfg.PubSub.ProjectID != "" {
		publisher, err = events.NewPubSubPublisher(ctx, events.PubSubConfig{
			ProjectID: cfg.PubSub.ProjectID,
			TopicID:   cfg.PubSub.TopicID,
			Logger:    log,
		})
		if err != nil {
			return err
		}
		log.Info().Str("topic", cfg.PubSub.TopicID).Msg("publishing jobs to pubsub")
	} else {
		queue = events.NewMemoryQueue(0)
		publisher = queue
		dispatcher = worker.NewDispatcher(log)
		log.Info().Msg("running jobs in process")
	}
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close job publisher")
		}
	}()

	// Domain services
	weights := tracking.NewService(store.weights)
	users := user.NewService(user.ServiceConfig{
		Repository: store.users,
		Weights:    weights,
		Publisher:  publisher,
		Logger:     log,
	})
	hist := history.NewService(store.history)
	policy := bm.CaloriePolicy{
		MinMale:   cfg.Nutrition.MinCaloriesMale,
		MinFemale: cfg.Nutrition.MinCaloriesFemale,
	}
	recommendations := recommendation.NewService(recommendation.NewComposer(nil), hist, log)
	nutritionService := nutrition.NewService(nutrition.NewGenerator(policy, nil), hist, log)
	catalogue := modelinfo.Seed(modelinfo.SeedConfig{
		Version:     cfg.Model.Version,
		MetricsPath: cfg.Model.MetricsPath,
		Logger:      log,
	})

	var jobs handler.JobMetricsSource
	if dispatcher != nil {
		dispatcher.Register(events.JobCyclePrediction,
			worker.NewCyclePredictionJob(users, predictor, log).Handle)
		jobs = dispatcher
		if _, err := telemetry.ObserveJobs(tp.Meter, dispatcher); err != nil {
			log.Warn().Err(err).Msg("failed to register job metrics")
		}
		go worker.RunQueue(ctx, queue, dispatcher)
	}

	router := api.NewRouter(api.RouterConfig{
		Version:               Version,
		BuildTime:             BuildTime,
		Logger:                log,
		Metrics:               metrics,
		CORSOrigins:           cfg.CORS.AllowedOrigins,
		RequireTLS:            cfg.App.RequireTLS,
		AuthService:           authService,
		UserService:           users,
		TrackingService:       weights,
		HistoryService:        hist,
		RecommendationService: recommendations,
		NutritionService:      nutritionService,
		Catalogue:             catalogue,
		CaloriePolicy:         policy,
		Checks:                store.checks,
		Providers:             providers,
		Jobs:                  jobs,
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
