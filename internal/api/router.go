// Package api provides the HTTP API for fitplan.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/handler"
	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/auth"
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/history"
	"github.com/fitplan/fitplan/internal/modelinfo"
	"github.com/fitplan/fitplan/internal/nutrition"
	"github.com/fitplan/fitplan/internal/provider/resilience"
	"github.com/fitplan/fitplan/internal/recommendation"
	"github.com/fitplan/fitplan/internal/tracking"
	"github.com/fitplan/fitplan/internal/user"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger
	Metrics   *middleware.Metrics

	// CORSOrigins enables CORS for the listed origins when non-empty.
	CORSOrigins []string
	RequireTLS  bool

	AuthService           *auth.Service
	UserService           *user.Service
	TrackingService       *tracking.Service
	HistoryService        *history.Service
	RecommendationService *recommendation.Service
	NutritionService      *nutrition.Service
	Catalogue             *modelinfo.Catalogue
	CaloriePolicy         bm.CaloriePolicy

	// Ops endpoint sources; all optional.
	Checks    []handler.Check
	Providers *resilience.Registry
	Jobs      handler.JobMetricsSource
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID) // Generate/propagate request ID first
	r.Use(middleware.Tracing()) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSOrigins)) // Answers preflights before TLS and content checks
	}
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement behind a load balancer
	r.Use(middleware.RequireJSON)                // JSON request bodies only

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Problem(w, r, http.StatusMethodNotAllowed, "method not allowed on this endpoint")
	})

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Checks:    cfg.Checks,
		Providers: cfg.Providers,
		Jobs:      cfg.Jobs,
	})
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.UserService, cfg.Logger)
	profileHandler := handler.NewProfileHandler(handler.ProfileConfig{
		Users:  cfg.UserService,
		Auth:   cfg.AuthService,
		Policy: cfg.CaloriePolicy,
		Forget: []handler.Forgetter{cfg.TrackingService, cfg.HistoryService},
		Logger: cfg.Logger,
	})
	reportHandler := handler.NewReportHandler(cfg.UserService, cfg.RecommendationService, cfg.NutritionService, cfg.Logger)
	weightHandler := handler.NewWeightHandler(cfg.TrackingService, cfg.Logger)
	modelInfoHandler := handler.NewModelInfoHandler(cfg.Catalogue)

	authMiddleware := middleware.Auth(cfg.AuthService)

	// Rate limits per endpoint category
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)         // 10 req/min
	computeRateLimit := middleware.RateLimitByUser(middleware.ComputeRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min
	userRateLimit := middleware.RateLimitByUser(middleware.StandardRateLimit)   // 100 req/min per user

	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints - strict per-IP rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.With(authMiddleware).Post("/logout", authHandler.Logout)
			r.With(authMiddleware).Post("/logout-all", authHandler.LogoutAll)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Model catalogue (public)
		r.With(standardRateLimit).Get("/model-features", modelInfoHandler.GetFeatures)

		// Everything below is authenticated and limited per user
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Route("/me/profile", func(r chi.Router) {
				r.Use(userRateLimit)
				r.Get("/", profileHandler.GetProfile)
				r.Patch("/", profileHandler.UpdateProfile)
				r.Delete("/", profileHandler.DeleteProfile)
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.With(computeRateLimit).Post("/", reportHandler.CreateRecommendation)
				r.With(userRateLimit).Get("/", reportHandler.ListRecommendations)
			})

			r.Route("/nutrition-plans", func(r chi.Router) {
				r.With(computeRateLimit).Post("/", reportHandler.CreateNutritionPlan)
				r.With(userRateLimit).Get("/", reportHandler.ListNutritionPlans)
			})

			r.Route("/weight-entries", func(r chi.Router) {
				r.Use(userRateLimit)
				r.Get("/", weightHandler.ListEntries)
				r.Post("/", weightHandler.CreateEntry)
				r.Put("/{entryId}", weightHandler.UpdateEntry)
				r.Delete("/{entryId}", weightHandler.DeleteEntry)
			})

			r.With(userRateLimit).Get("/weight-history", weightHandler.GetHistory)
		})
	})

	return r
}
