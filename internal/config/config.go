// Package config loads service configuration from defaults, an optional YAML
// file and FITPLAN_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fitplan/fitplan/internal/database"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FITPLAN_"

	// envSeparator splits nested keys in environment names:
	// FITPLAN_DATABASE__HOST sets database.host.
	envSeparator = "__"

	// StorageMemory keeps all data in process memory.
	StorageMemory = "memory"
	// StoragePostgres stores data in PostgreSQL.
	StoragePostgres = "postgres"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full service configuration.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Storage   string          `koanf:"storage"`
	Database  database.Config `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Nutrition NutritionConfig `koanf:"nutrition"`
	Predictor PredictorConfig `koanf:"predictor"`
	PubSub    PubSubConfig    `koanf:"pubsub"`
	Model     ModelConfig     `koanf:"model"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	CORS      CORSConfig      `koanf:"cors"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Env       string `koanf:"env"`
	Port      string `koanf:"port"`
	LogLevel  string `koanf:"log_level"`
	LogPretty bool   `koanf:"log_pretty"`
	// RequireTLS rejects plain HTTP requests that did not come through a
	// TLS-terminating proxy.
	RequireTLS bool `koanf:"require_tls"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSigningKey   string        `koanf:"jwt_signing_key"`
	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`
	BcryptCost      int           `koanf:"bcrypt_cost"`
}

// NutritionConfig holds the per-gender daily calorie floors.
type NutritionConfig struct {
	MinCaloriesMale   int `koanf:"min_calories_male"`
	MinCaloriesFemale int `koanf:"min_calories_female"`
}

// PredictorConfig configures the external cycle predictor client.
type PredictorConfig struct {
	BaseURL    string        `koanf:"base_url"`
	Timeout    time.Duration `koanf:"timeout"`
	MaxRetries int           `koanf:"max_retries"`
}

// PubSubConfig configures the job queue. An empty ProjectID selects the
// in-process queue.
type PubSubConfig struct {
	ProjectID      string `koanf:"project_id"`
	TopicID        string `koanf:"topic_id"`
	SubscriptionID string `koanf:"subscription_id"`
}

// ModelConfig describes the served recommendation model.
type ModelConfig struct {
	Version     string `koanf:"version"`
	MetricsPath string `koanf:"metrics_path"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	OTLPEndpoint string  `koanf:"otlp_endpoint"`
	SampleRatio  float64 `koanf:"sample_ratio"`
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		App: AppConfig{
			Env:      "development",
			Port:     "8080",
			LogLevel: "info",
		},
		Storage:  StoragePostgres,
		Database: database.DefaultConfig(),
		Auth: AuthConfig{
			JWTSigningKey:   "local-dev-signing-key-change-in-production",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
			BcryptCost:      12,
		},
		Nutrition: NutritionConfig{
			MinCaloriesMale:   1500,
			MinCaloriesFemale: 1200,
		},
		Predictor: PredictorConfig{
			BaseURL:    "http://localhost:8001",
			Timeout:    10 * time.Second,
			MaxRetries: 2,
		},
		PubSub: PubSubConfig{
			TopicID:        "fitplan-jobs",
			SubscriptionID: "fitplan-jobs-worker",
		},
		Model: ModelConfig{
			Version:     "1.0.0",
			MetricsPath: "ml_model/model_metrics.json",
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return cfg, fmt.Errorf("load env variables: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// transformEnv maps FITPLAN_SECTION__KEY=value to section.key. Comma-separated
// values become lists for list-valued keys.
func transformEnv(k, v string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	key = strings.ReplaceAll(key, envSeparator, ".")

	if key == "cors.allowed_origins" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return key, origins
	}
	return key, v
}

// Validate checks values that would otherwise fail at first use.
func (c Config) Validate() error {
	var problems []string

	if c.Storage != StorageMemory && c.Storage != StoragePostgres {
		problems = append(problems, fmt.Sprintf("storage must be %q or %q", StorageMemory, StoragePostgres))
	}
	if c.App.Port == "" {
		problems = append(problems, "app.port is required")
	}
	if c.Auth.JWTSigningKey == "" {
		problems = append(problems, "auth.jwt_signing_key is required")
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		problems = append(problems, "auth token TTLs must be positive")
	}
	if c.Nutrition.MinCaloriesMale <= 0 || c.Nutrition.MinCaloriesFemale <= 0 {
		problems = append(problems, "nutrition calorie floors must be positive")
	}
	if c.Predictor.Timeout <= 0 {
		problems = append(problems, "predictor.timeout must be positive")
	}
	if c.Predictor.MaxRetries < 0 {
		problems = append(problems, "predictor.max_retries must not be negative")
	}
	if c.PubSub.ProjectID != "" && (c.PubSub.TopicID == "" || c.PubSub.SubscriptionID == "") {
		problems = append(problems, "pubsub topic and subscription are required with a project")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
