// Package modelinfo describes the recommendation model to clients: its
// version, the profile features it reads, what it produces and how well it
// scores.
package modelinfo

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// DefaultVersion is reported when no version is configured.
const DefaultVersion = "1.0.0"

// Feature is one input the model reads. Importance is in [0, 1].
type Feature struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Importance  float64 `json:"importance"`
}

// Capability is one section the model produces.
type Capability struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalogue is the immutable model description served to clients.
type Catalogue struct {
	ModelVersion    string         `json:"model_version"`
	Features        []Feature      `json:"features"`
	Capabilities    []Capability   `json:"capabilities"`
	AccuracyMetrics map[string]any `json:"accuracy_metrics"`
	LastUpdated     string         `json:"last_updated"`
}

// SeedConfig configures Seed.
type SeedConfig struct {
	Version string
	// LastUpdated defaults to the seeding day.
	LastUpdated time.Time
	// MetricsPath points at an optional JSON or YAML file replacing the
	// default accuracy metrics.
	MetricsPath string
	Logger      zerolog.Logger
}

// Seed builds the catalogue once at start-up. A missing or unreadable metrics
// file falls back to the defaults; it is logged, never returned.
func Seed(cfg SeedConfig) *Catalogue {
	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}
	updated := cfg.LastUpdated
	if updated.IsZero() {
		updated = time.Now()
	}

	features := defaultFeatures()
	sort.SliceStable(features, func(i, j int) bool { return features[i].Importance > features[j].Importance })

	metrics := defaultMetrics()
	if cfg.MetricsPath != "" {
		loaded, err := LoadMetrics(cfg.MetricsPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			cfg.Logger.Debug().Str("path", cfg.MetricsPath).Msg("model metrics file not found, using defaults")
		case err != nil:
			cfg.Logger.Warn().Err(err).Str("path", cfg.MetricsPath).Msg("model metrics file unreadable, using defaults")
		default:
			metrics = loaded
		}
	}

	return &Catalogue{
		ModelVersion:    version,
		Features:        features,
		Capabilities:    defaultCapabilities(),
		AccuracyMetrics: metrics,
		LastUpdated:     updated.Format("2006-01-02"),
	}
}

// LoadMetrics reads an accuracy metrics document. JSON is read through the
// YAML parser.
func LoadMetrics(path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading model metrics: %w", err)
	}

	raw := k.Raw()
	if len(raw) == 0 {
		return nil, errors.New("model metrics file is empty")
	}
	return raw, nil
}

func defaultFeatures() []Feature {
	return []Feature{
		{Name: "Gender", Description: "User's gender (male or female) affects exercise recommendations and caloric needs", Importance: 0.85},
		{Name: "Age", Description: "User's age influences exercise intensity, recovery needs, and training focus", Importance: 0.80},
		{Name: "Height", Description: "Used for BMI calculation and body proportion considerations", Importance: 0.65},
		{Name: "Weight", Description: "Current weight used for BMI, caloric needs, and progress tracking", Importance: 0.90},
		{Name: "BMI", Description: "Body Mass Index calculated from height and weight, used for health risk assessment", Importance: 0.75},
		{Name: "Fitness Goal", Description: "Primary goal (weight loss, maintenance, weight gain, cutting) determines overall program structure", Importance: 0.95},
		{Name: "Activity Level", Description: "Current activity level affects caloric needs and exercise prescription", Importance: 0.85},
		{Name: "Target Weight", Description: "Goal weight used for progress projection and program adjustment", Importance: 0.70},
		{Name: "Menstrual Cycle", Description: "For women, cycle phase affects energy levels, recovery, and training optimization", Importance: 0.60},
	}
}

func defaultCapabilities() []Capability {
	return []Capability{
		{Name: "Weekly Training Structure", Description: "Generates personalized weekly workout schedules based on goals and availability"},
		{Name: "Cardio Training Recommendations", Description: "Provides specific cardio exercise recommendations with intensity and duration"},
		{Name: "Strength Training Programs", Description: "Creates targeted strength training programs with exercise selection and progression"},
		{Name: "BMI-Specific Guidance", Description: "Offers health and fitness guidance specific to user's BMI category"},
		{Name: "Age-Appropriate Recommendations", Description: "Adjusts recommendations based on age-related considerations and limitations"},
		{Name: "Weight Change Projections", Description: "Projects weight change timelines based on current metrics and goals"},
		{Name: "Menstrual Cycle Optimization", Description: "For women, provides training adjustments based on menstrual cycle phase"},
		{Name: "Progression Planning", Description: "Creates long-term progression plans with appropriate intensity increases"},
	}
}

func defaultMetrics() map[string]any {
	return map[string]any{
		"overall_accuracy":         0.89,
		"recommendation_precision": 0.92,
		"user_satisfaction":        0.87,
		"component_accuracy": map[string]any{
			"weekly_structure":     0.91,
			"cardio_training":      0.88,
			"strength_training":    0.90,
			"progression_plan":     0.85,
			"bmi_guidance":         0.93,
			"age_guidance":         0.89,
			"weight_change":        0.86,
			"cycle_considerations": 0.82,
		},
	}
}
