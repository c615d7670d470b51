package modelinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/modelinfo"
)

func TestSeed_Defaults(t *testing.T) {
	cat := modelinfo.Seed(modelinfo.SeedConfig{
		LastUpdated: time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC),
		Logger:      zerolog.Nop(),
	})

	assert.Equal(t, modelinfo.DefaultVersion, cat.ModelVersion)
	assert.Equal(t, "2026-05-04", cat.LastUpdated)
	require.Len(t, cat.Features, 9)
	assert.Equal(t, "Fitness Goal", cat.Features[0].Name)
	assert.Equal(t, "Menstrual Cycle", cat.Features[len(cat.Features)-1].Name)
	for i := 1; i < len(cat.Features); i++ {
		assert.GreaterOrEqual(t, cat.Features[i-1].Importance, cat.Features[i].Importance)
	}
	assert.Len(t, cat.Capabilities, 8)
	assert.Equal(t, 0.89, cat.AccuracyMetrics["overall_accuracy"])
}

func TestSeed_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model_metrics.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"overall_accuracy": 0.95, "component_accuracy": {"bmi_guidance": 0.97}}`), 0o600))

	cat := modelinfo.Seed(modelinfo.SeedConfig{Version: "2.1.0", MetricsPath: path, Logger: zerolog.Nop()})

	assert.Equal(t, "2.1.0", cat.ModelVersion)
	assert.Equal(t, 0.95, cat.AccuracyMetrics["overall_accuracy"])
	components, ok := cat.AccuracyMetrics["component_accuracy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.97, components["bmi_guidance"])
	assert.NotContains(t, cat.AccuracyMetrics, "user_satisfaction")
}

func TestSeed_MetricsFallback(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"overall_accuracy": [`), 0o600))

	for _, path := range []string{filepath.Join(dir, "missing.json"), broken} {
		cat := modelinfo.Seed(modelinfo.SeedConfig{MetricsPath: path, Logger: zerolog.Nop()})
		assert.Equal(t, 0.89, cat.AccuracyMetrics["overall_accuracy"], path)
	}
}
