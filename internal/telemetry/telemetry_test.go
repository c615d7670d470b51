package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/fitplan/fitplan/internal/telemetry"
	"github.com/fitplan/fitplan/internal/worker"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "fitplan-test",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   "localhost:4317",
		Enabled:        false,
	})

	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)

	assert.NoError(t, provider.Shutdown(ctx))
}

func TestProvider_Shutdown_NilProviders(t *testing.T) {
	provider := &telemetry.Provider{}
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestProvider_Shutdown_FlushesProviders(t *testing.T) {
	provider := &telemetry.Provider{
		TracerProvider: sdktrace.NewTracerProvider(),
		MeterProvider:  sdkmetric.NewMeterProvider(),
	}
	ctx := context.Background()

	require.NoError(t, provider.Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	// Ratio sampling reads the low eight bytes.
	traceID := trace.TraceID{8: 0xff, 9: 0xff, 10: 0xff, 11: 0xff, 12: 0xff, 13: 0xff, 14: 0xff, 15: 0xff}

	tests := []struct {
		name   string
		ratio  float64
		expect sdktrace.SamplingDecision
	}{
		{"zero records everything", 0, sdktrace.RecordAndSample},
		{"one records everything", 1, sdktrace.RecordAndSample},
		{"tiny ratio drops high trace ids", 0.0001, sdktrace.Drop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := telemetry.Sampler(tt.ratio).ShouldSample(sdktrace.SamplingParameters{
				ParentContext: context.Background(),
				TraceID:       traceID,
				Name:          "GET /v1/ops/health",
			})
			assert.Equal(t, tt.expect, result.Decision)
		})
	}
}

type fixedJobs worker.Metrics

func (f fixedJobs) Metrics() worker.Metrics { return worker.Metrics(f) }

func TestObserveJobs(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	reg, err := telemetry.ObserveJobs(meter, fixedJobs{
		Processed:       7,
		Failed:          2,
		Dropped:         1,
		LastJobDuration: 1500 * time.Millisecond,
	})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	got := map[string]float64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				got[m.Name] = float64(data.DataPoints[0].Value)
			case metricdata.Gauge[float64]:
				got[m.Name] = data.DataPoints[0].Value
			}
		}
	}

	assert.Equal(t, 7.0, got["fitplan.jobs.processed"])
	assert.Equal(t, 2.0, got["fitplan.jobs.failed"])
	assert.Equal(t, 1.0, got["fitplan.jobs.dropped"])
	assert.InDelta(t, 1.5, got["fitplan.jobs.last_duration"], 0.0001)

	require.NoError(t, reg.Unregister())
}
