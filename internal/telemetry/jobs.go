package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/fitplan/fitplan/internal/worker"
)

// JobMetricsSource exposes background job counters.
type JobMetricsSource interface {
	Metrics() worker.Metrics
}

// ObserveJobs publishes the counters of src as observable instruments on
// meter. The returned registration stops the callbacks when unregistered.
func ObserveJobs(meter metric.Meter, src JobMetricsSource) (metric.Registration, error) {
	processed, err := meter.Int64ObservableCounter(
		"fitplan.jobs.processed",
		metric.WithDescription("Background jobs completed successfully"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	failed, err := meter.Int64ObservableCounter(
		"fitplan.jobs.failed",
		metric.WithDescription("Background jobs that returned an error"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	dropped, err := meter.Int64ObservableCounter(
		"fitplan.jobs.dropped",
		metric.WithDescription("Background jobs with no registered handler"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	lastDuration, err := meter.Float64ObservableGauge(
		"fitplan.jobs.last_duration",
		metric.WithDescription("Duration of the most recent background job"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration gauge: %w", err)
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		m := src.Metrics()
		o.ObserveInt64(processed, m.Processed)
		o.ObserveInt64(failed, m.Failed)
		o.ObserveInt64(dropped, m.Dropped)
		o.ObserveFloat64(lastDuration, m.LastJobDuration.Seconds())
		return nil
	}, processed, failed, dropped, lastDuration)
}
