// Package worker runs background jobs published by the API.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/events"
)

// Handler processes one job. A returned error asks for redelivery.
type Handler func(ctx context.Context, job events.Job) error

// Metrics tracks job statistics.
type Metrics struct {
	Processed       int64         `json:"processed"`
	Failed          int64         `json:"failed"`
	Dropped         int64         `json:"dropped"`
	LastJobAt       time.Time     `json:"last_job_at,omitempty"`
	LastJobDuration time.Duration `json:"last_job_duration_ns"`
}

// Dispatcher routes jobs to handlers by type.
type Dispatcher struct {
	handlers map[events.JobType]Handler
	logger   zerolog.Logger

	mu      sync.RWMutex
	metrics Metrics
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[events.JobType]Handler),
		logger:   logger,
	}
}

// Register binds a handler to a job type, replacing any previous one.
func (d *Dispatcher) Register(jobType events.JobType, h Handler) {
	d.handlers[jobType] = h
}

// Handle runs the handler for job. Unknown job types are logged and
// dropped without error so they are not redelivered.
func (d *Dispatcher) Handle(ctx context.Context, job events.Job) error {
	logger := d.logger.With().
		Str("job_type", string(job.JobType)).
		Str("user_id", job.UserID).
		Logger()

	h, ok := d.handlers[job.JobType]
	if !ok {
		logger.Warn().Msg("unknown job type")
		d.record(func(m *Metrics) { m.Dropped++ })
		return nil
	}

	start := time.Now()
	err := h(ctx, job)
	duration := time.Since(start)

	d.record(func(m *Metrics) {
		m.LastJobAt = start
		m.LastJobDuration = duration
		if err != nil {
			m.Failed++
		} else {
			m.Processed++
		}
	})

	if err != nil {
		logger.Error().Err(err).Dur("duration", duration).Msg("job failed")
		return fmt.Errorf("%s job: %w", job.JobType, err)
	}

	logger.Info().Dur("duration", duration).Msg("job completed successfully")
	return nil
}

func (d *Dispatcher) record(fn func(*Metrics)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.metrics)
}

// Metrics returns a snapshot of the job counters.
func (d *Dispatcher) Metrics() Metrics {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.metrics
}

// RunQueue feeds jobs from an in-process queue to the dispatcher until ctx
// is done or the queue is closed. Failed jobs are not retried.
func RunQueue(ctx context.Context, q *events.MemoryQueue, d *Dispatcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-q.Jobs():
			if !ok {
				return
			}
			_ = d.Handle(ctx, job)
		}
	}
}
