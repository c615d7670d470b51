// Package handler provides HTTP handlers for the fitplan API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/provider/resilience"
	"github.com/fitplan/fitplan/internal/worker"
)

// readinessTimeout bounds every dependency check.
const readinessTimeout = 2 * time.Second

// Check probes one dependency, such as the database pool.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// JobMetricsSource reports in-process background job counters.
type JobMetricsSource interface {
	Metrics() worker.Metrics
}

// OpsConfig holds dependencies for the ops endpoints. Everything but the
// version is optional.
type OpsConfig struct {
	Version   string
	BuildTime string
	Checks    []Check
	Providers *resilience.Registry
	Jobs      JobMetricsSource
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
	now func() time.Time
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{cfg: cfg, now: time.Now}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.now().UTC()),
		Details: map[string]any{
			"version":   h.cfg.Version,
			"buildTime": h.cfg.BuildTime,
		},
	})
}

// ReadinessCheck handles GET /v1/ops/ready - 503 while any dependency check
// fails.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	subsystems := h.runChecks(r.Context())

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.now().UTC()),
	}
	status := http.StatusOK
	for _, s := range subsystems {
		if s.Status == models.HealthStatusFail {
			if health.Details == nil {
				health.Details = map[string]any{}
			}
			health.Details[s.Name] = *s.Detail
			health.Status = models.HealthStatusFail
			status = http.StatusServiceUnavailable
		}
	}
	response.JSON(w, r, status, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem, provider and job
// status. It always answers 200. A failing subsystem fails the overall
// status; a failing provider only degrades it.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(h.now().UTC()),
		Subsystems: h.runChecks(r.Context()),
		Providers:  h.providerStatus(),
	}

	for _, s := range status.Subsystems {
		status.Status = worst(status.Status, s.Status)
	}
	for _, p := range status.Providers {
		if p.Status != models.HealthStatusOK {
			status.Status = worst(status.Status, models.HealthStatusDegraded)
		}
	}

	if h.cfg.Jobs != nil {
		m := h.cfg.Jobs.Metrics()
		jobs := &models.JobStats{Processed: m.Processed, Failed: m.Failed, Dropped: m.Dropped}
		if !m.LastJobAt.IsZero() {
			at := models.Timestamp(m.LastJobAt)
			jobs.LastJobAt = &at
		}
		status.Jobs = jobs
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) runChecks(ctx context.Context) []models.SubsystemStatus {
	out := make([]models.SubsystemStatus, 0, len(h.cfg.Checks))
	for _, c := range h.cfg.Checks {
		checkCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
		err := c.Probe(checkCtx)
		cancel()

		s := models.SubsystemStatus{Name: c.Name, Status: models.HealthStatusOK}
		if err != nil {
			detail := err.Error()
			s.Status = models.HealthStatusFail
			s.Detail = &detail
		}
		out = append(out, s)
	}
	return out
}

func (h *OpsHandler) providerStatus() []models.ProviderStatus {
	if h.cfg.Providers == nil {
		return []models.ProviderStatus{}
	}

	all := h.cfg.Providers.GetAllHealth()
	out := make([]models.ProviderStatus, 0, len(all))
	for _, p := range all {
		ps := models.ProviderStatus{Provider: p.Name, Status: healthFor(p.Status())}
		if p.LastSuccessAt != nil {
			t := models.Timestamp(*p.LastSuccessAt)
			ps.LastSuccessAt = &t
		}
		if p.LastFailureAt != nil {
			t := models.Timestamp(*p.LastFailureAt)
			ps.LastFailureAt = &t
		}
		if p.LastError != "" {
			msg := p.LastError
			ps.Message = &msg
		}
		out = append(out, ps)
	}
	return out
}

func healthFor(providerStatus string) models.HealthStatus {
	switch providerStatus {
	case resilience.StatusUnhealthy:
		return models.HealthStatusFail
	case resilience.StatusDegraded:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}

var healthRank = map[models.HealthStatus]int{
	models.HealthStatusOK:       0,
	models.HealthStatusDegraded: 1,
	models.HealthStatusFail:     2,
}

func worst(a, b models.HealthStatus) models.HealthStatus {
	if healthRank[b] > healthRank[a] {
		return b
	}
	return a
}
