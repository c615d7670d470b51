// Package httppredictor calls the external cycle prediction service over HTTP.
package httppredictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/cycle"
	"github.com/fitplan/fitplan/internal/provider/resilience"
)

// ProviderName identifies the predictor in the resilience registry.
const ProviderName = "cycle-predictor"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// ClientConfig holds configuration for the predictor client.
type ClientConfig struct {
	// BaseURL is the service root; requests go to BaseURL + "/predict".
	BaseURL string

	// HTTPClient defaults to a resilient client named ProviderName.
	HTTPClient *resilience.Client

	Logger zerolog.Logger

	// Now is used to stamp predictions. Defaults to time.Now.
	Now func() time.Time
}

// Client implements cycle.Predictor.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
	now        func() time.Time
}

var _ cycle.Predictor = (*Client)(nil)

// NewClient creates a predictor client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
		now:        now,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

type predictRequest struct {
	UserID     string   `json:"user_id"`
	CycleDates []string `json:"cycle_dates"`
}

// Predict posts the user's cycle dates to the service. Non-200 responses,
// invalid JSON and network failures come back as a Prediction with Error set.
func (c *Client) Predict(ctx context.Context, in cycle.PredictionRequest) (cycle.Prediction, error) {
	body := predictRequest{
		UserID:     in.UserID,
		CycleDates: make([]string, 0, len(in.CycleDates)),
	}
	for _, d := range in.CycleDates {
		body.CycleDates = append(body.CycleDates, d.Format(cycle.DateLayout))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return cycle.Prediction{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return cycle.Prediction{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", in.UserID).Msg("cycle predictor unreachable")
		return c.failed(err.Error(), 0), nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.failed(fmt.Sprintf("reading response: %v", err), resp.StatusCode), nil
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("user_id", in.UserID).Msg("cycle predictor returned error status")
		return c.failed(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), resp.StatusCode), nil
	}

	if !json.Valid(raw) {
		c.logger.Warn().Str("user_id", in.UserID).Msg("cycle predictor returned invalid JSON")
		return c.failed("invalid JSON response", resp.StatusCode), nil
	}

	return cycle.Prediction{
		Result:      json.RawMessage(raw),
		PredictedAt: c.now().UTC(),
	}, nil
}

func (c *Client) failed(msg string, status int) cycle.Prediction {
	return cycle.Prediction{
		Error:       &cycle.PredictionError{Error: msg, Status: status},
		PredictedAt: c.now().UTC(),
	}
}
