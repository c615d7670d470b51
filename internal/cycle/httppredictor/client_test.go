package httppredictor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/cycle"
	"github.com/fitplan/fitplan/internal/cycle/httppredictor"
	"github.com/fitplan/fitplan/internal/provider/resilience"
)

var fixedNow = time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)

func newClient(t *testing.T, url string, registry *resilience.Registry) *httppredictor.Client {
	t.Helper()
	cfg := resilience.DefaultClientConfig(httppredictor.ProviderName)
	cfg.MaxRetries = 1
	cfg.InitialInterval = 5 * time.Millisecond
	cfg.Timeout = time.Second
	cfg.Registry = registry

	return httppredictor.NewClient(httppredictor.ClientConfig{
		BaseURL:    url + "/",
		HTTPClient: resilience.NewClient(cfg),
		Logger:     zerolog.Nop(),
		Now:        func() time.Time { return fixedNow },
	})
}

func request() cycle.PredictionRequest {
	return cycle.PredictionRequest{
		UserID: "usr_123",
		CycleDates: []time.Time{
			time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestClient_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "usr_123", body["user_id"])
		assert.Equal(t, []any{"2026-08-03", "2026-08-31"}, body["cycle_dates"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"next_period":"2026-09-28","confidence":0.8}`))
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	client := newClient(t, server.URL, registry)

	pred, err := client.Predict(context.Background(), request())
	require.NoError(t, err)

	assert.False(t, pred.Failed())
	assert.JSONEq(t, `{"next_period":"2026-09-28","confidence":0.8}`, string(pred.Result))
	assert.Equal(t, fixedNow, pred.PredictedAt)
	assert.NotNil(t, registry.GetHealth(httppredictor.ProviderName).LastSuccessAt)
}

func TestClient_Predict_Failures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantError  string
		wantStatus int
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantError:  "unexpected status code: 400",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "server error after retries",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantError:  "unexpected status code: 503",
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
			wantError:  "invalid JSON response",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			pred, err := newClient(t, server.URL, nil).Predict(context.Background(), request())
			require.NoError(t, err)

			require.True(t, pred.Failed())
			assert.Nil(t, pred.Result)
			assert.Equal(t, tt.wantError, pred.Error.Error)
			assert.Equal(t, tt.wantStatus, pred.Error.Status)
		})
	}
}

func TestClient_Predict_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	pred, err := newClient(t, url, nil).Predict(context.Background(), request())
	require.NoError(t, err)

	require.True(t, pred.Failed())
	assert.Equal(t, 0, pred.Error.Status)
	assert.NotEmpty(t, pred.Error.Error)
}
