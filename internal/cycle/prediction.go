package cycle

import (
	"context"
	"encoding/json"
	"time"
)

// PredictionRequest is what the predictor needs about one user.
type PredictionRequest struct {
	UserID     string
	CycleDates []time.Time
}

// PredictionError is stored in place of a result when the predictor fails.
// Status is the HTTP status code, or 0 when no response was received.
type PredictionError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Prediction is the stored outcome of one predictor call. Exactly one of
// Result and Error is set.
type Prediction struct {
	Result      json.RawMessage  `json:"result,omitempty"`
	Error       *PredictionError `json:"error,omitempty"`
	PredictedAt time.Time        `json:"predicted_at"`
}

// Failed reports whether the prediction carries an error payload.
func (p *Prediction) Failed() bool {
	return p != nil && p.Error != nil
}

// Predictor asks an external service for a cycle prediction. Implementations
// never return transport or decoding failures as errors; they are folded
// into Prediction.Error. The error return is reserved for programming
// mistakes such as an unbuildable request.
type Predictor interface {
	Predict(ctx context.Context, req PredictionRequest) (Prediction, error)
}
