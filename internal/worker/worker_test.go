package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/cycle"
	"github.com/fitplan/fitplan/internal/events"
	"github.com/fitplan/fitplan/internal/user"
)

type fakeProfiles struct {
	mu       sync.Mutex
	requests map[string]cycle.PredictionRequest
	stored   map[string]cycle.Prediction
	storeErr error
}

func (f *fakeProfiles) PredictionRequest(_ context.Context, userID string) (cycle.PredictionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[userID]
	if !ok {
		return cycle.PredictionRequest{}, user.ErrUserNotFound
	}
	return req, nil
}

func (f *fakeProfiles) StorePrediction(_ context.Context, userID string, p cycle.Prediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored[userID] = p
	return nil
}

func (f *fakeProfiles) get(userID string) (cycle.Prediction, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.stored[userID]
	return p, ok
}

type fakePredictor struct {
	calls  int
	result cycle.Prediction
}

func (f *fakePredictor) Predict(_ context.Context, _ cycle.PredictionRequest) (cycle.Prediction, error) {
	f.calls++
	return f.result, nil
}

func newProfiles() *fakeProfiles {
	return &fakeProfiles{
		requests: map[string]cycle.PredictionRequest{
			"usr_1": {UserID: "usr_1", CycleDates: []time.Time{time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}},
			"usr_2": {UserID: "usr_2"},
		},
		stored: map[string]cycle.Prediction{},
	}
}

func TestCyclePredictionJob_StoresResult(t *testing.T) {
	profiles := newProfiles()
	predictor := &fakePredictor{result: cycle.Prediction{Result: json.RawMessage(`{"next":"2026-06-29"}`)}}
	job := NewCyclePredictionJob(profiles, predictor, zerolog.Nop())

	require.NoError(t, job.Handle(context.Background(), events.NewJob(events.JobCyclePrediction, "usr_1")))

	p, ok := profiles.get("usr_1")
	require.True(t, ok)
	assert.JSONEq(t, `{"next":"2026-06-29"}`, string(p.Result))
}

func TestCyclePredictionJob_StoresFailure(t *testing.T) {
	profiles := newProfiles()
	predictor := &fakePredictor{result: cycle.Prediction{Error: &cycle.PredictionError{Error: "boom", Status: 500}}}
	job := NewCyclePredictionJob(profiles, predictor, zerolog.Nop())

	require.NoError(t, job.Handle(context.Background(), events.NewJob(events.JobCyclePrediction, "usr_1")))

	p, ok := profiles.get("usr_1")
	require.True(t, ok)
	assert.True(t, p.Failed())
}

func TestCyclePredictionJob_Skips(t *testing.T) {
	profiles := newProfiles()
	predictor := &fakePredictor{}
	job := NewCyclePredictionJob(profiles, predictor, zerolog.Nop())
	ctx := context.Background()

	assert.NoError(t, job.Handle(ctx, events.NewJob(events.JobCyclePrediction, "usr_missing")))
	assert.NoError(t, job.Handle(ctx, events.NewJob(events.JobCyclePrediction, "usr_2")))
	assert.NoError(t, job.Handle(ctx, events.NewJob(events.JobCyclePrediction, "")))
	assert.Zero(t, predictor.calls)
}

func TestCyclePredictionJob_StoreError(t *testing.T) {
	profiles := newProfiles()
	profiles.storeErr = errors.New("db down")
	job := NewCyclePredictionJob(profiles, &fakePredictor{}, zerolog.Nop())

	err := job.Handle(context.Background(), events.NewJob(events.JobCyclePrediction, "usr_1"))
	assert.Error(t, err)
}

func TestDispatcher(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	var seen []string
	d.Register(events.JobCyclePrediction, func(_ context.Context, job events.Job) error {
		seen = append(seen, job.UserID)
		if job.UserID == "usr_bad" {
			return errors.New("nope")
		}
		return nil
	})
	ctx := context.Background()

	assert.NoError(t, d.Handle(ctx, events.NewJob(events.JobCyclePrediction, "usr_1")))
	assert.Error(t, d.Handle(ctx, events.NewJob(events.JobCyclePrediction, "usr_bad")))
	assert.NoError(t, d.Handle(ctx, events.NewJob("mystery", "usr_1")))

	assert.Equal(t, []string{"usr_1", "usr_bad"}, seen)
	m := d.Metrics()
	assert.EqualValues(t, 1, m.Processed)
	assert.EqualValues(t, 1, m.Failed)
	assert.EqualValues(t, 1, m.Dropped)
}

func TestPubSubHandler_Process(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())
	d.Register(events.JobCyclePrediction, func(_ context.Context, job events.Job) error {
		if job.UserID == "usr_bad" {
			return errors.New("nope")
		}
		return nil
	})
	h := &PubSubHandler{dispatcher: d, logger: zerolog.Nop()}
	ctx := context.Background()

	good, err := events.NewJob(events.JobCyclePrediction, "usr_1").Encode()
	require.NoError(t, err)
	bad, err := events.NewJob(events.JobCyclePrediction, "usr_bad").Encode()
	require.NoError(t, err)

	assert.True(t, h.process(ctx, "1", good))
	assert.False(t, h.process(ctx, "2", bad))
	assert.True(t, h.process(ctx, "3", []byte("not json")))
}

func TestRunQueue(t *testing.T) {
	profiles := newProfiles()
	predictor := &fakePredictor{result: cycle.Prediction{Result: json.RawMessage(`{}`)}}
	d := NewDispatcher(zerolog.Nop())
	d.Register(events.JobCyclePrediction, NewCyclePredictionJob(profiles, predictor, zerolog.Nop()).Handle)

	q := events.NewMemoryQueue(4)
	done := make(chan struct{})
	go func() {
		RunQueue(context.Background(), q, d)
		close(done)
	}()

	require.NoError(t, q.Publish(context.Background(), events.NewJob(events.JobCyclePrediction, "usr_1")))
	assert.Eventually(t, func() bool {
		_, ok := profiles.get("usr_1")
		return ok
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, q.Close())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunQueue did not stop after Close")
	}
}
