package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/events"
)

func TestJob_EncodeDecode(t *testing.T) {
	job := events.NewJob(events.JobCyclePrediction, "usr_1")

	data, err := job.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"job_type":"cycle_prediction"`)

	decoded, err := events.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, job.UserID, decoded.UserID)
	assert.True(t, job.RequestedAt.Equal(decoded.RequestedAt))

	_, err = events.Decode([]byte("{"))
	assert.Error(t, err)
}

func TestMemoryQueue(t *testing.T) {
	ctx := context.Background()
	q := events.NewMemoryQueue(1)

	require.NoError(t, q.Publish(ctx, events.NewJob(events.JobCyclePrediction, "usr_1")))

	blocked, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Publish(blocked, events.NewJob(events.JobCyclePrediction, "usr_2")), context.DeadlineExceeded)

	job := <-q.Jobs()
	assert.Equal(t, "usr_1", job.UserID)

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Publish(ctx, events.NewJob(events.JobCyclePrediction, "usr_3")), events.ErrClosed)

	_, open := <-q.Jobs()
	assert.False(t, open)
}
