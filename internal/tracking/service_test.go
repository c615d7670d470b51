package tracking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/tracking"
)

func newService() *tracking.Service {
	svc := tracking.NewService(tracking.NewInMemoryRepository())
	svc.SetClock(func() time.Time { return time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC) })
	return svc
}

func TestService_RecordUpsertsPerDay(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, err := svc.Record(ctx, "usr_1", tracking.SampleInput{WeightKg: 80, Notes: "morning"})
	require.NoError(t, err)
	assert.Contains(t, first.ID, "wgt_")
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), first.Date)

	second, err := svc.Record(ctx, "usr_1", tracking.SampleInput{WeightKg: 79.5})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 79.5, second.WeightKg)

	samples, err := svc.List(ctx, "usr_1")
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 79.5, samples[0].WeightKg)
}

func TestService_RecordRejectsInvalidWeight(t *testing.T) {
	_, err := newService().Record(context.Background(), "usr_1", tracking.SampleInput{WeightKg: 0})
	assert.ErrorIs(t, err, tracking.ErrInvalidSample)
}

func TestService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	for i, w := range []float64{82, 81, 80} {
		_, err := svc.Record(ctx, "usr_1", tracking.SampleInput{Date: start.AddDate(0, 0, i*7), WeightKg: w})
		require.NoError(t, err)
	}
	_, err := svc.Record(ctx, "usr_2", tracking.SampleInput{Date: start, WeightKg: 60})
	require.NoError(t, err)

	samples, err := svc.List(ctx, "usr_1")
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, 80.0, samples[0].WeightKg)
	assert.Equal(t, 82.0, samples[2].WeightKg)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	a, err := svc.Record(ctx, "usr_1", tracking.SampleInput{Date: start, WeightKg: 80})
	require.NoError(t, err)
	b, err := svc.Record(ctx, "usr_1", tracking.SampleInput{Date: start.AddDate(0, 0, 1), WeightKg: 81})
	require.NoError(t, err)

	weight, notes := 79.0, "after run"
	updated, err := svc.Update(ctx, "usr_1", a.ID, tracking.SamplePatch{WeightKg: &weight, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 79.0, updated.WeightKg)
	assert.Equal(t, "after run", updated.Notes)

	clash := b.Date
	_, err = svc.Update(ctx, "usr_1", a.ID, tracking.SamplePatch{Date: &clash})
	assert.ErrorIs(t, err, tracking.ErrDuplicateDate)

	bad := -1.0
	_, err = svc.Update(ctx, "usr_1", a.ID, tracking.SamplePatch{WeightKg: &bad})
	assert.ErrorIs(t, err, tracking.ErrInvalidSample)

	_, err = svc.Update(ctx, "usr_2", a.ID, tracking.SamplePatch{WeightKg: &weight})
	assert.ErrorIs(t, err, tracking.ErrSampleNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	s, err := svc.Record(ctx, "usr_1", tracking.SampleInput{WeightKg: 80})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "usr_2", s.ID), tracking.ErrSampleNotFound)
	require.NoError(t, svc.Delete(ctx, "usr_1", s.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "usr_1", s.ID), tracking.ErrSampleNotFound)
}

func TestService_History(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	empty, err := svc.History(ctx, "usr_1")
	require.NoError(t, err)
	assert.Empty(t, empty.Samples)
	assert.Nil(t, empty.Trend)

	for i, w := range []float64{90, 89, 88} {
		_, err := svc.Record(ctx, "usr_1", tracking.SampleInput{Date: start.AddDate(0, 0, i*7), WeightKg: w})
		require.NoError(t, err)
	}

	h, err := svc.History(ctx, "usr_1")
	require.NoError(t, err)
	require.Len(t, h.Samples, 3)
	assert.Equal(t, 90.0, h.Samples[0].WeightKg)
	require.NotNil(t, h.Trend)
	assert.Equal(t, tracking.DirectionLosing, h.Trend.Direction)
	require.NotNil(t, h.Projection)
	assert.Equal(t, tracking.ReliabilityHigh, h.Projection.Reliability)
	require.NotNil(t, h.Statistics)
	assert.Equal(t, 3, h.Statistics.TotalEntries)
}

func TestService_Forget(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	require.NoError(t, svc.RecordWeight(ctx, "usr_1", 80))
	require.NoError(t, svc.Forget(ctx, "usr_1"))

	samples, err := svc.List(ctx, "usr_1")
	require.NoError(t, err)
	assert.Empty(t, samples)
}
