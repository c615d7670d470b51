package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/history"
)

func TestService_RecordAndList(t *testing.T) {
	ctx := context.Background()
	svc := history.NewService(history.NewInMemoryRepository())

	first, err := svc.Record(ctx, "usr_1", history.KindNutrition, map[string]int{"calories": 2000}, map[string]string{"plan": "a"})
	require.NoError(t, err)
	assert.Contains(t, first.ID, "rpt_")
	assert.JSONEq(t, `{"calories":2000}`, string(first.Input))

	_, err = svc.Record(ctx, "usr_1", history.KindNutrition, nil, map[string]string{"plan": "b"})
	require.NoError(t, err)
	_, err = svc.Record(ctx, "usr_1", history.KindRecommendation, nil, "r")
	require.NoError(t, err)
	_, err = svc.Record(ctx, "usr_2", history.KindNutrition, nil, "other")
	require.NoError(t, err)

	entries, err := svc.List(ctx, "usr_1", history.KindNutrition, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].CreatedAt.Before(entries[1].CreatedAt))

	limited, err := svc.List(ctx, "usr_1", history.KindNutrition, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestService_InvalidKind(t *testing.T) {
	svc := history.NewService(history.NewInMemoryRepository())

	_, err := svc.Record(context.Background(), "usr_1", history.Kind("workout"), nil, nil)
	assert.ErrorIs(t, err, history.ErrInvalidKind)

	_, err = svc.List(context.Background(), "usr_1", history.Kind("workout"), 10)
	assert.ErrorIs(t, err, history.ErrInvalidKind)
}

func TestService_Forget(t *testing.T) {
	ctx := context.Background()
	svc := history.NewService(history.NewInMemoryRepository())

	_, err := svc.Record(ctx, "usr_1", history.KindRecommendation, nil, "r")
	require.NoError(t, err)
	_, err = svc.Record(ctx, "usr_2", history.KindRecommendation, nil, "r")
	require.NoError(t, err)

	require.NoError(t, svc.Forget(ctx, "usr_1"))

	entries, err := svc.List(ctx, "usr_1", history.KindRecommendation, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = svc.List(ctx, "usr_2", history.KindRecommendation, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
