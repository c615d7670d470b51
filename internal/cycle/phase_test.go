package cycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitplan/fitplan/internal/cycle"
)

func TestPhaseOn(t *testing.T) {
	ref := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed int
		want    cycle.Phase
	}{
		{0, cycle.PhaseMenstrual},
		{4, cycle.PhaseMenstrual},
		{5, cycle.PhaseFollicular},
		{13, cycle.PhaseFollicular},
		{14, cycle.PhaseOvulatory},
		{16, cycle.PhaseOvulatory},
		{17, cycle.PhaseLuteal},
		{40, cycle.PhaseLuteal},
	}

	for _, tt := range tests {
		today := ref.AddDate(0, 0, tt.elapsed)
		assert.Equal(t, tt.want, cycle.PhaseOn(ref, today), "elapsed=%d", tt.elapsed)
	}
}

func TestPhaseOn_IgnoresTimeOfDay(t *testing.T) {
	ref := time.Date(2026, time.March, 1, 23, 30, 0, 0, time.UTC)
	today := time.Date(2026, time.March, 6, 0, 15, 0, 0, time.UTC)

	assert.Equal(t, cycle.PhaseFollicular, cycle.PhaseOn(ref, today))
}

func TestPhaseOn_Unknown(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, cycle.PhaseUnknown, cycle.PhaseOn(time.Time{}, today))
	assert.Equal(t, cycle.PhaseUnknown, cycle.PhaseOn(today.AddDate(0, 0, 1), today))
}

func TestPhaseFromString(t *testing.T) {
	today := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, cycle.PhaseOvulatory, cycle.PhaseFromString("2026-03-05", today))
	assert.Equal(t, cycle.PhaseUnknown, cycle.PhaseFromString("", today))
	assert.Equal(t, cycle.PhaseUnknown, cycle.PhaseFromString("05/03/2026", today))
	assert.Equal(t, cycle.PhaseUnknown, cycle.PhaseFromString("2026-13-01", today))
}
