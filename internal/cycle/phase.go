// Package cycle estimates the menstrual cycle phase from a reference date
// and talks to the external cycle predictor service.
package cycle

import (
	"time"
)

// DateLayout is the wire format of cycle reference dates.
const DateLayout = "2006-01-02"

// Phase is a named stage of the menstrual cycle.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
	PhaseUnknown    Phase = "unknown"
)

// Phases lists every phase including unknown.
var Phases = []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal, PhaseUnknown}

// PhaseOn returns the phase on today for a cycle that started on reference.
// A zero reference or one after today yields PhaseUnknown.
func PhaseOn(reference, today time.Time) Phase {
	if reference.IsZero() {
		return PhaseUnknown
	}

	days := daysBetween(reference, today)
	switch {
	case days < 0:
		return PhaseUnknown
	case days < 5:
		return PhaseMenstrual
	case days < 14:
		return PhaseFollicular
	case days < 17:
		return PhaseOvulatory
	default:
		return PhaseLuteal
	}
}

// PhaseFromString parses reference as YYYY-MM-DD and returns its phase on
// today. Unparseable input yields PhaseUnknown.
func PhaseFromString(reference string, today time.Time) Phase {
	ref, err := time.Parse(DateLayout, reference)
	if err != nil {
		return PhaseUnknown
	}
	return PhaseOn(ref, today)
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
