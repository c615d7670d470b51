// Package user manages profile records: the body measurements, goal and
// activity level every report is computed from, plus the optional cycle
// history of female users and its latest prediction.
//
// # PII Considerations
//
// Profiles carry health-adjacent data (weight, height, cycle dates). They are
// only ever returned to their owner, are never written to logs, and are
// removed together with weight samples and report history on account
// deletion.
package user

import (
	"errors"
	"sort"
	"time"

	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
)

// Errors.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrInvalidProfile = errors.New("invalid profile")
)

// User is one profile record.
type User struct {
	// ID is the unique user identifier (format: usr_XXXX).
	ID       string
	Email    string
	FullName string

	Gender bm.Gender

	// BirthDate wins over Age when both are set.
	BirthDate *time.Time
	Age       int

	HeightCm float64
	WeightKg float64

	Goal     bm.Goal
	Activity bm.ActivityLevel

	TargetWeightKg *float64

	// CycleDates are recent period start dates, newest first.
	CycleDates      []time.Time
	CycleLengthDays *int
	CycleDay        *int

	// Prediction is the latest predictor outcome, success or failure.
	Prediction *cycle.Prediction

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeOn returns the user's age on today.
func (u *User) AgeOn(today time.Time) int {
	if u.BirthDate != nil {
		return bm.AgeOn(*u.BirthDate, today)
	}
	return u.Age
}

// LatestCycleStart returns the most recent period start, or the zero time.
func (u *User) LatestCycleStart() time.Time {
	if len(u.CycleDates) == 0 {
		return time.Time{}
	}
	return u.CycleDates[0]
}

// TracksCycle reports whether the user has cycle data the predictor can use.
func (u *User) TracksCycle() bool {
	return u.Gender == bm.GenderFemale && len(u.CycleDates) > 0
}

// Profile returns the calculator input for today.
func (u *User) Profile(today time.Time) bm.Profile {
	return bm.Profile{
		Gender:   u.Gender,
		Age:      u.AgeOn(today),
		HeightCm: u.HeightCm,
		WeightKg: u.WeightKg,
		Goal:     u.Goal,
		Activity: u.Activity,
	}
}

// normalizeCycleDates truncates to days, drops duplicates and sorts newest
// first.
func normalizeCycleDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		y, m, day := d.Date()
		norm := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
		if !seen[norm] {
			seen[norm] = true
			out = append(out, norm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}

// copyUser creates a deep copy of a user.
func copyUser(u *User) *User {
	if u == nil {
		return nil
	}

	cpy := *u
	if u.BirthDate != nil {
		val := *u.BirthDate
		cpy.BirthDate = &val
	}
	if u.TargetWeightKg != nil {
		val := *u.TargetWeightKg
		cpy.TargetWeightKg = &val
	}
	if u.CycleLengthDays != nil {
		val := *u.CycleLengthDays
		cpy.CycleLengthDays = &val
	}
	if u.CycleDay != nil {
		val := *u.CycleDay
		cpy.CycleDay = &val
	}
	cpy.CycleDates = append([]time.Time(nil), u.CycleDates...)
	if u.Prediction != nil {
		p := *u.Prediction
		p.Result = append([]byte(nil), u.Prediction.Result...)
		if u.Prediction.Error != nil {
			e := *u.Prediction.Error
			p.Error = &e
		}
		cpy.Prediction = &p
	}
	return &cpy
}
