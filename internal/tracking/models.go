// Package tracking stores a user's dated weight samples and analyses the
// series for trend, summary statistics and short-range projections.
package tracking

import (
	"errors"
	"time"
)

// DateLayout is the wire format of sample and projection dates.
const DateLayout = "2006-01-02"

var (
	// ErrSampleNotFound is returned when a sample does not exist or belongs to
	// another user.
	ErrSampleNotFound = errors.New("weight sample not found")

	// ErrInvalidSample is returned for a non-positive weight or a missing date.
	ErrInvalidSample = errors.New("invalid weight sample")
)

// Sample is one recorded weight on a calendar day. A user has at most one
// sample per date.
type Sample struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Date      time.Time `json:"date"`
	WeightKg  float64   `json:"weight"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Direction classifies the slope of a fitted trend.
type Direction string

const (
	DirectionGaining          Direction = "gaining"
	DirectionLosing           Direction = "losing"
	DirectionMaintaining      Direction = "maintaining"
	DirectionNotEnoughData    Direction = "not_enough_data"
	DirectionCalculationError Direction = "calculation_error"
)

// Confidence buckets the goodness of fit.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Reliability grades a projection.
type Reliability string

const (
	ReliabilityHigh   Reliability = "high"
	ReliabilityMedium Reliability = "medium"
	ReliabilityLow    Reliability = "low"
)

// Trend is a least-squares line through the series.
type Trend struct {
	Direction Direction `json:"direction"`
	// Slope is kg per day.
	Slope float64 `json:"slope"`
	// WeeklyChange is kg per week; nil when no fit was made.
	WeeklyChange *float64   `json:"weekly_change,omitempty"`
	RSquared     float64    `json:"r_squared"`
	Confidence   Confidence `json:"confidence,omitempty"`
}

// Fitted reports whether a line was actually fitted.
func (t Trend) Fitted() bool {
	return t.Direction != DirectionNotEnoughData && t.Direction != DirectionCalculationError
}

// HorizonProjection is the projected weight some days after the latest sample.
type HorizonProjection struct {
	Days     int     `json:"days"`
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight"`
	ChangeKg float64 `json:"change"`
}

// Projection extrapolates a trend to fixed horizons.
type Projection struct {
	Reliability  Reliability         `json:"reliability"`
	Message      string              `json:"message,omitempty"`
	BasedOnWeeks float64             `json:"based_on_weeks,omitempty"`
	Projections  []HorizonProjection `json:"projections,omitempty"`
	Note         string              `json:"note,omitempty"`
}

// At returns the projection for a horizon.
func (p Projection) At(days int) (HorizonProjection, bool) {
	for _, h := range p.Projections {
		if h.Days == days {
			return h, true
		}
	}
	return HorizonProjection{}, false
}

// DateRange spans the first and last sample dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TotalChange compares the first and last samples.
type TotalChange struct {
	Kg         float64 `json:"kg"`
	Percentage float64 `json:"percentage"`
	Days       int     `json:"days"`
}

// Statistics summarise a series independently of the trend.
type Statistics struct {
	AverageWeight float64      `json:"average_weight"`
	MaximumWeight float64      `json:"maximum_weight"`
	MinimumWeight float64      `json:"minimum_weight"`
	TotalEntries  int          `json:"total_entries"`
	DateRange     DateRange    `json:"date_range"`
	TotalChange   *TotalChange `json:"total_change,omitempty"`
	// WeeklyAverageChange is set when the series spans at least a week.
	WeeklyAverageChange *float64 `json:"weekly_average_change,omitempty"`
}

// History is a user's full series with its analysis. For an empty series
// only Samples is set.
type History struct {
	Samples    []*Sample   `json:"weight_history"`
	Statistics *Statistics `json:"statistics"`
	Trend      *Trend      `json:"trend"`
	Projection *Projection `json:"projection"`
}
