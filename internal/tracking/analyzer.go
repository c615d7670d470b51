package tracking

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	bm "github.com/fitplan/fitplan/internal/bodymetrics"
)

const (
	// maintainingSlope is the kg/day below which a trend counts as flat.
	maintainingSlope = 0.01

	// minProjectionRSquared is the fit quality needed before projecting.
	minProjectionRSquared = 0.3

	// flatVariance treats a weight series this close to constant as constant.
	flatVariance = 1e-12

	lowReliabilityMessage = "Not enough data or consistent trend to make reliable projections"
	projectionNote        = "Projections are estimates based on your current trend and may vary with changes in diet, exercise, or other factors."
)

// ProjectionHorizons are the day offsets a projection covers.
var ProjectionHorizons = []int{7, 30, 90}

// sorted returns the samples in chronological order without touching the
// caller's slice.
func sorted(samples []*Sample) []*Sample {
	out := append([]*Sample(nil), samples...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func daysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// AnalyzeTrend fits weight against days since the first sample. It never
// fails: short or degenerate series produce a not_enough_data or
// calculation_error trend.
func AnalyzeTrend(samples []*Sample) Trend {
	if len(samples) < 2 {
		return Trend{Direction: DirectionNotEnoughData}
	}
	series := sorted(samples)

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	first := series[0].Date
	for i, s := range series {
		xs[i] = float64(daysBetween(first, s.Date))
		ys[i] = s.WeightKg
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if !finite(intercept) || !finite(slope) {
		return Trend{Direction: DirectionCalculationError}
	}

	r2 := 0.0
	if stat.Variance(ys, nil) > flatVariance {
		r2 = stat.RSquared(xs, ys, nil, intercept, slope)
		if !finite(r2) {
			return Trend{Direction: DirectionCalculationError}
		}
		r2 = math.Min(1, math.Max(0, r2))
	}

	weekly := bm.Round(slope*7, 2)
	return Trend{
		Direction:    directionFor(slope),
		Slope:        bm.Round(slope, 4),
		WeeklyChange: &weekly,
		RSquared:     bm.Round(r2, 4),
		Confidence:   confidenceFor(r2),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func directionFor(slope float64) Direction {
	switch {
	case math.Abs(slope) < maintainingSlope:
		return DirectionMaintaining
	case slope > 0:
		return DirectionGaining
	default:
		return DirectionLosing
	}
}

func confidenceFor(r2 float64) Confidence {
	switch {
	case r2 > 0.7:
		return ConfidenceHigh
	case r2 > 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Project extrapolates trend from the latest sample. A trend that was not
// fitted or fits poorly yields a low-reliability projection with a message
// and no numbers. A flat trend yields no horizons.
func Project(samples []*Sample, trend Trend) Projection {
	if len(samples) == 0 || !trend.Fitted() || trend.RSquared < minProjectionRSquared {
		return Projection{Reliability: ReliabilityLow, Message: lowReliabilityMessage}
	}

	series := sorted(samples)
	latest := series[len(series)-1]

	p := Projection{
		Reliability:  ReliabilityMedium,
		BasedOnWeeks: bm.Round(float64(len(series))/7, 1),
		Note:         projectionNote,
	}
	if trend.RSquared > 0.7 {
		p.Reliability = ReliabilityHigh
	}

	if math.Abs(trend.Slope) >= maintainingSlope {
		for _, days := range ProjectionHorizons {
			weight := latest.WeightKg + trend.Slope*float64(days)
			p.Projections = append(p.Projections, HorizonProjection{
				Days:     days,
				Date:     Day(latest.Date).AddDate(0, 0, days).Format(DateLayout),
				WeightKg: bm.Round(weight, 2),
				ChangeKg: bm.Round(weight-latest.WeightKg, 2),
			})
		}
	}
	return p
}

// Summarize computes descriptive statistics. It returns nil for an empty
// series.
func Summarize(samples []*Sample) *Statistics {
	if len(samples) == 0 {
		return nil
	}
	series := sorted(samples)

	weights := make([]float64, len(series))
	for i, s := range series {
		weights[i] = s.WeightKg
	}

	first, last := series[0], series[len(series)-1]
	st := &Statistics{
		AverageWeight: bm.Round(stat.Mean(weights, nil), 2),
		MaximumWeight: floats.Max(weights),
		MinimumWeight: floats.Min(weights),
		TotalEntries:  len(series),
		DateRange: DateRange{
			Start: first.Date.Format(DateLayout),
			End:   last.Date.Format(DateLayout),
		},
	}

	if len(series) < 2 {
		return st
	}

	change := last.WeightKg - first.WeightKg
	days := daysBetween(first.Date, last.Date)
	total := &TotalChange{Kg: bm.Round(change, 2), Days: days}
	if first.WeightKg > 0 {
		total.Percentage = bm.Round(change/first.WeightKg*100, 2)
	}
	st.TotalChange = total

	if days >= 7 {
		weekly := bm.Round(change/float64(days)*7, 2)
		st.WeeklyAverageChange = &weekly
	}
	return st
}

// Analyze builds the full history view for a series.
func Analyze(samples []*Sample) *History {
	series := sorted(samples)
	h := &History{Samples: series}
	if len(series) == 0 {
		h.Samples = []*Sample{}
		return h
	}
	trend := AnalyzeTrend(series)
	projection := Project(series, trend)
	h.Statistics = Summarize(series)
	h.Trend = &trend
	h.Projection = &projection
	return h
}
