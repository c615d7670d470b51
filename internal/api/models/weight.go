package models

import "github.com/fitplan/fitplan/internal/tracking"

// WeightEntryInput records the weight of one day. Date defaults to today.
type WeightEntryInput struct {
	Date     *Date   `json:"date"`
	WeightKg float64 `json:"weight" validate:"required,gte=20,lte=300"`
	Notes    string  `json:"notes" validate:"max=500"`
}

// WeightEntryPatch is a partial weight entry update.
type WeightEntryPatch struct {
	Date     *Date    `json:"date"`
	WeightKg *float64 `json:"weight" validate:"omitempty,gte=20,lte=300"`
	Notes    *string  `json:"notes" validate:"omitempty,max=500"`
}

// WeightEntry is a stored weight sample.
type WeightEntry struct {
	ID        string    `json:"id"`
	Date      Date      `json:"date"`
	WeightKg  float64   `json:"weight"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// NewWeightEntry renders a sample.
func NewWeightEntry(s *tracking.Sample) WeightEntry {
	return WeightEntry{
		ID:        s.ID,
		Date:      NewDate(s.Date),
		WeightKg:  s.WeightKg,
		Notes:     s.Notes,
		CreatedAt: Timestamp(s.CreatedAt),
		UpdatedAt: Timestamp(s.UpdatedAt),
	}
}

// WeightEntries renders samples in order.
func WeightEntries(samples []*tracking.Sample) []WeightEntry {
	out := make([]WeightEntry, len(samples))
	for i, s := range samples {
		out[i] = NewWeightEntry(s)
	}
	return out
}

// WeightHistory is a chronological series with its analysis. Statistics,
// trend and projection are null for an empty series.
type WeightHistory struct {
	Entries    []WeightEntry        `json:"weight_history"`
	Statistics *tracking.Statistics `json:"statistics"`
	Trend      *tracking.Trend      `json:"trend"`
	Projection *tracking.Projection `json:"projection"`
}

// NewWeightHistory renders an analysed series.
func NewWeightHistory(h *tracking.History) WeightHistory {
	return WeightHistory{
		Entries:    WeightEntries(h.Samples),
		Statistics: h.Statistics,
		Trend:      h.Trend,
		Projection: h.Projection,
	}
}
