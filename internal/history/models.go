// Package history stores generated recommendations and nutrition plans.
package history

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidKind is returned for an unknown entry kind.
var ErrInvalidKind = errors.New("invalid history kind")

// Kind distinguishes what produced an entry.
type Kind string

const (
	KindRecommendation Kind = "recommendation"
	KindNutrition      Kind = "nutrition"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindRecommendation || k == KindNutrition
}

// Entry is one generated report with the input it was generated from.
// Entries are append-only.
type Entry struct {
	ID        string
	UserID    string
	Kind      Kind
	Input     json.RawMessage
	Result    json.RawMessage
	CreatedAt time.Time
}

// DefaultListLimit applies when a caller passes a non-positive limit.
const DefaultListLimit = 20

// MaxListLimit caps a single page.
const MaxListLimit = 100

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
