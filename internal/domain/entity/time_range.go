package entity

import (
	"time"
)

// TimeRange is a half-open interval [From, To). A zero bound is open.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether both bounds are open
func (r TimeRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Valid reports whether the bounds are ordered when both are set
func (r TimeRange) Valid() bool {
	if r.From.IsZero() || r.To.IsZero() {
		return true
	}
	return r.From.Before(r.To)
}

// Contains reports whether t falls in [From, To)
func (r TimeRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// Overlaps reports whether two bounded half-open intervals intersect.
// Touching intervals, where one ends exactly when the other starts, do not.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.From.Before(other.To) && other.From.Before(r.To)
}

// Duration returns To - From
func (r TimeRange) Duration() time.Duration {
	return r.To.Sub(r.From)
}

// UTC returns the range with both bounds converted to UTC
func (r TimeRange) UTC() TimeRange {
	out := r
	if !out.From.IsZero() {
		out.From = out.From.UTC()
	}
	if !out.To.IsZero() {
		out.To = out.To.UTC()
	}
	return out
}
