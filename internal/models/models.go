package models

import (
	"errors"
	"time"
)

// Interval is the aggregation bucket size understood by the aggregation service.
type Interval string

const (
	IntervalTenMinutes    Interval = "10m"
	IntervalThirtyMinutes Interval = "30m"
	IntervalOneHour       Interval = "1h"
	IntervalOneDay        Interval = "1d"

	DefaultInterval = IntervalOneHour
)

// ErrUnknownInterval is returned by ParseInterval for values outside the closed set.
var ErrUnknownInterval = errors.New("unknown interval")

// Intervals lists the supported intervals in display order.
func Intervals() []Interval {
	return []Interval{IntervalTenMinutes, IntervalThirtyMinutes, IntervalOneHour, IntervalOneDay}
}

// ParseInterval maps a raw query value onto the closed interval set.
func ParseInterval(raw string) (Interval, error) {
	for _, iv := range Intervals() {
		if string(iv) == raw {
			return iv, nil
		}
	}
	return "", ErrUnknownInterval
}

// Duration returns the bucket length. Days are expanded to hours the way the
// aggregation service parses them.
func (i Interval) Duration() time.Duration {
	switch i {
	case IntervalTenMinutes:
		return 10 * time.Minute
	case IntervalThirtyMinutes:
		return 30 * time.Minute
	case IntervalOneHour:
		return time.Hour
	case IntervalOneDay:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Label is the human readable name used by the interval dropdown.
func (i Interval) Label() string {
	switch i {
	case IntervalTenMinutes:
		return "10 Minutes"
	case IntervalThirtyMinutes:
		return "30 Minutes"
	case IntervalOneHour:
		return "1 Hour"
	case IntervalOneDay:
		return "1 Day"
	default:
		return string(i)
	}
}

// TimeWindow is a resolved pair of UTC instants.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeWindow normalises both bounds to UTC.
func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start.UTC(), End: end.UTC()}
}

// Inverted reports whether the window ends before it starts.
func (w TimeWindow) Inverted() bool {
	return w.End.Before(w.Start)
}

// Equal compares bounds as instants.
func (w TimeWindow) Equal(other TimeWindow) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}

// RequestParameters is what a single navigation or submission asks for.
// A nil Window means the window is unresolved and nothing must be fetched.
type RequestParameters struct {
	Identifier string      `json:"identifier"`
	Interval   Interval    `json:"interval"`
	Window     *TimeWindow `json:"window,omitempty"`
}

// Resolved reports whether both window bounds are present.
func (p RequestParameters) Resolved() bool {
	return p.Window != nil
}
