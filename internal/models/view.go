package models

import "time"

// WatchSummary aggregates a segment list for display.
type WatchSummary struct {
	TotalSeconds   float64 `json:"total_seconds"`
	PeakSeconds    float64 `json:"peak_seconds"`
	PeakStart      string  `json:"peak_start,omitempty"`
	ActiveSegments int     `json:"active_segments"`
	Segments       int     `json:"segments"`
}

// View is the complete state handed to the rendering layer for one request.
type View struct {
	Identifier  string         `json:"identifier"`
	Interval    string         `json:"interval"`
	Start       string         `json:"start,omitempty"`
	End         string         `json:"end,omitempty"`
	Segments    []WatchSegment `json:"segments"`
	Points      []ChartPoint   `json:"points"`
	Summary     WatchSummary   `json:"summary"`
	Error       string         `json:"error,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// HasWindow reports whether both bounds were present.
func (v View) HasWindow() bool {
	return v.Start != "" && v.End != ""
}
