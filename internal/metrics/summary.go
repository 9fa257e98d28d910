package metrics

import (
	"watchchart/internal/models"
)

// Summarize aggregates watched time across segments. When reported is
// non-nil it is the total the aggregation service computed and is used as is.
func Summarize(segments []models.WatchSegment, reported *float64) models.WatchSummary {
	summary := models.WatchSummary{Segments: len(segments)}
	for _, segment := range segments {
		d := segment.WatchedDurationSeconds
		summary.TotalSeconds += d
		if d > 0 {
			summary.ActiveSegments++
		}
		if d > summary.PeakSeconds {
			summary.PeakSeconds = d
			summary.PeakStart = segment.SegmentStartTime
		}
	}
	if reported != nil {
		summary.TotalSeconds = *reported
	}
	return summary
}

// ActiveRatio is the share of segments with any watch time, in percent.
func ActiveRatio(summary models.WatchSummary) float64 {
	if summary.Segments == 0 {
		return 0
	}
	return float64(summary.ActiveSegments) / float64(summary.Segments) * 100
}

// AverageViewers is the mean number of simultaneous viewers per bucket:
// watched seconds divided by the wall time the buckets cover.
func AverageViewers(summary models.WatchSummary, interval models.Interval) float64 {
	span := interval.Duration().Seconds() * float64(summary.Segments)
	if span <= 0 {
		return 0
	}
	return summary.TotalSeconds / span
}
