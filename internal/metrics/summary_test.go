package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watchchart/internal/models"
)

func TestSummarize(t *testing.T) {
	segments := []models.WatchSegment{
		{SegmentStartTime: "2024-03-10T08:00:00Z", WatchedDurationSeconds: 60},
		{SegmentStartTime: "2024-03-10T09:00:00Z", WatchedDurationSeconds: 0},
		{SegmentStartTime: "2024-03-10T10:00:00Z", WatchedDurationSeconds: 300},
		{SegmentStartTime: "2024-03-10T11:00:00Z", WatchedDurationSeconds: 300},
	}
	got := Summarize(segments, nil)
	assert.Equal(t, models.WatchSummary{
		TotalSeconds:   660,
		PeakSeconds:    300,
		PeakStart:      "2024-03-10T10:00:00Z",
		ActiveSegments: 3,
		Segments:       4,
	}, got)
	assert.InDelta(t, 75.0, ActiveRatio(got), 0.001)
}

func TestSummarizePrefersReportedTotal(t *testing.T) {
	reported := 999.0
	got := Summarize([]models.WatchSegment{{WatchedDurationSeconds: 1}}, &reported)
	assert.Equal(t, 999.0, got.TotalSeconds)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, nil)
	assert.Equal(t, models.WatchSummary{}, got)
	assert.Zero(t, ActiveRatio(got))
}

func TestAverageViewers(t *testing.T) {
	summary := models.WatchSummary{TotalSeconds: 7200, Segments: 2}
	assert.InDelta(t, 1.0, AverageViewers(summary, models.IntervalOneHour), 0.0001)
	assert.InDelta(t, 4.0, AverageViewers(summary, models.IntervalThirtyMinutes), 0.0001)
	assert.InDelta(t, 1.0/24, AverageViewers(summary, models.IntervalOneDay), 0.0001)
	assert.Zero(t, AverageViewers(models.WatchSummary{}, models.IntervalOneHour))
	assert.Zero(t, AverageViewers(summary, models.Interval("2h")))
}
