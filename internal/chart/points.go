package chart

import (
	"time"

	"watchchart/internal/models"
	"watchchart/internal/timeconv"
)

const dateLayout = "2006-01-02"

// ToChartPoints maps each segment, in order, to a chart point labelled with
// the local HH:MM of its start. The original UTC bounds are passed through
// untouched. Empty input yields an empty, non-nil slice.
func ToChartPoints(segments []models.WatchSegment, loc *time.Location) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(segments))
	for _, segment := range segments {
		points = append(points, models.ChartPoint{
			TimeLabel:         timeconv.UTCToLocalHHMM(segment.SegmentStartTime, loc),
			Duration:          segment.WatchedDurationSeconds,
			OriginalStartTime: segment.SegmentStartTime,
			OriginalEndTime:   segment.SegmentEndTime,
		})
	}
	return points
}

// PointDetail is what the detail popup shows for a point.
type PointDetail struct {
	StartLabel string  `json:"start_label"`
	StartDate  string  `json:"start_date"`
	EndLabel   string  `json:"end_label"`
	EndDate    string  `json:"end_date"`
	Duration   float64 `json:"duration"`
}

// DescribePoint renders both original bounds in loc with their local calendar date.
func DescribePoint(p models.ChartPoint, loc *time.Location) PointDetail {
	return PointDetail{
		StartLabel: timeconv.UTCToLocalHHMM(p.OriginalStartTime, loc),
		StartDate:  localDate(p.OriginalStartTime, loc),
		EndLabel:   timeconv.UTCToLocalHHMM(p.OriginalEndTime, loc),
		EndDate:    localDate(p.OriginalEndTime, loc),
		Duration:   p.Duration,
	}
}

func localDate(u string, loc *time.Location) string {
	t, err := timeconv.ParseUTC(u)
	if err != nil {
		return timeconv.InvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}
