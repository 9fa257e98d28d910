package models

// WatchSegment is one aggregated bucket as returned by the aggregation service.
// Times are kept as the raw UTC strings the service sent.
type WatchSegment struct {
	SegmentStartTime       string  `json:"segment_start_time"`
	SegmentEndTime         string  `json:"segment_end_time"`
	WatchedDurationSeconds float64 `json:"watched_duration_seconds"`
}

// ChartPoint is the chart-ready form of a WatchSegment.
type ChartPoint struct {
	TimeLabel         string  `json:"timeLabel"`
	Duration          float64 `json:"duration"`
	OriginalStartTime string  `json:"originalStartTime"`
	OriginalEndTime   string  `json:"originalEndTime"`
}

// SegmentsRequest is the JSON body posted to the aggregation service.
// BVID repeats Identifier for services that still key videos by bvid.
type SegmentsRequest struct {
	Identifier string `json:"identifier"`
	BVID       string `json:"bvid,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Interval   string `json:"interval"`
}

// SegmentsEnvelope wraps every aggregation service response. Code 0 is success.
type SegmentsEnvelope struct {
	Code int           `json:"code"`
	Msg  string        `json:"msg"`
	Data *SegmentsData `json:"data,omitempty"`
}

// SegmentsData is the payload of a successful response.
type SegmentsData struct {
	Segments                []WatchSegment `json:"segments"`
	TotalWatchedDurationSec *float64       `json:"total_watched_duration_seconds,omitempty"`
}
