package timeconv

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// LocalInputLayout is the datetime-local form value layout.
	LocalInputLayout = "2006-01-02T15:04"
	// UTCLayout serialises instants with millisecond precision and a Z suffix.
	UTCLayout = "2006-01-02T15:04:05.000Z07:00"

	localInputWithSeconds = "2006-01-02T15:04:05"
	hourMinuteLayout      = "15:04"

	// InvalidDate is shown instead of a label when an instant cannot be parsed.
	InvalidDate = "Invalid Date"
)

// ErrInvalidTimeFormat is returned when a local input is not a valid calendar date/time.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// LocalInputToUTC interprets s (YYYY-MM-DDTHH:MM) as wall-clock time in loc
// and returns the matching instant in UTC.
func LocalInputToUTC(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw := strings.TrimSpace(s)
	if len(raw) != len(LocalInputLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	t, err := time.ParseInLocation(localInputWithSeconds, raw+":00", loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return t.UTC(), nil
}

// UTCToLocalInputString renders u as a datetime-local value in loc.
// Seconds and below are dropped.
func UTCToLocalInputString(u time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return u.In(loc).Format(LocalInputLayout)
}

// UTCToLocalHHMM renders the hour and minute of an ISO-8601 instant in loc.
// Unparseable input yields InvalidDate rather than an error.
func UTCToLocalHHMM(u string, loc *time.Location) string {
	t, err := ParseUTC(u)
	if err != nil {
		return InvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(hourMinuteLayout)
}

// ParseUTC parses an RFC 3339 instant (any offset, optional fractional
// seconds) and normalises it to UTC.
func ParseUTC(u string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(u))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatUTC serialises t as the canonical wire form, e.g. 2024-03-10T08:00:00.000Z.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(UTCLayout)
}
