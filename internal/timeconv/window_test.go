package timeconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWindowUsesLocalCalendarDate(t *testing.T) {
	pst := time.FixedZone("PST", -8*3600)
	// Local 2024-03-10T23:30, already 2024-03-11 in UTC.
	now := time.Date(2024, 3, 11, 7, 30, 0, 0, time.UTC)

	w := DefaultWindow(now, pst)

	assert.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 3, 11, 7, 59, 59, 999_000_000, time.UTC), w.End)
	assert.Equal(t, "2024-03-10T00:00", UTCToLocalInputString(w.Start, pst))
	assert.Equal(t, "2024-03-10T23:59", UTCToLocalInputString(w.End, pst))
	assert.Equal(t, "2024-03-11T07:59:59.999Z", FormatUTC(w.End))
}

func TestDefaultWindowOnDSTDay(t *testing.T) {
	la := mustLoad(t, "America/Los_Angeles")
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	w := DefaultWindow(now, la)

	assert.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 3, 11, 6, 59, 59, 999_000_000, time.UTC), w.End)
	assert.Equal(t, 23*time.Hour, w.End.Sub(w.Start).Round(time.Hour))
}

func TestDefaultWindowIsDeterministic(t *testing.T) {
	tokyo := mustLoad(t, "Asia/Tokyo")
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, DefaultWindow(now, tokyo).Equal(DefaultWindow(now, tokyo)))
}

func TestDefaultInputsConvertBack(t *testing.T) {
	pst := time.FixedZone("PST", -8*3600)
	now := time.Date(2024, 3, 11, 7, 30, 0, 0, time.UTC)

	in := DefaultInputs(now, pst)
	assert.Equal(t, LocalInputs{Start: "2024-03-10T00:00", End: "2024-03-10T23:59"}, in)

	w, err := in.ToUTC(pst)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10T08:00:00.000Z", FormatUTC(w.Start))
	assert.Equal(t, "2024-03-11T07:59:00.000Z", FormatUTC(w.End))
}

func TestLocalInputsToUTCAbortsOnFirstBadBound(t *testing.T) {
	_, err := LocalInputs{Start: "2024-03-10T00:00", End: "not-a-date"}.ToUTC(time.UTC)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
