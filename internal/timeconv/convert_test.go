package timeconv

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZones = []string{
	"UTC",
	"America/New_York",
	"America/Los_Angeles",
	"Europe/Berlin",
	"Asia/Shanghai",
	"Asia/Kolkata",
	"Australia/Lord_Howe",
	"Pacific/Chatham",
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestLocalInputToUTC(t *testing.T) {
	shanghai := mustLoad(t, "Asia/Shanghai")

	got, err := LocalInputToUTC("2024-05-01T08:30", shanghai)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, "2024-05-01T00:30:00.000Z", FormatUTC(got))
}

func TestLocalInputToUTCRejectsMalformed(t *testing.T) {
	cases := []string{
		"not-a-date",
		"",
		"2024-02-30T10:00",
		"2024-13-01T10:00",
		"2024-01-01T24:00",
		"2024-01-01T10:61",
		"2024-01-01 10:00",
		"2024-01-01T10:00:00",
		"2024-1-1T1:00",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			_, err := LocalInputToUTC(in, time.UTC)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTimeFormat))
		})
	}
}

func TestRoundTripAcrossZones(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, name := range testZones {
		loc := mustLoad(t, name)
		t.Run(name, func(t *testing.T) {
			// 37 minute steps walk through every DST transition of the year.
			for u := base; u.Year() == 2024; u = u.Add(37 * time.Minute) {
				s := u.In(loc).Format(LocalInputLayout)
				instant, err := LocalInputToUTC(s, loc)
				require.NoError(t, err, s)
				require.Equal(t, s, UTCToLocalInputString(instant, loc), "round trip of %s", s)
			}
		})
	}
}

func TestRoundTripAmbiguousFallBack(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	// 01:30 happens twice on 2024-11-03.
	s := "2024-11-03T01:30"
	instant, err := LocalInputToUTC(s, ny)
	require.NoError(t, err)
	assert.Equal(t, s, UTCToLocalInputString(instant, ny))
}

func TestUTCToLocalInputStringDropsSeconds(t *testing.T) {
	u := time.Date(2024, 3, 10, 8, 15, 59, 999_000_000, time.UTC)
	assert.Equal(t, "2024-03-10T08:15", UTCToLocalInputString(u, time.UTC))
	assert.Equal(t, "2024-03-10T16:15", UTCToLocalInputString(u, mustLoad(t, "Asia/Shanghai")))
}

func TestUTCToLocalHHMM(t *testing.T) {
	berlin := mustLoad(t, "Europe/Berlin")
	assert.Equal(t, "09:05", UTCToLocalHHMM("2024-06-01T07:05:00Z", berlin))
	assert.Equal(t, "08:05", UTCToLocalHHMM("2024-01-01T07:05:00.000Z", berlin))
	assert.Equal(t, "00:00", UTCToLocalHHMM("2024-01-01T00:00:00+00:00", time.UTC))
	assert.Equal(t, InvalidDate, UTCToLocalHHMM("garbage", berlin))
	assert.Equal(t, InvalidDate, UTCToLocalHHMM("", berlin))
}

func TestParseUTCNormalisesOffset(t *testing.T) {
	got, err := ParseUTC("2024-03-10T16:00:00+08:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), got)
}

func TestLocationFor(t *testing.T) {
	loc, ok := LocationFor("Local")
	assert.True(t, ok)
	assert.Equal(t, time.Local, loc)

	loc, ok = LocationFor("utc")
	assert.True(t, ok)
	assert.Equal(t, time.UTC, loc)

	loc, ok = LocationFor("Asia/Tokyo")
	assert.True(t, ok)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	loc, ok = LocationFor("Mars/Olympus")
	assert.False(t, ok)
	assert.Equal(t, time.Local, loc)

	assert.Equal(t, time.UTC, LocationOr("Mars/Olympus", time.UTC))
	assert.Equal(t, time.UTC, LocationOr("", time.UTC))
}
