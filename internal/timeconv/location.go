package timeconv

import (
	"strings"
	"time"
)

// LocationFor resolves a timezone name. "", "Local" and "UTC" are handled
// directly, anything else must be an IANA name. ok is false when the name
// could not be loaded and time.Local was substituted.
func LocationFor(name string) (loc *time.Location, ok bool) {
	tzName := strings.TrimSpace(name)
	switch strings.ToUpper(tzName) {
	case "", "LOCAL":
		return time.Local, true
	case "UTC", "Z":
		return time.UTC, true
	default:
		if l, err := time.LoadLocation(tzName); err == nil {
			return l, true
		}
		return time.Local, false
	}
}

// LocationOr resolves name and falls back to fallback when it is empty or unknown.
func LocationOr(name string, fallback *time.Location) *time.Location {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	if loc, ok := LocationFor(name); ok {
		return loc
	}
	return fallback
}
