package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"watchchart/internal/catalog"
	"watchchart/internal/models"
	"watchchart/internal/timeconv"
)

// Query parameter names accepted on render requests.
const (
	ParamIdentifier = "identifier"
	ParamInterval   = "interval"
	ParamStart      = "start"
	ParamEnd        = "end"
)

var (
	ErrInvalidInterval = errors.New("invalid interval")
	ErrInvalidWindow   = errors.New("invalid time window")
	ErrInvertedWindow  = errors.New("time window ends before it starts")
)

// Resolve turns incoming query parameters into RequestParameters.
//
// The identifier falls back to the catalog default and the interval to 1h.
// The window is resolved only when both start and end are present; a
// missing bound leaves it nil and no default is substituted here, because
// only the client knows its timezone. Resolve has no side effects.
func Resolve(params url.Values, c catalog.Catalog) (models.RequestParameters, error) {
	req := models.RequestParameters{
		Identifier: strings.TrimSpace(params.Get(ParamIdentifier)),
		Interval:   models.DefaultInterval,
	}
	if req.Identifier == "" {
		req.Identifier = c.Default()
	}

	if raw, ok := lookup(params, ParamInterval); ok {
		iv, err := models.ParseInterval(raw)
		if err != nil {
			return req, fmt.Errorf("%w %q: must be one of 10m, 30m, 1h, 1d", ErrInvalidInterval, raw)
		}
		req.Interval = iv
	}

	rawStart, hasStart := lookup(params, ParamStart)
	rawEnd, hasEnd := lookup(params, ParamEnd)
	if !hasStart || !hasEnd {
		return req, nil
	}

	start, err := timeconv.ParseUTC(rawStart)
	if err != nil {
		return req, fmt.Errorf("%w: start %q is not an ISO-8601 instant", ErrInvalidWindow, rawStart)
	}
	end, err := timeconv.ParseUTC(rawEnd)
	if err != nil {
		return req, fmt.Errorf("%w: end %q is not an ISO-8601 instant", ErrInvalidWindow, rawEnd)
	}
	window := models.NewTimeWindow(start, end)
	if window.Inverted() {
		return req, fmt.Errorf("%w: %s > %s", ErrInvertedWindow, rawStart, rawEnd)
	}
	req.Window = &window
	return req, nil
}

// Encode is the inverse of Resolve for a resolved request: it produces the
// query carrying explicit UTC bounds.
func Encode(req models.RequestParameters) url.Values {
	q := url.Values{}
	q.Set(ParamIdentifier, req.Identifier)
	q.Set(ParamInterval, string(req.Interval))
	if req.Window != nil {
		q.Set(ParamStart, timeconv.FormatUTC(req.Window.Start))
		q.Set(ParamEnd, timeconv.FormatUTC(req.Window.End))
	}
	return q
}

func lookup(params url.Values, key string) (string, bool) {
	raw := strings.TrimSpace(params.Get(key))
	return raw, raw != ""
}
