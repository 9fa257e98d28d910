package client

import (
	"net/url"
	"time"

	"watchchart/internal/models"
	"watchchart/internal/resolver"
	"watchchart/internal/timeconv"
)

// State of the auto-submit controller.
type State int

const (
	StateAwaitingMount State = iota
	StateIdle
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateAwaitingMount:
		return "awaiting-mount"
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Submission is a request with explicit UTC bounds, ready to navigate to.
type Submission struct {
	Request models.RequestParameters
	Query   url.Values
}

// AutoSubmit decides, once per page load, whether to submit the default
// window for the local day. It fires at most once: after that it only
// moves to Idle when the triggering condition goes away.
type AutoSubmit struct {
	loc *time.Location
	now func() time.Time

	state   State
	mounted bool
	fired   bool
	last    *models.View
}

// NewAutoSubmit creates a controller computing defaults in loc.
func NewAutoSubmit(loc *time.Location, now func() time.Time) *AutoSubmit {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &AutoSubmit{loc: loc, now: now, state: StateAwaitingMount}
}

// State returns the current state.
func (a *AutoSubmit) State() State {
	return a.state
}

// Fired reports whether the one auto-submission already happened.
func (a *AutoSubmit) Fired() bool {
	return a.fired
}

// Mount marks the form as attached and evaluates the last observed view, if any.
func (a *AutoSubmit) Mount() (Submission, bool) {
	a.mounted = true
	if a.last == nil {
		a.state = StateIdle
		return Submission{}, false
	}
	return a.evaluate(*a.last)
}

// Observe is called on every render with the state handed to the page.
func (a *AutoSubmit) Observe(view models.View) (Submission, bool) {
	v := view
	a.last = &v
	if !a.mounted {
		return Submission{}, false
	}
	return a.evaluate(view)
}

func (a *AutoSubmit) evaluate(view models.View) (Submission, bool) {
	if !needsDefault(view) {
		a.state = StateIdle
		return Submission{}, false
	}
	if a.fired {
		return Submission{}, false
	}

	window, err := timeconv.DefaultInputs(a.now(), a.loc).ToUTC(a.loc)
	if err != nil {
		a.state = StateIdle
		return Submission{}, false
	}
	a.fired = true
	a.state = StateSubmitting

	interval, err := models.ParseInterval(view.Interval)
	if err != nil {
		interval = models.DefaultInterval
	}
	req := models.RequestParameters{
		Identifier: view.Identifier,
		Interval:   interval,
		Window:     &window,
	}
	return Submission{Request: req, Query: resolver.Encode(req)}, true
}

// needsDefault holds when no window, no data and no error are present.
func needsDefault(view models.View) bool {
	return !view.HasWindow() && len(view.Segments) == 0 && view.Error == ""
}
