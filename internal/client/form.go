package client

import (
	"time"

	"watchchart/internal/models"
	"watchchart/internal/resolver"
	"watchchart/internal/timeconv"
)

// Form holds the values of a user-initiated submission. Start and End are
// datetime-local values in the client's timezone.
type Form struct {
	Identifier string
	Interval   models.Interval
	StartLocal string
	EndLocal   string
}

// SubmitForm converts both local bounds to UTC and builds the navigation.
// If either bound is malformed the submission is aborted and the error
// wraps timeconv.ErrInvalidTimeFormat.
func SubmitForm(form Form, loc *time.Location) (Submission, error) {
	window, err := timeconv.LocalInputs{Start: form.StartLocal, End: form.EndLocal}.ToUTC(loc)
	if err != nil {
		return Submission{}, err
	}
	interval := form.Interval
	if interval == "" {
		interval = models.DefaultInterval
	}
	req := models.RequestParameters{
		Identifier: form.Identifier,
		Interval:   interval,
		Window:     &window,
	}
	return Submission{Request: req, Query: resolver.Encode(req)}, nil
}
