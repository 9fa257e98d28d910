package fetcher

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindHTTP
	KindBusiness
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// ErrUnresolvedWindow is returned when Fetch is called without both bounds.
var ErrUnresolvedWindow = errors.New("time window is not resolved")

// FetchError is a terminal failure of one fetch. Nothing is retried.
type FetchError struct {
	Kind    Kind
	Status  int
	Body    string
	Message string
	Err     error
}

// Error renders the user-visible message for the failure.
func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("API request failed: %d - %s", e.Status, e.Body)
	case KindBusiness:
		return "API error: " + e.Message
	default:
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return "Failed to fetch watch segments."
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, or 0 when err is not a FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

func transportError(err error) *FetchError {
	return &FetchError{Kind: KindTransport, Message: err.Error(), Err: err}
}
