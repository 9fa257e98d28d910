package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"watchchart/internal/models"
	"watchchart/internal/timeconv"
)

// ErrStale is returned when a response arrived after a newer request was issued.
var ErrStale = errors.New("response superseded by a newer request")

// WatchPath is the server endpoint returning the rendering state as JSON.
const WatchPath = "/api/watch"

// Session is a terminal-side page: it loads views from the server, runs
// the auto-submit controller and applies only the newest response.
type Session struct {
	baseURL string
	client  *http.Client
	loc     *time.Location

	auto *AutoSubmit
	gens Generations

	mu   sync.Mutex
	view models.View
}

// NewSession creates a session against a watchchart server.
func NewSession(baseURL string, loc *time.Location, now func() time.Time) *Session {
	if loc == nil {
		loc = time.Local
	}
	return &Session{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
		loc:     loc,
		auto:    NewAutoSubmit(loc, now),
	}
}

// Controller exposes the auto-submit state for inspection.
func (s *Session) Controller() *AutoSubmit {
	return s.auto
}

// View returns the last applied view.
func (s *Session) View() models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Start performs the first load with the supplied query, mounts the form
// and follows the auto-submission if the controller fires.
func (s *Session) Start(ctx context.Context, initial url.Values) (models.View, error) {
	view, err := s.Load(ctx, initial)
	if err != nil {
		return view, err
	}
	s.mu.Lock()
	sub, fire := s.auto.Mount()
	s.mu.Unlock()
	if !fire {
		return view, nil
	}
	log.Printf("[client] no window supplied, submitting local day %s..%s",
		sub.Query.Get("start"), sub.Query.Get("end"))
	return s.Load(ctx, sub.Query)
}

// Submit converts form inputs in the session's timezone and loads the
// result. Malformed input aborts before any request is sent.
func (s *Session) Submit(ctx context.Context, form Form) (models.View, error) {
	sub, err := SubmitForm(form, s.loc)
	if err != nil {
		return s.View(), err
	}
	return s.Load(ctx, sub.Query)
}

// Load requests the view for query and applies it if no newer request
// was issued in the meantime.
func (s *Session) Load(ctx context.Context, query url.Values) (models.View, error) {
	token := s.gens.Next()
	view, err := s.fetchView(ctx, query)
	if err != nil {
		return models.View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gens.IsCurrent(token) {
		log.Printf("[client] dropping stale response %d (%s)", token.Seq, token.ID)
		return view, ErrStale
	}
	s.view = view
	s.auto.Observe(view)
	return view, nil
}

func (s *Session) fetchView(ctx context.Context, query url.Values) (models.View, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("tz", s.loc.String())

	endpoint := s.baseURL + WatchPath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.View{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.View{}, err
	}
	defer resp.Body.Close()

	var view models.View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return models.View{}, fmt.Errorf("decode view (http %d): %w", resp.StatusCode, err)
	}
	return view, nil
}

// Location is the timezone labels and defaults are computed in.
func (s *Session) Location() *time.Location {
	return s.loc
}

// LocalBounds renders the applied window as datetime-local values.
func (s *Session) LocalBounds() (start, end string) {
	v := s.View()
	if st, err := timeconv.ParseUTC(v.Start); err == nil {
		start = timeconv.UTCToLocalInputString(st, s.loc)
	}
	if en, err := timeconv.ParseUTC(v.End); err == nil {
		end = timeconv.UTCToLocalInputString(en, s.loc)
	}
	return start, end
}
