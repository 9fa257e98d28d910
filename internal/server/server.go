package server

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"watchchart/internal/catalog"
	"watchchart/internal/fetcher"
	"watchchart/internal/models"
	"watchchart/internal/timeconv"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// SegmentSource fetches watch segments for a resolved request.
type SegmentSource interface {
	Fetch(ctx context.Context, req models.RequestParameters) (fetcher.Result, error)
}

// Options configures a Server. Zero values use defaults.
type Options struct {
	Catalog     catalog.Catalog
	Location    *time.Location
	LiveRefresh time.Duration
	Now         func() time.Time
}

// Server wraps HTTP serving of the dashboard page and its API.
type Server struct {
	httpServer  *http.Server
	source      SegmentSource
	catalog     catalog.Catalog
	loc         *time.Location
	liveRefresh time.Duration
	now         func() time.Time
	page        *template.Template
}

// New creates a configured HTTP server for the dashboard.
func New(addr string, source SegmentSource, opts Options) *Server {
	page, err := template.New("index.html").Funcs(pageFuncs).ParseFS(embeddedTemplates, "templates/index.html")
	if err != nil {
		panic("templates missing: " + err.Error())
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.LiveRefresh <= 0 {
		opts.LiveRefresh = time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	mux := http.NewServeMux()
	s := &Server{
		httpServer:  &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		source:      source,
		catalog:     opts.Catalog,
		loc:         opts.Location,
		liveRefresh: opts.LiveRefresh,
		now:         opts.Now,
		page:        page,
	}
	s.registerRoutes(mux)
	return s
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/submit", s.handleSubmit)
	mux.HandleFunc("/api/watch", s.handleWatch)
	mux.HandleFunc("/api/watch/chart.svg", s.handleChart)
	mux.HandleFunc("/api/watch/live", s.handleLive)
	mux.HandleFunc("/api/catalog", s.handleCatalog)
	mux.HandleFunc("/healthz", s.handleHealth)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, status := s.loadView(r.Context(), q, s.requestLocation(q))
	writeJSON(w, status, view)
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"identifiers": s.catalog.Identifiers(),
		"default":     s.catalog.Default(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

// requestLocation picks the timezone labels are rendered in: a valid tz
// query parameter, else the configured display timezone.
func (s *Server) requestLocation(q url.Values) *time.Location {
	return timeconv.LocationOr(q.Get("tz"), s.loc)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
