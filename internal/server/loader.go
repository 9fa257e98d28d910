package server

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"watchchart/internal/chart"
	"watchchart/internal/fetcher"
	"watchchart/internal/metrics"
	"watchchart/internal/models"
	"watchchart/internal/resolver"
	"watchchart/internal/timeconv"
)

// loadView runs resolve -> fetch -> transform for one request. Nothing is
// fetched unless both window bounds are present. The returned status
// mirrors the outcome: 400 for rejected parameters, the upstream status for
// HTTP errors, 500 for transport failures.
func (s *Server) loadView(ctx context.Context, q url.Values, loc *time.Location) (models.View, int) {
	view := models.View{
		Segments:    []models.WatchSegment{},
		Points:      []models.ChartPoint{},
		GeneratedAt: s.now().UTC(),
	}

	req, err := resolver.Resolve(q, s.catalog)
	view.Identifier = req.Identifier
	view.Interval = string(req.Interval)
	if err != nil {
		if raw := strings.TrimSpace(q.Get(resolver.ParamInterval)); raw != "" {
			view.Interval = raw
		}
		view.Error = err.Error()
		log.Printf("[loader] rejected request %s: %v", q.Encode(), err)
		return view, http.StatusBadRequest
	}
	if !req.Resolved() {
		return view, http.StatusOK
	}

	view.Start = timeconv.FormatUTC(req.Window.Start)
	view.End = timeconv.FormatUTC(req.Window.End)

	res, err := s.source.Fetch(ctx, req)
	if err != nil {
		view.Error = err.Error()
		return view, fetchStatus(err)
	}
	view.Segments = res.Segments
	view.Points = chart.ToChartPoints(res.Segments, loc)
	view.Summary = metrics.Summarize(res.Segments, res.TotalSeconds)
	return view, http.StatusOK
}

func fetchStatus(err error) int {
	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		return http.StatusInternalServerError
	}
	switch fe.Kind {
	case fetcher.KindHTTP:
		return fe.Status
	case fetcher.KindBusiness:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, status := s.loadView(r.Context(), q, s.requestLocation(q))
	if view.Error != "" {
		http.Error(w, view.Error, status)
		return
	}

	var buf bytes.Buffer
	err := chart.RenderSVG(&buf, view.Points, chart.RenderOptions{Title: view.Identifier})
	if errors.Is(err, chart.ErrNoPoints) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		log.Printf("[chart] render failed: %v", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}
