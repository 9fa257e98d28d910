package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"watchchart/internal/chart"
	"watchchart/internal/client"
	"watchchart/internal/metrics"
	"watchchart/internal/models"
	"watchchart/internal/resolver"
	"watchchart/internal/timeconv"
)

var pageFuncs = template.FuncMap{
	"fmtSeconds": func(v float64) string {
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.1f", v)
	},
	"fixed2": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%.0f%%", v)
	},
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type pointRow struct {
	Label  string
	Detail chart.PointDetail
}

type pageData struct {
	View        models.View
	Identifiers []optionView
	Intervals   []optionView
	StartLocal  string
	EndLocal    string
	Timezone    string
	Rows        []pointRow
	ChartImage  template.URL
	ActiveRatio float64
	AvgViewers  float64
	AutoSubmit  bool
	Year        int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	loc := s.requestLocation(q)
	view, status := s.loadView(r.Context(), q, loc)

	// One controller per page load: it fires only for a view with no
	// window, no data and no error.
	auto := client.NewAutoSubmit(loc, s.now)
	auto.Observe(view)
	_, fire := auto.Mount()

	s.renderPage(w, status, s.buildPage(view, loc, fire))
}

// handleSubmit turns datetime-local inputs into a navigation carrying UTC
// bounds. Inputs are interpreted in the tz the browser reported. With
// auto=1 the local day's default window is used instead. Malformed input
// aborts the submission: nothing is fetched and no redirect happens.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc := s.requestLocation(q)

	form := client.Form{
		Identifier: strings.TrimSpace(q.Get(resolver.ParamIdentifier)),
		Interval:   models.Interval(strings.TrimSpace(q.Get(resolver.ParamInterval))),
		StartLocal: q.Get("start_local"),
		EndLocal:   q.Get("end_local"),
	}
	if form.Identifier == "" {
		form.Identifier = s.catalog.Default()
	}
	if q.Get("auto") == "1" {
		inputs := timeconv.DefaultInputs(s.now(), loc)
		form.StartLocal, form.EndLocal = inputs.Start, inputs.End
	}

	sub, err := client.SubmitForm(form, loc)
	if err != nil {
		log.Printf("[submit] aborted: %v", err)
		view := models.View{
			Identifier:  form.Identifier,
			Interval:    string(form.Interval),
			Segments:    []models.WatchSegment{},
			Points:      []models.ChartPoint{},
			Error:       "Invalid time input: " + err.Error(),
			GeneratedAt: s.now().UTC(),
		}
		page := s.buildPage(view, loc, false)
		page.StartLocal, page.EndLocal = form.StartLocal, form.EndLocal
		s.renderPage(w, http.StatusBadRequest, page)
		return
	}

	target := sub.Query
	if tz := strings.TrimSpace(q.Get("tz")); tz != "" {
		target.Set("tz", tz)
	}
	http.Redirect(w, r, "/?"+target.Encode(), http.StatusSeeOther)
}

func (s *Server) buildPage(view models.View, loc *time.Location, autoSubmit bool) pageData {
	data := pageData{
		View:        view,
		Timezone:    loc.String(),
		ActiveRatio: metrics.ActiveRatio(view.Summary),
		AvgViewers:  metrics.AverageViewers(view.Summary, models.Interval(view.Interval)),
		AutoSubmit:  autoSubmit,
		Year:        s.now().In(loc).Year(),
	}

	ids := s.catalog.Identifiers()
	if view.Identifier != "" && !s.catalog.Contains(view.Identifier) {
		ids = append(ids, view.Identifier)
	}
	identifiers := client.NewDropdown(ids, view.Identifier)
	for _, id := range identifiers.Options() {
		data.Identifiers = append(data.Identifiers, optionView{Value: id, Label: id, Selected: id == identifiers.Selected()})
	}

	intervalValues := make([]string, 0, 4)
	for _, iv := range models.Intervals() {
		intervalValues = append(intervalValues, string(iv))
	}
	intervals := client.NewDropdown(intervalValues, view.Interval)
	for _, v := range intervals.Options() {
		data.Intervals = append(data.Intervals, optionView{
			Value:    v,
			Label:    models.Interval(v).Label(),
			Selected: v == intervals.Selected(),
		})
	}

	if st, err := timeconv.ParseUTC(view.Start); err == nil {
		data.StartLocal = timeconv.UTCToLocalInputString(st, loc)
	}
	if en, err := timeconv.ParseUTC(view.End); err == nil {
		data.EndLocal = timeconv.UTCToLocalInputString(en, loc)
	}

	for _, p := range view.Points {
		data.Rows = append(data.Rows, pointRow{Label: p.TimeLabel, Detail: chart.DescribePoint(p, loc)})
	}
	if len(view.Points) > 0 {
		var buf bytes.Buffer
		if err := chart.RenderSVG(&buf, view.Points, chart.RenderOptions{Title: view.Identifier}); err != nil {
			log.Printf("[page] chart render failed: %v", err)
		} else {
			data.ChartImage = template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
		}
	}
	return data
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		log.Printf("[page] render failed: %v", err)
		http.Error(w, "page render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
