package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"watchchart/internal/chart"
	"watchchart/internal/client"
	"watchchart/internal/metrics"
	"watchchart/internal/models"
	"watchchart/internal/resolver"
	"watchchart/internal/timeconv"
)

func main() {
	var (
		serverURL  = flag.String("server", "http://localhost:8080", "watchchart server base URL")
		identifier = flag.String("identifier", "", "video identifier (empty uses the server default)")
		interval   = flag.String("interval", string(models.DefaultInterval), "bucket interval: 10m, 30m, 1h or 1d")
		start      = flag.String("start", "", "window start as local YYYY-MM-DDTHH:mm")
		end        = flag.String("end", "", "window end as local YYYY-MM-DDTHH:mm")
		tz         = flag.String("tz", "Local", "timezone the window and labels are expressed in")
	)
	flag.Parse()

	loc, ok := timeconv.LocationFor(*tz)
	if !ok {
		log.Fatalf("unknown timezone %q", *tz)
	}
	intervals := make([]string, 0, len(models.Intervals()))
	for _, iv := range models.Intervals() {
		intervals = append(intervals, string(iv))
	}
	picker := client.NewDropdown(intervals, string(models.DefaultInterval))
	if err := picker.Select(*interval); err != nil {
		log.Fatalf("interval %q: %v (choose one of %v)", *interval, err, picker.Options())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	session := client.NewSession(*serverURL, loc, time.Now)

	var (
		view models.View
		err  error
	)
	if *start != "" || *end != "" {
		view, err = session.Submit(ctx, client.Form{
			Identifier: *identifier,
			Interval:   models.Interval(picker.Selected()),
			StartLocal: *start,
			EndLocal:   *end,
		})
	} else {
		initial := url.Values{}
		if *identifier != "" {
			initial.Set(resolver.ParamIdentifier, *identifier)
		}
		initial.Set(resolver.ParamInterval, picker.Selected())
		view, err = session.Start(ctx, initial)
	}
	if err != nil && !errors.Is(err, client.ErrStale) {
		log.Fatalf("load: %v", err)
	}

	printView(os.Stdout, session, view)
	if view.Error != "" {
		os.Exit(1)
	}
}

func printView(out io.Writer, session *client.Session, view models.View) {
	loc := session.Location()
	startLocal, endLocal := session.LocalBounds()
	fmt.Fprintf(out, "%s  interval %s  %s .. %s (%s)\n", view.Identifier, view.Interval, startLocal, endLocal, loc)

	if view.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", view.Error)
		return
	}
	points := chart.ToChartPoints(view.Segments, loc)
	if len(points) == 0 {
		fmt.Fprintln(out, "No data available to display the chart.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSTART\tEND\tSECONDS")
	for _, p := range points {
		d := chart.DescribePoint(p, loc)
		fmt.Fprintf(tw, "%s\t%s %s\t%s %s\t%.0f\n", p.TimeLabel, d.StartDate, d.StartLabel, d.EndDate, d.EndLabel, d.Duration)
	}
	_ = tw.Flush()

	summary := metrics.Summarize(view.Segments, nil)
	if view.Summary.Segments > 0 {
		summary = view.Summary
	}
	fmt.Fprintf(out, "\nTotal %.0f s  peak %.0f s  active %d/%d (%.0f%%)  avg viewers %.2f\n",
		summary.TotalSeconds, summary.PeakSeconds, summary.ActiveSegments, summary.Segments,
		metrics.ActiveRatio(summary), metrics.AverageViewers(summary, models.Interval(view.Interval)))
}
