package chart

import (
	"errors"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"watchchart/internal/models"
)

const (
	defaultWidth    = 960
	defaultHeight   = 400
	maxAxisLabels   = 12
	seriesName      = "Watched Duration"
	yAxisName       = "Watch Duration (seconds)"
	seriesColourHex = "3b82f6"
)

// ErrNoPoints is returned when there is nothing to draw. Callers render the
// explicit empty state instead of an empty chart.
var ErrNoPoints = errors.New("no chart points")

// RenderOptions sizes the rendered chart. Zero values use defaults.
type RenderOptions struct {
	Width  int
	Height int
	Title  string
}

// RenderSVG draws points as a line chart: x is the point index labelled
// with its local time, y the watched seconds.
func RenderSVG(w io.Writer, points []models.ChartPoint, opts RenderOptions) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	peak := 0.0
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Duration
		peak = math.Max(peak, p.Duration)
	}
	if peak <= 0 {
		peak = 1
	}
	// go-chart needs at least two X values.
	if len(points) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	xMax := float64(len(xs) - 1)

	colour := drawing.ColorFromHex(seriesColourHex)
	ch := gochart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 20, Left: 20, Right: 30, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: axisTicks(points),
		},
		YAxis: gochart.YAxis{
			Name:  yAxisName,
			Range: &gochart.ContinuousRange{Min: 0, Max: peak * 1.1},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    seriesName,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: colour,
					StrokeWidth: 2,
					DotColor:    colour,
					DotWidth:    4,
				},
			},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.SVG, w)
}

// axisTicks thins the labels so that at most maxAxisLabels are drawn.
func axisTicks(points []models.ChartPoint) []gochart.Tick {
	step := int(math.Ceil(float64(len(points)) / maxAxisLabels))
	if step < 1 {
		step = 1
	}
	ticks := make([]gochart.Tick, 0, maxAxisLabels+1)
	for i := 0; i < len(points); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: points[i].TimeLabel})
	}
	return ticks
}
