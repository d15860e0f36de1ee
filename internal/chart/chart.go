package chart

import (
	"errors"
	"io"
	"time"

	"trade-dashboard-go/internal/dashboard"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptySeries is returned when there is nothing to plot.
var ErrEmptySeries = errors.New("empty series")

var lineColor = drawing.Color{R: 54, G: 162, B: 235, A: 255}

// RenderPNG draws the cumulative P&L series as a time-series line chart and
// writes the PNG to w. The chart is rebuilt from scratch on every call; no
// state is carried between renders.
func RenderPNG(points []dashboard.SeriesPoint, w io.Writer) error {
	if len(points) == 0 {
		return ErrEmptySeries
	}

	xs := make([]time.Time, 0, len(points)+1)
	ys := make([]float64, 0, len(points)+1)
	for _, p := range points {
		xs = append(xs, p.Time)
		ys = append(ys, p.Value.InexactFloat64())
	}

	// go-chart needs at least two X values to build a range.
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(time.Second))
		ys = append(ys, ys[0])
	}

	series := chart.TimeSeries{
		Name:    "Cumulative P&L",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: lineColor,
			StrokeWidth: 2,
			FillColor:   lineColor.WithAlpha(40),
		},
	}

	graph := chart.Chart{
		Width:  900,
		Height: 360,
		Background: chart.Style{
			Padding: chart.Box{Top: 16, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02 15:04"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.2f")
			},
		},
		Series: []chart.Series{series},
	}

	return graph.Render(chart.PNG, w)
}
