// Package charts draws the age-curve comparison as SVG.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"

	"footdash/dataset"
	"footdash/report"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNoData = errors.New("no data to plot")

var (
	baselineColor = drawing.ColorFromHex("1f77b4")
	overlayColor  = drawing.ColorFromHex("ef553b")
)

type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 560, Height: 320}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    4,
	}
}

// series converts points to x/y values on the bucket index axis, dropping points
// without samples.
func series(points []report.Point) (xs, ys []float64) {
	for _, p := range points {
		i := dataset.BucketIndex(p.Bucket)
		if i < 0 || p.Empty() {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, p.Value)
	}
	return xs, ys
}

// yRange pads the value range so flat or single-point curves still get an axis.
func yRange(values ...[]float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// LineOverlay renders the position mean for every age bucket with the player's own
// seasons drawn on top. The SVG renderer writes text verbatim, so every label taken
// from the dataset is escaped here.
func LineOverlay(c report.Curve, opts Options) ([]byte, error) {
	if c.Empty() {
		return nil, fmt.Errorf("%s %s: %w", c.Position, c.Metric, ErrNoData)
	}
	metric := html.EscapeString(c.Metric)

	order := dataset.AgeOrder()
	ticks := make([]chart.Tick, len(order))
	for i, b := range order {
		ticks[i] = chart.Tick{Value: float64(i), Label: b}
	}

	var all []chart.Series
	bx, by := series(c.Baseline)
	if len(bx) > 0 {
		all = append(all, chart.ContinuousSeries{
			Name:    html.EscapeString(c.Position + " average"),
			XValues: bx,
			YValues: by,
			Style:   lineStyle(baselineColor),
		})
	}
	px, py := series(c.Overlay)
	if len(px) > 0 {
		all = append(all, chart.ContinuousSeries{
			Name:    html.EscapeString(c.Player),
			XValues: px,
			YValues: py,
			Style:   lineStyle(overlayColor),
		})
	}

	ch := chart.Chart{
		Title:  metric,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "Age",
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(order)) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  metric,
			Range: yRange(by, py),
		},
		Series: all,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render %s chart: %w", c.Metric, err)
	}
	return buf.Bytes(), nil
}
