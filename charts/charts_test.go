package charts

import (
	"testing"

	"footdash/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curve() report.Curve {
	return report.Curve{
		Player:   "A",
		Position: "Forward",
		Side:     report.Offense,
		Metric:   "G",
		Baseline: []report.Point{
			{Bucket: "~20"},
			{Bucket: "21-23", Value: 4, Samples: 3},
			{Bucket: "24-26", Value: 7.5, Samples: 2},
			{Bucket: "27-29", Value: 9, Samples: 5},
			{Bucket: "30-32"},
			{Bucket: "33~", Value: 2, Samples: 1},
		},
		Overlay: []report.Point{{Bucket: "24-26", Value: 10, Samples: 1}},
	}
}

func TestLineOverlay(t *testing.T) {
	svg, err := LineOverlay(curve(), DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "24-26")
}

func TestLineOverlayEscapesLabels(t *testing.T) {
	c := curve()
	c.Player = "<script>alert(1)</script>"
	c.Position = "Forward<b>"

	svg, err := LineOverlay(c, DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, string(svg), "<script>")
	assert.NotContains(t, string(svg), "<b>")
	assert.Contains(t, string(svg), "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestLineOverlaySinglePoint(t *testing.T) {
	c := report.Curve{
		Player:   "A",
		Position: "Forward",
		Metric:   "G",
		Baseline: []report.Point{{Bucket: "24-26", Value: 0, Samples: 1}},
		Overlay:  []report.Point{{Bucket: "24-26", Value: 0, Samples: 1}},
	}
	_, err := LineOverlay(c, DefaultOptions())
	assert.NoError(t, err)
}

func TestLineOverlayEmpty(t *testing.T) {
	c := report.Curve{Metric: "G", Baseline: []report.Point{{Bucket: "~20"}}}
	_, err := LineOverlay(c, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSeriesSkipsEmptyBuckets(t *testing.T) {
	xs, ys := series(curve().Baseline)
	assert.Equal(t, []float64{1, 2, 3, 5}, xs)
	assert.Equal(t, []float64{4, 7.5, 9, 2}, ys)
}
