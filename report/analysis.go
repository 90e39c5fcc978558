package report

import (
	"fmt"

	"footdash/dataset"

	"github.com/montanaflynn/stats"
)

// Point is one value on the age axis. Samples is the number of seasons that were
// averaged into Value; a baseline point with no samples has no value.
type Point struct {
	Bucket  string  `json:"bucket"`
	Value   float64 `json:"value"`
	Samples int     `json:"samples"`
}

func (p Point) Empty() bool { return p.Samples == 0 }

// Curve is a position baseline over every age bucket plus one player's seasons.
type Curve struct {
	Player   string  `json:"player"`
	Position string  `json:"position"`
	Side     Side    `json:"side"`
	Metric   string  `json:"metric"`
	Baseline []Point `json:"baseline"`
	Overlay  []Point `json:"overlay"`
}

// Empty reports whether there is nothing to draw.
func (c Curve) Empty() bool {
	if len(c.Overlay) > 0 {
		return false
	}
	for _, p := range c.Baseline {
		if !p.Empty() {
			return false
		}
	}
	return true
}

// Analysis compares a player to the rest of their position.
type Analysis struct {
	ds      *dataset.Dataset
	profile Profile
	offense []string
	defense []string
}

func BuildAnalysis(ds *dataset.Dataset, p Profile) (Analysis, error) {
	off, err := Metrics(p.Position, Offense)
	if err != nil {
		return Analysis{}, err
	}
	def, err := Metrics(p.Position, Defense)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{ds: ds, profile: p, offense: off, defense: def}, nil
}

func (a Analysis) Profile() Profile { return a.profile }

// Options returns the selectable metrics for a side.
func (a Analysis) Options(side Side) []string {
	var src []string
	if side == Offense {
		src = a.offense
	} else {
		src = a.defense
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// DefaultMetric is the first option of the side.
func (a Analysis) DefaultMetric(side Side) string {
	opts := a.Options(side)
	if len(opts) == 0 {
		return ""
	}
	return opts[0]
}

// Resolve replaces metric choices in s that are not offered for the player's
// position with that side's default.
func (a Analysis) Resolve(s State) State {
	if !ValidMetric(a.profile.Position, Offense, s.Offense) {
		s.Offense = a.DefaultMetric(Offense)
	}
	if !ValidMetric(a.profile.Position, Defense, s.Defense) {
		s.Defense = a.DefaultMetric(Defense)
	}
	return s
}

// Curve computes the position baseline and the player's overlay for metric.
// Nothing is cached; every call walks the dataset again.
func (a Analysis) Curve(side Side, metric string) (Curve, error) {
	if !ValidMetric(a.profile.Position, side, metric) {
		return Curve{}, fmt.Errorf("%w: %q for %s %s", ErrUnknownMetric, metric, a.profile.Position, side.Label())
	}
	return Curve{
		Player:   a.profile.Name,
		Position: a.profile.Position,
		Side:     side,
		Metric:   metric,
		Baseline: PositionMeans(a.ds, a.profile.Position, metric),
		Overlay:  Trajectory(a.profile.Rows(), metric),
	}, nil
}

// PositionMeans averages metric over every row of position, per age bucket.
// The result always has one point per bucket in AgeOrder.
func PositionMeans(ds *dataset.Dataset, position, metric string) []Point {
	order := dataset.AgeOrder()
	values := make([]stats.Float64Data, len(order))
	for _, r := range ds.PositionRows(position) {
		i := dataset.BucketIndex(r.AgeBucket)
		if i < 0 {
			continue
		}
		if v, ok := r.Metric(metric); ok {
			values[i] = append(values[i], v)
		}
	}

	points := make([]Point, len(order))
	for i, bucket := range order {
		points[i] = Point{Bucket: bucket}
		if len(values[i]) == 0 {
			continue
		}
		mean, err := stats.Mean(values[i])
		if err != nil {
			continue
		}
		points[i].Value = mean
		points[i].Samples = len(values[i])
	}
	return points
}

// Trajectory returns the (bucket, value) pairs of rows in their given order,
// skipping seasons without the metric or with an unknown bucket.
func Trajectory(rows []dataset.Row, metric string) []Point {
	var out []Point
	for _, r := range rows {
		if dataset.BucketIndex(r.AgeBucket) < 0 {
			continue
		}
		v, ok := r.Metric(metric)
		if !ok {
			continue
		}
		out = append(out, Point{Bucket: r.AgeBucket, Value: v, Samples: 1})
	}
	return out
}
