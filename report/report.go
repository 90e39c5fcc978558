// Package report builds the player report page: a salary-ranked player selector,
// the profile card of the selected player and their position-relative charts.
package report

import (
	"errors"

	"footdash/dataset"
)

// Options tunes which rows take part and how the selector is filled.
type Options struct {
	// MinMinutes drops seasons with MinMinutes or fewer minutes played.
	MinMinutes float64
	// TopN caps the player selector.
	TopN int
	// DefaultPlayer is preselected when present in the filtered data.
	DefaultPlayer string
}

func DefaultOptions() Options {
	return Options{
		MinMinutes:    1000,
		TopN:          100,
		DefaultPlayer: "Son Heung-Min",
	}
}

// Report holds the filtered dataset and the selector list. It is never mutated
// after New, so one Report serves every request.
type Report struct {
	ds   *dataset.Dataset
	opts Options
	top  []string
}

func New(ds *dataset.Dataset, opts Options) *Report {
	filtered := ds.FilterMinutes(opts.MinMinutes)
	return &Report{
		ds:   filtered,
		opts: opts,
		top:  filtered.TopNamesBySalary(opts.TopN),
	}
}

// Dataset returns the minutes-filtered rows the report works on.
func (r *Report) Dataset() *dataset.Dataset { return r.ds }

// TopPlayers returns the selector names, highest salary first.
func (r *Report) TopPlayers() []string {
	out := make([]string, len(r.top))
	copy(out, r.top)
	return out
}

// DefaultPlayer is the configured default when it has data, else the best paid player.
func (r *Report) DefaultPlayer() string {
	if r.opts.DefaultPlayer != "" && r.ds.Has(r.opts.DefaultPlayer) {
		return r.opts.DefaultPlayer
	}
	if len(r.top) > 0 {
		return r.top[0]
	}
	return ""
}

// InitialState is the page before any interaction: default player, profile closed.
func (r *Report) InitialState() State {
	return State{Player: r.DefaultPlayer()}
}

func (r *Report) Profile(name string) (Profile, error) {
	return BuildProfile(r.ds, name)
}

func (r *Report) Analysis(name string) (Analysis, error) {
	p, err := r.Profile(name)
	if err != nil {
		return Analysis{}, err
	}
	return BuildAnalysis(r.ds, p)
}

// Panel is one metric selector with its chart data.
type Panel struct {
	Side     Side
	Options  []string
	Selected string
	Curve    Curve
}

// Page is the render payload for a state.
type Page struct {
	State   State
	Players []string
	// Profile is nil when the selected player has no rows.
	Profile *Profile
	// Panels is empty when the player's position has no metric table.
	Panels []Panel
}

// Render builds the page for s. An empty player is replaced by the default and
// metrics not offered for the player's position fall back to that side's
// default. The page is always usable: an unknown player yields ErrUnknownPlayer
// with no profile, an unknown position yields ErrUnknownPosition with a profile
// but no panels.
func (r *Report) Render(s State) (Page, error) {
	if s.Player == "" {
		s.Player = r.DefaultPlayer()
	}
	page := Page{State: s, Players: r.TopPlayers()}

	p, err := r.Profile(s.Player)
	if err != nil {
		return page, err
	}
	page.Profile = &p

	a, err := BuildAnalysis(r.ds, p)
	if err != nil {
		return page, err
	}
	s = a.Resolve(s)
	page.State = s

	for _, side := range []Side{Offense, Defense} {
		metric := s.Metric(side)
		c, err := a.Curve(side, metric)
		if err != nil && !errors.Is(err, ErrUnknownMetric) {
			return page, err
		}
		page.Panels = append(page.Panels, Panel{
			Side:     side,
			Options:  a.Options(side),
			Selected: metric,
			Curve:    c,
		})
	}
	return page, nil
}

// Handle applies events to s and renders the result.
func (r *Report) Handle(s State, events ...Event) (State, Page, error) {
	for _, ev := range events {
		s = Apply(s, ev)
	}
	page, err := r.Render(s)
	return page.State, page, err
}
