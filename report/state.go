package report

import (
	"net/url"
	"strconv"
)

// State is everything the page needs to re-render: the selected player, whether
// the profile panel is open and the metric picked on each side. It travels with
// each request instead of living in the server.
type State struct {
	Player      string `json:"player"`
	ProfileOpen bool   `json:"profile_open"`
	Offense     string `json:"offense,omitempty"`
	Defense     string `json:"defense,omitempty"`
}

// Metric returns the chosen metric for side.
func (s State) Metric(side Side) string {
	if side == Offense {
		return s.Offense
	}
	return s.Defense
}

// Event is a user interaction on the page.
type Event interface {
	apply(State) State
}

// SelectPlayer switches the page to another player. Metric choices go back to
// the new position's defaults. An empty name leaves the state alone.
type SelectPlayer struct {
	Name string
}

func (e SelectPlayer) apply(s State) State {
	if e.Name == "" || e.Name == s.Player {
		return s
	}
	s.Player = e.Name
	s.Offense = ""
	s.Defense = ""
	return s
}

// ToggleProfile is a click on the profile button. Clicks is the button's click
// counter; a zero counter is the initial render and does not toggle.
type ToggleProfile struct {
	Clicks int
}

func (e ToggleProfile) apply(s State) State {
	if e.Clicks > 0 {
		s.ProfileOpen = !s.ProfileOpen
	}
	return s
}

// ChooseMetric picks the metric plotted on one side.
type ChooseMetric struct {
	Side   Side
	Metric string
}

func (e ChooseMetric) apply(s State) State {
	switch e.Side {
	case Offense:
		s.Offense = e.Metric
	case Defense:
		s.Defense = e.Metric
	}
	return s
}

// Apply returns the state after ev.
func Apply(s State, ev Event) State {
	if ev == nil {
		return s
	}
	return ev.apply(s)
}

// Query parameter names.
const (
	ParamPlayer  = "player"
	ParamOpen    = "open"
	ParamOffense = "off"
	ParamDefense = "def"
	ParamPick    = "pick"
	ParamToggle  = "toggle"
	ParamSide    = "side"
	ParamMetric  = "metric"
)

// Values encodes the state as query parameters.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Player != "" {
		v.Set(ParamPlayer, s.Player)
	}
	if s.ProfileOpen {
		v.Set(ParamOpen, "1")
	}
	if s.Offense != "" {
		v.Set(ParamOffense, s.Offense)
	}
	if s.Defense != "" {
		v.Set(ParamDefense, s.Defense)
	}
	return v
}

// StateFromValues is the inverse of Values.
func StateFromValues(v url.Values) State {
	open, _ := strconv.ParseBool(v.Get(ParamOpen))
	return State{
		Player:      v.Get(ParamPlayer),
		ProfileOpen: open,
		Offense:     v.Get(ParamOffense),
		Defense:     v.Get(ParamDefense),
	}
}

// EventsFromValues reads the events a form submission carries, in the order they
// should be applied. A player change drops metric picks made for the old player.
func EventsFromValues(current State, v url.Values) []Event {
	var events []Event
	pick := v.Get(ParamPick)
	switched := pick != "" && pick != current.Player
	if switched {
		events = append(events, SelectPlayer{Name: pick})
	}
	if clicks, err := strconv.Atoi(v.Get(ParamToggle)); err == nil {
		events = append(events, ToggleProfile{Clicks: clicks})
	}
	if !switched {
		if side, err := ParseSide(v.Get(ParamSide)); err == nil && v.Get(ParamMetric) != "" {
			events = append(events, ChooseMetric{Side: side, Metric: v.Get(ParamMetric)})
		}
	}
	return events
}
