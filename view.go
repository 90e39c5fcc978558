package main

import (
	"errors"
	"fmt"

	"footdash/charts"
	"footdash/report"
	"footdash/templates"

	"go.uber.org/zap"
)

var panelIDs = map[report.Side]string{
	report.Offense: "offensive-graph",
	report.Defense: "defensive-graph",
}

func profileCard(p report.Profile) templates.ProfileCard {
	card := templates.ProfileCard{
		Name:      p.Name,
		ImageURL:  p.ImageURL(),
		BirthYear: p.BirthYear,
		Position:  p.Position,
		Team:      p.Team,
	}
	for _, h := range p.History {
		card.History = append(card.History, templates.HistoryRow{
			Year:   h.Year,
			Team:   h.Team,
			Salary: h.SalaryText(),
		})
	}
	return card
}

func (s *server) chartPanel(state report.State, panel report.Panel) templates.ChartPanel {
	out := templates.ChartPanel{
		ID:     panelIDs[panel.Side],
		Label:  panel.Side.Label(),
		Side:   string(panel.Side),
		Metric: panel.Selected,
	}
	// both links carry the whole page state
	for _, m := range panel.Options {
		q := state.Values()
		q.Set(report.ParamSide, string(panel.Side))
		q.Set(report.ParamMetric, m)
		enc := q.Encode()

		out.Options = append(out.Options, templates.MetricOption{
			Name:         m,
			Selected:     m == panel.Selected,
			Href:         "/?" + enc,
			FragmentHref: "/fragments/analysis?" + enc,
		})
	}

	svg, err := charts.LineOverlay(panel.Curve, s.chart)
	switch {
	case errors.Is(err, charts.ErrNoData):
		out.Message = fmt.Sprintf("No %s recorded for %s players.", panel.Selected, panel.Curve.Position)
	case err != nil:
		s.logger.Error("chart render failed",
			zap.String("player", state.Player),
			zap.String("metric", panel.Selected),
			zap.Error(err))
		out.Message = "Chart unavailable."
	default:
		out.SVG = string(svg)
	}
	return out
}

func (s *server) pageData(page report.Page) templates.ReportPageData {
	data := templates.ReportPageData{
		Player:       page.State.Player,
		ProfileOpen:  page.State.ProfileOpen,
		ToggleClicks: 1,
		Offense:      page.State.Offense,
		Defense:      page.State.Defense,
	}
	for _, name := range page.Players {
		data.Players = append(data.Players, templates.PlayerOption{Name: name, Selected: name == page.State.Player})
	}
	if page.Profile != nil {
		card := profileCard(*page.Profile)
		data.Profile = &card
	}
	for _, p := range page.Panels {
		data.Panels = append(data.Panels, s.chartPanel(page.State, p))
	}
	return data
}
