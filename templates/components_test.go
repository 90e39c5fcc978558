package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestReportPage(t *testing.T) {
	data := ReportPageData{
		Players:     []PlayerOption{{Name: "B"}, {Name: "A", Selected: true}},
		Player:      "A",
		ProfileOpen: true,
		Profile: &ProfileCard{
			Name:      "A",
			BirthYear: 1997,
			Position:  "Forward",
			Team:      "Spurs",
			History:   []HistoryRow{{Year: 2022, Team: "Spurs", Salary: "£5,000"}},
		},
		Panels: []ChartPanel{{
			ID:      "offensive",
			Label:   "Offense",
			Options: []MetricOption{{Name: "G", Selected: true, Href: "/?player=A&off=G"}},
			SVG:     `<svg id="chart"></svg>`,
		}},
	}
	html := render(t, ReportPage(data))

	assert.Contains(t, html, "<title>Player Report</title>")
	assert.Contains(t, html, `<option value="A" selected>A</option>`)
	assert.Contains(t, html, `class="collapse show"`)
	assert.Contains(t, html, "£5,000")
	assert.Contains(t, html, `<svg id="chart"></svg>`)
	assert.NotContains(t, html, "no-data")
}

func TestReportPageNoData(t *testing.T) {
	html := render(t, ReportPage(ReportPageData{Player: "Nobody", NoData: "No data for Nobody"}))
	assert.Contains(t, html, "No data for Nobody")
	assert.NotContains(t, html, "player_profile")
}

func TestFragmentsEscape(t *testing.T) {
	html := render(t, ProfileFragment(ProfileCard{Name: "<script>"}))
	assert.Contains(t, html, "&lt;script&gt;")

	html = render(t, AnalysisFragment(ChartPanel{Message: "No Tackles recorded"}))
	assert.Contains(t, html, "No Tackles recorded")
}

func TestAnalysisFragmentOptions(t *testing.T) {
	html := render(t, AnalysisFragment(ChartPanel{
		Label: "Offense",
		Options: []MetricOption{
			{Name: "G", Selected: true, Href: "/?player=A&off=G", FragmentHref: "/fragments/analysis?player=A&off=G"},
			{Name: "xG", Href: "/?player=A&off=xG"},
		},
	}))
	assert.Contains(t, html, `href="/?player=A&amp;off=G" data-fragment="/fragments/analysis?player=A&amp;off=G" class="btn btn-sm me-1 mb-1 btn-primary"`)
	assert.Contains(t, html, `class="btn btn-sm me-1 mb-1 btn-outline-primary">xG</a>`)
}

func TestReportPageProfileClosed(t *testing.T) {
	html := render(t, ReportPage(ReportPageData{Title: "Squad", Player: "A", Offense: "G", ToggleClicks: 1}))
	assert.Contains(t, html, "<title>Squad</title>")
	assert.Contains(t, html, `id="collapse" class="collapse"`)
	assert.Contains(t, html, `name="off" value="G"`)
	assert.NotContains(t, html, `name="open"`)
	assert.NotContains(t, html, `name="def"`)
	assert.Contains(t, html, `name="toggle" value="1"`)
}
