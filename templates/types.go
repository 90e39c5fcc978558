package templates

type HistoryRow struct {
	Year   int
	Team   string
	Salary string
}

type ProfileCard struct {
	Name      string
	ImageURL  string
	BirthYear int
	Position  string
	Team      string
	History   []HistoryRow
}

type MetricOption struct {
	Name     string
	Selected bool
	// Href re-renders the page with this metric chosen; FragmentHref only the panel.
	Href         string
	FragmentHref string
}

type ChartPanel struct {
	ID      string
	Label   string
	Side    string
	Metric  string
	Options []MetricOption
	// SVG is written unescaped and must come from the chart renderer. It is
	// empty when there is nothing to plot; Message says why.
	SVG     string
	Message string
}

type PlayerOption struct {
	Name     string
	Selected bool
}

type ReportPageData struct {
	Title       string
	Players     []PlayerOption
	Player      string
	ProfileOpen bool
	// ToggleClicks is the click counter the profile button submits.
	ToggleClicks int
	Offense      string
	Defense      string
	Profile      *ProfileCard
	Panels       []ChartPanel
	// NoData is shown instead of the profile and charts.
	NoData string
}
