//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

package templates

// ModeOption is one entry of the win/loss select.
type ModeOption struct {
	Value string
	Label string
}

// ChartImage is one rendered chart on the page.
type ChartImage struct {
	ID      string
	Src     string
	Alt     string
	Caption string
}

// DashboardData is everything the dashboard page renders.
type DashboardData struct {
	Title          string
	Players        []string
	SelectedPlayer string
	Modes          []ModeOption
	SelectedMode   string
	Window         string
	Lines          []SummaryLine
	Charts         []ChartImage
	Notice         string
}

// SummaryLine is one text line under the selects.
type SummaryLine struct {
	ID   string
	Text string
}
