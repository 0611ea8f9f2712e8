package matchservice

import (
	"context"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
)

// Chart names the three dashboard charts.
type Chart string

const (
	ChartWinLoss    Chart = "win-loss"
	ChartCountries  Chart = "countries"
	ChartFirstServe Chart = "first-serve"
)

// ParseChart validates a chart name.
func ParseChart(s string) (Chart, error) {
	switch c := Chart(s); c {
	case ChartWinLoss, ChartCountries, ChartFirstServe:
		return c, nil
	}
	return "", ErrUnknownChart
}

// ChartQuery selects the data behind a chart render.
type ChartQuery struct {
	Player string
	Mode   matchtypes.Mode
	// Window is an optional relative expression for the first-serve series.
	Window string
}

// Service answers dashboard queries against the loaded season.
type Service interface {
	// Players lists the selectable players (distinct winners, sorted).
	Players(ctx context.Context) ([]string, error)

	// Countries returns match wins per winner country for the whole season.
	Countries(ctx context.Context) ([]CountryCount, error)

	// ComputeStats returns every scalar output for (player, mode).
	ComputeStats(ctx context.Context, player string, mode matchtypes.Mode) (StatsResult, error)

	// ComputeCharts returns the series behind the three charts.
	ComputeCharts(ctx context.Context, q ChartQuery) (ChartData, error)

	// RenderChart renders one chart to PNG.
	RenderChart(ctx context.Context, chart Chart, q ChartQuery) ([]byte, error)

	// DatasetSize is the number of matches loaded.
	DatasetSize() int
}
