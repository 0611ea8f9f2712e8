package matchhandlers

import (
	"context"
	"io"
	"log/slog"
	"time"

	matchservice "github.com/courtside-labs/atp-dashboard/app/modules/matches/application"
	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	PlayersFunc       func(ctx context.Context) ([]string, error)
	CountriesFunc     func(ctx context.Context) ([]matchservice.CountryCount, error)
	ComputeStatsFunc  func(ctx context.Context, player string, mode matchtypes.Mode) (matchservice.StatsResult, error)
	ComputeChartsFunc func(ctx context.Context, q matchservice.ChartQuery) (matchservice.ChartData, error)
	RenderChartFunc   func(ctx context.Context, chart matchservice.Chart, q matchservice.ChartQuery) ([]byte, error)
	DatasetSizeFunc   func() int

	// Recorded calls
	StatsCalls  []statsCall
	RenderCalls []renderCall
}

type statsCall struct {
	Player string
	Mode   matchtypes.Mode
}

type renderCall struct {
	Chart matchservice.Chart
	Query matchservice.ChartQuery
}

var _ matchservice.Service = (*FakeService)(nil)

func (f *FakeService) Players(ctx context.Context) ([]string, error) {
	if f.PlayersFunc != nil {
		return f.PlayersFunc(ctx)
	}
	return []string{"Dominic Thiem", "Novak Djokovic", "Rafael Nadal"}, nil
}

func (f *FakeService) Countries(ctx context.Context) ([]matchservice.CountryCount, error) {
	if f.CountriesFunc != nil {
		return f.CountriesFunc(ctx)
	}
	return []matchservice.CountryCount{{Country: "SRB", Matches: 3}, {Country: "ESP", Matches: 1}}, nil
}

func (f *FakeService) ComputeStats(ctx context.Context, player string, mode matchtypes.Mode) (matchservice.StatsResult, error) {
	f.StatsCalls = append(f.StatsCalls, statsCall{Player: player, Mode: mode})
	if f.ComputeStatsFunc != nil {
		return f.ComputeStatsFunc(ctx, player, mode)
	}
	return matchservice.StatsResult{
		Player:              player,
		Mode:                mode,
		Known:               true,
		Matches:             3,
		CountryOfOrigin:     matchtypes.Text{String: "SRB", Available: true},
		AverageRanking:      matchtypes.Of(5.0 / 3),
		FirstServeWinPct:    matchtypes.Of(57.6923),
		AceProbability:      matchtypes.Of(0),
		BreakPointsSavedPct: matchtypes.None(),
		WinLoss:             matchservice.WinLoss{Won: 3, Lost: 1},
	}, nil
}

func (f *FakeService) ComputeCharts(ctx context.Context, q matchservice.ChartQuery) (matchservice.ChartData, error) {
	if f.ComputeChartsFunc != nil {
		return f.ComputeChartsFunc(ctx, q)
	}
	return matchservice.ChartData{
		Player:  q.Player,
		Mode:    q.Mode,
		WinLoss: []matchservice.Bar{{Label: "Games Won", Value: 3}, {Label: "Games Lost", Value: 1}},
	}, nil
}

func (f *FakeService) RenderChart(ctx context.Context, chart matchservice.Chart, q matchservice.ChartQuery) ([]byte, error) {
	f.RenderCalls = append(f.RenderCalls, renderCall{Chart: chart, Query: q})
	if f.RenderChartFunc != nil {
		return f.RenderChartFunc(ctx, chart, q)
	}
	return []byte("\x89PNG\r\n\x1a\nfake"), nil
}

func (f *FakeService) DatasetSize() int {
	if f.DatasetSizeFunc != nil {
		return f.DatasetSizeFunc()
	}
	return 1448
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeNoopMetrics satisfies matchmetrics.MatchMetrics; embed it and override
// the methods a test cares about.
type FakeNoopMetrics struct{}

func (FakeNoopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (FakeNoopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (FakeNoopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (FakeNoopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (FakeNoopMetrics) RecordHTTPRequest(context.Context, string, int, time.Duration)          {}
