package matchservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	"github.com/courtside-labs/atp-dashboard/app/observability/attr"
	matchmetrics "github.com/courtside-labs/atp-dashboard/app/observability/metrics/matches"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "MatchService"

// Options tune query behaviour.
type Options struct {
	ServeSide    matchtypes.ServeSide
	TopCountries int
	Palette      *ChartPalette
}

// MatchService implements the Service interface over an immutable Dataset.
type MatchService struct {
	dataset *matchtypes.Dataset
	opts    Options
	palette ChartPalette
	logger  *slog.Logger
	metrics matchmetrics.MatchMetrics
	tracer  trace.Tracer
}

// NewMatchService creates a new MatchService.
func NewMatchService(
	dataset *matchtypes.Dataset,
	opts Options,
	logger *slog.Logger,
	metrics matchmetrics.MatchMetrics,
	tracer trace.Tracer,
) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = matchmetrics.NewNoop()
	}
	if opts.ServeSide == "" {
		opts.ServeSide = matchtypes.ServeSideWinner
	}
	if opts.TopCountries <= 0 {
		opts.TopCountries = 20
	}
	palette := DefaultPalette
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	return &MatchService{
		dataset: dataset,
		opts:    opts,
		palette: palette,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

var _ Service = (*MatchService)(nil)

func (s *MatchService) DatasetSize() int { return s.dataset.Len() }

// Players lists the selectable players.
func (s *MatchService) Players(ctx context.Context) ([]string, error) {
	return withTelemetry(s, ctx, "Players", "", func(ctx context.Context) ([]string, error) {
		return s.dataset.Players(), nil
	})
}

// Countries returns season-wide match wins per country.
func (s *MatchService) Countries(ctx context.Context) ([]CountryCount, error) {
	return withTelemetry(s, ctx, "Countries", "", func(ctx context.Context) ([]CountryCount, error) {
		return CountryCounts(s.dataset), nil
	})
}

// ComputeStats computes the scalar outputs. Unknown players are not an error:
// every derived value comes back unavailable and Known is false.
func (s *MatchService) ComputeStats(ctx context.Context, player string, mode matchtypes.Mode) (StatsResult, error) {
	return withTelemetry(s, ctx, "ComputeStats", player, func(ctx context.Context) (StatsResult, error) {
		player, err := normalizePlayer(player)
		if err != nil {
			return StatsResult{}, err
		}

		side := s.opts.ServeSide
		return StatsResult{
			Player:              player,
			Mode:                mode,
			Known:               s.dataset.HasPlayer(player),
			Matches:             s.dataset.Count(player, mode),
			CountryOfOrigin:     CountryOfOrigin(s.dataset, player),
			AverageRanking:      AverageRanking(s.dataset, player),
			FirstServeWinPct:    FirstServeWinPct(s.dataset, player, mode, side),
			AceProbability:      AceProbability(s.dataset, player, mode, side),
			BreakPointsSavedPct: BreakPointsSavedPct(s.dataset, player, mode, side),
			WinLoss:             CountWinLoss(s.dataset, player),
		}, nil
	})
}

// ComputeCharts computes the chart series.
func (s *MatchService) ComputeCharts(ctx context.Context, q ChartQuery) (ChartData, error) {
	return withTelemetry(s, ctx, "ComputeCharts", q.Player, func(ctx context.Context) (ChartData, error) {
		return s.chartData(q)
	})
}

// RenderChart renders a single chart as PNG.
func (s *MatchService) RenderChart(ctx context.Context, c Chart, q ChartQuery) ([]byte, error) {
	return withTelemetry(s, ctx, "RenderChart."+string(c), q.Player, func(ctx context.Context) ([]byte, error) {
		switch c {
		case ChartCountries:
			// Season-wide; no player needed.
			return RenderCountryChart(CountryCounts(s.dataset), s.opts.TopCountries, s.palette)
		case ChartWinLoss, ChartFirstServe:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownChart, c)
		}

		data, err := s.chartData(q)
		if err != nil {
			return nil, err
		}
		if c == ChartWinLoss {
			return RenderWinLossChart(data.WinLoss, s.palette)
		}
		return RenderFirstServeChart(data.FirstServe, s.palette)
	})
}

func (s *MatchService) chartData(q ChartQuery) (ChartData, error) {
	player, err := normalizePlayer(q.Player)
	if err != nil {
		return ChartData{}, err
	}

	since, err := ResolveWindow(q.Window, s.dataset.LastDate())
	if err != nil {
		return ChartData{}, err
	}

	data := ChartData{
		Player:     player,
		Mode:       q.Mode,
		WinLoss:    winLossBars(CountWinLoss(s.dataset, player)),
		Countries:  CountryCounts(s.dataset),
		FirstServe: FilterSince(FirstServeSeries(s.dataset, player, q.Mode, s.opts.ServeSide), since),
	}
	if !since.IsZero() {
		data.Since = &since
	}
	return data, nil
}

func normalizePlayer(player string) (string, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return "", ErrMissingPlayer
	}
	return player, nil
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *MatchService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[T],
) (result T, err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	s.logger.DebugContext(ctx, "Operation triggered",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operationName),
		attr.String("identifier", identifier),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.WarnContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		var zero T
		return zero, wrappedErr
	}

	s.logger.DebugContext(ctx, "Operation completed successfully",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operationName),
		attr.String("identifier", identifier),
	)
	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)

	return result, nil
}
