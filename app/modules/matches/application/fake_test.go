package matchservice

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	matchmetrics "github.com/courtside-labs/atp-dashboard/app/observability/metrics/matches"
	"go.opentelemetry.io/otel/trace/noop"
)

// FakeMatchMetrics records operation outcomes for assertions.
type FakeMatchMetrics struct {
	mu        sync.Mutex
	attempts  map[string]int
	successes map[string]int
	failures  map[string]int
}

func NewFakeMatchMetrics() *FakeMatchMetrics {
	return &FakeMatchMetrics{
		attempts:  make(map[string]int),
		successes: make(map[string]int),
		failures:  make(map[string]int),
	}
}

var _ matchmetrics.MatchMetrics = (*FakeMatchMetrics)(nil)

func (f *FakeMatchMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[operation]++
}

func (f *FakeMatchMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes[operation]++
}

func (f *FakeMatchMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[operation]++
}

func (f *FakeMatchMetrics) RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration) {
}

func (f *FakeMatchMetrics) RecordHTTPRequest(ctx context.Context, route string, status int, d time.Duration) {
}

func (f *FakeMatchMetrics) Counts(operation string) (attempts, successes, failures int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts[operation], f.successes[operation], f.failures[operation]
}

func newTestService(ds *matchtypes.Dataset, opts Options) *MatchService {
	return newTestServiceWithMetrics(ds, opts, matchmetrics.NewNoop())
}

func newTestServiceWithMetrics(ds *matchtypes.Dataset, opts Options, metrics matchmetrics.MatchMetrics) *MatchService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewMatchService(ds, opts, logger, metrics, tracer)
}
