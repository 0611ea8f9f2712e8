package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	matchmetrics "github.com/courtside-labs/atp-dashboard/app/observability/metrics/matches"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the observability settings for one process.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	LogLevel       string
	MetricsAddress string
	// Output defaults to stdout.
	Output io.Writer
}

// Provider carries the process-wide logger.
type Provider struct {
	Logger *slog.Logger
}

// Registry carries metric and tracing handles.
type Registry struct {
	Tracer       trace.Tracer
	Prometheus   *prometheus.Registry
	MatchMetrics matchmetrics.MatchMetrics
}

// Observability bundles everything modules need to log, trace and count.
type Observability struct {
	Provider Provider
	Registry Registry
	config   Config
}

// Init builds the logger, a fresh prometheus registry and the tracer.
func Init(_ context.Context, cfg Config) (Observability, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "atpdash"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	logger, err := NewLogger(cfg.Output, cfg.LogLevel, cfg.Environment)
	if err != nil {
		return Observability{}, err
	}
	logger = logger.With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("version", cfg.Version),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := matchmetrics.NewPrometheus(reg)
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register match metrics: %w", err)
	}

	return Observability{
		Provider: Provider{Logger: logger},
		Registry: Registry{
			// Global provider: a noop tracer unless an SDK has been installed.
			Tracer:       otel.Tracer(cfg.ServiceName),
			Prometheus:   reg,
			MatchMetrics: metrics,
		},
		config: cfg,
	}, nil
}

// NewLogger builds a JSON slog logger, or a text logger in development.
func NewLogger(w io.Writer, level, environment string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(environment, "development") {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

// ServeMetrics exposes the prometheus registry on MetricsAddress until ctx is
// done. It returns immediately when no address is configured.
func (o Observability) ServeMetrics(ctx context.Context) error {
	addr := o.config.MetricsAddress
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(o.Registry.Prometheus, promhttp.HandlerOpts{Registry: o.Registry.Prometheus}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		o.Provider.Logger.Info("Metrics server listening", slog.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
