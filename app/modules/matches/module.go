package matches

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	matchservice "github.com/courtside-labs/atp-dashboard/app/modules/matches/application"
	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	matchdataset "github.com/courtside-labs/atp-dashboard/app/modules/matches/infrastructure/dataset"
	matchhandlers "github.com/courtside-labs/atp-dashboard/app/modules/matches/infrastructure/handlers"
	matchrouter "github.com/courtside-labs/atp-dashboard/app/modules/matches/infrastructure/router"
	"github.com/courtside-labs/atp-dashboard/app/observability"
	"github.com/courtside-labs/atp-dashboard/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Module represents the unified matches module.
type Module struct {
	config        *config.Config
	observability observability.Observability
	dataset       *matchtypes.Dataset
	service       matchservice.Service
	handlers      matchhandlers.Handlers
	router        *matchrouter.Router
	cancelFunc    context.CancelFunc
	logger        *slog.Logger
}

// NewModule loads the season table and builds the matches module. Routes are
// registered on httpRouter when it is non-nil.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "Initializing matches module")

	dataset, err := matchdataset.NewLoader(nil, logger).Load(cfg.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	// Create service
	service := matchservice.NewMatchService(
		dataset,
		matchservice.Options{
			ServeSide:    cfg.ServeSide(),
			TopCountries: cfg.Dashboard.TopCountries,
		},
		logger,
		obs.Registry.MatchMetrics,
		tracer,
	)

	// Create handlers
	handlers := matchhandlers.NewMatchHandlers(service, cfg.Dashboard.DefaultPlayer, logger, tracer)

	var limiter *matchhandlers.IPRateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = matchhandlers.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}

	// Create router
	router := matchrouter.NewRouter(handlers, matchrouter.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		TrustProxy:     cfg.HTTP.TrustProxy,
		Limiter:        limiter,
		Metrics:        obs.Registry.MatchMetrics,
		Logger:         logger,
	})

	// Register HTTP routes
	if httpRouter != nil {
		router.Configure(httpRouter)
	}

	module := &Module{
		config:        cfg,
		observability: obs,
		dataset:       dataset,
		service:       service,
		handlers:      handlers,
		router:        router,
		logger:        logger,
	}

	return module, nil
}

// Run blocks until ctx is cancelled or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting matches module",
		"matches", m.dataset.Len(),
		"players", len(m.dataset.Players()),
		"serve_side", string(m.config.ServeSide()),
	)

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Matches module goroutine stopped")
}

// Close stops the matches module.
func (m *Module) Close() error {
	m.logger.Info("Stopping matches module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.logger.Info("Matches module stopped")
	return nil
}

// GetService returns the matches service for use by other modules and the CLI.
func (m *Module) GetService() matchservice.Service {
	return m.service
}

// Router exposes the module's HTTP routes.
func (m *Module) Router() *matchrouter.Router {
	return m.router
}
