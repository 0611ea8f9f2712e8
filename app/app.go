package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/courtside-labs/atp-dashboard/app/modules/matches"
	"github.com/courtside-labs/atp-dashboard/app/observability"
	"github.com/courtside-labs/atp-dashboard/config"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

// App wires configuration, observability, the matches module and the HTTP server.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Router        chi.Router
	Modules       *Modules

	logger *slog.Logger
	wg     sync.WaitGroup
}

// Modules holds every module of the application.
type Modules struct {
	MatchesModule *matches.Module
}

// NewApp builds the application. A dataset that fails to load is fatal.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	app := &App{
		Config:        cfg,
		Observability: obs,
		Router:        chi.NewRouter(),
		logger:        obs.Provider.Logger,
	}

	if err := app.initializeModules(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *App) initializeModules(ctx context.Context) error {
	matchesModule, err := matches.NewModule(ctx, app.Config, app.Observability, app.Router)
	if err != nil {
		app.logger.ErrorContext(ctx, "Failed to initialize matches module", "error", err)
		return fmt.Errorf("failed to initialize matches module: %w", err)
	}

	app.Modules = &Modules{MatchesModule: matchesModule}
	return nil
}

// Handler is the root HTTP handler.
func (app *App) Handler() http.Handler { return app.Router }

// Run serves HTTP and metrics until ctx is cancelled, then shuts both down.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.wg.Add(1)
	go app.Modules.MatchesModule.Run(ctx, &app.wg)

	metricsErr := make(chan error, 1)
	go func() { metricsErr <- app.Observability.ServeMetrics(ctx) }()

	httpCfg := app.Config.HTTP
	srv := &http.Server{
		Addr:              httpCfg.Address,
		Handler:           app.Handler(),
		ReadTimeout:       httpCfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      httpCfg.WriteTimeout,
		IdleTimeout:       httpCfg.IdleTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.InfoContext(ctx, "HTTP server listening", "address", httpCfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
wait:
	for {
		select {
		case <-ctx.Done():
			app.logger.Info("Shutdown signal received")
			break wait
		case err := <-serveErr:
			runErr = fmt.Errorf("http server: %w", err)
			break wait
		case err := <-metricsErr:
			// A nil result means metrics are disabled; keep serving.
			if err != nil {
				runErr = err
				break wait
			}
			metricsErr = nil
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("HTTP server shutdown failed", "error", err)
		runErr = errors.Join(runErr, err)
	}

	app.wg.Wait()
	return runErr
}

// Close releases module resources.
func (app *App) Close() error {
	if app.Modules == nil || app.Modules.MatchesModule == nil {
		return nil
	}
	return app.Modules.MatchesModule.Close()
}
