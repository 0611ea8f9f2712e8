package matchrouter

import (
	"log/slog"
	"net/http"

	matchhandlers "github.com/courtside-labs/atp-dashboard/app/modules/matches/infrastructure/handlers"
	matchmetrics "github.com/courtside-labs/atp-dashboard/app/observability/metrics/matches"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	DashboardPath  = "/"
	HealthPath     = "/healthz"
	APIPrefix      = "/api"
	PlayersPath    = "/players"
	CountriesPath  = "/countries"
	StatsPath      = "/stats"
	ChartsPath     = "/charts"
	ChartImagePath = "/charts/{chart}.png"
)

// Options configures cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	// TrustProxy rewrites RemoteAddr from X-Forwarded-For/X-Real-IP before
	// rate limiting. Leave it off unless a proxy sets those headers.
	TrustProxy bool
	// Limiter is shared by every route; nil disables rate limiting.
	Limiter *matchhandlers.IPRateLimiter
	Metrics matchmetrics.MatchMetrics
	Logger  *slog.Logger
}

// Router wires the matches handlers onto a chi router.
type Router struct {
	handlers matchhandlers.Handlers
	opts     Options
}

// NewRouter creates a new matches router.
func NewRouter(handlers matchhandlers.Handlers, opts Options) *Router {
	if opts.Metrics == nil {
		opts.Metrics = matchmetrics.NewNoop()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Router{handlers: handlers, opts: opts}
}

// Configure registers middleware and routes on r.
func (rt *Router) Configure(r chi.Router) {
	r.Use(middleware.RequestID)
	if rt.opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(matchhandlers.CorrelationIDMiddleware)
	r.Use(matchhandlers.RequestMetricsMiddleware(rt.opts.Metrics, rt.opts.Logger))
	r.Use(middleware.Recoverer)

	// Health checks bypass the limiter.
	r.Get(HealthPath, rt.handlers.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(matchhandlers.RateLimitMiddleware(rt.opts.Limiter))
		r.Get(DashboardPath, rt.handlers.HandleDashboard)

		r.Route(APIPrefix, func(r chi.Router) {
			r.Use(matchhandlers.CORSMiddleware(rt.opts.AllowedOrigins))
			r.Get(PlayersPath, rt.handlers.HandlePlayers)
			r.Get(CountriesPath, rt.handlers.HandleCountries)
			r.Get(StatsPath, rt.handlers.HandleStats)
			r.Get(ChartsPath, rt.handlers.HandleCharts)
			r.Get(ChartImagePath, rt.handlers.HandleChartImage)
		})
	})
}

// Handler returns a fresh chi router with every route registered.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	rt.Configure(r)
	return r
}
