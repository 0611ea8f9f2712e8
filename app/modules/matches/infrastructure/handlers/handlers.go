package matchhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	matchservice "github.com/courtside-labs/atp-dashboard/app/modules/matches/application"
	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	"github.com/courtside-labs/atp-dashboard/app/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPlayer is preselected on the dashboard when the request names none.
const DefaultPlayer = "Novak Djokovic"

// MatchHandlers implements the Handlers interface over a matchservice.Service.
type MatchHandlers struct {
	service       matchservice.Service
	defaultPlayer string
	logger        *slog.Logger
	tracer        trace.Tracer
}

// NewMatchHandlers creates a new MatchHandlers instance.
func NewMatchHandlers(
	service matchservice.Service,
	defaultPlayer string,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	if defaultPlayer == "" {
		defaultPlayer = DefaultPlayer
	}
	return &MatchHandlers{
		service:       service,
		defaultPlayer: defaultPlayer,
		logger:        logger,
		tracer:        tracer,
	}
}

// StatsResponse is the /api/stats payload.
type StatsResponse struct {
	matchservice.StatsResult
	Summary []string `json:"summary"`
}

func (h *MatchHandlers) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	players, err := h.service.Players(ctx)
	if err != nil {
		h.fail(w, r, "Failed to list players", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, players)
}

func (h *MatchHandlers) HandleCountries(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Countries(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to count countries", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, counts)
}

func (h *MatchHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := chartQuery(r)
	if err != nil {
		h.fail(w, r, "Invalid stats request", err)
		return
	}

	result, err := h.service.ComputeStats(ctx, q.Player, q.Mode)
	if err != nil {
		h.fail(w, r, "Failed to compute stats", err)
		return
	}
	if !result.Known {
		h.logger.InfoContext(ctx, "Stats requested for unknown player",
			attr.ExtractCorrelationID(ctx),
			attr.String("player", result.Player),
		)
	}

	h.writeJSON(w, r, http.StatusOK, StatsResponse{
		StatsResult: result,
		Summary:     matchservice.Summarize(result).Lines(),
	})
}

func (h *MatchHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	q, err := chartQuery(r)
	if err != nil {
		h.fail(w, r, "Invalid chart request", err)
		return
	}

	data, err := h.service.ComputeCharts(r.Context(), q)
	if err != nil {
		h.fail(w, r, "Failed to compute charts", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, data)
}

func (h *MatchHandlers) HandleChartImage(w http.ResponseWriter, r *http.Request) {
	chart, err := matchservice.ParseChart(chi.URLParam(r, "chart"))
	if err != nil {
		h.fail(w, r, "Unknown chart", err)
		return
	}

	q, err := chartQuery(r)
	// The countries chart is season-wide and ignores the player.
	if err != nil && !(chart == matchservice.ChartCountries && errors.Is(err, matchservice.ErrMissingPlayer)) {
		h.fail(w, r, "Invalid chart request", err)
		return
	}

	png, err := h.service.RenderChart(r.Context(), chart, q)
	if err != nil {
		h.fail(w, r, "Failed to render chart", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write chart",
			attr.ExtractCorrelationID(r.Context()),
			attr.Error(err),
		)
	}
}

func (h *MatchHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"matches": h.service.DatasetSize(),
	})
}

// chartQuery reads player, mode and window from the query string. Mode
// defaults to Games Won; a missing player is reported after mode parsing so
// callers that do not need a player can ignore it.
func chartQuery(r *http.Request) (matchservice.ChartQuery, error) {
	values := r.URL.Query()
	q := matchservice.ChartQuery{
		Player: strings.TrimSpace(values.Get("player")),
		Mode:   matchtypes.ModeWon,
		Window: strings.TrimSpace(values.Get("window")),
	}
	if raw := values.Get("mode"); raw != "" {
		mode, err := matchtypes.ParseMode(raw)
		if err != nil {
			return q, err
		}
		q.Mode = mode
	}
	if q.Player == "" {
		return q, matchservice.ErrMissingPlayer
	}
	return q, nil
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, matchservice.ErrMissingPlayer),
		errors.Is(err, matchtypes.ErrUnknownMode),
		errors.Is(err, matchservice.ErrInvalidWindow):
		return http.StatusBadRequest
	case errors.Is(err, matchservice.ErrUnknownChart):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

func (h *MatchHandlers) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attr.ExtractCorrelationID(ctx), attr.Error(err))
		h.writeJSON(w, r, status, errorResponse{
			Error:         http.StatusText(status),
			CorrelationID: attr.CorrelationID(ctx),
		})
		return
	}

	h.logger.WarnContext(ctx, msg,
		attr.ExtractCorrelationID(ctx),
		attr.Int("status", status),
		attr.Error(err),
	)
	h.writeJSON(w, r, status, errorResponse{
		Error:         err.Error(),
		CorrelationID: attr.CorrelationID(ctx),
	})
}

func (h *MatchHandlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to encode response",
			attr.ExtractCorrelationID(r.Context()),
			attr.Error(err),
		)
	}
}
