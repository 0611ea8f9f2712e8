package matchhandlers

import (
	"errors"
	"net/http"
	"net/url"
	"slices"

	"github.com/a-h/templ"
	matchservice "github.com/courtside-labs/atp-dashboard/app/modules/matches/application"
	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	"github.com/courtside-labs/atp-dashboard/app/modules/matches/infrastructure/handlers/templates"
	"github.com/courtside-labs/atp-dashboard/app/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

const dashboardTitle = "Choose your favorite tennis player to see their stats for games they won/lost!"

// HandleDashboard renders the HTML dashboard for the player and mode in the
// query string, falling back to the default player and Games Won.
func (h *MatchHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.tracer != nil {
		var span trace.Span
		ctx, span = h.tracer.Start(ctx, "MatchHandlers.HandleDashboard")
		defer span.End()
	}

	players, err := h.service.Players(ctx)
	if err != nil {
		h.fail(w, r, "Failed to list players", err)
		return
	}

	q, err := chartQuery(r)
	status := http.StatusOK
	var notice string
	switch {
	case err == nil:
	case errors.Is(err, matchservice.ErrMissingPlayer):
		q.Player = h.pickDefault(players)
	default:
		status = http.StatusBadRequest
		notice = err.Error()
		q.Mode = matchtypes.ModeWon
		if q.Player == "" {
			q.Player = h.pickDefault(players)
		}
	}

	data := templates.DashboardData{
		Title:          dashboardTitle,
		Players:        players,
		SelectedPlayer: q.Player,
		SelectedMode:   q.Mode.Slug(),
		Window:         q.Window,
		Notice:         notice,
	}
	for _, m := range matchtypes.Modes {
		data.Modes = append(data.Modes, templates.ModeOption{Value: m.Slug(), Label: m.String()})
	}

	if q.Player != "" {
		result, err := h.service.ComputeStats(ctx, q.Player, q.Mode)
		if err != nil {
			h.fail(w, r, "Failed to compute stats", err)
			return
		}
		data.Lines = summaryLines(matchservice.Summarize(result))
		if q.Window != "" {
			if _, err := h.service.ComputeCharts(ctx, q); err != nil {
				status = statusFor(err)
				data.Notice = err.Error()
				q.Window = ""
			}
		}
		data.Charts = chartImages(q)
	}

	if status != http.StatusOK {
		h.logger.WarnContext(ctx, "Dashboard request rejected",
			attr.ExtractCorrelationID(ctx),
			attr.Int("status", status),
			attr.String("notice", data.Notice),
		)
	}

	templ.Handler(templates.Dashboard(data), templ.WithStatus(status)).ServeHTTP(w, r.WithContext(ctx))
}

// pickDefault prefers the configured player and otherwise the first one.
func (h *MatchHandlers) pickDefault(players []string) string {
	if slices.Contains(players, h.defaultPlayer) {
		return h.defaultPlayer
	}
	if len(players) > 0 {
		return players[0]
	}
	return ""
}

func summaryLines(s matchservice.Summary) []templates.SummaryLine {
	ids := []string{
		"player_name",
		"country_of_origin",
		"average_ranking",
		"1st_serve_percentage",
		"ace_probability",
		"break_points_saved_percentage",
	}
	lines := s.Lines()
	out := make([]templates.SummaryLine, len(lines))
	for i, text := range lines {
		out[i] = templates.SummaryLine{ID: ids[i], Text: text}
	}
	return out
}

func chartImages(q matchservice.ChartQuery) []templates.ChartImage {
	params := url.Values{}
	params.Set("player", q.Player)
	params.Set("mode", q.Mode.Slug())
	if q.Window != "" {
		params.Set("window", q.Window)
	}
	query := "?" + params.Encode()

	return []templates.ChartImage{
		{
			ID:  "games_won_chart",
			Src: "/api/charts/" + string(matchservice.ChartWinLoss) + ".png" + query,
			Alt: "Games won vs. games lost for " + q.Player,
		},
		{
			ID:      "country_of_origin_chart",
			Src:     "/api/charts/" + string(matchservice.ChartCountries) + ".png",
			Alt:     "Match wins by country of origin",
			Caption: "Chart below shows the number of matches won by players from each country of origin.",
		},
		{
			ID:      "1st_serve_percentage_chart",
			Src:     "/api/charts/" + string(matchservice.ChartFirstServe) + ".png" + query,
			Alt:     "1st serve percentage over time for " + q.Player,
			Caption: "Graph below shows 1st serve percentage on tournament date. Players can play multiple games in one tournament day.",
		},
	}
}
