package matchservice

import (
	"time"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
)

// StatsResult holds the dashboard's scalar outputs for one (player, mode).
type StatsResult struct {
	Player              string           `json:"player"`
	Mode                matchtypes.Mode  `json:"mode"`
	Known               bool             `json:"known"`
	Matches             int              `json:"matches"`
	CountryOfOrigin     matchtypes.Text  `json:"country_of_origin"`
	AverageRanking      matchtypes.Value `json:"average_ranking"`
	FirstServeWinPct    matchtypes.Value `json:"first_serve_win_pct"`
	AceProbability      matchtypes.Value `json:"ace_probability"`
	BreakPointsSavedPct matchtypes.Value `json:"break_points_saved_pct"`
	WinLoss             WinLoss          `json:"win_loss"`
}

// Bar is one labelled bar of the wins/losses chart.
type Bar struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ChartData holds the series behind the three dashboard charts.
type ChartData struct {
	Player     string          `json:"player"`
	Mode       matchtypes.Mode `json:"mode"`
	WinLoss    []Bar           `json:"win_loss"`
	Countries  []CountryCount  `json:"countries"`
	FirstServe []SeriesPoint   `json:"first_serve"`
	Since      *time.Time      `json:"since,omitempty"`
}

// winLossBars orders the bars the way the chart shows them.
func winLossBars(wl WinLoss) []Bar {
	return []Bar{
		{Label: matchtypes.ModeWonLabel, Value: wl.Won},
		{Label: matchtypes.ModeLostLabel, Value: wl.Lost},
	}
}
