package matchservice

import (
	"fmt"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
)

// Summary is the text block shown above the charts.
type Summary struct {
	PlayerName          string `json:"player_name"`
	CountryOfOrigin     string `json:"country_of_origin"`
	AverageRanking      string `json:"average_ranking"`
	FirstServeWinPct    string `json:"first_serve_win_pct"`
	AceProbability      string `json:"ace_probability"`
	BreakPointsSavedPct string `json:"break_points_saved_pct"`
}

// Lines returns the summary in display order.
func (s Summary) Lines() []string {
	return []string{
		s.PlayerName,
		s.CountryOfOrigin,
		s.AverageRanking,
		s.FirstServeWinPct,
		s.AceProbability,
		s.BreakPointsSavedPct,
	}
}

// Summarize formats a StatsResult. Ranking keeps one decimal, percentages two.
func Summarize(r StatsResult) Summary {
	return Summary{
		PlayerName:          fmt.Sprintf("Player Name: %s", r.Player),
		CountryOfOrigin:     fmt.Sprintf("Country of Origin: %s", r.CountryOfOrigin.Or(matchtypes.Unavailable)),
		AverageRanking:      fmt.Sprintf("Average Ranking: %s", r.AverageRanking.Format(1)),
		FirstServeWinPct:    fmt.Sprintf("Average 1st Serve Win Percentage: %s", r.FirstServeWinPct.Format(2)),
		AceProbability:      fmt.Sprintf("Ace Probability: %s", r.AceProbability.Format(2)),
		BreakPointsSavedPct: fmt.Sprintf("Average Break Point Saved Percentage: %s", r.BreakPointsSavedPct.Format(2)),
	}
}
