package matchtypes

import "time"

// ServeStats holds one side's serve totals for a single match.
type ServeStats struct {
	Aces         int
	DoubleFaults int
	ServePoints  int
	FirstIn      int
	FirstWon     int
	SecondWon    int
	ServiceGames int
	BPSaved      int
	BPFaced      int
}

// MatchRecord is one completed match from the season table.
type MatchRecord struct {
	TourneyID   string
	TourneyName string
	Surface     string
	TourneyDate time.Time
	MatchNum    int
	Round       string
	Score       string
	BestOf      int

	WinnerID   string
	WinnerName string
	WinnerIOC  string
	WinnerRank *int

	LoserID   string
	LoserName string
	LoserIOC  string
	LoserRank *int

	// Winner and Loser are nil when the row carries no serve stats for that side.
	Winner *ServeStats
	Loser  *ServeStats
}

// Serve returns the serve stats for the requested side.
func (m MatchRecord) Serve(side ServeSide, mode Mode) *ServeStats {
	if side == ServeSidePlayer && mode == ModeLost {
		return m.Loser
	}
	return m.Winner
}
