package matchservice

import (
	"testing"
	"time"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	"github.com/stretchr/testify/require"
)

func rank(n int) *int { return &n }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func serve(svpt, firstWon, aces, bpSaved, bpFaced int) *matchtypes.ServeStats {
	return &matchtypes.ServeStats{
		ServePoints: svpt,
		FirstWon:    firstWon,
		Aces:        aces,
		BPSaved:     bpSaved,
		BPFaced:     bpFaced,
	}
}

// fixtureRecords is a hand-checked slice of the 2020 season. Table order is
// deliberately not chronological.
func fixtureRecords() []matchtypes.MatchRecord {
	return []matchtypes.MatchRecord{
		{
			TourneyName: "Dubai", TourneyDate: day("2020-02-17"),
			WinnerName: "Novak Djokovic", WinnerIOC: "SRB", WinnerRank: rank(1),
			LoserName: "Stefanos Tsitsipas", LoserIOC: "GRE", LoserRank: rank(6),
			Winner: serve(90, 50, 8, 3, 3), Loser: serve(85, 44, 4, 2, 5),
		},
		{
			TourneyName: "ATP Cup", TourneyDate: day("2020-01-06"),
			WinnerName: "Novak Djokovic", WinnerIOC: "SRB", WinnerRank: rank(2),
			LoserName: "Rafael Nadal", LoserIOC: "ESP", LoserRank: rank(1),
			Winner: serve(70, 40, 10, 2, 3), Loser: serve(80, 45, 5, 4, 6),
		},
		{
			TourneyName: "Australian Open", TourneyDate: day("2020-01-20"),
			WinnerName: "Novak Djokovic", WinnerIOC: "SRB", WinnerRank: rank(2),
			LoserName: "Dominic Thiem", LoserIOC: "AUT", LoserRank: rank(5),
			Winner: serve(100, 60, 12, 5, 7), Loser: serve(110, 55, 8, 9, 12),
		},
		{
			TourneyName: "Vienna", TourneyDate: day("2020-10-26"),
			WinnerName: "Lorenzo Sonego", WinnerIOC: "ITA", WinnerRank: rank(42),
			LoserName: "Novak Djokovic", LoserIOC: "SRB", LoserRank: rank(1),
			Winner: serve(60, 35, 7, 1, 1), Loser: serve(75, 38, 6, 4, 7),
		},
		{
			TourneyName: "Acapulco", TourneyDate: day("2020-02-24"),
			WinnerName: "Rafael Nadal", WinnerIOC: "ESP", WinnerRank: rank(2),
			LoserName: "Taylor Fritz", LoserIOC: "USA", LoserRank: rank(35),
			Winner: serve(50, 30, 0, 0, 0), Loser: serve(60, 30, 3, 2, 4),
		},
		{
			TourneyName: "Australian Open", TourneyDate: day("2020-01-20"),
			WinnerName: "Dominic Thiem", WinnerIOC: "AUT",
			LoserName: "Qualifier Q",
		},
	}
}

func fixtureDataset(t testing.TB) *matchtypes.Dataset {
	t.Helper()
	ds, err := matchtypes.NewDataset(fixtureRecords())
	require.NoError(t, err)
	return ds
}
