package matchservice

import (
	"sort"
	"time"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
)

// UnknownCountry buckets winners with a blank IOC code.
const UnknownCountry = "UNK"

// serveTotals sums one side's serve columns over a subset of matches.
type serveTotals struct {
	matches     int
	withStats   int
	servePoints int
	firstWon    int
	aces        int
	bpSaved     int
	bpFaced     int
}

func sumServe(rows []matchtypes.MatchRecord, mode matchtypes.Mode, side matchtypes.ServeSide) serveTotals {
	t := serveTotals{matches: len(rows)}
	for _, rec := range rows {
		s := rec.Serve(side, mode)
		if s == nil {
			continue
		}
		t.withStats++
		t.servePoints += s.ServePoints
		t.firstWon += s.FirstWon
		t.aces += s.Aces
		t.bpSaved += s.BPSaved
		t.bpFaced += s.BPFaced
	}
	return t
}

// AverageRanking is the mean winner_rank over the player's won matches,
// skipping unranked rows. Mode does not apply.
func AverageRanking(ds *matchtypes.Dataset, player string) matchtypes.Value {
	var sum, n int
	for _, rec := range ds.Select(player, matchtypes.ModeWon) {
		if rec.WinnerRank == nil {
			continue
		}
		sum += *rec.WinnerRank
		n++
	}
	if n == 0 {
		return matchtypes.None()
	}
	return matchtypes.Of(float64(sum) / float64(n))
}

// FirstServeWinPct is 100 * first-serve points won / serve points.
func FirstServeWinPct(ds *matchtypes.Dataset, player string, mode matchtypes.Mode, side matchtypes.ServeSide) matchtypes.Value {
	t := sumServe(ds.Select(player, mode), mode, side)
	return matchtypes.Ratio(t.firstWon, t.servePoints)
}

// AceProbability is 100 * aces / serve points.
func AceProbability(ds *matchtypes.Dataset, player string, mode matchtypes.Mode, side matchtypes.ServeSide) matchtypes.Value {
	t := sumServe(ds.Select(player, mode), mode, side)
	return matchtypes.Ratio(t.aces, t.servePoints)
}

// BreakPointsSavedPct is 100 * break points saved / break points faced.
func BreakPointsSavedPct(ds *matchtypes.Dataset, player string, mode matchtypes.Mode, side matchtypes.ServeSide) matchtypes.Value {
	t := sumServe(ds.Select(player, mode), mode, side)
	return matchtypes.Ratio(t.bpSaved, t.bpFaced)
}

// WinLoss counts the player's wins and losses regardless of mode.
type WinLoss struct {
	Won  int `json:"won"`
	Lost int `json:"lost"`
}

// Total is every match the player appears in.
func (w WinLoss) Total() int { return w.Won + w.Lost }

func CountWinLoss(ds *matchtypes.Dataset, player string) WinLoss {
	return WinLoss{
		Won:  ds.Count(player, matchtypes.ModeWon),
		Lost: ds.Count(player, matchtypes.ModeLost),
	}
}

// CountryCount is the number of matches won by players from one country.
type CountryCount struct {
	Country string `json:"country"`
	Matches int    `json:"matches"`
}

// CountryCounts tallies match wins per winner IOC across the whole table,
// most wins first. The counts always sum to ds.Len().
func CountryCounts(ds *matchtypes.Dataset) []CountryCount {
	tally := make(map[string]int)
	ds.Each(func(rec matchtypes.MatchRecord) {
		ioc := rec.WinnerIOC
		if ioc == "" {
			ioc = UnknownCountry
		}
		tally[ioc]++
	})

	out := make([]CountryCount, 0, len(tally))
	for c, n := range tally {
		out = append(out, CountryCount{Country: c, Matches: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// SeriesPoint is one match on the first-serve chart.
type SeriesPoint struct {
	Date     time.Time `json:"date"`
	Percent  float64   `json:"percent"`
	Tourney  string    `json:"tourney,omitempty"`
	Opponent string    `json:"opponent,omitempty"`
}

// FirstServeSeries returns per-match first-serve win % for the mode subset,
// oldest first. Matches without serve points are left out; several matches
// on one tournament date keep their table order.
func FirstServeSeries(ds *matchtypes.Dataset, player string, mode matchtypes.Mode, side matchtypes.ServeSide) []SeriesPoint {
	rows := ds.Select(player, mode)
	out := make([]SeriesPoint, 0, len(rows))
	for _, rec := range rows {
		s := rec.Serve(side, mode)
		if s == nil || s.ServePoints == 0 {
			continue
		}
		opponent := rec.LoserName
		if mode == matchtypes.ModeLost {
			opponent = rec.WinnerName
		}
		out = append(out, SeriesPoint{
			Date:     rec.TourneyDate,
			Percent:  100 * float64(s.FirstWon) / float64(s.ServePoints),
			Tourney:  rec.TourneyName,
			Opponent: opponent,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// CountryOfOrigin takes the IOC code from the player's first win, falling
// back to their first loss.
func CountryOfOrigin(ds *matchtypes.Dataset, player string) matchtypes.Text {
	for _, rec := range ds.Select(player, matchtypes.ModeWon) {
		if rec.WinnerIOC != "" {
			return matchtypes.Text{String: rec.WinnerIOC, Available: true}
		}
	}
	for _, rec := range ds.Select(player, matchtypes.ModeLost) {
		if rec.LoserIOC != "" {
			return matchtypes.Text{String: rec.LoserIOC, Available: true}
		}
	}
	return matchtypes.Text{}
}

// FilterSince drops points dated before since. A zero since keeps everything.
func FilterSince(points []SeriesPoint, since time.Time) []SeriesPoint {
	if since.IsZero() {
		return points
	}
	out := make([]SeriesPoint, 0, len(points))
	for _, p := range points {
		if !p.Date.Before(since) {
			out = append(out, p)
		}
	}
	return out
}
