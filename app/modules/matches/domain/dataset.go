package matchtypes

import (
	"errors"
	"sort"
	"time"
)

var ErrEmptyDataset = errors.New("dataset has no matches")

// Dataset is the season table. It is built once and never mutated, so it can
// be shared across goroutines without locking.
type Dataset struct {
	records  []MatchRecord
	players  []string
	byWinner map[string][]int
	byLoser  map[string][]int
	lastDate time.Time
}

// NewDataset indexes records. The slice is copied.
func NewDataset(records []MatchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{
		records:  make([]MatchRecord, len(records)),
		byWinner: make(map[string][]int),
		byLoser:  make(map[string][]int),
	}
	copy(ds.records, records)

	for i, rec := range ds.records {
		ds.byWinner[rec.WinnerName] = append(ds.byWinner[rec.WinnerName], i)
		ds.byLoser[rec.LoserName] = append(ds.byLoser[rec.LoserName], i)
		if rec.TourneyDate.After(ds.lastDate) {
			ds.lastDate = rec.TourneyDate
		}
	}

	ds.players = make([]string, 0, len(ds.byWinner))
	for name := range ds.byWinner {
		if name == "" {
			continue
		}
		ds.players = append(ds.players, name)
	}
	sort.Strings(ds.players)

	return ds, nil
}

// Len returns the number of matches.
func (d *Dataset) Len() int { return len(d.records) }

// Record returns the i-th match in load order.
func (d *Dataset) Record(i int) MatchRecord { return d.records[i] }

// Each calls fn for every match in load order.
func (d *Dataset) Each(fn func(MatchRecord)) {
	for _, rec := range d.records {
		fn(rec)
	}
}

// Players returns the distinct winner names, sorted.
func (d *Dataset) Players() []string {
	out := make([]string, len(d.players))
	copy(out, d.players)
	return out
}

// HasPlayer reports whether name is one of the selectable players.
func (d *Dataset) HasPlayer(name string) bool {
	_, ok := d.byWinner[name]
	return ok && name != ""
}

// LastDate is the latest tournament date in the table.
func (d *Dataset) LastDate() time.Time { return d.lastDate }

// Select returns player's matches for mode in load order.
func (d *Dataset) Select(player string, mode Mode) []MatchRecord {
	var idx []int
	switch mode {
	case ModeWon:
		idx = d.byWinner[player]
	case ModeLost:
		idx = d.byLoser[player]
	}
	out := make([]MatchRecord, len(idx))
	for i, j := range idx {
		out[i] = d.records[j]
	}
	return out
}

// Count returns how many matches player has for mode.
func (d *Dataset) Count(player string, mode Mode) int {
	switch mode {
	case ModeWon:
		return len(d.byWinner[player])
	case ModeLost:
		return len(d.byLoser[player])
	}
	return 0
}
