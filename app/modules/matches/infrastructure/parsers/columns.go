package parsers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
)

var (
	ErrMissingColumn  = errors.New("missing required column")
	ErrNoRows         = errors.New("no match rows found")
	ErrMissingHeader  = errors.New("missing header row")
	ErrMissingValue   = errors.New("missing required value")
	ErrInvalidNumber  = errors.New("invalid number")
	ErrInvalidDate    = errors.New("invalid tourney_date")
	tourneyDateLayout = []string{"20060102", "2006-01-02"}
)

// RowError pins a parse failure to a data row (1-based, header is row 1).
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

const (
	colTourneyID   = "tourney_id"
	colTourneyName = "tourney_name"
	colSurface     = "surface"
	colTourneyDate = "tourney_date"
	colMatchNum    = "match_num"
	colRound       = "round"
	colScore       = "score"
	colBestOf      = "best_of"
	colWinnerID    = "winner_id"
	colWinnerName  = "winner_name"
	colWinnerIOC   = "winner_ioc"
	colWinnerRank  = "winner_rank"
	colLoserID     = "loser_id"
	colLoserName   = "loser_name"
	colLoserIOC    = "loser_ioc"
	colLoserRank   = "loser_rank"
)

// RequiredColumns must be present in the header.
var RequiredColumns = []string{
	colTourneyDate, colWinnerName, colLoserName, colWinnerIOC, colWinnerRank,
	"w_svpt", "w_1stWon", "w_ace", "w_bpSaved", "w_bpFaced",
}

// serveColumns are suffixes shared by the w_ and l_ column families.
var serveColumns = []string{"ace", "df", "svpt", "1stIn", "1stWon", "2ndWon", "SvGms", "bpSaved", "bpFaced"}

// header maps a column name to its index.
type header map[string]int

func newHeader(row []string) (header, error) {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			continue
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return h, nil
}

// cell returns the trimmed value, or "" when the column is absent or the row is short.
func (h header) cell(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseRows turns a header row plus data rows into match records.
func parseRows(rows [][]string) ([]matchtypes.MatchRecord, error) {
	start := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrMissingHeader
	}

	h, err := newHeader(rows[start])
	if err != nil {
		return nil, err
	}

	var records []matchtypes.MatchRecord
	for i := start + 1; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}
		rec, err := h.record(rows[i], i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRows
	}
	return records, nil
}

func (h header) record(row []string, line int) (matchtypes.MatchRecord, error) {
	var rec matchtypes.MatchRecord
	fail := func(col string, err error) (matchtypes.MatchRecord, error) {
		return matchtypes.MatchRecord{}, &RowError{Row: line, Column: col, Err: err}
	}

	rec.WinnerName = h.cell(row, colWinnerName)
	if rec.WinnerName == "" {
		return fail(colWinnerName, ErrMissingValue)
	}
	rec.LoserName = h.cell(row, colLoserName)
	if rec.LoserName == "" {
		return fail(colLoserName, ErrMissingValue)
	}

	date, err := parseTourneyDate(h.cell(row, colTourneyDate))
	if err != nil {
		return fail(colTourneyDate, err)
	}
	rec.TourneyDate = date

	rec.TourneyID = h.cell(row, colTourneyID)
	rec.TourneyName = h.cell(row, colTourneyName)
	rec.Surface = h.cell(row, colSurface)
	rec.Round = h.cell(row, colRound)
	rec.Score = h.cell(row, colScore)
	rec.WinnerID = h.cell(row, colWinnerID)
	rec.WinnerIOC = strings.ToUpper(h.cell(row, colWinnerIOC))
	rec.LoserID = h.cell(row, colLoserID)
	rec.LoserIOC = strings.ToUpper(h.cell(row, colLoserIOC))

	for _, f := range []struct {
		col string
		dst *int
	}{
		{colMatchNum, &rec.MatchNum},
		{colBestOf, &rec.BestOf},
	} {
		v, ok, err := parseOptionalInt(h.cell(row, f.col))
		if err != nil {
			return fail(f.col, err)
		}
		if ok {
			*f.dst = v
		}
	}

	if rec.WinnerRank, err = parseRank(h.cell(row, colWinnerRank)); err != nil {
		return fail(colWinnerRank, err)
	}
	if rec.LoserRank, err = parseRank(h.cell(row, colLoserRank)); err != nil {
		return fail(colLoserRank, err)
	}

	var col string
	if rec.Winner, col, err = h.serveStats(row, "w_"); err != nil {
		return fail(col, err)
	}
	if rec.Loser, col, err = h.serveStats(row, "l_"); err != nil {
		return fail(col, err)
	}

	return rec, nil
}

// serveStats reads one side's serve columns. A side without a svpt column, or
// with any blank serve cell, has no stats: the whole row drops out of every
// ratio so numerators and denominators always cover the same matches.
// Optional columns absent from the header count as zero.
func (h header) serveStats(row []string, prefix string) (*matchtypes.ServeStats, string, error) {
	if _, ok := h[prefix+"svpt"]; !ok {
		return nil, "", nil
	}
	vals := make([]int, len(serveColumns))
	for i, suffix := range serveColumns {
		col := prefix + suffix
		if _, ok := h[col]; !ok {
			continue
		}
		v, ok, err := parseOptionalInt(h.cell(row, col))
		if err != nil {
			return nil, col, err
		}
		if !ok {
			return nil, "", nil
		}
		vals[i] = v
	}
	return &matchtypes.ServeStats{
		Aces:         vals[0],
		DoubleFaults: vals[1],
		ServePoints:  vals[2],
		FirstIn:      vals[3],
		FirstWon:     vals[4],
		SecondWon:    vals[5],
		ServiceGames: vals[6],
		BPSaved:      vals[7],
		BPFaced:      vals[8],
	}, "", nil
}

func parseTourneyDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrMissingValue
	}
	// Spreadsheets sometimes hand back the yyyymmdd integer as a float.
	s = strings.TrimSuffix(s, ".0")
	for _, layout := range tourneyDateLayout {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func parseRank(s string) (*int, error) {
	v, ok, err := parseOptionalInt(s)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// parseOptionalInt accepts integers and integral floats ("12.0"); blank and NaN are absent.
func parseOptionalInt(s string) (int, bool, error) {
	if s == "" || strings.EqualFold(s, "nan") || s == "-" {
		return 0, false, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 {
			return 0, false, fmt.Errorf("%w: negative value %d", ErrInvalidNumber, v)
		}
		return v, true, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if f < 0 {
		return 0, false, fmt.Errorf("%w: negative value %s", ErrInvalidNumber, s)
	}
	if f >= math.MaxInt {
		return 0, false, fmt.Errorf("%w: %s out of range", ErrInvalidNumber, s)
	}
	return int(f), true, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
