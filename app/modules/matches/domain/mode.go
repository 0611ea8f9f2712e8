package matchtypes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMode      = errors.New("unknown win/loss mode")
	ErrUnknownServeSide = errors.New("unknown serve side")
)

// Mode selects which of a player's matches a query looks at.
type Mode int

const (
	ModeWon Mode = iota
	ModeLost
)

const (
	ModeWonLabel  = "Games Won"
	ModeLostLabel = "Games Lost"
)

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeWon, ModeLost}

func (m Mode) String() string {
	switch m {
	case ModeWon:
		return ModeWonLabel
	case ModeLost:
		return ModeLostLabel
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Slug is the short query-string form of the mode.
func (m Mode) Slug() string {
	if m == ModeLost {
		return "lost"
	}
	return "won"
}

// Selects reports whether the match belongs to player's subset for this mode.
func (m Mode) Selects(rec MatchRecord, player string) bool {
	switch m {
	case ModeWon:
		return rec.WinnerName == player
	case ModeLost:
		return rec.LoserName == player
	default:
		return false
	}
}

// ParseMode accepts the display labels and the short forms won/lost.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "won", strings.ToLower(ModeWonLabel):
		return ModeWon, nil
	case "lost", strings.ToLower(ModeLostLabel):
		return ModeLost, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ServeSide decides whose serve columns back the serve percentages in lost mode.
type ServeSide string

const (
	// ServeSideWinner always reads the w_* columns, even for lost matches.
	ServeSideWinner ServeSide = "winner"
	// ServeSidePlayer reads the selected player's own columns (l_* in lost mode).
	ServeSidePlayer ServeSide = "player"
)

// ParseServeSide parses a configured serve side; empty means winner.
func ParseServeSide(s string) (ServeSide, error) {
	switch ServeSide(strings.ToLower(strings.TrimSpace(s))) {
	case "", ServeSideWinner:
		return ServeSideWinner, nil
	case ServeSidePlayer:
		return ServeSidePlayer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownServeSide, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
