package matchservice

import "errors"

var (
	// ErrMissingPlayer is returned when a query names no player at all.
	ErrMissingPlayer = errors.New("player is required")
	// ErrUnknownChart is returned for chart names outside the dashboard's three.
	ErrUnknownChart = errors.New("unknown chart")
)
