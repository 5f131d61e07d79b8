package season

import "errors"

// Sentinel kinds for season generation errors.
var (
	ErrTooFewTeams   = errors.New("a season needs at least two teams")
	ErrInvalidRounds = errors.New("rounds must be positive")
)
