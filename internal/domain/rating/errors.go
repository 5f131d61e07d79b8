package rating

import (
	"errors"
	"fmt"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// Rating engine errors.
var (
	ErrUndefinedDifferential = errors.New("differential is undefined")
	ErrNaNRating             = errors.New("rating resolved to NaN")
	ErrMissingTeam           = errors.New("team missing from snapshot")
)

// InvariantError reports a broken engine invariant. It aborts the run.
type InvariantError struct {
	TeamID model.ID
	// Round is -1 when the violation happened in the blowout pass.
	Round int
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("rating invariant violated for team %q in round %d: %v", e.TeamID, e.Round, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }
