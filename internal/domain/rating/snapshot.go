package rating

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// TeamGame is a team's view of one game in one round.
type TeamGame struct {
	Outcome *Outcome
	// Rating is the opponent's rating from the previous round plus the
	// differential for a win, minus it for a loss.
	Rating    float64
	Weight    float64
	Won       bool
	IsBlowout bool
}

// TeamState is one team's rating and game records after a round.
type TeamState struct {
	ID     model.ID
	Rating float64
	Games  []TeamGame
}

// Snapshot holds every team's state at one point of the iteration. A round
// reads the previous snapshot and builds a new one; snapshots are never
// modified after construction.
type Snapshot struct {
	teams []TeamState
	index map[model.ID]int
}

func newSnapshot(teams []TeamState, index map[model.ID]int) *Snapshot {
	return &Snapshot{teams: teams, index: index}
}

// initialSnapshot places every team at InitialRating with no games.
func initialSnapshot(ids []model.ID) *Snapshot {
	index := make(map[model.ID]int, len(ids))
	teams := make([]TeamState, len(ids))
	for i, id := range ids {
		index[id] = i
		teams[i] = TeamState{ID: id, Rating: InitialRating}
	}
	return newSnapshot(teams, index)
}

// Len returns the number of teams.
func (s *Snapshot) Len() int { return len(s.teams) }

// Team returns the state at position i.
func (s *Snapshot) Team(i int) TeamState { return s.teams[i] }

// Lookup returns the position of a team.
func (s *Snapshot) Lookup(id model.ID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Rating returns a team's rating.
func (s *Snapshot) Rating(id model.ID) (float64, bool) {
	i, ok := s.index[id]
	if !ok {
		return 0, false
	}
	return s.teams[i].Rating, true
}

// averageAbsDiff is the mean absolute rating change between two snapshots
// of the same team set.
func averageAbsDiff(next, prev *Snapshot) float64 {
	var total float64
	for i := range next.teams {
		d := next.teams[i].Rating - prev.teams[i].Rating
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total / float64(len(next.teams))
}
