package rating

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// Invalid game and team reasons.
const (
	ReasonNoScores              = "no scores"
	ReasonTie                   = "tie"
	ReasonUndefinedDifferential = "undefined differential"
	ReasonNoValidGames          = "no valid games"
)

// GameRecord is one game as seen by one team in the final result.
type GameRecord struct {
	GameID    model.ID `json:"gameId" yaml:"gameId"`
	Rating    float64  `json:"rating" yaml:"rating"`
	Weight    float64  `json:"weight" yaml:"weight"`
	// Percent is Weight as a share of the team's total game weight,
	// blowouts included.
	Percent   float64  `json:"percent" yaml:"percent"`
	Won       bool     `json:"won" yaml:"won"`
	IsBlowout bool     `json:"isBlowout" yaml:"isBlowout"`
}

// TeamResult is a team's final rating and game records.
type TeamResult struct {
	ID     model.ID     `json:"id" yaml:"id"`
	Rating float64      `json:"rating" yaml:"rating"`
	Games  []GameRecord `json:"games" yaml:"games"`
}

// Blowouts counts the team's games flagged as blowouts.
func (t *TeamResult) Blowouts() int {
	n := 0
	for _, g := range t.Games {
		if g.IsBlowout {
			n++
		}
	}
	return n
}

// Invalid is an excluded team or game with the reason it was excluded.
type Invalid struct {
	ID     model.ID `json:"id" yaml:"id"`
	Reason string   `json:"reason" yaml:"reason"`
}

// Result is the output of a rating run.
type Result struct {
	Teams        []TeamResult `json:"perTeam" yaml:"perTeam"`
	Iterations   int          `json:"iterations" yaml:"iterations"`
	Converged    bool         `json:"converged" yaml:"converged"`
	InvalidTeams []Invalid    `json:"invalidTeams" yaml:"invalidTeams"`
	InvalidGames []Invalid    `json:"invalidGames" yaml:"invalidGames"`
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Team returns the result of a team.
func (r *Result) Team(id model.ID) (TeamResult, bool) {
	for _, t := range r.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return TeamResult{}, false
}

// Blowouts counts blowout records over all teams. A blowout game appears
// once per participant.
func (r *Result) Blowouts() int {
	n := 0
	for i := range r.Teams {
		n += r.Teams[i].Blowouts()
	}
	return n
}

func newTeamResult(s TeamState) TeamResult {
	var total float64
	for _, g := range s.Games {
		total += g.Weight
	}
	games := make([]GameRecord, len(s.Games))
	for i, g := range s.Games {
		games[i] = GameRecord{
			GameID:    g.Outcome.Game.ID,
			Rating:    g.Rating,
			Weight:    g.Weight,
			Percent:   g.Weight / total,
			Won:       g.Won,
			IsBlowout: g.IsBlowout,
		}
	}
	return TeamResult{ID: s.ID, Rating: s.Rating, Games: games}
}
