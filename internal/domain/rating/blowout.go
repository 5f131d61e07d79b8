package rating

import (
	"fmt"
)

// BlowoutRatingGap is the minimum rating gap between winner and loser for a
// blowout.
const BlowoutRatingGap = 600.0

// IsBlowout reports whether a game between teams with the given ratings is
// lopsided enough to be ignored for the final rating.
func IsBlowout(winnerRating, loserRating float64, winningScore, losingScore int) bool {
	return winnerRating-loserRating >= BlowoutRatingGap && winningScore > 2*losingScore+1
}

// ApplyBlowouts flags blowout games using the converged ratings and
// recomputes every team's rating over its remaining games. A team whose
// games are all blowouts keeps its converged rating.
func ApplyBlowouts(converged *Snapshot) (*Snapshot, []Diagnostic, error) {
	var diags []Diagnostic
	teams := make([]TeamState, len(converged.teams))

	for i, t := range converged.teams {
		games := make([]TeamGame, len(t.Games))
		kept := make([]TeamGame, 0, len(t.Games))

		for j, g := range t.Games {
			o := g.Outcome
			winner, ok := converged.Rating(o.WinningTeamID)
			if !ok {
				return nil, nil, &InvariantError{TeamID: o.WinningTeamID, Round: -1, Err: ErrMissingTeam}
			}
			loser, ok := converged.Rating(o.LosingTeamID)
			if !ok {
				return nil, nil, &InvariantError{TeamID: o.LosingTeamID, Round: -1, Err: ErrMissingTeam}
			}

			g.IsBlowout = IsBlowout(winner, loser, o.WinningScore, o.LosingScore)
			games[j] = g
			if !g.IsBlowout {
				kept = append(kept, g)
			}
		}

		rating := t.Rating
		if len(kept) > 0 {
			rating = WeightedAverage(kept)
		} else if len(games) > 0 {
			diags = append(diags, Diagnostic{
				Kind:    DiagnosticAllGamesBlowout,
				TeamID:  t.ID,
				Message: fmt.Sprintf("all %d games are blowouts, keeping converged rating", len(games)),
			})
		}

		teams[i] = TeamState{ID: t.ID, Rating: rating, Games: games}
	}

	return newSnapshot(teams, converged.index), diags, nil
}
