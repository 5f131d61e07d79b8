package rating

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// link is a team's participation in an outcome whose opponent is known.
type link struct {
	outcome  *Outcome
	opponent int
	won      bool
}

// aggregate recomputes one team's state from the frozen previous snapshot.
func aggregate(id model.ID, links []link, prev *Snapshot) TeamState {
	games := make([]TeamGame, len(links))
	for i, l := range links {
		rating := prev.teams[l.opponent].Rating
		if l.won {
			rating += l.outcome.Differential
		} else {
			rating -= l.outcome.Differential
		}
		games[i] = TeamGame{
			Outcome: l.outcome,
			Rating:  rating,
			Weight:  l.outcome.Weight,
			Won:     l.won,
		}
	}
	return TeamState{ID: id, Rating: WeightedAverage(games), Games: games}
}

// WeightedAverage returns Σ(rating·weight)/Σ(weight). It is NaN for no games.
func WeightedAverage(games []TeamGame) float64 {
	var weighted, weights float64
	for _, g := range games {
		weighted += g.Rating * g.Weight
		weights += g.Weight
	}
	return weighted / weights
}
