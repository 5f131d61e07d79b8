package rating

import (
	"strconv"
	"strings"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// Outcome is a valid game resolved into winner and loser. It is derived once
// per run and does not change across rounds.
type Outcome struct {
	Game          *model.Game
	WinningTeamID model.ID
	LosingTeamID  model.ID
	WinningScore  int
	LosingScore   int
	Differential  float64
	// Weight is the combined score and date weight of the game.
	Weight float64
}

// Won reports whether team won the game.
func (o *Outcome) Won(team model.ID) bool { return o.WinningTeamID == team }

// Opponent returns the other participant.
func (o *Outcome) Opponent(team model.ID) model.ID {
	if o.WinningTeamID == team {
		return o.LosingTeamID
	}
	return o.WinningTeamID
}

// Involves reports whether team played in the game.
func (o *Outcome) Involves(team model.ID) bool {
	return o.WinningTeamID == team || o.LosingTeamID == team
}

// participants lists each team in the game once.
func (o *Outcome) participants() []model.ID {
	if o.WinningTeamID == o.LosingTeamID {
		return []model.ID{o.WinningTeamID}
	}
	return []model.ID{o.WinningTeamID, o.LosingTeamID}
}

// parseScore accepts a non-negative decimal integer.
func parseScore(s *string) (int, bool) {
	if s == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func hasParsableScores(g *model.Game) bool {
	_, okHome := parseScore(g.HomeScore)
	_, okAway := parseScore(g.AwayScore)
	return okHome && okAway
}

func isTie(home, away int) bool { return home == away }

// resolveOutcome builds the outcome of a game with parsable, non-tied scores.
// The away team wins only with the strictly higher score.
func resolveOutcome(g *model.Game, home, away int) (*Outcome, error) {
	o := &Outcome{Game: g}
	if away > home {
		o.WinningTeamID, o.LosingTeamID = g.AwayTeamID, g.HomeTeamID
		o.WinningScore, o.LosingScore = away, home
	} else {
		o.WinningTeamID, o.LosingTeamID = g.HomeTeamID, g.AwayTeamID
		o.WinningScore, o.LosingScore = home, away
	}

	d, err := Differential(o.LosingScore, o.WinningScore)
	if err != nil {
		return nil, err
	}
	o.Differential = d
	return o, nil
}
