// Package season generates deterministic synthetic seasons of game results
// for exercising the rating engine.
package season

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

// Default generator configuration constants.
const (
	defaultTeams  = 16
	defaultRounds = 8
	defaultSeed   = 1
	defaultYear   = 2024
)

// Constants for score generation.
const (
	strengthMean      = 1000.0
	strengthSpread    = 300.0
	eloScale          = 400.0
	gameTo            = 15
	capChance         = 0.2 // share of games ending on a time cap
	capMinScore       = 11
	marginPerRating   = 60.0
	marginNoise       = 2.0
	saturdayOffset    = 4 // days from the Tuesday anchor
	firstGameHour     = 9
	slotLength        = 90 * time.Minute
	fieldsPerSaturday = 8
)

// teamNamespace scopes generated team ids.
var teamNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("usau-rankings-algorithm/season"))

// Season is a generated set of teams and games with the hidden strength used
// to simulate each game.
type Season struct {
	Teams    []model.Team
	Games    []model.Game
	Strength map[model.ID]float64
}

// Generator builds synthetic seasons.
type Generator struct {
	teams       int
	rounds      int
	seed        int64
	division    model.Division
	year        int
	missingRate float64
	logger      logger.Logger
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		teams:    defaultTeams,
		rounds:   defaultRounds,
		seed:     defaultSeed,
		division: model.DivisionMixed,
		year:     defaultYear,
		logger:   logger.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate builds a season. Every round pairs teams at random; with an odd
// team count one team sits out each round.
func (g *Generator) Generate(ctx context.Context) (*Season, error) {
	if g.teams < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewTeams, g.teams)
	}
	if g.rounds < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, g.rounds)
	}

	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // reproducible simulation, not security sensitive
	s := &Season{
		Teams:    make([]model.Team, g.teams),
		Strength: make(map[model.ID]float64, g.teams),
	}
	for i := range s.Teams {
		id := model.ID(uuid.NewSHA1(teamNamespace, []byte(strconv.FormatInt(g.seed, 10)+"/"+strconv.Itoa(i))).String())
		s.Teams[i] = model.Team{ID: id, Name: fmt.Sprintf("Team %02d", i+1)}
		s.Strength[id] = strengthMean + rng.NormFloat64()*strengthSpread
	}

	anchor := rating.SeasonStart(g.year, g.division.Level())
	for round := 0; round < g.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during season generation: %w", err)
		}

		day := anchor.AddDate(0, 0, 7*round+saturdayOffset).Add(firstGameHour * time.Hour)
		order := rng.Perm(g.teams)
		for k := 0; k+1 < len(order); k += 2 {
			home, away := s.Teams[order[k]], s.Teams[order[k+1]]
			slot := (k / 2) / fieldsPerSaturday
			start := day.Add(time.Duration(slot) * slotLength)
			s.Games = append(s.Games, g.play(rng, round, k/2, home, away, s.Strength, start))
		}
	}

	g.logger.Info(ctx, "season generated",
		logger.Int("teams", len(s.Teams)),
		logger.Int("games", len(s.Games)),
		logger.Int("seed", int(g.seed)),
	)
	return s, nil
}

// play simulates one game between two teams.
func (g *Generator) play(rng *rand.Rand, round, index int, home, away model.Team, strength map[model.ID]float64, start time.Time) model.Game {
	diff := strength[home.ID] - strength[away.ID]
	homeWins := rng.Float64() < 1/(1+math.Pow(10, -diff/eloScale))

	winScore := gameTo
	if rng.Float64() < capChance {
		winScore = capMinScore + rng.Intn(gameTo-capMinScore)
	}
	margin := int(math.Round(1 + math.Abs(diff)/marginPerRating + rng.NormFloat64()*marginNoise))
	margin = max(1, min(margin, winScore))
	loseScore := winScore - margin

	homeScore, awayScore := winScore, loseScore
	if !homeWins {
		homeScore, awayScore = loseScore, winScore
	}

	game := model.Game{
		ID:           model.ID(fmt.Sprintf("r%02d-g%03d", round+1, index+1)),
		HomeTeamID:   home.ID,
		AwayTeamID:   away.ID,
		HomeScore:    model.Score(strconv.Itoa(homeScore)),
		AwayScore:    model.Score(strconv.Itoa(awayScore)),
		StartDate:    start.Format(time.RFC3339),
		HomeTeamName: home.Name,
		AwayTeamName: away.Name,
	}
	if rng.Float64() < g.missingRate {
		game.HomeScore = nil
	}
	return game
}
