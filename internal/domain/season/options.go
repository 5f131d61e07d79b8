package season

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithTeams sets the number of teams.
func WithTeams(n int) Option {
	return func(g *Generator) {
		g.teams = n
	}
}

// WithRounds sets how many games every team plays.
func WithRounds(n int) Option {
	return func(g *Generator) {
		g.rounds = n
	}
}

// WithSeed sets the random seed. Equal seeds produce equal seasons.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithDivision sets the division whose calendar dates the games.
func WithDivision(d model.Division) Option {
	return func(g *Generator) {
		if d != "" {
			g.division = d
		}
	}
}

// WithYear sets the season year.
func WithYear(year int) Option {
	return func(g *Generator) {
		if year > 0 {
			g.year = year
		}
	}
}

// WithMissingScoreRate sets the share of games reported without a score.
func WithMissingScoreRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate < 1 {
			g.missingRate = rate
		}
	}
}

// WithLogger sets a custom logger for the generator.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
