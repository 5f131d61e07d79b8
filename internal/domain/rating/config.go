package rating

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// Rating engine constants.
const (
	InitialRating         = 1000.0
	MaxIterations         = 500
	DefaultTolerance      = 0.001
	DefaultScoreWeightMax = 13.0
)

// Config enumerates every engine option. It is built once per engine and
// never mutated afterwards.
type Config struct {
	EnableDateWeight  bool
	EnableScoreWeight bool
	ScoreWeightMax    float64
	Division          model.Division
	// MaxIterations caps the number of rounds. Values outside (0, 500] are
	// replaced by 500.
	MaxIterations int
	// Tolerance is the convergence threshold on the change of the average
	// rating difference between two consecutive rounds.
	Tolerance float64
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		EnableDateWeight:  true,
		EnableScoreWeight: true,
		ScoreWeightMax:    DefaultScoreWeightMax,
		Division:          model.DivisionMixed,
		MaxIterations:     MaxIterations,
		Tolerance:         DefaultTolerance,
	}
}

func (c Config) normalized() Config {
	if c.ScoreWeightMax <= 0 {
		c.ScoreWeightMax = DefaultScoreWeightMax
	}
	if c.Division == "" {
		c.Division = model.DivisionMixed
	}
	if c.MaxIterations <= 0 || c.MaxIterations > MaxIterations {
		c.MaxIterations = MaxIterations
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	return c
}
