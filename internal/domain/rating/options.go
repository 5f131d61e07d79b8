package rating

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithDateWeight toggles the date weight factor.
func WithDateWeight(enabled bool) Option {
	return func(e *Engine) {
		e.cfg.EnableDateWeight = enabled
	}
}

// WithScoreWeight toggles the score weight factor.
func WithScoreWeight(enabled bool) Option {
	return func(e *Engine) {
		e.cfg.EnableScoreWeight = enabled
	}
}

// WithScoreWeightMax overrides the winning score at which score weight saturates.
func WithScoreWeightMax(maxScore float64) Option {
	return func(e *Engine) {
		if maxScore > 0 {
			e.cfg.ScoreWeightMax = maxScore
		}
	}
}

// WithDivision selects the division used for season anchoring.
func WithDivision(d model.Division) Option {
	return func(e *Engine) {
		if d != "" {
			e.cfg.Division = d
		}
	}
}

// WithMaxIterations lowers the round cap.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		e.cfg.MaxIterations = n
	}
}

// WithTolerance sets the convergence threshold.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		e.cfg.Tolerance = tol
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithExecutor sets the executor used for per-team work inside a round.
func WithExecutor(x Executor) Option {
	return func(e *Engine) {
		if x != nil {
			e.exec = x
		}
	}
}
