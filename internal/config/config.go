// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Defaults live in New; files and environment variables only override.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Division selects the season calendar used for date weights.
	Division string `koanf:"division"`

	// EnableDateWeight and EnableScoreWeight toggle game weighting.
	EnableDateWeight  bool `koanf:"enable_date_weight"`
	EnableScoreWeight bool `koanf:"enable_score_weight"`

	// ScoreWeightMax is the winning score at which a game gets full weight.
	ScoreWeightMax float64 `koanf:"score_weight_max"`

	// MaxIterations caps rating rounds, at most 500.
	MaxIterations int `koanf:"max_iterations"`

	// Tolerance is the convergence threshold.
	Tolerance float64 `koanf:"tolerance"`

	// Workers sets the goroutines used per rating round. Zero uses every CPU.
	Workers int `koanf:"workers"`

	// OutputFormat is table, json or yaml.
	OutputFormat string `koanf:"output_format"`

	// TopN limits printed standings. Zero prints every team.
	TopN int `koanf:"top_n"`

	// SchemaValidation checks JSON input against the games schema.
	SchemaValidation bool `koanf:"schema_validation"`

	// MetricsFile, when set, receives Prometheus metrics after each command.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Division:          string(model.DivisionMixed),
		EnableDateWeight:  true,
		EnableScoreWeight: true,
		ScoreWeightMax:    rating.DefaultScoreWeightMax,
		MaxIterations:     rating.MaxIterations,
		Tolerance:         rating.DefaultTolerance,
		Workers:           1,
		OutputFormat:      "table",
		SchemaValidation:  true,
	}
}

// RatingOptions converts the configuration to engine options. Load has
// already validated the division.
func (c *Config) RatingOptions() []rating.Option {
	division, _ := model.ParseDivision(c.Division)
	return []rating.Option{
		rating.WithDivision(division),
		rating.WithDateWeight(c.EnableDateWeight),
		rating.WithScoreWeight(c.EnableScoreWeight),
		rating.WithScoreWeightMax(c.ScoreWeightMax),
		rating.WithMaxIterations(c.MaxIterations),
		rating.WithTolerance(c.Tolerance),
	}
}
