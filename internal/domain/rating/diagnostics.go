package rating

import (
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// DiagnosticKind classifies a non-fatal anomaly found during a run.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagnosticMissingOpponent  DiagnosticKind = "missing_opponent"
	DiagnosticMissingStartDate DiagnosticKind = "missing_start_date"
	DiagnosticInvalidStartDate DiagnosticKind = "invalid_start_date"
	DiagnosticAllGamesBlowout  DiagnosticKind = "all_games_blowout"
)

// Diagnostic is an anomaly that did not abort the run.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	TeamID  model.ID       `json:"teamId,omitempty" yaml:"teamId,omitempty"`
	GameID  model.ID       `json:"gameId,omitempty" yaml:"gameId,omitempty"`
	Message string         `json:"message" yaml:"message"`
}
