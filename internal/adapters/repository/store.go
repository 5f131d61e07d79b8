// Package repository keeps the standings of a rating run ordered by rating.
package repository

import (
	"context"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/types"
)

// Store provides read/write access to the standings.
type Store interface {
	// Replace drops every team and loads entries in one step.
	Replace(ctx context.Context, entries []types.Entry) error

	// Rank returns the current rank and rating for a team.
	// Returns ErrNotFound if the team is unknown.
	Rank(ctx context.Context, teamID string) (types.Entry, error)

	// TopN returns the top-N entries ordered by rating desc.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// All returns every entry ordered by rating desc.
	All(ctx context.Context) []types.Entry

	// Count returns the number of teams in the standings.
	Count(ctx context.Context) int
}
