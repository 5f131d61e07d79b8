package repository

import "errors"

// Sentinel kinds for standings errors.
var (
	ErrNotFound      = errors.New("team not found")
	ErrInvalidLimit  = errors.New("invalid standings limit")
	ErrInvalidRating = errors.New("rating must be finite")
	ErrEmptyTeamID   = errors.New("team id must not be empty")
)
