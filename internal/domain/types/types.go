// Package types contains common types used across the application
package types

// Entry represents a standings row: a team's final rating and its position.
type Entry struct {
	Rank     int     `json:"rank" yaml:"rank"`
	TeamID   string  `json:"team_id" yaml:"team_id"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Games    int     `json:"games" yaml:"games"`
	Blowouts int     `json:"blowouts" yaml:"blowouts"`
}
