// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID identifies a team or a game. Inputs may carry numeric or string ids;
// both are kept as their textual form and compared as text.
type ID string

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// UnmarshalJSON accepts JSON numbers and strings.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar node.
func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("id must be a scalar, got yaml kind %d at line %d", value.Kind, value.Line)
	}
	if value.Tag == "!!null" {
		*id = ""
		return nil
	}
	*id = ID(value.Value)
	return nil
}

// Team is a rating participant.
type Team struct {
	ID   ID     `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Game is a raw game result as ingested. Scores are decimal strings; a nil
// score means the result was never reported.
type Game struct {
	ID           ID      `json:"id" yaml:"id"`
	HomeTeamID   ID      `json:"homeTeamId" yaml:"homeTeamId"`
	AwayTeamID   ID      `json:"awayTeamId" yaml:"awayTeamId"`
	HomeScore    *string `json:"homeScore" yaml:"homeScore"`
	AwayScore    *string `json:"awayScore" yaml:"awayScore"`
	StartDate    string  `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	HomeTeamName string  `json:"homeTeamName,omitempty" yaml:"homeTeamName,omitempty"`
	AwayTeamName string  `json:"awayTeamName,omitempty" yaml:"awayTeamName,omitempty"`
}

// Involves reports whether the team played in the game.
func (g *Game) Involves(team ID) bool {
	return g.HomeTeamID == team || g.AwayTeamID == team
}

// Score returns a pointer to s, for building games in code.
func Score(s string) *string { return &s }
