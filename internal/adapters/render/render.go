// Package render writes rating output as a text table, JSON or YAML.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/types"
)

// ErrUnknownFormat is returned for an output format that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output encoding.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat resolves an output format name. An empty name selects table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Standings is the printable outcome of a ranking run.
type Standings struct {
	RunID        string              `json:"runId" yaml:"runId"`
	Division     string              `json:"division" yaml:"division"`
	Iterations   int                 `json:"iterations" yaml:"iterations"`
	Converged    bool                `json:"converged" yaml:"converged"`
	Entries      []types.Entry       `json:"standings" yaml:"standings"`
	InvalidTeams []rating.Invalid    `json:"invalidTeams" yaml:"invalidTeams"`
	InvalidGames []rating.Invalid    `json:"invalidGames" yaml:"invalidGames"`
	Diagnostics  []rating.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// WriteStandings writes standings in the given format.
func WriteStandings(w io.Writer, format Format, s *Standings) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	case FormatTable:
		return standingsTable(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func standingsTable(w io.Writer, s *Standings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "RANK\tTEAM\tRATING\tGAMES\tBLOWOUTS\t")
	for _, e := range s.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%d\t\n", e.Rank, e.TeamID, e.Rating, e.Games, e.Blowouts)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	status := "converged"
	if !s.Converged {
		status = "stopped at cap"
	}
	fmt.Fprintf(w, "\n%d teams, %d iterations (%s), division %s, run %s\n",
		len(s.Entries), s.Iterations, status, s.Division, s.RunID)

	writeInvalid(w, "invalid teams", s.InvalidTeams)
	writeInvalid(w, "invalid games", s.InvalidGames)
	return nil
}

func writeInvalid(w io.Writer, title string, items []rating.Invalid) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for _, it := range items {
		fmt.Fprintf(w, "  %s: %s\n", it.ID, it.Reason)
	}
}

// WriteCustom writes the result of the custom entry point.
func WriteCustom(w io.Writer, format Format, r *rating.CustomResult) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatTable:
		if !r.Success {
			_, err := fmt.Fprintf(w, "failed: %s\n", r.Message)
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "TEAM\tRATING\tGAMES\t")
		for _, t := range r.Teams {
			fmt.Fprintf(tw, "%s\t%.2f\t%d\t\n", t.ID, t.Rating, len(t.Games))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%d teams, %d iterations\n", len(r.TeamIDs), r.Iterations)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteResult writes the full engine result including per-game records.
// Tables are not supported for the full result.
func WriteResult(w io.Writer, format Format, r *rating.Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	default:
		return fmt.Errorf("%w: %q for full result", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
