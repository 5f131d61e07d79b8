// Package source reads game results and raw score rows from JSON, YAML and
// CSV files.
package source

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/dedupe"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

//go:embed games.schema.json
var gamesSchema []byte

// Format is an input file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Dataset is the content of a games file.
type Dataset struct {
	Teams []model.Team `json:"teams,omitempty" yaml:"teams,omitempty"`
	Games []model.Game `json:"games" yaml:"games"`
}

// Loader decodes input files.
type Loader struct {
	validate bool
	logger   logger.Logger
}

// NewLoader creates a loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	ld := &Loader{
		validate: true,
		logger:   logger.NewNop(),
	}

	for _, opt := range opts {
		opt(ld)
	}

	return ld
}

// LoadGames reads a games file. When the file has no team list the teams are
// derived from the games.
func (ld *Loader) LoadGames(ctx context.Context, path string) (*Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open games file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := ld.DecodeGames(ctx, f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// DecodeGames decodes a games document in the given format.
func (ld *Loader) DecodeGames(ctx context.Context, r io.Reader, format Format) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	switch format {
	case FormatJSON:
		ds, err = ld.decodeGamesJSON(r)
	case FormatYAML:
		ds, err = decodeGamesYAML(r)
	case FormatCSV:
		ds, err = decodeGamesCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	ld.checkDuplicates(ctx, ds.Games)
	if len(ds.Teams) == 0 {
		ds.Teams = TeamsFromGames(ctx, ds.Games)
	}

	ld.logger.Debug(ctx, "games decoded",
		logger.String("format", string(format)),
		logger.Int("games", len(ds.Games)),
		logger.Int("teams", len(ds.Teams)),
	)
	return ds, nil
}

func (ld *Loader) decodeGamesJSON(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	if ld.validate {
		if err := validateGames(data); err != nil {
			return nil, err
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var games []model.Game
		if err := json.Unmarshal(trimmed, &games); err != nil {
			return nil, fmt.Errorf("decode json games: %w", err)
		}
		return &Dataset{Games: games}, nil
	}

	var ds Dataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return nil, fmt.Errorf("decode json games: %w", err)
	}
	return &ds, nil
}

func validateGames(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(gamesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(errs, "; "))
	}
	return nil
}

func decodeGamesYAML(r io.Reader) (*Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("decode yaml games: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if root.Kind == yaml.SequenceNode {
		var games []model.Game
		if err := root.Decode(&games); err != nil {
			return nil, fmt.Errorf("decode yaml games: %w", err)
		}
		return &Dataset{Games: games}, nil
	}

	var ds Dataset
	if err := root.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode yaml games: %w", err)
	}
	return &ds, nil
}

// checkDuplicates warns about repeated game ids. Games are still rated.
func (ld *Loader) checkDuplicates(ctx context.Context, games []model.Game) {
	seen := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(len(games)))
	for i := range games {
		if games[i].ID.IsZero() {
			continue
		}
		if seen.SeenAndRecord(ctx, string(games[i].ID)) {
			ld.logger.Warn(ctx, "duplicate game id", logger.String("game", games[i].ID.String()))
		}
	}
}

// TeamsFromGames returns the distinct teams of the games in first-seen
// order, home team before away team. Names are taken from the first game
// that carries one.
func TeamsFromGames(ctx context.Context, games []model.Game) []model.Team {
	seen := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(2 * len(games)))
	names := make(map[model.ID]string)

	add := func(id model.ID, name string) {
		if id.IsZero() {
			return
		}
		seen.SeenAndRecord(ctx, string(id))
		if _, ok := names[id]; !ok && name != "" {
			names[id] = name
		}
	}
	for i := range games {
		add(games[i].HomeTeamID, games[i].HomeTeamName)
		add(games[i].AwayTeamID, games[i].AwayTeamName)
	}

	ordered := seen.Ordered()
	teams := make([]model.Team, len(ordered))
	for i, id := range ordered {
		teams[i] = model.Team{ID: model.ID(id), Name: names[model.ID(id)]}
	}
	return teams
}

// LoadRows reads raw score rows for the custom entry point.
func (ld *Loader) LoadRows(ctx context.Context, path string) ([]rating.Row, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rows file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ld.DecodeRows(ctx, f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return rows, nil
}

// DecodeRows decodes raw score rows in the given format.
func (ld *Loader) DecodeRows(ctx context.Context, r io.Reader, format Format) ([]rating.Row, error) {
	var rows []rating.Row
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode json rows: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml rows: %w", err)
		}
	case FormatCSV:
		ds, err := decodeGamesCSV(r)
		if err != nil {
			return nil, err
		}
		rows = make([]rating.Row, len(ds.Games))
		for i, g := range ds.Games {
			rows[i] = rating.Row{
				HomeTeamID: g.HomeTeamID,
				AwayTeamID: g.AwayTeamID,
				HomeScore:  g.HomeScore,
				AwayScore:  g.AwayScore,
				StartDate:  g.StartDate,
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	ld.logger.Debug(ctx, "rows decoded", logger.String("format", string(format)), logger.Int("rows", len(rows)))
	return rows, nil
}

// EncodeGames writes a dataset as JSON or YAML.
func EncodeGames(w io.Writer, format Format, ds *Dataset) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
