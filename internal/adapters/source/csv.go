package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// CSV column names.
const (
	colID           = "id"
	colHomeTeamID   = "home_team_id"
	colAwayTeamID   = "away_team_id"
	colHomeScore    = "home_score"
	colAwayScore    = "away_score"
	colStartDate    = "start_date"
	colHomeTeamName = "home_team_name"
	colAwayTeamName = "away_team_name"
)

var requiredColumns = []string{colHomeTeamID, colAwayTeamID, colHomeScore, colAwayScore}

// decodeGamesCSV reads games from a CSV file with a header row. Columns are
// matched by name; an empty score cell is a missing score. Games without an
// id column are numbered by data row, starting at 0.
func decodeGamesCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedRow, c)
		}
	}

	cell := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	score := func(rec []string, name string) *string {
		if v := cell(rec, name); v != "" {
			return &v
		}
		return nil
	}

	ds := &Dataset{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}

		id := cell(rec, colID)
		if id == "" {
			id = strconv.Itoa(len(ds.Games))
		}
		ds.Games = append(ds.Games, model.Game{
			ID:           model.ID(id),
			HomeTeamID:   model.ID(cell(rec, colHomeTeamID)),
			AwayTeamID:   model.ID(cell(rec, colAwayTeamID)),
			HomeScore:    score(rec, colHomeScore),
			AwayScore:    score(rec, colAwayScore),
			StartDate:    cell(rec, colStartDate),
			HomeTeamName: cell(rec, colHomeTeamName),
			AwayTeamName: cell(rec, colAwayTeamName),
		})
	}
	return ds, nil
}
