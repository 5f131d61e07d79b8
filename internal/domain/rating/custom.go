package rating

import (
	"context"
	"strconv"
	"strings"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/dedupe"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

// Failure messages of the custom entry point.
const (
	MessageMissingTeamIDs = "Games not formatted correctly. Make sure each entry has an AwayTeamId and HomeTeamId."
	MessageBlankValues    = "Games not formatted correctly. Make sure there are no missing or blank values."
)

// Row is a raw score row without a team list.
type Row struct {
	HomeTeamID model.ID `json:"homeTeamId" yaml:"homeTeamId"`
	AwayTeamID model.ID `json:"awayTeamId" yaml:"awayTeamId"`
	HomeScore  *string  `json:"homeScore" yaml:"homeScore"`
	AwayScore  *string  `json:"awayScore" yaml:"awayScore"`
	StartDate  string   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
}

func (r *Row) complete() bool {
	return !r.HomeTeamID.IsZero() && !r.AwayTeamID.IsZero() && !blank(r.HomeScore) && !blank(r.AwayScore)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// CustomResult is the tagged outcome of Custom.
type CustomResult struct {
	Success    bool         `json:"success" yaml:"success"`
	Message    string       `json:"message,omitempty" yaml:"message,omitempty"`
	TeamIDs    []model.ID   `json:"teamIds,omitempty" yaml:"teamIds,omitempty"`
	Iterations int          `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	Teams      []TeamResult `json:"perTeam,omitempty" yaml:"perTeam,omitempty"`
}

// Custom rates raw score rows. Teams are derived from the rows in
// first-seen order, away team before home team. Score and date weighting
// are disabled and each game is identified by its row index. Custom never
// returns an error; every failure is reported in the result.
func (e *Engine) Custom(ctx context.Context, rows []Row) CustomResult {
	ids := TeamIDsFromRows(ctx, rows)
	if len(ids) == 0 {
		return CustomResult{Message: MessageMissingTeamIDs}
	}

	for i := range rows {
		if !rows[i].complete() {
			return CustomResult{Message: MessageBlankValues}
		}
	}

	teams := make([]model.Team, len(ids))
	for i, id := range ids {
		teams[i] = model.Team{ID: id}
	}
	games := make([]model.Game, len(rows))
	for i, r := range rows {
		games[i] = model.Game{
			ID:         model.ID(strconv.Itoa(i)),
			HomeTeamID: r.HomeTeamID,
			AwayTeamID: r.AwayTeamID,
			HomeScore:  r.HomeScore,
			AwayScore:  r.AwayScore,
			StartDate:  r.StartDate,
		}
	}

	res, err := e.with(WithDateWeight(false), WithScoreWeight(false)).Run(ctx, teams, games)
	if err != nil {
		return CustomResult{Message: err.Error()}
	}

	return CustomResult{
		Success:    true,
		TeamIDs:    ids,
		Iterations: res.Iterations,
		Teams:      res.Teams,
	}
}

// TeamIDsFromRows returns the distinct non-empty team ids of the rows in
// first-seen order.
func TeamIDsFromRows(ctx context.Context, rows []Row) []model.ID {
	seen := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(2 * len(rows)))
	for i := range rows {
		for _, id := range []model.ID{rows[i].AwayTeamID, rows[i].HomeTeamID} {
			if !id.IsZero() {
				seen.SeenAndRecord(ctx, string(id))
			}
		}
	}

	ordered := seen.Ordered()
	ids := make([]model.ID, len(ordered))
	for i, id := range ordered {
		ids[i] = model.ID(id)
	}
	return ids
}
