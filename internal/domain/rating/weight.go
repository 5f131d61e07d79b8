package rating

import (
	"math"
	"strings"
	"time"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
)

const (
	dateMultiplierBase = 1.5
	dateWeightOffset   = -0.5
)

// startDateLayouts are tried in order. Dates without a zone are read as UTC.
var startDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ScoreWeight returns the importance of a game given its final score. It is
// 1 once the winner reaches scoreWeightMax or the total is large enough, and
// shrinks with the square root of the score otherwise.
func ScoreWeight(winningScore, losingScore int, scoreWeightMax float64) float64 {
	w, l := float64(winningScore), float64(losingScore)
	if w >= scoreWeightMax || w+l >= (19.0/13.0)*scoreWeightMax {
		return 1
	}
	return math.Sqrt((w + math.Max(l, (w-1)/2)) / 19)
}

// DateWeight returns the importance of a game played at start. Weight grows
// geometrically from 0.5 at the season anchor to 1.0 at the end of the
// regular season.
func DateWeight(start time.Time, level model.Level) float64 {
	start = start.UTC()
	weeks := float64(SeasonWeeks(level))
	anchor := SeasonStart(start.Year(), level)

	multiplier := math.Pow(dateMultiplierBase, 1/weeks)
	week := math.Floor(start.Sub(anchor).Hours() / 24 / 7)
	week = math.Max(0, math.Min(week, weeks))

	return math.Pow(multiplier, week) + dateWeightOffset
}

// ParseStartDate parses an ISO-8601 game start date.
func ParseStartDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range startDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// gameWeight combines the enabled weight factors of an outcome. A missing or
// unreadable start date yields a date weight of 1 and a diagnostic.
func gameWeight(cfg Config, o *Outcome) (float64, *Diagnostic) {
	scoreWeight, dateWeight := 1.0, 1.0
	if cfg.EnableScoreWeight {
		scoreWeight = ScoreWeight(o.WinningScore, o.LosingScore, cfg.ScoreWeightMax)
	}

	var diag *Diagnostic
	if cfg.EnableDateWeight {
		switch start, ok := ParseStartDate(o.Game.StartDate); {
		case ok:
			dateWeight = DateWeight(start, cfg.Division.Level())
		case strings.TrimSpace(o.Game.StartDate) == "":
			diag = &Diagnostic{Kind: DiagnosticMissingStartDate, GameID: o.Game.ID, Message: "no start date for game"}
		default:
			diag = &Diagnostic{Kind: DiagnosticInvalidStartDate, GameID: o.Game.ID, Message: "unreadable start date " + o.Game.StartDate}
		}
	}

	return scoreWeight * dateWeight, diag
}
