// Package rating computes team ratings from game results with an iterative
// strength-of-opponent algorithm.
//
// A team's rating is the weighted average of the ratings implied by its
// games: the opponent's rating plus the game's differential for a win, or
// minus it for a loss. All teams are recomputed from the previous round's
// ratings until the average change stabilizes, then blowout games are
// removed from each team's final average.
package rating

import (
	"context"
	"fmt"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/dedupe"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

// Engine runs the rating pipeline. It is safe for concurrent use.
type Engine struct {
	cfg    Config
	logger logger.Logger
	exec   Executor
}

// NewEngine creates an engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cfg:    DefaultConfig(),
		logger: logger.NewNop(),
		exec:   Sequential{},
	}

	for _, opt := range opts {
		opt(e)
	}

	e.cfg = e.cfg.normalized()
	return e
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// with returns a copy of the engine with extra options applied.
func (e *Engine) with(opts ...Option) *Engine {
	c := *e
	for _, opt := range opts {
		opt(&c)
	}
	c.cfg = c.cfg.normalized()
	return &c
}

// Run filters the input, iterates ratings to convergence and applies the
// blowout rule. Excluded games and teams are reported in the result; only a
// broken invariant or a canceled context fails the run.
func (e *Engine) Run(ctx context.Context, teams []model.Team, games []model.Game) (*Result, error) {
	res := &Result{InvalidTeams: []Invalid{}, InvalidGames: []Invalid{}}

	outcomes, invalidGames := classifyGames(games)
	res.InvalidGames = append(res.InvalidGames, invalidGames...)

	ids, invalidTeams, diags := e.partitionTeams(ctx, teams, outcomes)
	res.InvalidTeams = append(res.InvalidTeams, invalidTeams...)
	res.Diagnostics = append(res.Diagnostics, diags...)

	if len(ids) == 0 {
		e.logger.Debug(ctx, "no team has a valid game",
			logger.Int("games", len(games)),
			logger.Int("invalidGames", len(res.InvalidGames)),
		)
		res.Teams = []TeamResult{}
		res.Converged = true
		return res, nil
	}

	initial := initialSnapshot(ids)
	res.Diagnostics = append(res.Diagnostics, e.weigh(ctx, outcomes)...)
	links := e.link(initial, outcomes)

	it := &iterator{
		links:     links,
		exec:      e.exec,
		maxRounds: e.cfg.MaxIterations,
		tolerance: e.cfg.Tolerance,
	}
	converged, rounds, ok, err := it.run(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	res.Iterations, res.Converged = rounds, ok

	final, diags, err := ApplyBlowouts(converged)
	if err != nil {
		return nil, fmt.Errorf("apply blowout rule: %w", err)
	}
	for _, d := range diags {
		e.logger.Debug(ctx, d.Message, logger.String("kind", string(d.Kind)), logger.String("team", d.TeamID.String()))
	}
	res.Diagnostics = append(res.Diagnostics, diags...)

	res.Teams = make([]TeamResult, final.Len())
	for i := range res.Teams {
		res.Teams[i] = newTeamResult(final.Team(i))
	}

	e.logger.Debug(ctx, "ratings computed",
		logger.Int("teams", len(res.Teams)),
		logger.Int("iterations", res.Iterations),
		logger.Bool("converged", res.Converged),
	)
	return res, nil
}

// classifyGames resolves every game with usable scores. Rejected games are
// reported in order: missing scores, then ties, then undefined differentials.
func classifyGames(games []model.Game) ([]*Outcome, []Invalid) {
	var outcomes []*Outcome
	var noScores, ties, undefined []Invalid

	for i := range games {
		g := &games[i]
		if !hasParsableScores(g) {
			noScores = append(noScores, Invalid{ID: g.ID, Reason: ReasonNoScores})
			continue
		}
		home, _ := parseScore(g.HomeScore)
		away, _ := parseScore(g.AwayScore)
		if isTie(home, away) {
			ties = append(ties, Invalid{ID: g.ID, Reason: ReasonTie})
			continue
		}
		o, err := resolveOutcome(g, home, away)
		if err != nil {
			undefined = append(undefined, Invalid{ID: g.ID, Reason: ReasonUndefinedDifferential})
			continue
		}
		outcomes = append(outcomes, o)
	}

	invalid := make([]Invalid, 0, len(noScores)+len(ties)+len(undefined))
	invalid = append(invalid, noScores...)
	invalid = append(invalid, ties...)
	invalid = append(invalid, undefined...)
	return outcomes, invalid
}

// partitionTeams keeps teams with at least one valid game, in input order.
// Repeated team ids are considered once. A game against a team outside the
// list does not count and is reported once per listed participant.
func (e *Engine) partitionTeams(ctx context.Context, teams []model.Team, outcomes []*Outcome) ([]model.ID, []Invalid, []Diagnostic) {
	seen := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(len(teams)))
	for _, t := range teams {
		if seen.SeenAndRecord(ctx, string(t.ID)) {
			e.logger.Warn(ctx, "duplicate team ignored", logger.String("team", t.ID.String()))
		}
	}
	listed := make(map[model.ID]bool, seen.Size())
	for _, id := range seen.Ordered() {
		listed[model.ID(id)] = true
	}

	played := make(map[model.ID]bool, len(listed))
	var diags []Diagnostic
	for _, o := range outcomes {
		for _, team := range o.participants() {
			if !listed[team] {
				continue
			}
			opponent := o.Opponent(team)
			if listed[opponent] {
				played[team] = true
				continue
			}
			d := Diagnostic{
				Kind:    DiagnosticMissingOpponent,
				TeamID:  team,
				GameID:  o.Game.ID,
				Message: fmt.Sprintf("no opposing team %q found", opponent),
			}
			e.logger.Debug(ctx, d.Message, logger.String("team", team.String()), logger.String("game", o.Game.ID.String()))
			diags = append(diags, d)
		}
	}

	var valid []model.ID
	var invalid []Invalid
	for _, id := range seen.Ordered() {
		team := model.ID(id)
		if played[team] {
			valid = append(valid, team)
		} else {
			invalid = append(invalid, Invalid{ID: team, Reason: ReasonNoValidGames})
		}
	}
	return valid, invalid, diags
}

// weigh sets the weight of every outcome once per run.
func (e *Engine) weigh(ctx context.Context, outcomes []*Outcome) []Diagnostic {
	var diags []Diagnostic
	for _, o := range outcomes {
		w, d := gameWeight(e.cfg, o)
		o.Weight = w
		if d != nil {
			e.logger.Debug(ctx, d.Message, logger.String("kind", string(d.Kind)), logger.String("game", d.GameID.String()))
			diags = append(diags, *d)
		}
	}
	return diags
}

// link attaches each outcome to its participants. Games against teams that
// are not rated were already reported by partitionTeams and are skipped.
func (e *Engine) link(snap *Snapshot, outcomes []*Outcome) [][]link {
	links := make([][]link, snap.Len())
	for _, o := range outcomes {
		for _, team := range o.participants() {
			i, ok := snap.Lookup(team)
			if !ok {
				continue
			}
			j, found := snap.Lookup(o.Opponent(team))
			if !found {
				continue
			}
			links[i] = append(links[i], link{outcome: o, opponent: j, won: o.Won(team)})
		}
	}
	return links
}
