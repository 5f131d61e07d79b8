// Package service ties the rating engine to the standings store, the worker
// pool and metrics.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/adapters/repository"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/adapters/worker"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/model"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/rating"
	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/types"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/metrics"
)

// Report is the outcome of one Rank call.
type Report struct {
	RunID     uuid.UUID      `json:"run_id" yaml:"run_id"`
	Division  model.Division `json:"division" yaml:"division"`
	Result    *rating.Result `json:"result" yaml:"result"`
	Standings []types.Entry  `json:"standings" yaml:"standings"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
}

// Service runs ratings and keeps the standings of the latest run.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine    *rating.Engine
	standings repository.Store
	pool      *worker.Pool

	// Configuration
	workerCount int
	ratingOpts  []rating.Option

	// State
	last *Report

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of goroutines a rating round may use. One
// runs rounds inline.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRatingOptions passes options through to the rating engine.
func WithRatingOptions(opts ...rating.Option) Option {
	return func(s *Service) {
		s.ratingOpts = append(s.ratingOpts, opts...)
	}
}

// WithStore sets the standings store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.standings = store
		}
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 1,
		logger:      logger.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.standings == nil {
		s.standings = repository.NewTreapStore()
	}

	var exec rating.Executor = rating.Sequential{}
	if s.workerCount > 1 {
		s.pool = worker.NewPool(s.workerCount,
			worker.WithName("rating-pool"),
			worker.WithLogger(s.logger),
		)
		exec = s.pool
	}

	engineOpts := append([]rating.Option{
		rating.WithLogger(s.logger.Named("engine")),
		rating.WithExecutor(exec),
	}, s.ratingOpts...)
	s.engine = rating.NewEngine(engineOpts...)

	return s
}

// Config returns the configuration of the rating engine.
func (s *Service) Config() rating.Config { return s.engine.Config() }

// Rank rates teams from games, replaces the standings with the result and
// returns a report of the run.
func (s *Service) Rank(ctx context.Context, teams []model.Team, games []model.Game) (*Report, error) {
	runID := uuid.New()
	started := time.Now()
	s.logger.Info(ctx, "rating run started",
		logger.String("run", runID.String()),
		logger.Int("teams", len(teams)),
		logger.Int("games", len(games)),
	)

	res, err := s.engine.Run(ctx, teams, games)
	elapsed := time.Since(started)
	if err != nil {
		metrics.RecordRun(metrics.OutcomeFailed, 0, millis(elapsed))
		s.logger.Error(ctx, "rating run failed", logger.String("run", runID.String()), logger.Error(err))
		return nil, fmt.Errorf("rating run %s: %w", runID, err)
	}
	recordResult(res, elapsed)

	if err := s.standings.Replace(ctx, Entries(res)); err != nil {
		return nil, fmt.Errorf("store standings of run %s: %w", runID, err)
	}

	report := &Report{
		RunID:     runID,
		Division:  s.engine.Config().Division,
		Result:    res,
		Standings: s.standings.All(ctx),
		Duration:  elapsed,
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	s.logger.Info(ctx, "rating run finished",
		logger.String("run", runID.String()),
		logger.Int("iterations", res.Iterations),
		logger.Bool("converged", res.Converged),
		logger.Int("rated", len(res.Teams)),
		logger.Int("invalidGames", len(res.InvalidGames)),
		logger.Duration("took", elapsed),
	)
	return report, nil
}

// Custom rates raw score rows. The standings are left untouched.
func (s *Service) Custom(ctx context.Context, rows []rating.Row) rating.CustomResult {
	started := time.Now()
	res := s.engine.Custom(ctx, rows)
	elapsed := time.Since(started)

	switch {
	case !res.Success:
		metrics.RecordRun(metrics.OutcomeFailed, 0, millis(elapsed))
		s.logger.Warn(ctx, "custom rating rejected", logger.String("message", res.Message))
	case res.Iterations >= s.engine.Config().MaxIterations:
		metrics.RecordRun(metrics.OutcomeCapped, res.Iterations, millis(elapsed))
	default:
		metrics.RecordRun(metrics.OutcomeConverged, res.Iterations, millis(elapsed))
	}
	return res
}

// TopN returns the top n standings entries of the latest run.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	return s.standings.TopN(ctx, n)
}

// TeamRank returns the standings entry of a team.
func (s *Service) TeamRank(ctx context.Context, teamID string) (types.Entry, error) {
	return s.standings.Rank(ctx, teamID)
}

// Last returns the report of the latest successful run, or nil.
func (s *Service) Last() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{
		"workerCount": s.workerCount,
		"standings":   s.standings.Count(ctx),
	}
	if s.pool != nil {
		stats["processed"] = s.pool.Processed()
		stats["batches"] = s.pool.Batches()
	}
	if last := s.Last(); last != nil {
		stats["lastRun"] = last.RunID.String()
		stats["lastIterations"] = last.Result.Iterations
	}
	return stats
}

// Entries converts rated teams to unranked standings entries.
func Entries(res *rating.Result) []types.Entry {
	entries := make([]types.Entry, len(res.Teams))
	for i := range res.Teams {
		t := &res.Teams[i]
		entries[i] = types.Entry{
			TeamID:   string(t.ID),
			Rating:   t.Rating,
			Games:    len(t.Games),
			Blowouts: t.Blowouts(),
		}
	}
	return entries
}

func recordResult(res *rating.Result, elapsed time.Duration) {
	outcome := metrics.OutcomeConverged
	if !res.Converged {
		outcome = metrics.OutcomeCapped
	}
	metrics.RecordRun(outcome, res.Iterations, millis(elapsed))
	metrics.UpdateTeamsRated(len(res.Teams))
	metrics.RecordInvalidTeams(len(res.InvalidTeams))
	metrics.RecordBlowouts(res.Blowouts())
	for _, g := range res.InvalidGames {
		metrics.RecordInvalidGame(g.Reason)
	}
	for _, d := range res.Diagnostics {
		metrics.RecordDiagnostic(string(d.Kind))
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
