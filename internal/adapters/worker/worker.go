// Package worker runs the independent per-team computations of a rating
// round on a bounded set of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultMinChunk = 8 // below this many items per goroutine the pool runs inline
)

// Pool splits an index range into contiguous chunks and runs them
// concurrently. Each index is visited exactly once.
type Pool struct {
	workers  int
	minChunk int
	name     string

	processed atomic.Int64
	batches   atomic.Int64

	logger logger.Logger
}

// NewPool creates a new pool. A non-positive worker count selects
// runtime.NumCPU().
func NewPool(workerCount int, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers:  workerCount,
		minChunk: defaultMinChunk,
		name:     "worker-pool",
		logger:   logger.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.Named(p.name)
	metrics.UpdateWorkers(p.workers)

	return p
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int { return p.workers }

// Processed returns the number of indexes run since creation.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Batches returns the number of Run calls since creation.
func (p *Pool) Batches() int64 { return p.batches.Load() }

// Run calls fn for every index in [0, n). It returns once all calls have
// finished. Chunks that have not started when ctx is canceled are skipped and
// the context error is returned.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int)) error {
	p.batches.Add(1)
	metrics.RecordWorkerBatch()
	if n <= 0 {
		return ctx.Err()
	}

	chunks := p.chunks(n)
	if chunks == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		p.processed.Add(int64(n))
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	size := (n + chunks - 1) / chunks
	for start := 0; start < n; start += size {
		lo, hi := start, min(start+size, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("chunk [%d,%d): %w", lo, hi, err)
			}
			for i := lo; i < hi; i++ {
				fn(i)
			}
			p.processed.Add(int64(hi - lo))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.Debug(ctx, "round aborted", logger.Error(err), logger.Int("items", n))
		return err
	}
	return ctx.Err()
}

// chunks returns how many pieces n items are split into.
func (p *Pool) chunks(n int) int {
	c := n / p.minChunk
	if c > p.workers {
		c = p.workers
	}
	if c < 1 {
		c = 1
	}
	return c
}
