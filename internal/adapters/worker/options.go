package worker

import (
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithName sets the pool name for identification and logging.
func WithName(name string) Option {
	return func(p *Pool) {
		if name != "" {
			p.name = name
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMinChunk sets the smallest number of items handed to one goroutine.
func WithMinChunk(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.minChunk = n
		}
	}
}
