package rating

import "context"

// Executor runs fn for every index in [0, n). Calls for different indexes
// must be safe to run concurrently; fn writes only its own slot.
type Executor interface {
	Run(ctx context.Context, n int, fn func(i int)) error
}

// Sequential runs every index in order on the calling goroutine.
type Sequential struct{}

// Run implements Executor.
func (Sequential) Run(ctx context.Context, n int, fn func(i int)) error {
	for i := 0; i < n; i++ {
		fn(i)
	}
	return ctx.Err()
}
