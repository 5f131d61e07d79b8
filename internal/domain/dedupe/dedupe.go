// Package dedupe tracks identifiers that were already seen, preserving the
// order in which they first appeared.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen ids.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Ordered returns the recorded ids in first-seen order.
	Ordered() []string

	Size() int64
}

// inMemoryDeduper implements Deduper with a map for membership and a slice
// for insertion order.
type inMemoryDeduper struct {
	mu    sync.RWMutex
	seen  map[string]struct{}
	order []string
	size  atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}

	for _, opt := range opts {
		opt(d)
	}

	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}

	return d
}

// SeenAndRecord implements Deduper.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}

	d.seen[id] = struct{}{}
	d.order = append(d.order, id)
	d.size.Add(1)
	return false
}

// Ordered implements Deduper. The returned slice is a copy.
func (d *inMemoryDeduper) Ordered() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
