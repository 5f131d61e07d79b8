package repository

import (
	"context"
	"hash/fnv"
	"math"
	"sync"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/types"
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: rating DESC, then teamID ASC (deterministic).
// We implement a BST comparator where "less" means ranks earlier
// (i.e., higher rating ranks earlier). This makes in-order traversal
// produce the standings from best to worst. Heap priorities are a hash of
// the team id, so the tree shape depends only on the set of teams.

const (
	defaultPrecision = 6
	maxPrecision     = 9
)

type ratingFP int64

func pow10(n int) float64 {
	return math.Pow(10, float64(n))
}

func toFixedPoint(x, scale float64) (ratingFP, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, ErrInvalidRating
	}
	scaled := math.Round(x * scale)
	if scaled >= float64(math.MaxInt64) {
		return ratingFP(math.MaxInt64), nil
	}
	if scaled <= float64(math.MinInt64) {
		return ratingFP(math.MinInt64), nil
	}
	return ratingFP(scaled), nil
}

// record stores the fixed-point rating plus the unrounded value and counts.
type record struct {
	fp       ratingFP
	rating   float64
	games    int
	blowouts int
}

// treap node
type node struct {
	id     string
	rating ratingFP
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aRating, aID) should appear before (bRating, bID)
// in the standings (higher ranks first).
func less(aRating ratingFP, aID string, bRating ratingFP, bID string) bool {
	if aRating != bRating {
		return aRating > bRating
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

func idPriority(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

func insert(n *node, id string, rating ratingFP) *node {
	if n == nil {
		return &node{id: id, rating: rating, prio: idPriority(id), size: 1}
	}
	if less(rating, id, n.rating, n.id) {
		n.left = insert(n.left, id, rating)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, rating)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, rating ratingFP) *node {
	if n == nil {
		return nil
	}
	if rating == n.rating && id == n.id {
		// Merge children by rotating highest priority up until leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, rating)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, rating)
		}
	} else if less(rating, id, n.rating, n.id) {
		n.left = deleteNode(n.left, id, rating)
	} else {
		n.right = deleteNode(n.right, id, rating)
	}
	fix(n)
	return n
}

// walk visits nodes in rank order until fn returns false. It reports whether
// the walk ran to completion.
func walk(n *node, fn func(n *node) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, fn) {
		return false
	}
	if !fn(n) {
		return false
	}
	return walk(n.right, fn)
}

// ranker assigns dense ranks during an in-order walk: teams with the same
// fixed-point rating share a rank and the next rating gets the next rank.
type ranker struct {
	rank    int
	last    ratingFP
	started bool
}

func (r *ranker) next(fp ratingFP) int {
	if !r.started || fp != r.last {
		r.rank++
		r.last = fp
		r.started = true
	}
	return r.rank
}

// TreapStore implements Store.
type TreapStore struct {
	mu    sync.RWMutex
	root  *node
	byID  map[string]record
	scale float64
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		scale: pow10(defaultPrecision),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.byID == nil {
		s.byID = make(map[string]record)
	}

	return s
}

// upsertLocked sets a team's record, replacing any previous one. The caller
// holds the write lock.
func (s *TreapStore) upsertLocked(e types.Entry, fp ratingFP) {
	if old, ok := s.byID[e.TeamID]; ok {
		s.root = deleteNode(s.root, e.TeamID, old.fp)
	}
	s.byID[e.TeamID] = record{fp: fp, rating: e.Rating, games: e.Games, blowouts: e.Blowouts}
	s.root = insert(s.root, e.TeamID, fp)
}

// Replace implements Store.Replace with O(n log n) expected time. Nothing
// changes if any entry is invalid; a repeated team keeps its last entry.
func (s *TreapStore) Replace(_ context.Context, entries []types.Entry) error {
	fps := make([]ratingFP, len(entries))
	for i, e := range entries {
		if e.TeamID == "" {
			return ErrEmptyTeamID
		}
		fp, err := toFixedPoint(e.Rating, s.scale)
		if err != nil {
			return err
		}
		fps[i] = fp
	}

	s.mu.Lock()
	s.root = nil
	s.byID = make(map[string]record, len(entries))
	for i, e := range entries {
		s.upsertLocked(e, fps[i])
	}
	count := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateStandingsSize(count)
	return nil
}

func (s *TreapStore) entry(n *node, rank int) types.Entry {
	rec := s.byID[n.id]
	return types.Entry{
		Rank:     rank,
		TeamID:   n.id,
		Rating:   rec.rating,
		Games:    rec.games,
		Blowouts: rec.blowouts,
	}
}

// Rank returns the current dense rank and rating for a team.
func (s *TreapStore) Rank(_ context.Context, teamID string) (types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[teamID]; !ok {
		return types.Entry{}, ErrNotFound
	}

	var (
		r     ranker
		found types.Entry
	)
	walk(s.root, func(n *node) bool {
		rank := r.next(n.rating)
		if n.id == teamID {
			found = s.entry(n, rank)
			return false
		}
		return true
	})
	return found, nil
}

// TopN returns the top N entries ordered by rating desc.
func (s *TreapStore) TopN(_ context.Context, n int) ([]types.Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Entry, 0, min(n, len(s.byID)))
	var r ranker
	walk(s.root, func(nd *node) bool {
		out = append(out, s.entry(nd, r.next(nd.rating)))
		return len(out) < n
	})
	return out, nil
}

// All returns every entry in rank order.
func (s *TreapStore) All(_ context.Context) []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Entry, 0, len(s.byID))
	var r ranker
	walk(s.root, func(nd *node) bool {
		out = append(out, s.entry(nd, r.next(nd.rating)))
		return true
	})
	return out
}

// Count returns the total number of teams.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
