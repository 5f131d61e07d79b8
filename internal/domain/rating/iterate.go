package rating

import (
	"context"
	"fmt"
	"math"
)

// iteration is the state carried from one round to the next.
type iteration struct {
	prev        *Snapshot
	prevAvgDiff float64
	round       int
}

// iterator drives rounds of aggregation over a fixed plan.
type iterator struct {
	links     [][]link
	exec      Executor
	maxRounds int
	tolerance float64
}

// run repeats rounds until the change of the average rating difference
// drops below tolerance or the round cap is reached. It returns the final
// snapshot, the round count and whether it converged.
//
// A previous average difference of exactly zero counts as absent, so the
// first comparison happens in round 2 at the earliest.
func (it *iterator) run(ctx context.Context, initial *Snapshot) (*Snapshot, int, bool, error) {
	acc := iteration{prev: initial}

	for ; acc.round < it.maxRounds; acc.round++ {
		if err := ctx.Err(); err != nil {
			return nil, acc.round, false, fmt.Errorf("round %d: %w", acc.round, err)
		}

		next, err := it.step(ctx, acc.prev, acc.round)
		if err != nil {
			return nil, acc.round, false, err
		}

		var avgDiff float64
		if acc.round > 0 {
			avgDiff = averageAbsDiff(next, acc.prev)
			if acc.prevAvgDiff != 0 && math.Abs(avgDiff-acc.prevAvgDiff) < it.tolerance {
				return next, acc.round, true, nil
			}
		}

		acc.prev, acc.prevAvgDiff = next, avgDiff
	}

	return acc.prev, it.maxRounds, false, nil
}

// step computes one round. Every team reads only prev, so teams are
// independent within the round.
func (it *iterator) step(ctx context.Context, prev *Snapshot, round int) (*Snapshot, error) {
	states := make([]TeamState, len(prev.teams))
	err := it.exec.Run(ctx, len(states), func(i int) {
		states[i] = aggregate(prev.teams[i].ID, it.links[i], prev)
	})
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", round, err)
	}

	for i := range states {
		if math.IsNaN(states[i].Rating) {
			return nil, &InvariantError{TeamID: states[i].ID, Round: round, Err: ErrNaNRating}
		}
	}

	return newSnapshot(states, prev.index), nil
}
