package rating

import (
	"fmt"
	"math"
)

// Differential converts a score gap into rating points on a sine curve
// between 125 and 600. The winning score must be greater than the losing
// score; a winning score of 1 has no defined differential.
func Differential(losingScore, winningScore int) (float64, error) {
	r := float64(losingScore) / float64(winningScore-1)
	d := 125 + 475*math.Sin(math.Min(1, (1-r)/0.5)*0.4*math.Pi)/math.Sin(0.4*math.Pi)
	if !isFinite(d) {
		return 0, fmt.Errorf("%w: %d-%d", ErrUndefinedDifferential, winningScore, losingScore)
	}
	return d, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
