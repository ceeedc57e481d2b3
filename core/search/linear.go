package search

import "context"

// Linear probes forward in fixed steps.
type Linear struct {
	// Step is the distance between consecutive guesses.
	Step int
	// MaxTries is the number of consecutive misses that ends the search.
	MaxTries int
}

// Search implements Strategy.
func (l Linear) Search(ctx context.Context, base int, exists Oracle) int {
	best := base
	for k := 1; k <= l.MaxTries; k++ {
		if ctx.Err() != nil {
			return best
		}
		guess := best + k*l.Step
		if exists(ctx, guess) {
			// Restart the counter relative to the new best.
			best = guess
			k = 0
		}
	}
	return best
}
