package search

import "context"

// DefaultDeltas are the place values walked by DigitDescent, coarse to fine.
var DefaultDeltas = []int{1000000, 100000, 10000, 1000, 100, 10, 1}

// DefaultSlack is the forward window probed before giving up on a place value.
const DefaultSlack = 4

// DigitDescent narrows a zero-padded decimal version one place value at a time.
type DigitDescent struct {
	// Deltas are the place values, coarse to fine. The last one should be 1.
	Deltas []int
	// Slack is how many versions past a missed guess are also tried.
	// It is not applied at a delta of 1.
	Slack int
}

// NewDigitDescent returns the default seven-digit descent with a 4-step slack.
func NewDigitDescent() DigitDescent {
	return DigitDescent{Deltas: DefaultDeltas, Slack: DefaultSlack}
}

// Search implements Strategy.
func (d DigitDescent) Search(ctx context.Context, base int, exists Oracle) int {
	guess := base
	for _, delta := range d.Deltas {
		guess = d.descend(ctx, guess, delta, exists)
	}
	return guess
}

func (d DigitDescent) descend(ctx context.Context, guess, delta int, exists Oracle) int {
	for ctx.Err() == nil {
		next := guess + delta
		if exists(ctx, next) {
			guess = next
			continue
		}
		if delta == 1 {
			return guess
		}

		found := false
		for i := 1; i <= d.Slack; i++ {
			if exists(ctx, next+i) {
				guess = next + i
				found = true
				break
			}
		}
		if !found {
			return guess
		}
	}
	return guess
}
