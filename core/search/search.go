package search

import "context"

// Oracle reports whether the given version exists.
// Transport failures must be reported as false.
type Oracle func(ctx context.Context, version int) bool

// Strategy finds the highest version reachable from base.
type Strategy interface {
	Search(ctx context.Context, base int, exists Oracle) int
}
