// Package search finds the newest truth version of a region by guessing.
//
// The backends publish no "latest version" endpoint, so every strategy issues
// speculative probes through an Oracle and walks an opaque, monotonic version space.
// Each probe depends on the outcome of the previous one, so a search is strictly
// sequential.
//
// # Strategies
//
//   - Linear: probe base+k*Step for k = 1..MaxTries. A hit becomes the new base and
//     restarts k, so the search stops only after MaxTries consecutive misses.
//   - DigitDescent: walk place values from coarse to fine, adding each delta while
//     probes hit. Before leaving a non-final delta, a small forward slack window is
//     probed to step over gaps in the sequence.
//
// Both return the base unchanged when nothing newer is found.
package search
