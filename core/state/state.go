package state

import (
	"sort"
)

// RegionState is the last known state of one region's master database.
type RegionState struct {
	// Version is the truth version the region serves data at.
	Version int `json:"version"`
	// Hash is the content hash of the last downloaded database. Empty if unknown.
	Hash string `json:"hash"`
	// CDNAddr is the dynamically assigned CDN base, only used by some regions.
	CDNAddr string `json:"cdnAddr,omitempty"`
}

// Versions maps region codes to their state.
type Versions map[string]RegionState

// Changed maps region codes to true for every region flagged by the last check.
type Changed map[string]bool

// Clone returns a copy that can be mutated without touching v.
func (v Versions) Clone() Versions {
	out := make(Versions, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Has reports whether code is flagged.
func (c Changed) Has(code string) bool {
	return c[code]
}

// Codes returns the flagged region codes in the given order.
// Codes not present in order are appended alphabetically.
func (c Changed) Codes(order []string) []string {
	seen := make(map[string]struct{}, len(order))
	var codes []string
	for _, code := range order {
		seen[code] = struct{}{}
		if c[code] {
			codes = append(codes, code)
		}
	}

	var rest []string
	for code, ok := range c {
		if _, known := seen[code]; !known && ok {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	return append(codes, rest...)
}
