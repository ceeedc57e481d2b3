// Package state holds the small JSON documents persisted between runs.
//
// Two documents exist:
//   - Versions (version.json): region code -> {version, hash, cdnAddr}
//   - Changed (changed.json): region code -> true, written by the check stage and
//     consumed by the download stage.
//
// Both are overwritten wholesale. Store writes through a temporary file and a rename,
// so a crash mid-write leaves the previous document in place.
//
// # Usage
//
//	store := state.NewStore(cfg.State)
//	versions, err := store.LoadVersions()
//	if errors.Is(err, state.ErrNotFound) {
//	    versions = state.Versions{}
//	}
package state
