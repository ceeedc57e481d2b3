// Package status serves the persisted monitor state over HTTP.
//
// Routes:
//
//	GET /versions          every tracked region and the changed set
//	GET /versions/:region  one region
//	GET /history/:region   latest run history, ?limit=N (503 without a database)
//
// Unknown regions, untracked regions and a missing version file answer 404.
package status
