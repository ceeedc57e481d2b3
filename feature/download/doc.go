// Package download implements the download stage.
//
// For every region flagged in changed.json the orchestrator walks four steps in
// order: fetch the manifest, read the masterdata hash, stream the bundle, and
// convert it into a SQLite database. Regions that are not flagged, or lack a
// stored version or CDN address, are silent no-ops. A hash equal to the stored
// one ends the region early.
//
// A region's hash is replaced only after its database was downloaded and
// converted. Failures are per region: the others still complete and persist,
// and the failures are returned combined.
//
// The step outputs are built with Title and FormatDiff:
//
//	JP: abc      -> xyz1234
package download
