// Package integrity checks the artifacts produced by the download stage.
//
// # Checks Provided
//
//   - Local: every region with a recorded hash has a converted database on disk
//     that opens as SQLite and holds at least one table.
//   - Storage: each converted database and version.json exists in the bucket.
//     Skipped when storage is disabled.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks (supports ?fix=true).
//   - GET /integrity/local : Runs the local database check.
//   - GET /integrity/storage : Runs the storage check.
package integrity
