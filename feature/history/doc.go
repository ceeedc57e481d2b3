// Package history records the per-region outcome of every check and download
// pass in the masterdb_history table.
//
// History is optional. It is enabled with database.enabled and works against
// MySQL or a SQLite file. The status API reads it back through Recent.
package history
