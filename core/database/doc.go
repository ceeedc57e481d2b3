// Package database handles SQL connections and SQLite inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// based on the application's configuration. The connection backs the optional
// run history (feature/history).
//
// # Inspection
//
// Converted master databases are SQLite files. VerifyFile opens one and
// requires at least one table, which catches decoders that exit cleanly but write
// garbage. ListTables and GetTableColumns back the inspect command.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("history disabled", zap.Error(err))
//	}
//
//	tables, err := database.VerifyFile("master_jp.db")
package database
