package database

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"
)

// ErrEmptyDatabase is returned when a converted database holds no tables.
var ErrEmptyDatabase = errors.New("database has no tables")

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Field string
	Type  string
}

// ListTables returns the user tables of a SQLite database.
func ListTables(db *gorm.DB) ([]string, error) {
	var tables []string
	err := db.Raw("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name").
		Scan(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// GetTableColumns retrieves the column definitions for a given SQLite table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	type sqliteColumn struct {
		Cid       int
		Name      string
		Type      string
		Notnull   int
		DfltValue *string
		Pk        int
	}
	var sqliteCols []sqliteColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", strings.ReplaceAll(tableName, "'", "''"))).Scan(&sqliteCols).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(sqliteCols))
	for _, col := range sqliteCols {
		columns = append(columns, ColumnInfo{
			Field: strings.ToLower(col.Name),
			Type:  strings.ToLower(col.Type),
		})
	}
	return columns, nil
}

// VerifyFile opens a converted master database and checks it holds at least one table.
// It returns the table names found.
func VerifyFile(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := Connect(Config{Driver: "sqlite", Name: path})
	if err != nil {
		return nil, err
	}
	defer Close(db)

	tables, err := ListTables(db)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyDatabase)
	}
	return tables, nil
}
