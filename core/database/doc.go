// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL (production) or SQLite (local runs and tests)
// based on the application's configuration. The database only backs the optional run
// history; a payout run never requires it.
//
// # Schema Inspection
//
// GetTableColumns returns a table's columns for either dialect, which the history
// store uses to verify its tables after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	columns, err := database.GetTableColumns(db, "payout_runs")
package database
