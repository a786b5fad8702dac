// Package database opens the optional history database.
//
// It wraps GORM with the MySQL and SQLite dialects. An empty driver means no
// ledger is kept; callers log the error from Connect and continue without one.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table layout so the
// validation feature can compare compaction_runs against the model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("history disabled", zap.Error(err))
//	}
//	missing, err := database.MissingColumns(db, "compaction_runs", []string{"id", "ratio"})
package database
