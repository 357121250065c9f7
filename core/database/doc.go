// Package database handles the manifest catalog connection and schema inspection.
//
// Connect opens a GORM connection for either MySQL or SQLite, depending on
// Config.Driver. The catalog is optional: callers log a warning and carry on when the
// connection fails.
//
// GetTableColumns reads the live column list of a table, which the catalog uses to
// verify its schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "ruleset_manifest")
package database
