// Package database handles database connections and schema inspection.
//
// It wraps GORM so the rest of the application can open either SQLite (the
// default, a single file next to the binary) or MySQL from the same Config.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the
// database within Config.TimeoutSeconds.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns back the integrity check, which compares
// the live schema against the bet and draw models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "bets", []string{"id", "numbers"})
package database
