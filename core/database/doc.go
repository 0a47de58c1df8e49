// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL, PostgreSQL or SQLite connections based on
// the application's configuration.
//
// # Connect
//
// Connect opens the connection for the configured driver, applies pool settings
// and verifies it with a ping bounded by the configured timeout. SQLite is limited
// to a single open connection so in-memory databases behave as one database.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live schema. The integrity schema check uses
// them to confirm that AutoMigrate produced every column the catalog models expect.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "titles", []string{"id", "name"})
package database
