// Package database handles database connections, migrations and schema inspection.
//
// It wraps GORM to configure MySQL (production) and SQLite (tests, local runs)
// connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and verifies the
// connection with a bounded ping.
//
// # Schema
//
// Migrate runs AutoMigrate for the feature models. The unique indexes declared on
// those models are what serializes concurrent get-or-create and delete calls, so
// MissingColumns is used after migration to confirm the identity columns exist.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "performances", "identity_key")
package database
