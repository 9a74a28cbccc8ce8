// manage.go: database migration and GORM logger setup
package datastore

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tastebase/tastebase/internal/logging"
)

// DefaultSlowQueryThreshold defines the duration after which a query is
// considered slow and logged at warn level.
const DefaultSlowQueryThreshold = 1 * time.Second

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             DefaultSlowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	migrationStart := time.Now()
	migrationLogger := logging.ForService("datastore").With(slog.String("db_type", dbType))

	migrationLogger.Debug("Starting database migration")

	tableMappings := []struct {
		model any
		name  string
	}{
		{&Restaurant{}, "restaurants"},
		{&Review{}, "reviews"},
		{&ImageUpload{}, "image_uploads"},
		{&ImageColor{}, "image_colors"},
	}

	for _, table := range tableMappings {
		tableStart := time.Now()
		if err := db.AutoMigrate(table.model); err != nil {
			migrationLogger.Error("Table migration failed",
				"table", table.name,
				"error", err)
			return fmt.Errorf("failed to auto-migrate %s table for %s: %w", table.name, dbType, err)
		}
		migrationLogger.Debug("Table migration completed",
			"table", table.name,
			"duration", time.Since(tableStart))
	}

	if debug {
		migrationLogger.Debug("Database migration completed successfully",
			"connection", connectionInfo,
			"total_duration", time.Since(migrationStart),
			"tables_migrated", len(tableMappings))
	}

	return nil
}
