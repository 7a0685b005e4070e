package datastore

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/odontosys/odontosys/internal/logging"
)

// DefaultSlowQueryThreshold defines the duration after which a query is
// considered slow. Migration batch queries can approach this under load.
const DefaultSlowQueryThreshold = 1 * time.Second

// datastoreLogger is the shared structured logger for database operations.
var datastoreLogger *slog.Logger

// getLogger returns the datastore service logger, initializing it lazily.
func getLogger() *slog.Logger {
	if datastoreLogger == nil {
		if l := logging.ForService("datastore"); l != nil {
			datastoreLogger = l
		} else {
			datastoreLogger = slog.Default().With("service", "datastore")
		}
	}
	return datastoreLogger
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() gormlogger.Interface {
	return gormlogger.New(
		slogWriter{},
		gormlogger.Config{
			SlowThreshold:             DefaultSlowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// slogWriter adapts slog to gorm's logger writer interface.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	getLogger().Warn(fmt.Sprintf(format, args...))
}

// performAutoMigration creates or updates the schema for every model.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	migrationStart := time.Now()
	migrationLogger := getLogger().With("db_type", dbType)

	migrationLogger.Debug("Starting database migration")

	models := []any{
		&Patient{},
		&Odontogram{},
		&FindingRecord{},
		&BudgetLine{},
		&Radiograph{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to auto-migrate %T for %s: %w", model, dbType, err)
		}
	}

	if debug {
		migrationLogger.Debug("Database migration completed",
			"connection", connectionInfo,
			"total_duration", time.Since(migrationStart),
			"tables_migrated", len(models))
	}

	return nil
}
