package datastore

import (
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/carnetapp/carnet-go/internal/errors"
)

// DefaultSlowQueryThreshold defines the duration after which a query is
// considered slow. Bulk import batches stay well under this on any modern
// disk, so anything above it is worth a log line.
const DefaultSlowQueryThreshold = 1 * time.Second

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() gormlogger.Interface {
	return NewGormLogger(DefaultSlowQueryThreshold, gormlogger.Warn)
}

// performAutoMigration ensures the three relations of the store schema exist.
// All statements are create-if-not-exists, so this is safe on every open.
func performAutoMigration(db *gorm.DB, storeName, connectionInfo string) error {
	migrationStart := time.Now()

	tableMappings := []struct {
		model any
		name  string
	}{
		{&Client{}, "clients"},
		{&Fee{}, "frais"},
		{&Phone{}, "telephones"},
	}

	for _, table := range tableMappings {
		tableStart := time.Now()
		tableExists := db.Migrator().HasTable(table.model)

		if err := db.AutoMigrate(table.model); err != nil {
			enhancedErr := errors.New(err).
				Component("datastore").
				Category(errors.CategoryDatabase).
				Context("store", storeName).
				Context("table", table.name).
				Context("operation", "auto_migrate_table").
				Build()
			getLogger().Error("Table migration failed",
				"store", storeName,
				"table", table.name,
				"error", enhancedErr)
			return enhancedErr
		}

		action := "updated"
		if !tableExists {
			action = "created"
		}
		getLogger().Debug("Table migration completed",
			"store", storeName,
			"table", table.name,
			"action", action,
			"duration", time.Since(tableStart))
	}

	getLogger().Debug("Database migration completed successfully",
		"store", storeName,
		"path", connectionInfo,
		"total_duration", time.Since(migrationStart),
		"tables_migrated", len(tableMappings))

	return nil
}
