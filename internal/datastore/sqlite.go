package datastore

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteStore implements DataStore for one SQLite-backed store file.
type SQLiteStore struct {
	DataStore
	path string
}

// Open ensures the backing file's directory exists and opens the database,
// then runs the schema ensure. Safe to call on every access path; an already
// open store is left untouched. Reopening after Close re-runs the schema
// ensure.
func (store *SQLiteStore) Open() error {
	if store.DB != nil {
		return nil
	}

	dir := filepath.Dir(store.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	// Cascade constraints in the schema are inert without the foreign_keys
	// pragma; the DSN form applies it to every pooled connection.
	dsn := store.path + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         createGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open SQLite database %s: %w", store.path, err)
	}

	if err := performAutoMigration(db, store.name, store.path); err != nil {
		return err
	}

	store.DB = db
	return nil
}

// Close releases the underlying database handle. The store may be reopened.
func (store *SQLiteStore) Close() error {
	if store.DB == nil {
		return nil
	}
	sqlDB, err := store.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying database handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close SQLite database %s: %w", store.path, err)
	}
	store.DB = nil
	return nil
}
