// Package db persists the project collection in a local SQLite file.
//
// The schema is a single key-value table; the whole collection lives under
// one key and is read and written as one value.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrateTimeout = 10 * time.Second

// DB is the key-value database backing the project store
type DB struct {
	*sql.DB
	path string
}

// DefaultDataDir returns where trackboard keeps its files when no data dir
// is configured
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trackboard"
	}
	return filepath.Join(home, ".local", "share", "trackboard")
}

// Open opens (creating if needed) the database at path and brings the
// schema up to date.
func Open(path string, logger zerolog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// single writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}

	database := &DB{DB: sqlDB, path: path}
	if err := database.migrate(logger); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return database, nil
}

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
}

// migrate applies pending migrations through a goose provider, which does
// not print to stdout.
func (db *DB) migrate(logger zerolog.Logger) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		logger.Debug().
			Str("db", db.path).
			Int64("version", r.Source.Version).
			Dur("took", r.Duration).
			Msg("applied migration")
	}
	return nil
}

// Path returns the database file location
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
