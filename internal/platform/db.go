// Package platform opens the corpus database and keeps its schema current.
package platform

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// OpenDB opens a database for driver ("postgres" or "sqlite") and verifies
// the connection. For sqlite, url is a file path; its parent directory is
// created if needed.
func OpenDB(ctx context.Context, driver, url string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		if url != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(url), 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer; serialize through one connection.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Open opens the database and applies migrations.
func Open(ctx context.Context, driver, url string) (*sql.DB, error) {
	db, err := OpenDB(ctx, driver, url)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db, driver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
