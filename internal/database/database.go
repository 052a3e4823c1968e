// Package database provides SQLite storage operations for the airline incidents tool
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver (cgo)
	_ "modernc.org/sqlite"          // SQLite driver (pure Go)

	"airline-incidents/internal/config"
)

// DB interface defines the database operations the rest of the application relies on.
// Both drivers are reached through database/sql, so *sql.DB satisfies it directly.
type DB interface {
	Close() error
	PingContext(ctx context.Context) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Preparer is implemented by both *sql.DB and *sql.Tx
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// sqliteDB implements the DB interface for SQLite
type sqliteDB struct {
	*sql.DB
}

// Open creates the single connection used for the lifetime of a command.
// The database file is created if it doesn't exist. Callers own the handle
// and must Close it.
func Open(ctx context.Context, driverName, dbPath string) (DB, error) {
	if !config.IsSupportedDriver(driverName) {
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("unsupported driver %q", driverName)}
	}

	sqlDB, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	// One connection, no pooling. This also keeps ":memory:" databases
	// stable across statements.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	db := &sqliteDB{sqlDB}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &StorageError{Op: "ping", Err: err}
	}

	return db, nil
}
