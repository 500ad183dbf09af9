// Package sqlite opens the local single-file catalog database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/store"
)

// MemoryDSN is a private in-memory database with foreign keys enforced.
// Callers must keep a single open connection for the data to persist.
const MemoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// Open opens (or creates) a SQLite database at path with WAL journaling and foreign keys.
// Transactions take the write lock up front and share a single connection, so concurrent
// writers queue in the pool instead of failing with SQLITE_BUSY.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate", path)
	db, err := open(dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// OpenMemory opens an in-memory database pinned to one connection.
func OpenMemory() (*sql.DB, error) {
	db, err := open(MemoryDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New wraps db in a catalog store and creates the schema.
func New(ctx context.Context, db *sql.DB) (*store.Store, error) {
	st := store.New(db, store.DriverSQLite)
	st.SetErrorClassifier(classify)
	if err := st.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

func classify(err error) error {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %w", model.ErrDuplicateKey, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %w", model.ErrReferenced, err)
	}
	return err
}
