package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB wraps db in a catalog store using $n placeholders.
func NewWithDB(db *sql.DB) *store.Store {
	st := store.New(db, store.DriverPostgres)
	st.SetErrorClassifier(classify)
	return st
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %w", model.ErrDuplicateKey, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %w", model.ErrReferenced, err)
	}
	return err
}

// Bootstrap creates the catalog schema on a fresh connection.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return NewWithDB(db).EnsureSchema(ctx)
}
