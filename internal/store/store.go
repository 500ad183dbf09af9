package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Driver names the SQL dialect behind a Store.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the relational persistence layer for dictionaries and components.
// A Store returned inside InTx is bound to that transaction.
type Store struct {
	db      *sql.DB
	run     runner
	inTx    bool
	driver  Driver
	builder sq.StatementBuilderType
	// classify maps driver constraint errors onto model sentinels.
	classify func(error) error
}

// New wraps an open database handle.
func New(db *sql.DB, driver Driver) *Store {
	var format sq.PlaceholderFormat = sq.Question
	if driver == DriverPostgres {
		format = sq.Dollar
	}
	return &Store{
		db:      db,
		run:     db,
		driver:  driver,
		builder: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

// SetErrorClassifier installs the driver hook that turns constraint violations into
// model.ErrDuplicateKey or model.ErrReferenced.
func (s *Store) SetErrorClassifier(fn func(error) error) { s.classify = fn }

func (s *Store) Driver() Driver { return s.driver }

// DB exposes the underlying connection pool.
func (s *Store) DB() *sql.DB { return s.db }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error { return s.db.Close() }

// InTx runs fn in a single transaction. The transaction commits when fn returns nil and
// rolls back on any error or panic. Calls made on an already transactional Store reuse it.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.inTx {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	txStore := *s
	txStore.run = tx
	txStore.inTx = true
	if err := fn(&txStore); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) exec(ctx context.Context, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	res, err := s.run.ExecContext(ctx, query, args...)
	if err != nil && s.classify != nil {
		return nil, s.classify(err)
	}
	return res, err
}

func (s *Store) query(ctx context.Context, b sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return s.run.QueryContext(ctx, query, args...)
}

func (s *Store) queryRow(ctx context.Context, b sq.Sqlizer) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return s.run.QueryRowContext(ctx, query, args...), nil
}
