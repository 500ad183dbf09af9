package factory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/pcparts/catalog/internal/config"
	"github.com/pcparts/catalog/internal/store"
	"github.com/pcparts/catalog/internal/store/postgres"
	"github.com/pcparts/catalog/internal/store/sqlite"
)

// NewStore opens the catalog store selected by cfg.DBDriver and makes sure the schema
// exists before returning. Schema creation is bounded by BootstrapTimeoutSeconds.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store.Store, error) {
	bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
	if bootstrapTimeout <= 0 {
		bootstrapTimeout = 30 * time.Second
	}
	bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	switch cfg.DBDriver {
	case "sqlite":
		return newSQLiteStore(bootstrapCtx, cfg, log)
	case "postgres":
		return newPostgresStore(bootstrapCtx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

func newSQLiteStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store.Store, error) {
	if cfg.SQLitePath == "" {
		return nil, fmt.Errorf("CATALOG_SQLITE_PATH is required when DB_DRIVER=sqlite")
	}
	open := sqlite.Open
	if cfg.SQLitePath == ":memory:" {
		open = func(string) (*sql.DB, error) { return sqlite.OpenMemory() }
	}
	db, err := open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	st, err := sqlite.New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("store schema ready")
	return st, nil
}

func newPostgresStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store.Store, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("CATALOG_POSTGRES_DSN is required when DB_DRIVER=postgres")
	}

	// Open connection synchronously since health checks need it immediately.
	// The database may still be starting, so retry until the bootstrap deadline.
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.Multiplier = 2
	exp.MaxInterval = 5 * time.Second
	exp.MaxElapsedTime = 0

	var db *sql.DB
	err := backoff.RetryNotify(func() error {
		var err error
		db, err = postgres.Open(cfg.PostgresDSN)
		return err
	}, backoff.WithContext(exp, ctx), func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("postgres not reachable yet")
	})
	if err != nil {
		return nil, err
	}
	st := postgres.NewWithDB(db)
	if err := st.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	log.Debug().Str("driver", cfg.DBDriver).Msg("store schema ready")
	return st, nil
}
