package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pcparts/catalog/internal/store"
	"github.com/pcparts/catalog/internal/store/sqlite"
	"github.com/pcparts/catalog/internal/store/storetest"
)

func newSQLiteStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)
	return st
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, newSQLiteStore)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	st := newSQLiteStore(t)
	require.NoError(t, st.EnsureSchema(context.Background()))
}

func TestInTx_ReusesOpenTransaction(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	// With one pooled connection a second BeginTx would block, so reuse must happen.
	err := st.InTx(ctx, func(tx *store.Store) error {
		return tx.InTx(ctx, func(inner *store.Store) error {
			require.Same(t, tx, inner)
			return nil
		})
	})
	require.NoError(t, err)
}
