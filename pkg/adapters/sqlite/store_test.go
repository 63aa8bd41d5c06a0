package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/tasklist/pkg/adapters/sqlite"
	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SnapshotStore = (*sqlite.Store)(nil)

func newStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "tasks.db"))
	ports.RunSnapshotStoreContract(t, store)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")
	ctx := context.Background()

	first, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "tasks", []byte(`[{"id":1}]`)))
	require.NoError(t, first.Close())

	second := newStore(t, path)
	data, err := second.Load(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(data))
}
