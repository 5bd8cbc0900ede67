package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/marquee/pkg/adapters/sqlite"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteSettingsStore_Contract(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "marquee.db"))
	ports.RunSettingsStoreContract(t, store.Settings())
}

func TestSQLiteTextStore_Contract(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "marquee.db"))
	ports.RunTextStoreContract(t, store.Text())
}

func TestSQLiteStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "marquee.db")
	ctx := context.Background()

	first, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	layout := domain.Layout{Width: 9, Lines: 2, Indent: 1, Interval: 3}
	require.NoError(t, first.Settings().Save(ctx, layout.Settings()))
	require.NoError(t, first.Text().Save(ctx, "kept"))
	require.NoError(t, first.Close())

	second := open(t, path)
	loaded, err := second.Settings().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, layout, domain.DefaultLayout().Overlay(loaded))

	text, err := second.Text().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kept", text)
}
