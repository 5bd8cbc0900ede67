package ports

import (
	"context"
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSettingsStoreContract runs a suite of tests to verify that a SettingsStore
// implementation adheres to the defined interface contract.
// The store must be empty when the suite starts.
func RunSettingsStoreContract(t *testing.T, store SettingsStore) {
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		layout := domain.Layout{Width: 20, Lines: 4, Indent: 2, Interval: 2.5}

		err := store.Save(ctx, layout.Settings())
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, layout, domain.DefaultLayout().Overlay(loaded))
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := domain.Layout{Width: 10, Lines: 1, Indent: 0, Interval: 1}
		second := domain.Layout{Width: 32, Lines: 5, Indent: 9, Interval: 60}

		require.NoError(t, store.Save(ctx, first.Settings()))
		require.NoError(t, store.Save(ctx, second.Settings()))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, second, domain.DefaultLayout().Overlay(loaded))
	})
}

// RunTextStoreContract runs a suite of tests to verify that a TextStore
// implementation adheres to the defined interface contract.
// The store must be empty when the suite starts.
func RunTextStoreContract(t *testing.T, store TextStore) {
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrTextNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		text := "Hello world.\r\n\r\nSecond paragraph with ünïcödé."
		require.NoError(t, store.Save(ctx, text))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, text, loaded)
	})

	t.Run("Save Empty", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, ""))

		loaded, err := store.Load(ctx)
		require.NoError(t, err, "an empty text is still a saved text")
		assert.Equal(t, "", loaded)
	})
}
