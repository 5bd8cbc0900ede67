package ports

import (
	"context"

	"github.com/aretw0/marquee/pkg/domain"
)

// SettingsStore persists the layout parameters as a flat key-value record.
type SettingsStore interface {
	// Load retrieves the stored record. Fields missing from the record are nil.
	// Returns domain.ErrSettingsNotFound if nothing was saved yet.
	Load(ctx context.Context) (domain.Settings, error)

	// Save replaces the stored record.
	Save(ctx context.Context, settings domain.Settings) error
}

// TextStore persists the source text blob.
type TextStore interface {
	// Load retrieves the text.
	// Returns domain.ErrTextNotFound if nothing was saved yet.
	Load(ctx context.Context) (string, error)

	// Save replaces the text.
	Save(ctx context.Context, text string) error
}

// Locator is implemented by stores that can describe where they keep data.
// The description is shown to users on the settings form.
type Locator interface {
	Location() string
}

// LocationOf returns the store location or an empty string.
func LocationOf(store any) string {
	if l, ok := store.(Locator); ok {
		return l.Location()
	}
	return ""
}
