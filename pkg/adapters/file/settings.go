package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/marquee/pkg/domain"
)

// DefaultSettingsPath is the well-known location of the settings record.
const DefaultSettingsPath = "/var/tmp/marquee_settings.json"

// SettingsStore implements ports.SettingsStore as a flat JSON object on disk.
type SettingsStore struct {
	Path string
}

// NewSettingsStore creates a settings store at path.
// If path is empty, it defaults to DefaultSettingsPath.
func NewSettingsStore(path string) *SettingsStore {
	if path == "" {
		path = DefaultSettingsPath
	}
	return &SettingsStore{Path: path}
}

// Load reads the JSON record. Values are decoded leniently, so a record
// written by hand with "16" or 16.0 still loads.
func (s *SettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Settings{}, domain.ErrSettingsNotFound
		}
		return domain.Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return domain.DecodeSettings(raw)
}

// Save writes the JSON record atomically.
func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return writeAtomic(s.Path, data)
}

// Location describes the store on the settings form.
func (s *SettingsStore) Location() string {
	return s.Path
}
