// Package sqlite implements the Marquee stores on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/marquee/pkg/domain"
	_ "modernc.org/sqlite"
)

const (
	keySettings = "settings"
	keyText     = "text"
)

const schema = `CREATE TABLE IF NOT EXISTS marquee_kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store keeps the settings record and the text blob in a single key-value table.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set busy timeout to 5 seconds (SQLite will retry for this duration)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	// SQLite benefits from a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Store{db: db, path: path}, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Settings returns a ports.SettingsStore view of the store.
func (s *Store) Settings() *SettingsStore {
	return &SettingsStore{store: s}
}

// Text returns a ports.TextStore view of the store.
func (s *Store) Text() *TextStore {
	return &TextStore{store: s}
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM marquee_kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO marquee_kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// SettingsStore persists the layout record as a JSON value.
type SettingsStore struct {
	store *Store
}

// Load reads the JSON record.
func (s *SettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	value, ok, err := s.store.get(ctx, keySettings)
	if err != nil {
		return domain.Settings{}, err
	}
	if !ok {
		return domain.Settings{}, domain.ErrSettingsNotFound
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return domain.DecodeSettings(raw)
}

// Save upserts the JSON record.
func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return s.store.put(ctx, keySettings, string(data))
}

// Location describes the store on the settings form.
func (s *SettingsStore) Location() string {
	return "sqlite:" + s.store.path
}

// TextStore persists the text blob.
type TextStore struct {
	store *Store
}

// Load reads the text.
func (s *TextStore) Load(ctx context.Context) (string, error) {
	value, ok, err := s.store.get(ctx, keyText)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrTextNotFound
	}
	return value, nil
}

// Save upserts the text.
func (s *TextStore) Save(ctx context.Context, text string) error {
	return s.store.put(ctx, keyText, text)
}

// Location describes the store on the settings form.
func (s *TextStore) Location() string {
	return "sqlite:" + s.store.path
}
