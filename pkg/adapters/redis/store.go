// Package redis implements the Marquee stores on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aretw0/marquee/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "marquee:"

// Store implements ports.SettingsStore and ports.TextStore on a single Redis client.
// Settings live in a hash, the text in a plain string key.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) settingsKey() string {
	return s.prefix + "settings"
}

func (s *Store) textKey() string {
	return s.prefix + "text"
}

// Settings returns a ports.SettingsStore view of the store.
func (s *Store) Settings() *SettingsStore {
	return &SettingsStore{store: s}
}

// Text returns a ports.TextStore view of the store.
func (s *Store) Text() *TextStore {
	return &TextStore{store: s}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// SettingsStore persists the layout record as a Redis hash.
type SettingsStore struct {
	store *Store
}

// Load reads the hash. An empty or missing hash means nothing was saved.
func (s *SettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	fields, err := s.store.client.HGetAll(ctx, s.store.settingsKey()).Result()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to get settings from redis: %w", err)
	}
	if len(fields) == 0 {
		return domain.Settings{}, domain.ErrSettingsNotFound
	}

	raw := make(map[string]any, len(fields))
	for k, v := range fields {
		raw[k] = v
	}
	return domain.DecodeSettings(raw)
}

// Save replaces the hash in one transaction.
func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	values := make(map[string]any, 4)
	if settings.Width != nil {
		values[domain.KeyWidth] = *settings.Width
	}
	if settings.Lines != nil {
		values[domain.KeyLines] = *settings.Lines
	}
	if settings.Interval != nil {
		values[domain.KeyInterval] = strconv.FormatFloat(*settings.Interval, 'f', -1, 64)
	}
	if settings.Indent != nil {
		values[domain.KeyIndent] = *settings.Indent
	}
	if len(values) == 0 {
		return errors.New("refusing to save an empty settings record")
	}

	pipe := s.store.client.TxPipeline()
	pipe.Del(ctx, s.store.settingsKey())
	pipe.HSet(ctx, s.store.settingsKey(), values)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save settings to redis: %w", err)
	}
	return nil
}

// Location describes the store on the settings form.
func (s *SettingsStore) Location() string {
	return "redis:" + s.store.settingsKey()
}

// TextStore persists the text blob as a Redis string.
type TextStore struct {
	store *Store
}

// Load reads the text.
func (s *TextStore) Load(ctx context.Context) (string, error) {
	val, err := s.store.client.Get(ctx, s.store.textKey()).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", domain.ErrTextNotFound
		}
		return "", fmt.Errorf("failed to get text from redis: %w", err)
	}
	return val, nil
}

// Save replaces the text. No expiration is set.
func (s *TextStore) Save(ctx context.Context, text string) error {
	if err := s.store.client.Set(ctx, s.store.textKey(), text, 0).Err(); err != nil {
		return fmt.Errorf("failed to save text to redis: %w", err)
	}
	return nil
}

// Location describes the store on the settings form.
func (s *TextStore) Location() string {
	return "redis:" + s.store.textKey()
}
