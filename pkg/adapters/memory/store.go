package memory

import (
	"context"
	"sync"

	"github.com/aretw0/marquee/pkg/domain"
)

// SettingsStore implements ports.SettingsStore in memory.
// Safe for concurrent use.
type SettingsStore struct {
	data *domain.Settings
	mu   sync.RWMutex
}

// NewSettingsStore creates a new, empty in-memory settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// Save keeps a copy of the record.
func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	copied := copySettings(settings)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = &copied
	return nil
}

// Load returns a copy of the record so callers cannot mutate the store by pointer.
func (s *SettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return domain.Settings{}, domain.ErrSettingsNotFound
	}
	return copySettings(*s.data), nil
}

// Location describes the store on the settings form.
func (s *SettingsStore) Location() string {
	return "memory"
}

func copySettings(in domain.Settings) domain.Settings {
	return domain.Settings{
		Width:    clonePtr(in.Width),
		Lines:    clonePtr(in.Lines),
		Interval: clonePtr(in.Interval),
		Indent:   clonePtr(in.Indent),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// TextStore implements ports.TextStore in memory.
// Safe for concurrent use.
type TextStore struct {
	text  string
	saved bool
	mu    sync.RWMutex
}

// NewTextStore creates a new, empty in-memory text store.
func NewTextStore() *TextStore {
	return &TextStore{}
}

// Save replaces the text.
func (s *TextStore) Save(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.saved = true
	return nil
}

// Load returns the text.
func (s *TextStore) Load(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		return "", domain.ErrTextNotFound
	}
	return s.text, nil
}
