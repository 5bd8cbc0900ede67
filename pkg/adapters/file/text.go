package file

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/marquee/pkg/domain"
)

// TextStore implements ports.TextStore as a plain UTF-8 file.
type TextStore struct {
	Path string
}

// NewTextStore creates a text store at path.
// If path is empty, it defaults to domain.DefaultTextPath.
func NewTextStore(path string) *TextStore {
	if path == "" {
		path = domain.DefaultTextPath
	}
	return &TextStore{Path: path}
}

// Load reads the whole file.
func (s *TextStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrTextNotFound
		}
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return string(data), nil
}

// Save replaces the file contents atomically.
func (s *TextStore) Save(ctx context.Context, text string) error {
	return writeAtomic(s.Path, []byte(text))
}

// Location describes the store on the settings form.
func (s *TextStore) Location() string {
	return s.Path
}
