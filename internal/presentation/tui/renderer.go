package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// ChunksMarkdown lays chunks out as a markdown document, one fenced block per chunk.
func ChunksMarkdown(chunks []domain.Chunk, layout domain.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Preview\n\n%s\n\n", layout)
	if len(chunks) == 0 {
		b.WriteString("_Nothing to show (empty text)._\n")
		return b.String()
	}
	for i, c := range chunks {
		fmt.Fprintf(&b, "**Chunk %d/%d**\n\n```\n%s\n```\n\n", i+1, len(chunks), c)
	}
	return b.String()
}

// ChunksPlain lays chunks out for a non-terminal output, separated by blank lines.
func ChunksPlain(chunks []domain.Chunk) string {
	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", c)
	}
	return b.String()
}
