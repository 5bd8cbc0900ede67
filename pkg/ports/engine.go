package ports

import (
	"context"

	"github.com/aretw0/marquee/pkg/domain"
)

// Engine defines the operations transport adapters (HTTP, MCP) drive.
type Engine interface {
	// View returns the current form state: stored text, flags, layout and preview.
	View(ctx context.Context) domain.View

	// Submit applies a form submission and returns the resulting view.
	// Failures are reported in View.Status, never as an error.
	Submit(ctx context.Context, sub domain.Submission) domain.View

	// Layout returns the current layout without reading any store.
	Layout() domain.Layout

	// Preview chunks text with layout without touching any state.
	Preview(text string, layout domain.Layout) []domain.Chunk

	// Snapshot returns the current rotation state.
	Snapshot() domain.RotationState
}
