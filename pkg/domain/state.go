package domain

import (
	"strings"
	"time"
)

// Chunk is an ordered block of at most Layout.Lines lines, indent included.
// Chunks are treated as immutable once built.
type Chunk []string

// String joins the lines with newlines, as written to the display.
func (c Chunk) String() string {
	return strings.Join(c, "\n")
}

// ChunkStrings renders every chunk for display or preview.
func ChunkStrings(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.String()
	}
	return out
}

// Phase is the coarse state of the rotator.
type Phase string

const (
	PhaseEmpty  Phase = "empty"  // No chunks
	PhaseIdle   Phase = "idle"   // Chunks held, not rotating
	PhaseActive Phase = "active" // Chunks held and rotating
)

// RotationState is a snapshot of the rotator.
type RotationState struct {
	Chunks       []Chunk       `json:"chunks"`
	CurrentIndex int           `json:"current_index"`
	LastTick     time.Time     `json:"last_tick,omitzero"`
	Interval     time.Duration `json:"interval"`
	Enabled      bool          `json:"enabled"`
	Active       bool          `json:"active"`
}

// Phase derives the coarse state from the snapshot.
func (s RotationState) Phase() Phase {
	switch {
	case len(s.Chunks) == 0:
		return PhaseEmpty
	case s.Active:
		return PhaseActive
	default:
		return PhaseIdle
	}
}

// Current returns the chunk at CurrentIndex, if any.
func (s RotationState) Current() (Chunk, bool) {
	if len(s.Chunks) == 0 || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Chunks) {
		return nil, false
	}
	return s.Chunks[s.CurrentIndex], true
}
