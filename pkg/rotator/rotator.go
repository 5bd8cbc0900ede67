// Package rotator cycles through a chunk sequence on a wall-clock interval.
//
// The rotator never schedules anything itself: time is sampled by the caller
// and passed to Tick. A single mutex guards the whole state, so Tick and the
// mutating calls may come from different goroutines.
package rotator

import (
	"slices"
	"sync"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
)

// Rotator owns the chunk sequence and the current position within it.
type Rotator struct {
	mu       sync.Mutex
	chunks   []domain.Chunk
	index    int
	lastTick time.Time // zero means unset
	interval time.Duration
	enabled  bool
	active   bool
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithInterval sets the rotation interval.
func WithInterval(d time.Duration) Option {
	return func(r *Rotator) {
		r.interval = d
	}
}

// WithEnabled sets the initial enabled flag.
func WithEnabled(enabled bool) Option {
	return func(r *Rotator) {
		r.enabled = enabled
	}
}

// New creates an empty, inactive rotator.
func New(opts ...Option) *Rotator {
	r := &Rotator{
		interval: time.Duration(domain.DefaultInterval * float64(time.Second)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reset replaces the chunks and rewinds to the first one with the tick
// timestamp unset. The active flag is left untouched unless chunks is empty,
// in which case the rotator cannot stay active.
func (r *Rotator) Reset(chunks []domain.Chunk) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset(chunks)
}

func (r *Rotator) reset(chunks []domain.Chunk) {
	r.chunks = slices.Clone(chunks)
	r.index = 0
	r.lastTick = time.Time{}
	if len(r.chunks) == 0 {
		r.active = false
	}
}

// Start resets to chunks and activates rotation if there is anything to show.
// It reports whether the rotator is now active.
func (r *Rotator) Start(chunks []domain.Chunk) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset(chunks)
	r.active = len(r.chunks) > 0
	return r.active
}

// Stop deactivates rotation. Chunks are kept for preview.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = false
}

// SetInterval changes the rotation interval. It applies from the next Tick.
func (r *Rotator) SetInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = d
}

// SetEnabled toggles whether the rotator may show anything at all.
func (r *Rotator) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// TickResult is the outcome of a Tick that had something to show.
type TickResult struct {
	Chunk    domain.Chunk
	Index    int
	Total    int
	Advanced bool
}

// Tick samples the clock. It is a no-op unless the rotator is enabled,
// active and holds chunks. The first Tick after a reset only records now;
// later ticks advance (circularly) once now-lastTick reaches the interval.
// It returns the chunk at the current index after any advance.
func (r *Rotator) Tick(now time.Time) (TickResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.enabled || !r.active || len(r.chunks) == 0 {
		return TickResult{}, false
	}

	advanced := false
	if r.lastTick.IsZero() {
		r.lastTick = now
	} else if now.Sub(r.lastTick) >= r.interval {
		r.index = (r.index + 1) % len(r.chunks)
		r.lastTick = now
		advanced = true
	}

	return TickResult{
		Chunk:    r.chunks[r.index],
		Index:    r.index,
		Total:    len(r.chunks),
		Advanced: advanced,
	}, true
}

// Chunks returns a copy of the current chunk sequence.
func (r *Rotator) Chunks() []domain.Chunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.chunks)
}

// Active reports whether rotation is on.
func (r *Rotator) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Snapshot returns a copy of the full rotation state.
func (r *Rotator) Snapshot() domain.RotationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.RotationState{
		Chunks:       slices.Clone(r.chunks),
		CurrentIndex: r.index,
		LastTick:     r.lastTick,
		Interval:     r.interval,
		Enabled:      r.enabled,
		Active:       r.active,
	}
}
