package marquee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/marquee/pkg/adapters/file"
	"github.com/aretw0/marquee/pkg/chunker"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/rotator"
)

// Status messages returned to the form caller.
const (
	StatusSending   = "Saved and scrolling on screen."
	StatusNothing   = "Nothing to show (empty text)."
	StatusStopped   = "Scrolling stopped. Preview updated."
	StatusSaved     = "Saved. Preview updated (scrolling is OFF)."
	statusSaveError = "Error while saving: %v"
)

// Engine is the high-level entry point for the Marquee library.
// It owns the layout, the rotator and the collaborators that persist and display them.
type Engine struct {
	rotator  *rotator.Rotator
	settings ports.SettingsStore
	texts    ports.TextStore
	display  ports.Display
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	position string
	filePath string

	mu      sync.Mutex // serializes submissions; guards layout and enabled
	layout  domain.Layout
	enabled bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSettingsStore injects the store for the layout record.
// Default: a JSON file at file.DefaultSettingsPath.
func WithSettingsStore(s ports.SettingsStore) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithTextStore injects the store for the source text.
// Default: a plain file at the host config file path.
func WithTextStore(s ports.TextStore) Option {
	return func(e *Engine) {
		e.texts = s
	}
}

// WithDisplay sets the surface the current chunk is written to.
func WithDisplay(d ports.Display) Option {
	return func(e *Engine) {
		e.display = d
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine.
// The layout starts from the built-in defaults, is overridden by host and then
// by whatever the settings store holds. Load failures are logged and ignored.
func New(ctx context.Context, host domain.HostConfig, opts ...Option) *Engine {
	eng := &Engine{
		enabled:  host.EnabledOr(false),
		position: host.PositionOr(domain.DefaultPosition),
		filePath: host.FilePathOr(domain.DefaultTextPath),
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.settings == nil {
		eng.settings = file.NewSettingsStore("")
	}
	if eng.texts == nil {
		eng.texts = file.NewTextStore(eng.filePath)
	}
	if eng.display == nil {
		eng.display = ports.Displays{}
	}

	layout := domain.DefaultLayout().Overlay(host.Settings())
	stored, err := eng.settings.Load(ctx)
	switch {
	case err == nil:
		layout = layout.Overlay(stored)
		eng.logger.Info("Settings loaded", "location", ports.LocationOf(eng.settings))
	case errors.Is(err, domain.ErrSettingsNotFound):
	default:
		eng.storeError(ctx, "settings", "load", err)
	}
	eng.layout = layout.Normalize()

	eng.rotator = rotator.New(
		rotator.WithInterval(eng.layout.IntervalDuration()),
		rotator.WithEnabled(eng.enabled),
	)

	eng.logger.Info("Loaded",
		"enabled", eng.enabled,
		"file_path", eng.filePath,
		"position", eng.position,
		"width", eng.layout.Width,
		"lines", eng.layout.Lines,
		"interval", eng.layout.Interval,
		"indent", eng.layout.Indent,
	)
	return eng
}

// Layout returns the current layout.
func (e *Engine) Layout() domain.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout
}

// Preview chunks text with layout without touching any state.
// The layout is normalized first.
func (e *Engine) Preview(text string, layout domain.Layout) []domain.Chunk {
	return chunker.Build(text, layout.Normalize())
}

// Snapshot returns the current rotation state.
func (e *Engine) Snapshot() domain.RotationState {
	return e.rotator.Snapshot()
}

// Poll is the display refresh tick. It advances the rotation if the interval
// elapsed and writes the current chunk to the display slot for the configured
// position. Nothing is written unless the engine is enabled and rotating.
func (e *Engine) Poll(ctx context.Context, now time.Time) {
	res, ok := e.rotator.Tick(now)
	if !ok {
		return
	}

	if res.Advanced && e.hooks.OnRotate != nil {
		e.hooks.OnRotate(ctx, &domain.RotateEvent{
			EventBase: domain.EventBase{Timestamp: now, Type: domain.EventRotate},
			Index:     res.Index,
			Total:     res.Total,
		})
	}

	e.display.Set(domain.SlotFor(e.position), res.Chunk.String())
}

// View returns the current form state.
func (e *Engine) View(ctx context.Context) domain.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view(e.loadText(ctx), "", domain.ChunkStrings(e.rotator.Chunks()))
}

// Submit applies a form submission: it updates the enabled flag and layout,
// persists settings and text, rebuilds the chunks and then starts, stops or
// idles the rotation depending on the action.
// A failed text save leaves the rotation untouched and is reported in the status.
func (e *Engine) Submit(ctx context.Context, sub domain.Submission) domain.View {
	e.mu.Lock()
	defer e.mu.Unlock()

	action := domain.ParseAction(string(sub.Action))

	e.enabled = sub.Enabled
	e.layout = sub.Apply(e.layout)
	e.rotator.SetEnabled(e.enabled)
	e.rotator.SetInterval(e.layout.IntervalDuration())

	if err := e.settings.Save(ctx, e.layout.Settings()); err != nil {
		e.storeError(ctx, "settings", "save", err)
	} else {
		e.logger.Info("Settings saved", "location", ports.LocationOf(e.settings), "layout", e.layout.String())
	}

	if err := e.texts.Save(ctx, sub.Message); err != nil {
		e.storeError(ctx, "text", "save", err)
		return e.view(e.loadText(ctx), fmt.Sprintf(statusSaveError, err), domain.ChunkStrings(e.rotator.Chunks()))
	}

	chunks := chunker.Build(sub.Message, e.layout)

	var status string
	switch action {
	case domain.ActionSend:
		if e.rotator.Start(chunks) {
			status = StatusSending
		} else {
			status = StatusNothing
		}
	case domain.ActionStop:
		e.rotator.Stop()
		e.rotator.Reset(chunks)
		status = StatusStopped
	default:
		e.rotator.Stop()
		e.rotator.Reset(chunks)
		status = StatusSaved
	}

	active := e.rotator.Active()
	e.logger.Info("Submission applied",
		"action", action,
		"chunks", len(chunks),
		"active", active,
		"enabled", e.enabled,
		"width", e.layout.Width,
		"lines", e.layout.Lines,
		"interval", e.layout.Interval,
		"indent", e.layout.Indent,
	)
	if e.hooks.OnRebuild != nil {
		e.hooks.OnRebuild(ctx, &domain.RebuildEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRebuild},
			Action:    action,
			Chunks:    len(chunks),
			Active:    active,
		})
	}

	return e.view(sub.Message, status, domain.ChunkStrings(chunks))
}

// Close stops the rotation. Stores injected by the caller stay open.
func (e *Engine) Close() error {
	e.rotator.Stop()
	e.logger.Info("Stopped")
	return nil
}

// view assembles a View. Callers must hold e.mu.
func (e *Engine) view(text, status string, preview []string) domain.View {
	filePath := ports.LocationOf(e.texts)
	if filePath == "" {
		filePath = e.filePath
	}
	if preview == nil {
		preview = []string{}
	}
	return domain.View{
		Text:         text,
		Enabled:      e.enabled,
		Active:       e.rotator.Active(),
		Status:       status,
		Layout:       e.layout,
		Preview:      preview,
		FilePath:     filePath,
		Position:     e.position,
		SettingsPath: ports.LocationOf(e.settings),
	}
}

func (e *Engine) loadText(ctx context.Context) string {
	text, err := e.texts.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrTextNotFound) {
			e.storeError(ctx, "text", "load", err)
		}
		return ""
	}
	return text
}

func (e *Engine) storeError(ctx context.Context, store, op string, err error) {
	e.logger.Error("Store operation failed", "store", store, "op", op, "err", err)
	if e.hooks.OnStoreError != nil {
		e.hooks.OnStoreError(ctx, &domain.StoreErrorEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStoreError},
			Store:     store,
			Op:        op,
			Err:       err,
		})
	}
}
