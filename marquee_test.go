package marquee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/chunker"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sample = "Hello, world, this is a test of the wrapper."

type mockSettingsStore struct {
	mock.Mock
}

func (m *mockSettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *mockSettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	return m.Called(ctx, settings).Error(0)
}

type mockTextStore struct {
	mock.Mock
}

func (m *mockTextStore) Load(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTextStore) Save(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	engine   *marquee.Engine
	settings *memory.SettingsStore
	texts    *memory.TextStore
	display  *memory.Display
}

func newFixture(t *testing.T, host domain.HostConfig, opts ...marquee.Option) fixture {
	t.Helper()
	f := fixture{
		settings: memory.NewSettingsStore(),
		texts:    memory.NewTextStore(),
		display:  memory.NewDisplay(),
	}
	opts = append([]marquee.Option{
		marquee.WithSettingsStore(f.settings),
		marquee.WithTextStore(f.texts),
		marquee.WithDisplay(f.display),
	}, opts...)
	f.engine = marquee.New(context.Background(), host, opts...)
	t.Cleanup(func() { _ = f.engine.Close() })
	return f
}

func TestNew_Defaults(t *testing.T) {
	f := newFixture(t, domain.HostConfig{})

	assert.Equal(t, domain.DefaultLayout(), f.engine.Layout())

	view := f.engine.View(context.Background())
	assert.False(t, view.Enabled)
	assert.False(t, view.Active)
	assert.Empty(t, view.Text)
	assert.Empty(t, view.Preview)
	assert.NotNil(t, view.Preview)
	assert.Equal(t, domain.DefaultPosition, view.Position)
	assert.Equal(t, domain.DefaultTextPath, view.FilePath)
	assert.Equal(t, "memory", view.SettingsPath)
	assert.Equal(t, domain.PhaseEmpty, f.engine.Snapshot().Phase())
}

func TestNew_Precedence(t *testing.T) {
	ctx := context.Background()
	settings := memory.NewSettingsStore()
	require.NoError(t, settings.Save(ctx, domain.Settings{Width: ptr(24)}))

	eng := marquee.New(ctx, domain.HostConfig{
		Enabled:  ptr(true),
		Position: ptr("name"),
		Width:    ptr(20),
		Lines:    ptr(4),
	}, marquee.WithSettingsStore(settings), marquee.WithTextStore(memory.NewTextStore()))
	defer eng.Close()

	assert.Equal(t, domain.Layout{Width: 24, Lines: 4, Indent: 0, Interval: 4}, eng.Layout())

	view := eng.View(ctx)
	assert.True(t, view.Enabled)
	assert.Equal(t, "name", view.Position)
}

func TestNew_ClampsConfiguredLayout(t *testing.T) {
	f := newFixture(t, domain.HostConfig{
		Width:    ptr(100),
		Lines:    ptr(0),
		Indent:   ptr(200),
		Interval: ptr(0.1),
	})

	assert.Equal(t, domain.Layout{Width: 32, Lines: 1, Indent: 31, Interval: 1}, f.engine.Layout())
}

func TestNew_SettingsLoadFailure(t *testing.T) {
	ctx := context.Background()
	settings := new(mockSettingsStore)
	settings.On("Load", mock.Anything).Return(domain.Settings{}, errors.New("corrupt record"))

	var events []*domain.StoreErrorEvent
	eng := marquee.New(ctx, domain.HostConfig{Width: ptr(20)},
		marquee.WithSettingsStore(settings),
		marquee.WithTextStore(memory.NewTextStore()),
		marquee.WithLifecycleHooks(domain.LifecycleHooks{
			OnStoreError: func(_ context.Context, e *domain.StoreErrorEvent) { events = append(events, e) },
		}),
	)
	defer eng.Close()

	assert.Equal(t, 20, eng.Layout().Width, "host config still applies")
	require.Len(t, events, 1)
	assert.Equal(t, "settings", events[0].Store)
	assert.Equal(t, "load", events[0].Op)
	settings.AssertExpectations(t)
}

func TestNew_SettingsNotFoundIsSilent(t *testing.T) {
	var calls int
	newFixture(t, domain.HostConfig{}, marquee.WithLifecycleHooks(domain.LifecycleHooks{
		OnStoreError: func(context.Context, *domain.StoreErrorEvent) { calls++ },
	}))

	assert.Zero(t, calls)
}

func TestSubmit_Send(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.HostConfig{})

	view := f.engine.Submit(ctx, domain.Submission{
		Message: sample,
		Enabled: true,
		Width:   "10",
		Lines:   "2",
		Action:  domain.ActionSend,
	})

	want := chunker.Build(sample, domain.Layout{Width: 10, Lines: 2, Interval: 4})
	assert.Equal(t, marquee.StatusSending, view.Status)
	assert.True(t, view.Active)
	assert.True(t, view.Enabled)
	assert.Equal(t, domain.ChunkStrings(want), view.Preview)
	assert.Equal(t, sample, view.Text)

	snap := f.engine.Snapshot()
	assert.Equal(t, want, snap.Chunks)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.True(t, snap.LastTick.IsZero())

	stored, err := f.texts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample, stored)

	settings, err := f.settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Layout{Width: 10, Lines: 2, Interval: 4}, domain.DefaultLayout().Overlay(settings))
}

func TestSubmit_SendEmptyText(t *testing.T) {
	f := newFixture(t, domain.HostConfig{})

	view := f.engine.Submit(context.Background(), domain.Submission{Message: "  \n\n ", Enabled: true, Action: domain.ActionSend})

	assert.Equal(t, marquee.StatusNothing, view.Status)
	assert.False(t, view.Active)
	assert.Empty(t, view.Preview)
	assert.Equal(t, domain.PhaseEmpty, f.engine.Snapshot().Phase())
}

func TestSubmit_StopKeepsPreview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.HostConfig{})

	f.engine.Submit(ctx, domain.Submission{Message: sample, Enabled: true, Action: domain.ActionSend})
	view := f.engine.Submit(ctx, domain.Submission{Message: sample, Enabled: true, Action: domain.ActionStop})

	assert.Equal(t, marquee.StatusStopped, view.Status)
	assert.False(t, view.Active)
	assert.NotEmpty(t, view.Preview)
	assert.Equal(t, domain.PhaseIdle, f.engine.Snapshot().Phase())
}

func TestSubmit_SaveAndUnknownActionStopRotation(t *testing.T) {
	for _, action := range []domain.Action{domain.ActionSave, "", "bogus"} {
		t.Run(string(action), func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, domain.HostConfig{})

			f.engine.Submit(ctx, domain.Submission{Message: sample, Enabled: true, Action: domain.ActionSend})
			view := f.engine.Submit(ctx, domain.Submission{Message: "new text", Enabled: true, Action: action})

			assert.Equal(t, marquee.StatusSaved, view.Status)
			assert.False(t, view.Active)
			assert.Equal(t, []string{"new text"}, view.Preview)
		})
	}
}

func TestSubmit_InvalidNumbersKeepPrevious(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.HostConfig{})

	f.engine.Submit(ctx, domain.Submission{Message: "x", Width: "20", Lines: "4", Interval: "2.5", Indent: "3"})
	f.engine.Submit(ctx, domain.Submission{Message: "x", Width: "wide", Lines: "", Interval: "NaN", Indent: "-"})

	assert.Equal(t, domain.Layout{Width: 20, Lines: 4, Interval: 2.5, Indent: 3}, f.engine.Layout())

	f.engine.Submit(ctx, domain.Submission{Message: "x", Width: "100", Lines: "9", Interval: "0", Indent: "50"})

	assert.Equal(t, domain.Layout{Width: 32, Lines: 5, Interval: 1, Indent: 31}, f.engine.Layout())
}

func TestSubmit_IndentClampedAgainstNewWidth(t *testing.T) {
	f := newFixture(t, domain.HostConfig{})

	f.engine.Submit(context.Background(), domain.Submission{Message: "x", Width: "5", Indent: "10"})

	assert.Equal(t, 4, f.engine.Layout().Indent)
	assert.Equal(t, 1, f.engine.Layout().EffectiveWidth())
}

func TestSubmit_TextSaveFailureLeavesRotation(t *testing.T) {
	ctx := context.Background()
	settings := memory.NewSettingsStore()
	texts := new(mockTextStore)
	texts.On("Load", mock.Anything).Return("previous", nil)
	texts.On("Save", mock.Anything, "first").Return(nil).Once()
	texts.On("Save", mock.Anything, "second").Return(errors.New("disk full")).Once()

	var storeErrors int
	eng := marquee.New(ctx, domain.HostConfig{},
		marquee.WithSettingsStore(settings),
		marquee.WithTextStore(texts),
		marquee.WithLifecycleHooks(domain.LifecycleHooks{
			OnStoreError: func(context.Context, *domain.StoreErrorEvent) { storeErrors++ },
		}),
	)
	defer eng.Close()

	eng.Submit(ctx, domain.Submission{Message: "first", Enabled: true, Action: domain.ActionSend})
	before := eng.Snapshot()
	require.True(t, before.Active)

	view := eng.Submit(ctx, domain.Submission{Message: "second", Enabled: true, Width: "20", Action: domain.ActionStop})

	assert.Equal(t, "Error while saving: disk full", view.Status)
	assert.Equal(t, "previous", view.Text)
	assert.True(t, view.Active)
	assert.Equal(t, []string{"first"}, view.Preview)
	assert.Equal(t, before.Chunks, eng.Snapshot().Chunks)
	assert.Equal(t, 1, storeErrors)

	// Settings were saved before the text failed.
	stored, err := settings.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored.Width)
	assert.Equal(t, 20, *stored.Width)
	texts.AssertExpectations(t)
}

func TestSubmit_SettingsSaveFailureStillSavesText(t *testing.T) {
	ctx := context.Background()
	settings := new(mockSettingsStore)
	settings.On("Load", mock.Anything).Return(domain.Settings{}, domain.ErrSettingsNotFound)
	settings.On("Save", mock.Anything, mock.Anything).Return(errors.New("read-only"))
	texts := memory.NewTextStore()

	eng := marquee.New(ctx, domain.HostConfig{}, marquee.WithSettingsStore(settings), marquee.WithTextStore(texts))
	defer eng.Close()

	view := eng.Submit(ctx, domain.Submission{Message: "hello", Enabled: true, Action: domain.ActionSend})

	assert.Equal(t, marquee.StatusSending, view.Status)
	text, err := texts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	settings.AssertExpectations(t)
}

func TestSubmit_RebuildHook(t *testing.T) {
	var events []*domain.RebuildEvent
	f := newFixture(t, domain.HostConfig{}, marquee.WithLifecycleHooks(domain.LifecycleHooks{
		OnRebuild: func(_ context.Context, e *domain.RebuildEvent) { events = append(events, e) },
	}))

	f.engine.Submit(context.Background(), domain.Submission{Message: sample, Enabled: true, Action: "send"})

	require.Len(t, events, 1)
	assert.Equal(t, domain.ActionSend, events[0].Action)
	assert.Equal(t, domain.EventRebuild, events[0].Type)
	assert.True(t, events[0].Active)
	assert.Equal(t, len(f.engine.Snapshot().Chunks), events[0].Chunks)
}

func TestPoll_RotatesOnInterval(t *testing.T) {
	ctx := context.Background()
	var rotations []*domain.RotateEvent
	f := newFixture(t, domain.HostConfig{}, marquee.WithLifecycleHooks(domain.LifecycleHooks{
		OnRotate: func(_ context.Context, e *domain.RotateEvent) { rotations = append(rotations, e) },
	}))

	f.engine.Submit(ctx, domain.Submission{Message: sample, Enabled: true, Width: "10", Lines: "2", Action: domain.ActionSend})
	chunks := f.engine.Snapshot().Chunks
	require.GreaterOrEqual(t, len(chunks), 2)

	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	f.engine.Poll(ctx, t0)
	got, ok := f.display.Get(domain.SlotStatus)
	require.True(t, ok)
	assert.Equal(t, chunks[0].String(), got)

	f.engine.Poll(ctx, t0.Add(time.Second))
	got, _ = f.display.Get(domain.SlotStatus)
	assert.Equal(t, chunks[0].String(), got)
	assert.Empty(t, rotations)

	f.engine.Poll(ctx, t0.Add(4*time.Second))
	got, _ = f.display.Get(domain.SlotStatus)
	assert.Equal(t, chunks[1].String(), got)
	require.Len(t, rotations, 1)
	assert.Equal(t, 1, rotations[0].Index)
	assert.Equal(t, len(chunks), rotations[0].Total)

	assert.Equal(t, 3, f.display.Writes())
}

func TestPoll_WrapsAround(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.HostConfig{Interval: ptr(1.0)})

	f.engine.Submit(ctx, domain.Submission{Message: "one\n\ntwo", Enabled: true, Action: domain.ActionSend})
	t0 := time.Unix(0, 0)

	var seen []string
	for i := range 4 {
		f.engine.Poll(ctx, t0.Add(time.Duration(i)*time.Second))
		got, _ := f.display.Get(domain.SlotStatus)
		seen = append(seen, got)
	}

	assert.Equal(t, []string{"one", "two", "one", "two"}, seen)
}

func TestPoll_NoWriteWhenDisabledOrIdle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.HostConfig{})

	f.engine.Poll(ctx, time.Now())
	f.engine.Submit(ctx, domain.Submission{Message: sample, Enabled: false, Action: domain.ActionSend})
	f.engine.Poll(ctx, time.Now())
	f.engine.Submit(ctx, domain.Submission{Message: sample, Enabled: true, Action: domain.ActionSave})
	f.engine.Poll(ctx, time.Now())

	assert.Zero(t, f.display.Writes())
}

func TestPoll_PositionSlot(t *testing.T) {
	cases := map[string]string{
		"bottom": domain.SlotStatus,
		"name":   "name",
		"top":    "top",
	}
	for position, slot := range cases {
		t.Run(position, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, domain.HostConfig{Position: ptr(position)})

			f.engine.Submit(ctx, domain.Submission{Message: "hi", Enabled: true, Action: domain.ActionSend})
			f.engine.Poll(ctx, time.Now())

			got, ok := f.display.Get(slot)
			require.True(t, ok)
			assert.Equal(t, "hi", got)
		})
	}
}

func TestView_ReflectsStoreAndRotator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.HostConfig{})

	f.engine.Submit(ctx, domain.Submission{Message: sample, Enabled: true, Action: domain.ActionSend})
	require.NoError(t, f.texts.Save(ctx, "edited elsewhere"))

	view := f.engine.View(ctx)
	assert.Equal(t, "edited elsewhere", view.Text)
	assert.Empty(t, view.Status)
	assert.True(t, view.Active)
	assert.Equal(t, domain.ChunkStrings(chunker.Build(sample, domain.DefaultLayout())), view.Preview)
}

func TestPreview_DoesNotTouchState(t *testing.T) {
	f := newFixture(t, domain.HostConfig{})

	chunks := f.engine.Preview("one two three", domain.Layout{Width: 12, Lines: 3, Indent: 2, Interval: 4})

	assert.Equal(t, []domain.Chunk{{"  one two", "  three"}}, chunks)
	assert.Equal(t, domain.PhaseEmpty, f.engine.Snapshot().Phase())
	assert.Equal(t, domain.DefaultLayout(), f.engine.Layout())
}

func TestPreview_NormalizesLayout(t *testing.T) {
	f := newFixture(t, domain.HostConfig{})

	chunks := f.engine.Preview("abcdefgh", domain.Layout{Width: 1, Lines: 0, Indent: 9})

	// Width clamps to 5 and indent to 4, leaving a single column.
	require.Len(t, chunks, 8)
	assert.Equal(t, domain.Chunk{"    a"}, chunks[0])
}

func TestClose_StopsRotation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, domain.HostConfig{})
	f.engine.Submit(ctx, domain.Submission{Message: sample, Enabled: true, Action: domain.ActionSend})

	require.NoError(t, f.engine.Close())

	assert.False(t, f.engine.Snapshot().Active)
	f.engine.Poll(ctx, time.Now())
	assert.Zero(t, f.display.Writes())
}
