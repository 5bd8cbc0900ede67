package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveWidth(t *testing.T) {
	assert.Equal(t, 16, domain.DefaultLayout().EffectiveWidth())
	assert.Equal(t, 1, domain.Layout{Width: 10, Indent: 9}.EffectiveWidth())
	assert.Equal(t, 1, domain.Layout{Width: 10, Indent: 15}.EffectiveWidth())
	assert.Equal(t, 10, domain.Layout{Width: 10, Indent: -3}.EffectiveWidth())
}

func TestNormalize(t *testing.T) {
	l := domain.Layout{Width: 100, Lines: 0, Indent: 50, Interval: 0.2}.Normalize()
	assert.Equal(t, domain.Layout{Width: 32, Lines: 1, Indent: 31, Interval: 1}, l)

	l = domain.Layout{Width: 1, Lines: 9, Indent: -1, Interval: 120}.Normalize()
	assert.Equal(t, domain.Layout{Width: 5, Lines: 5, Indent: 0, Interval: 60}, l)
}

func TestIntervalDuration(t *testing.T) {
	assert.Equal(t, 2500*time.Millisecond, domain.Layout{Interval: 2.5}.IntervalDuration())
}

func TestSubmissionApply_ClampsAndFallsBack(t *testing.T) {
	prev := domain.Layout{Width: 20, Lines: 2, Indent: 3, Interval: 7.5}

	got := domain.Submission{Width: "99", Lines: "0", Indent: "2", Interval: "0.1"}.Apply(prev)
	assert.Equal(t, domain.Layout{Width: 32, Lines: 1, Indent: 2, Interval: 1}, got)

	// Garbage keeps the previous values, never the built-in defaults.
	got = domain.Submission{Width: "wide", Lines: "", Indent: "1.5", Interval: "soon"}.Apply(prev)
	assert.Equal(t, prev, got)

	got = domain.Submission{Width: " 12 ", Interval: "2.5"}.Apply(prev)
	assert.Equal(t, 12, got.Width)
	assert.Equal(t, 2.5, got.Interval)

	got = domain.Submission{Interval: "NaN"}.Apply(prev)
	assert.Equal(t, 7.5, got.Interval)
}

func TestSubmissionApply_IndentClampedToNewWidth(t *testing.T) {
	prev := domain.Layout{Width: 32, Lines: 3, Indent: 0, Interval: 4}

	got := domain.Submission{Width: "8", Indent: "8"}.Apply(prev)
	assert.Equal(t, 8, got.Width)
	assert.Equal(t, 7, got.Indent)
	assert.Equal(t, 1, got.EffectiveWidth())

	got = domain.Submission{Width: "8", Indent: "7"}.Apply(prev)
	assert.Equal(t, 7, got.Indent)
	assert.Equal(t, 1, got.EffectiveWidth())
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, domain.ActionSend, domain.ParseAction("send"))
	assert.Equal(t, domain.ActionStop, domain.ParseAction("stop"))
	assert.Equal(t, domain.ActionSave, domain.ParseAction("save"))
	assert.Equal(t, domain.ActionSave, domain.ParseAction(""))
	assert.Equal(t, domain.ActionSave, domain.ParseAction("explode"))
}

func TestDecodeSettings_Lenient(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"width": 20.0, "lines": "4", "interval": 2}`), &raw))

	s, err := domain.DecodeSettings(raw)
	require.NoError(t, err)
	require.NotNil(t, s.Width)
	require.NotNil(t, s.Lines)
	require.NotNil(t, s.Interval)
	assert.Nil(t, s.Indent)
	assert.Equal(t, 20, *s.Width)
	assert.Equal(t, 4, *s.Lines)
	assert.Equal(t, 2.0, *s.Interval)

	l := domain.DefaultLayout().Overlay(s)
	assert.Equal(t, domain.Layout{Width: 20, Lines: 4, Indent: 0, Interval: 2}, l)
}

func TestDecodeSettings_Corrupt(t *testing.T) {
	_, err := domain.DecodeSettings(map[string]any{"width": "very"})
	assert.Error(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	l := domain.Layout{Width: 12, Lines: 2, Indent: 1, Interval: 3.5}
	assert.Equal(t, l, domain.DefaultLayout().Overlay(l.Settings()))
}

func TestSlotFor(t *testing.T) {
	assert.Equal(t, "status", domain.SlotFor("bottom"))
	assert.Equal(t, "name", domain.SlotFor("name"))
	assert.Equal(t, "face", domain.SlotFor("face"))
}

func TestHostConfig(t *testing.T) {
	cfg, err := domain.DecodeHostConfig(map[string]any{
		"enabled":  "true",
		"position": "name",
		"width":    24,
		"interval": "1.5",
	})
	require.NoError(t, err)

	assert.True(t, cfg.EnabledOr(false))
	assert.Equal(t, "name", cfg.PositionOr(domain.DefaultPosition))
	assert.Equal(t, domain.DefaultTextPath, cfg.FilePathOr(domain.DefaultTextPath))

	l := domain.DefaultLayout().Overlay(cfg.Settings())
	assert.Equal(t, 24, l.Width)
	assert.Equal(t, 1.5, l.Interval)
	assert.Equal(t, domain.DefaultLines, l.Lines)
}

func TestRotationState(t *testing.T) {
	var s domain.RotationState
	assert.Equal(t, domain.PhaseEmpty, s.Phase())
	_, ok := s.Current()
	assert.False(t, ok)

	s.Chunks = []domain.Chunk{{"a", "b"}, {"c"}}
	s.CurrentIndex = 1
	assert.Equal(t, domain.PhaseIdle, s.Phase())
	c, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "c", c.String())

	s.Active = true
	assert.Equal(t, domain.PhaseActive, s.Phase())
	assert.Equal(t, []string{"a\nb", "c"}, domain.ChunkStrings(s.Chunks))
}
