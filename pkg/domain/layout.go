package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Layout holds the chunking and rotation parameters.
// Width and Indent are measured in characters (runes).
type Layout struct {
	Width    int     `json:"width" mapstructure:"width"`
	Lines    int     `json:"lines" mapstructure:"lines"`
	Indent   int     `json:"indent" mapstructure:"indent"`
	Interval float64 `json:"interval" mapstructure:"interval"` // seconds
}

// DefaultLayout returns the built-in layout used before any config is applied.
func DefaultLayout() Layout {
	return Layout{
		Width:    DefaultWidth,
		Lines:    DefaultLines,
		Indent:   DefaultIndent,
		Interval: DefaultInterval,
	}
}

// EffectiveWidth is the character budget left for text once the indent is applied.
// It is never less than 1.
func (l Layout) EffectiveWidth() int {
	return max(1, l.Width-max(0, l.Indent))
}

// MaxLinesPerChunk returns the line limit, never less than 1.
func (l Layout) MaxLinesPerChunk() int {
	return max(1, l.Lines)
}

// IndentSpaces returns the indent, never negative.
func (l Layout) IndentSpaces() int {
	return max(0, l.Indent)
}

// IntervalDuration converts the interval in seconds to a time.Duration.
func (l Layout) IntervalDuration() time.Duration {
	return time.Duration(l.Interval * float64(time.Second))
}

// Normalize clamps every field into its valid range.
// Indent is clamped below Width so the effective width is at least 1.
func (l Layout) Normalize() Layout {
	l.Width = clampInt(l.Width, MinWidth, MaxWidth)
	l.Lines = clampInt(l.Lines, MinLines, MaxLines)
	l.Indent = clampInt(l.Indent, MinIndent, MaxIndentFor(l.Width))
	if math.IsNaN(l.Interval) {
		l.Interval = DefaultInterval
	}
	l.Interval = clampFloat(l.Interval, MinInterval, MaxInterval)
	return l
}

// MaxIndentFor returns the largest indent allowed for the given width.
func MaxIndentFor(width int) int {
	return max(0, width-1)
}

func (l Layout) String() string {
	return fmt.Sprintf("%d lines x %d chars, interval %.1fs, indent %d", l.Lines, l.Width, l.Interval, l.Indent)
}

// Settings is a partial layout record as read from a SettingsStore.
// Nil fields are absent and leave the current value untouched.
type Settings struct {
	Width    *int     `json:"width,omitempty" mapstructure:"width"`
	Lines    *int     `json:"lines,omitempty" mapstructure:"lines"`
	Interval *float64 `json:"interval,omitempty" mapstructure:"interval"`
	Indent   *int     `json:"indent,omitempty" mapstructure:"indent"`
}

// Settings returns the full record for persisting l.
func (l Layout) Settings() Settings {
	return Settings{
		Width:    &l.Width,
		Lines:    &l.Lines,
		Interval: &l.Interval,
		Indent:   &l.Indent,
	}
}

// Overlay returns l with every field present in s applied.
func (l Layout) Overlay(s Settings) Layout {
	if s.Width != nil {
		l.Width = *s.Width
	}
	if s.Lines != nil {
		l.Lines = *s.Lines
	}
	if s.Interval != nil {
		l.Interval = *s.Interval
	}
	if s.Indent != nil {
		l.Indent = *s.Indent
	}
	return l
}

// DecodeSettings decodes a loosely typed record (JSON object, YAML map, redis hash)
// into Settings. Numbers given as strings or floats are accepted.
func DecodeSettings(raw map[string]any) (Settings, error) {
	var s Settings
	if err := weakDecode(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

func weakDecode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// ParseIntField parses a form value and clamps it to [lo, hi].
// On a parse failure the previous value is kept.
func ParseIntField(raw string, prev, lo, hi int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return prev
	}
	return clampInt(v, lo, hi)
}

// ParseFloatField parses a form value and clamps it to [lo, hi].
// On a parse failure (or NaN) the previous value is kept.
func ParseFloatField(raw string, prev, lo, hi float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return prev
	}
	return clampFloat(v, lo, hi)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
