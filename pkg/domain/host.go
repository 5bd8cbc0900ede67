package domain

import "fmt"

// HostConfig is the startup configuration supplied by the embedding host.
// Every field is optional; nil means "keep the default".
type HostConfig struct {
	Enabled  *bool    `mapstructure:"enabled" yaml:"enabled,omitempty"`
	FilePath *string  `mapstructure:"file_path" yaml:"file_path,omitempty"`
	Position *string  `mapstructure:"position" yaml:"position,omitempty"`
	Width    *int     `mapstructure:"width" yaml:"width,omitempty"`
	Lines    *int     `mapstructure:"lines" yaml:"lines,omitempty"`
	Interval *float64 `mapstructure:"interval" yaml:"interval,omitempty"`
	Indent   *int     `mapstructure:"indent" yaml:"indent,omitempty"`
}

// DecodeHostConfig decodes a loosely typed map into a HostConfig.
func DecodeHostConfig(raw map[string]any) (HostConfig, error) {
	var cfg HostConfig
	if err := weakDecode(raw, &cfg); err != nil {
		return HostConfig{}, fmt.Errorf("failed to decode host config: %w", err)
	}
	return cfg, nil
}

// Settings returns the layout portion of the host config.
func (c HostConfig) Settings() Settings {
	return Settings{
		Width:    c.Width,
		Lines:    c.Lines,
		Interval: c.Interval,
		Indent:   c.Indent,
	}
}

// EnabledOr returns the configured enabled flag or def.
func (c HostConfig) EnabledOr(def bool) bool {
	if c.Enabled == nil {
		return def
	}
	return *c.Enabled
}

// FilePathOr returns the configured text file path or def.
func (c HostConfig) FilePathOr(def string) string {
	if c.FilePath == nil || *c.FilePath == "" {
		return def
	}
	return *c.FilePath
}

// PositionOr returns the configured display position or def.
func (c HostConfig) PositionOr(def string) string {
	if c.Position == nil || *c.Position == "" {
		return def
	}
	return *c.Position
}

// SlotFor maps a display position to the slot written on the display.
// "bottom" writes the status slot, "name" the name slot and anything else
// is used verbatim as the slot key.
func SlotFor(position string) string {
	switch position {
	case PositionBottom:
		return SlotStatus
	case PositionName:
		return PositionName
	default:
		return position
	}
}
