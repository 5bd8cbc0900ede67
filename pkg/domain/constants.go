package domain

// Layout bounds accepted at the input boundary.
const (
	MinWidth    = 5
	MaxWidth    = 32
	MinLines    = 1
	MaxLines    = 5
	MinIndent   = 0
	MinInterval = 1.0
	MaxInterval = 60.0
)

// Defaults used before host config and persisted settings are applied.
const (
	DefaultWidth    = 16
	DefaultLines    = 3
	DefaultIndent   = 0
	DefaultInterval = 4.0

	DefaultPosition = PositionBottom
	DefaultTextPath = "/tmp/marquee_msg.txt"
)

// Display positions understood by SlotFor.
const (
	PositionBottom = "bottom"
	PositionName   = "name"

	// SlotStatus is the display slot written when the position is "bottom".
	SlotStatus = "status"
)

// Field constants for mapstructure and JSON standardization.
const (
	KeyWidth    = "width"
	KeyLines    = "lines"
	KeyInterval = "interval"
	KeyIndent   = "indent"
	KeyEnabled  = "enabled"
	KeyFilePath = "file_path"
	KeyPosition = "position"
)
