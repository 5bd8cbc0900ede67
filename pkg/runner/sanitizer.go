package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 64KB, far more than a tiny display will ever cycle through
	DefaultMaxInputSize = 64 * 1024
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "MARQUEE_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput checks message text before it is stored and chunked.
//
// Oversized input is rejected rather than truncated, so the stored text is
// what the user sent. Runes that a display cannot draw are dropped because
// the wrapper counts every rune against the line width.
//
// Newlines, tabs and carriage returns pass through. The wrapper reads each
// '\r' as a newline, so the "\r\n" a browser textarea posts for Enter
// separates paragraphs exactly like a blank line.
func SanitizeInput(input string) (string, error) {
	if limit := MaxInputSize(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(input, invisible) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if invisible(r) {
			return -1
		}
		return r
	}, input), nil
}

// MaxInputSize returns the byte limit for message text.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}

// invisible reports runes that take no room on screen but would still use
// up width: control codes (ESC sequences corrupt terminals and e-ink
// drivers), zero-width spaces, the byte order mark and bidi overrides.
func invisible(r rune) bool {
	switch r {
	case '\n', '\t', '\r':
		return false
	case '\u200b', '\ufeff':
		return true
	}
	if (r >= '\u202a' && r <= '\u202e') || (r >= '\u2066' && r <= '\u2069') {
		return true
	}
	return unicode.IsControl(r)
}
