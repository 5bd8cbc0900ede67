// Package terminal renders the current chunk on a text terminal.
package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Display implements ports.Display by printing each new chunk as a framed block.
// Repeated writes of the same text to a slot are skipped.
type Display struct {
	mu      sync.Mutex
	out     io.Writer
	profile termenv.Profile
	clear   bool
	last    map[string]string
}

// Option configures the Display.
type Option func(*Display)

// WithProfile forces a colour profile instead of detecting one.
func WithProfile(p termenv.Profile) Option {
	return func(d *Display) {
		d.profile = p
	}
}

// WithClear clears the screen before every frame. Ignored when out is not a terminal.
func WithClear(clear bool) Option {
	return func(d *Display) {
		d.clear = clear
	}
}

// New creates a Display writing to out.
// Colours are enabled only when out is a terminal.
func New(out io.Writer, opts ...Option) *Display {
	tty := IsTerminal(out)
	d := &Display{
		out:     out,
		profile: termenv.Ascii,
		last:    make(map[string]string),
	}
	if tty {
		d.profile = termenv.ColorProfile()
	}
	for _, opt := range opts {
		opt(d)
	}
	if !tty {
		d.clear = false
	}
	return d
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Set prints text under a header naming slot.
func (d *Display) Set(slot, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.last[slot]; ok && prev == text {
		return
	}
	d.last[slot] = text

	if d.clear {
		fmt.Fprint(d.out, "\x1b[2J\x1b[H")
	}
	header := d.profile.String(fmt.Sprintf("[%s]", slot)).Foreground(d.profile.Color("#818cf8")).Faint()
	body := d.profile.String(text).Foreground(d.profile.Color("#e879f9")).Bold()
	fmt.Fprintf(d.out, "%s\n%s\n\n", header, body)
}
