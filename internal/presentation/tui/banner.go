package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Marquee banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{` _ __ ___   __ _ _ __ __ _ _   _  ___  ___ `, "#818cf8"},
		{`| '_ ' _ \ / _' | '__/ _' | | | |/ _ \/ _ \`, "#a78bfa"},
		{`| | | | | | (_| | | | (_| | |_| |  __/  __/`, "#c084fc"},
		{`|_| |_| |_|\__,_|_|  \__, |\__,_|\___|\___|`, "#e879f9"},
		{`                        |_|                `, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
