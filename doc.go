/*
Package marquee is a small stateful text-chunking engine for tiny displays.

It takes free-form text, wraps it into fixed-size chunks (bounded width and
line count) and cycles through those chunks on a timed interval, writing the
current chunk to a display slot.

# Concept

The engine keeps three things apart: the pure chunking core (packages wrap and
chunker), the rotation state machine (package rotator) and the host glue
(stores, displays, transports). The Host drives time: it calls Poll on every
refresh tick and Submit whenever the user edits the text or settings. The
engine itself starts no goroutines and schedules nothing.

# Usage

	package main

	import (
		"context"
		"fmt"
		"time"

		"github.com/aretw0/marquee"
		"github.com/aretw0/marquee/pkg/adapters/memory"
		"github.com/aretw0/marquee/pkg/domain"
		"github.com/aretw0/marquee/pkg/ports"
	)

	func main() {
		ctx := context.Background()
		eng := marquee.New(ctx, domain.HostConfig{},
			marquee.WithSettingsStore(memory.NewSettingsStore()),
			marquee.WithTextStore(memory.NewTextStore()),
			marquee.WithDisplay(ports.DisplayFunc(func(slot, text string) {
				fmt.Printf("[%s]\n%s\n", slot, text)
			})),
		)

		view := eng.Submit(ctx, domain.Submission{
			Message: "Hello world, this is a test of the wrapper.",
			Enabled: true,
			Action:  domain.ActionSend,
		})
		fmt.Println(view.Status)

		for i := 0; i < 3; i++ {
			eng.Poll(ctx, time.Now())
			time.Sleep(time.Second)
		}
	}

# Layout

A Layout bounds every chunk: at most Lines lines of at most Width characters,
indent included. Text is split into paragraphs on blank lines; a paragraph
never shares a chunk with the next one. Words longer than the effective width
(Width minus Indent) are cut into fragments.
*/
package marquee
