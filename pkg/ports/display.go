package ports

// Display is the host surface the current chunk is rendered on.
// Set is called from the poll loop and must not block for long.
type Display interface {
	Set(slot, text string)
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(slot, text string)

// Set calls f(slot, text).
func (f DisplayFunc) Set(slot, text string) {
	f(slot, text)
}

// Displays fans a write out to several displays, in order.
type Displays []Display

// Set writes text to every display.
func (d Displays) Set(slot, text string) {
	for _, disp := range d {
		if disp != nil {
			disp.Set(slot, text)
		}
	}
}
