package memory

import "sync"

// Display implements ports.Display by recording every write.
// Safe for concurrent use.
type Display struct {
	mu     sync.RWMutex
	slots  map[string]string
	writes int
}

// NewDisplay creates an empty recording display.
func NewDisplay() *Display {
	return &Display{slots: make(map[string]string)}
}

// Set records text for slot.
func (d *Display) Set(slot, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slots[slot] = text
	d.writes++
}

// Get returns the last text written to slot.
func (d *Display) Get(slot string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	text, ok := d.slots[slot]
	return text, ok
}

// Writes returns the number of Set calls so far.
func (d *Display) Writes() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.writes
}
