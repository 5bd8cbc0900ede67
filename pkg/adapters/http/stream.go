package http

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// DisplayEvent is one slot update pushed to SSE subscribers.
type DisplayEvent struct {
	Slot string `json:"slot"`
	Text string `json:"text"`
}

// StreamManager handles active SSE connections.
// It implements ports.Display so the engine poll loop can write straight into it;
// a write that repeats the last text of a slot is not broadcast.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
	last        map[string]string
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
		last:        make(map[string]string),
		logger:      logger,
	}
}

// Subscribe registers a new listener. The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Set records text for slot and broadcasts it when it changed.
func (sm *StreamManager) Set(slot, text string) {
	sm.mu.Lock()
	if prev, ok := sm.last[slot]; ok && prev == text {
		sm.mu.Unlock()
		return
	}
	sm.last[slot] = text
	sm.mu.Unlock()

	bytes, err := json.Marshal(DisplayEvent{Slot: slot, Text: text})
	if err != nil {
		sm.logger.Error("StreamManager: encode failed", "err", err)
		return
	}
	sm.Broadcast(string(bytes))
}

// Current returns the last known text of every slot.
func (sm *StreamManager) Current() []DisplayEvent {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	events := make([]DisplayEvent, 0, len(sm.last))
	for slot, text := range sm.last {
		events = append(events, DisplayEvent{Slot: slot, Text: text})
	}
	return events
}

// Broadcast sends msg to every subscriber without blocking.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "subscribers", len(sm.subscribers), "payload_size", len(msg))

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message")
		}
	}
}
