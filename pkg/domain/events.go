package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRebuild    EventType = "rebuild"
	EventRotate     EventType = "rotate"
	EventStoreError EventType = "store_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RebuildEvent is emitted after a submission replaced the chunk sequence.
type RebuildEvent struct {
	EventBase
	Action Action `json:"action"`
	Chunks int    `json:"chunks"`
	Active bool   `json:"active"`
}

// RotateEvent is emitted when a tick advanced to the next chunk.
type RotateEvent struct {
	EventBase
	Index int `json:"index"`
	Total int `json:"total"`
}

// StoreErrorEvent is emitted when a persistence collaborator failed.
type StoreErrorEvent struct {
	EventBase
	Store string `json:"store"` // "settings" or "text"
	Op    string `json:"op"`    // "load" or "save"
	Err   error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRebuild    func(context.Context, *RebuildEvent)
	OnRotate     func(context.Context, *RotateEvent)
	OnStoreError func(context.Context, *StoreErrorEvent)
}
