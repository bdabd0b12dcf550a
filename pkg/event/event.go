// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Event types published by the store, the playback controller and the viewport
const (
	ProjectileAdded    Type = "projectile_added"
	ProjectileRemoved  Type = "projectile_removed"
	ProjectilesCleared Type = "projectiles_cleared"

	PlaybackStarted   Type = "playback_started"
	PlaybackPaused    Type = "playback_paused"
	PlaybackResumed   Type = "playback_resumed"
	PlaybackTick      Type = "playback_tick"
	PlaybackCompleted Type = "playback_completed"
	PlaybackReset     Type = "playback_reset"
	StartRejected     Type = "start_rejected"
	InputRejected     Type = "input_rejected"

	ViewportChanged Type = "viewport_changed"
	LabelsToggled   Type = "labels_toggled"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registered struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registered
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registered),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registered{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run
// synchronously on the caller's goroutine, in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]registered(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// HandlerCount returns the number of handlers registered for eventType.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Specific event implementations

// ProjectileEvent carries the projectile affected by an add or remove.
type ProjectileEvent struct {
	BaseEvent
	ProjectileID uint64
	Index        int // position in the store at the time of the event
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(eventType Type, source interface{}, projectileID uint64, index int) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ProjectileID: projectileID,
		Index:        index,
	}
}

// PlaybackEvent carries the simulation time at a playback transition or tick.
type PlaybackEvent struct {
	BaseEvent
	Time float64 // seconds of simulation time
}

// NewPlaybackEvent creates a new playback event
func NewPlaybackEvent(eventType Type, source interface{}, simTime float64) *PlaybackEvent {
	return &PlaybackEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Time: simTime,
	}
}

// WarningEvent carries a user-facing warning message.
type WarningEvent struct {
	BaseEvent
	Message string
}

// NewWarningEvent creates a new warning event
func NewWarningEvent(eventType Type, source interface{}, message string) *WarningEvent {
	return &WarningEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Message: message,
	}
}

// ViewportEvent carries the transform after a zoom, pan or resize.
type ViewportEvent struct {
	BaseEvent
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewViewportEvent creates a new viewport event
func NewViewportEvent(source interface{}, scale, offsetX, offsetY float64) *ViewportEvent {
	return &ViewportEvent{
		BaseEvent: BaseEvent{
			EventType: ViewportChanged,
			Source:    source,
		},
		Scale:   scale,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// LabelsEvent reports the new state of the label toggle.
type LabelsEvent struct {
	BaseEvent
	Show bool
}

// NewLabelsEvent creates a new labels event
func NewLabelsEvent(source interface{}, show bool) *LabelsEvent {
	return &LabelsEvent{
		BaseEvent: BaseEvent{
			EventType: LabelsToggled,
			Source:    source,
		},
		Show: show,
	}
}
