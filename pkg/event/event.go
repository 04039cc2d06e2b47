// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-spindrum/pkg/physics"
)

// Type represents the type of event
type Type string

// Common event types
const (
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
	BallCollision     Type = "ball_collision"
	FloorContact      Type = "floor_contact"
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

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// CollisionEvent describes a resolved ball/edge contact.
type CollisionEvent struct {
	BaseEvent
	Tick         uint64
	EdgeIndex    int
	ContactPoint physics.Vector2D
	Penetration  float64
	ImpactSpeed  float64 // relative normal speed at contact, before response
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, tick uint64, edgeIndex int, contactPoint physics.Vector2D, penetration, impactSpeed float64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: BallCollision,
			Source:    source,
		},
		Tick:         tick,
		EdgeIndex:    edgeIndex,
		ContactPoint: contactPoint,
		Penetration:  penetration,
		ImpactSpeed:  impactSpeed,
	}
}

// FloorContactEvent reports a fallback floor clamp. The floor is a
// defensive backstop, so these normally indicate the ball tunneled
// through a fast-moving edge.
type FloorContactEvent struct {
	BaseEvent
	Tick     uint64
	Position physics.Vector2D
}

// NewFloorContactEvent creates a new floor contact event
func NewFloorContactEvent(source interface{}, tick uint64, position physics.Vector2D) *FloorContactEvent {
	return &FloorContactEvent{
		BaseEvent: BaseEvent{
			EventType: FloorContact,
			Source:    source,
		},
		Tick:     tick,
		Position: position,
	}
}
