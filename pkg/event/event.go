// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Type represents the type of event
type Type string

// Game event types
const (
	EnemySpawned     Type = "enemy_spawned"
	EnemyDestroyed   Type = "enemy_destroyed"
	PowerupSpawned   Type = "powerup_spawned"
	PowerupCollected Type = "powerup_collected"
	ProjectileFired  Type = "projectile_fired"
	PlayerDamaged    Type = "player_damaged"
	GameOver         Type = "game_over"
	SessionStarted   Type = "session_started"
	SessionRestarted Type = "session_restarted"
	QuitRequested    Type = "quit_requested"
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

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// Copy so in-flight Publish calls keep their snapshot intact
			remaining := make([]subscriber, 0, len(subs)-1)
			remaining = append(remaining, subs[:i]...)
			remaining = append(remaining, subs[i+1:]...)
			b.handlers[eventType] = remaining
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// EnemyEvent covers enemy spawns and kills
type EnemyEvent struct {
	BaseEvent
	EnemyID        entity.ID
	Position       physics.Vector2D
	SizeMultiplier float64
	ScoreAwarded   int
}

// NewEnemyEvent creates a new enemy event
func NewEnemyEvent(eventType Type, source interface{}, e *entity.Enemy, multiplier float64, score int) *EnemyEvent {
	return &EnemyEvent{
		BaseEvent:      BaseEvent{EventType: eventType, Source: source},
		EnemyID:        e.ID,
		Position:       e.Position,
		SizeMultiplier: multiplier,
		ScoreAwarded:   score,
	}
}

// PowerupEvent covers powerup spawns and pickups
type PowerupEvent struct {
	BaseEvent
	PowerupID entity.ID
	Kind      entity.PowerupKind
	Position  physics.Vector2D
}

// NewPowerupEvent creates a new powerup event
func NewPowerupEvent(eventType Type, source interface{}, p *entity.Powerup) *PowerupEvent {
	return &PowerupEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		PowerupID: p.ID,
		Kind:      p.Kind,
		Position:  p.Position,
	}
}

// ProjectileEvent is published once per volley
type ProjectileEvent struct {
	BaseEvent
	Owner entity.Owner
	Count int
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(source interface{}, owner entity.Owner, count int) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{EventType: ProjectileFired, Source: source},
		Owner:     owner,
		Count:     count,
	}
}

// PlayerDamageEvent records a hit on the player
type PlayerDamageEvent struct {
	BaseEvent
	Damage          int
	HealthRemaining int
}

// NewPlayerDamageEvent creates a new player damage event
func NewPlayerDamageEvent(source interface{}, damage, remaining int) *PlayerDamageEvent {
	return &PlayerDamageEvent{
		BaseEvent:       BaseEvent{EventType: PlayerDamaged, Source: source},
		Damage:          damage,
		HealthRemaining: remaining,
	}
}

// SessionEvent covers session lifecycle transitions. Tick counts ticks
// since the current run started.
type SessionEvent struct {
	BaseEvent
	Score int
	Tick  uint64
}

// NewSessionEvent creates a new session event
func NewSessionEvent(eventType Type, source interface{}, score int, tick uint64) *SessionEvent {
	return &SessionEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Score:     score,
		Tick:      tick,
	}
}
