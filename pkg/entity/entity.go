// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/space-warriors/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a process-wide unique entity ID
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Entity is the base interface for all live game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	IsActive() bool
}

// Rand is the random source entities draw from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// BaseEntity contains common state for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Angle    float64 // degrees
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// IsActive reports whether the entity is still live. Inactive entities are
// removed by the owner at the end of the tick.
func (e *BaseEntity) IsActive() bool {
	return e.Active
}

// Deactivate marks the entity for removal
func (e *BaseEntity) Deactivate() {
	e.Active = false
}

func newBase(pos, vel physics.Vector2D, angle float64) BaseEntity {
	return BaseEntity{
		ID:       GenerateID(),
		Position: pos,
		Velocity: vel,
		Angle:    angle,
		Active:   true,
	}
}
