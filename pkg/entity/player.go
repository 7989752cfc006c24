// pkg/entity/player.go
package entity

import (
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// PlayerTuning holds the movement and body constants of the player ship.
type PlayerTuning struct {
	MaxSpeed            float64 `json:"maxSpeed"`
	Deceleration        float64 `json:"deceleration"`
	MaxAngularVelocity  float64 `json:"maxAngularVelocity"`
	AngularDeceleration float64 `json:"angularDeceleration"`
	AngularAcceleration float64 `json:"angularAcceleration"`
	MaxHealth           int     `json:"maxHealth"`
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
}

// DefaultPlayerTuning returns the stock player constants
func DefaultPlayerTuning() PlayerTuning {
	return PlayerTuning{
		MaxSpeed:            8.0,
		Deceleration:        0.98,
		MaxAngularVelocity:  4.0,
		AngularDeceleration: 0.92,
		AngularAcceleration: 0.3,
		MaxHealth:           100,
		Width:               64,
		Height:              60,
	}
}

// TripleShotState tracks the triple-shot power-up on the player
type TripleShotState struct {
	Active         bool
	RemainingTicks int
}

// Player is the single ship controlled by input intents
type Player struct {
	BaseEntity
	AngularVelocity float64
	Health          int
	MaxHealth       int
	Size            physics.Vector2D
	TripleShot      TripleShotState

	tuning PlayerTuning
}

// NewPlayer creates a player at pos facing angle 0 with full health
func NewPlayer(pos physics.Vector2D, tuning PlayerTuning) *Player {
	return &Player{
		BaseEntity: newBase(pos, physics.Vector2D{}, 0),
		Health:     tuning.MaxHealth,
		MaxHealth:  tuning.MaxHealth,
		Size:       physics.Vector2D{X: tuning.Width, Y: tuning.Height},
		tuning:     tuning,
	}
}

// Tuning returns the constants the player was created with
func (p *Player) Tuning() PlayerTuning {
	return p.tuning
}

// Rotate accumulates delta into angular velocity, scaled by the angular
// acceleration and clamped to the maximum angular velocity.
func (p *Player) Rotate(delta float64) {
	p.AngularVelocity = physics.ClampScalar(
		p.AngularVelocity+delta*p.tuning.AngularAcceleration,
		p.tuning.MaxAngularVelocity,
	)
}

// Accelerate adds thrust along the current facing and clamps speed to MaxSpeed.
// Negative thrust accelerates backwards.
func (p *Player) Accelerate(thrust float64) {
	p.Velocity = physics.ClampLength(
		p.Velocity.Add(p.Facing().Scale(thrust)),
		p.tuning.MaxSpeed,
	)
}

// Update advances the player by one tick.
func (p *Player) Update() {
	p.Velocity = physics.Damp(p.Velocity, p.tuning.Deceleration)
	p.AngularVelocity = physics.SnapScalar(p.AngularVelocity * p.tuning.AngularDeceleration)

	p.Angle += p.AngularVelocity
	p.Position = p.Position.Add(p.Velocity)

	if p.TripleShot.Active {
		p.TripleShot.RemainingTicks--
		if p.TripleShot.RemainingTicks <= 0 {
			p.TripleShot = TripleShotState{}
		}
	}
}

// TakeDamage subtracts amount from health, flooring at zero
func (p *Player) TakeDamage(amount int) {
	p.Health = max(p.Health-amount, 0)
}

// Dead reports whether health has reached zero
func (p *Player) Dead() bool {
	return p.Health <= 0
}

// ActivateTripleShot turns on triple shot for ticks ticks, replacing any remaining time
func (p *Player) ActivateTripleShot(ticks int) {
	p.TripleShot = TripleShotState{Active: true, RemainingTicks: ticks}
}

// Facing returns the unit vector along the player's angle
func (p *Player) Facing() physics.Vector2D {
	return physics.FromDegrees(p.Angle, 1)
}

// TipDistance is how far ahead of the centre projectiles leave the hull
func (p *Player) TipDistance() float64 {
	return p.Size.X/4 + 2
}

// TipPosition returns the muzzle point in world coordinates
func (p *Player) TipPosition() physics.Vector2D {
	return p.Position.Add(p.Facing().Scale(p.TipDistance()))
}
