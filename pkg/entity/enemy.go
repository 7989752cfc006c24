// pkg/entity/enemy.go
package entity

import (
	"math"

	"github.com/opd-ai/space-warriors/pkg/physics"
)

// EnemyTuning holds the enemy constants. Base size and health are scaled by
// the spawn multiplier.
type EnemyTuning struct {
	MaxSpeed         float64 `json:"maxSpeed"`
	Deceleration     float64 `json:"deceleration"`
	SeekAcceleration float64 `json:"seekAcceleration"`
	VisionRange      float64 `json:"visionRange"`
	ProjectileSpeed  float64 `json:"projectileSpeed"`
	ShotSpread       float64 `json:"shotSpread"` // radians, half-width
	BaseWidth        float64 `json:"baseWidth"`
	BaseHeight       float64 `json:"baseHeight"`
	BaseHealth       float64 `json:"baseHealth"`
	DamageScale      float64 `json:"damageScale"`
}

// DefaultEnemyTuning returns the stock enemy constants
func DefaultEnemyTuning() EnemyTuning {
	return EnemyTuning{
		MaxSpeed:         2.0,
		Deceleration:     0.95,
		SeekAcceleration: 0.03,
		VisionRange:      800,
		ProjectileSpeed:  8,
		ShotSpread:       0.5,
		BaseWidth:        20,
		BaseHeight:       12,
		BaseHealth:       30,
		DamageScale:      8,
	}
}

// Enemy is a hostile ship that drifts toward the player and shoots at it
type Enemy struct {
	BaseEntity
	Size            physics.Vector2D
	Health          int
	MaxHealth       int
	Damage          int
	ProjectileSpeed float64
	VisionRange     float64

	tuning EnemyTuning
}

// DamageForSize couples damage to hull size: floor(scale * (w+h) / 32).
func DamageForSize(size physics.Vector2D, scale float64) int {
	return int(math.Floor(scale * (size.X + size.Y) / 32))
}

// NewEnemy creates an enemy at pos with its size and health scaled by multiplier
func NewEnemy(pos physics.Vector2D, multiplier float64, tuning EnemyTuning) *Enemy {
	size := physics.Vector2D{X: tuning.BaseWidth, Y: tuning.BaseHeight}.Scale(multiplier)
	health := int(math.Floor(tuning.BaseHealth * multiplier))
	return &Enemy{
		BaseEntity:      newBase(pos, physics.Vector2D{}, 0),
		Size:            size,
		Health:          health,
		MaxHealth:       health,
		Damage:          DamageForSize(size, tuning.DamageScale),
		ProjectileSpeed: tuning.ProjectileSpeed,
		VisionRange:     tuning.VisionRange,
		tuning:          tuning,
	}
}

// Update steers the enemy toward target and integrates one tick of motion.
func (e *Enemy) Update(target physics.Vector2D) {
	direction := target.Sub(e.Position)
	if !direction.IsZero() {
		e.Velocity = e.Velocity.Add(direction.Normalize().Scale(e.tuning.SeekAcceleration))
		e.Angle = physics.RadiansToDegrees(direction.Angle())
	}

	e.Velocity = physics.Damp(e.Velocity, e.tuning.Deceleration)
	e.Velocity = physics.ClampLength(e.Velocity, e.tuning.MaxSpeed)
	e.Position = e.Position.Add(e.Velocity)
}

// CanSeePlayer reports whether target is within vision range (inclusive)
func (e *Enemy) CanSeePlayer(target physics.Vector2D) bool {
	return e.Position.Distance(target) <= e.VisionRange
}

// Shoot fires at target with a uniform random spread. It returns nil when the
// target is out of sight or exactly on top of the enemy.
func (e *Enemy) Shoot(target physics.Vector2D, rng Rand, tuning ProjectileTuning) *Projectile {
	if !e.CanSeePlayer(target) {
		return nil
	}
	direction := target.Sub(e.Position)
	if direction.IsZero() {
		return nil
	}

	spread := (rng.Float64()*2 - 1) * e.tuning.ShotSpread
	velocity := direction.Normalize().RotateRadians(spread).Scale(e.ProjectileSpeed)

	proj := NewProjectile(OwnerEnemy, e.Position, velocity, tuning)
	proj.Damage = e.Damage
	return proj
}

// TakeDamage subtracts amount from health, flooring at zero
func (e *Enemy) TakeDamage(amount int) {
	e.Health = max(e.Health-amount, 0)
}

// Dead reports whether health has reached zero
func (e *Enemy) Dead() bool {
	return e.Health <= 0
}
