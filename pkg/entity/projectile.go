// pkg/entity/projectile.go
package entity

import (
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Owner identifies which side fired a projectile
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ProjectileTuning holds projectile defaults
type ProjectileTuning struct {
	Lifetime    int     `json:"lifetime"` // ticks
	Damage      int     `json:"damage"`
	Length      float64 `json:"length"`
	PlayerSpeed float64 `json:"playerSpeed"`
}

// DefaultProjectileTuning returns the stock projectile constants
func DefaultProjectileTuning() ProjectileTuning {
	return ProjectileTuning{
		Lifetime:    300,
		Damage:      10,
		Length:      10,
		PlayerSpeed: 25,
	}
}

// Projectile moves in a straight line until its lifetime runs out
type Projectile struct {
	BaseEntity
	Owner    Owner
	Damage   int
	Lifetime int
	Length   float64
}

// NewProjectile creates a projectile with the default damage and lifetime
func NewProjectile(owner Owner, pos, vel physics.Vector2D, tuning ProjectileTuning) *Projectile {
	return &Projectile{
		BaseEntity: newBase(pos, vel, physics.RadiansToDegrees(vel.Angle())),
		Owner:      owner,
		Damage:     tuning.Damage,
		Lifetime:   tuning.Lifetime,
		Length:     tuning.Length,
	}
}

// Update moves the projectile one tick and decrements its lifetime.
// It returns whether the projectile is still alive; expired projectiles are
// marked inactive and left for the owner to prune.
func (p *Projectile) Update() bool {
	p.Position = p.Position.Add(p.Velocity)
	p.Lifetime--
	if p.Lifetime <= 0 {
		p.Active = false
		return false
	}
	return true
}
