// pkg/entity/powerup.go
package entity

import (
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// PowerupKind tags the effect a power-up applies on pickup
type PowerupKind string

// TripleShot makes each fire action emit three projectiles
const TripleShot PowerupKind = "triple_shot"

// PowerupTuning holds power-up constants
type PowerupTuning struct {
	Size               float64 `json:"size"`
	TripleShotDuration int     `json:"tripleShotDuration"` // ticks
}

// DefaultPowerupTuning returns the stock power-up constants
func DefaultPowerupTuning() PowerupTuning {
	return PowerupTuning{
		Size:               12,
		TripleShotDuration: 600,
	}
}

// Powerup is a collectible floating in the world
type Powerup struct {
	BaseEntity
	Kind      PowerupKind
	Size      float64
	Collected bool

	duration int
}

// NewPowerup creates a power-up of kind at pos
func NewPowerup(kind PowerupKind, pos physics.Vector2D, tuning PowerupTuning) *Powerup {
	return &Powerup{
		BaseEntity: newBase(pos, physics.Vector2D{}, 0),
		Kind:       kind,
		Size:       tuning.Size,
		duration:   tuning.TripleShotDuration,
	}
}

// InPickupRange reports whether a player of playerSize at playerPos touches the power-up
func (p *Powerup) InPickupRange(playerPos, playerSize physics.Vector2D) bool {
	return physics.Within(p.Position, playerPos, p.Size+playerSize.X/2)
}

// Collect marks the power-up collected and applies its effect to player.
// Unknown kinds are collected without effect; the return value reports
// whether an effect was applied.
func (p *Powerup) Collect(player *Player) bool {
	p.Collected = true
	p.Active = false

	switch p.Kind {
	case TripleShot:
		player.ActivateTripleShot(p.duration)
		return true
	default:
		return false
	}
}
