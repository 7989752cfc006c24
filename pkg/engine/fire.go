// pkg/engine/fire.go
package engine

import (
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// volleyOffsets returns the angular offsets in degrees of one fire action.
func (g *Game) volleyOffsets() []float64 {
	if g.World.Player.TripleShot.Active {
		spread := g.Config.Combat.TripleShotSpread
		return []float64{-spread, 0, spread}
	}
	return []float64{0}
}

// fire emits player projectiles from the muzzle. Each inherits the player's
// velocity on top of the fixed projectile speed.
func (g *Game) fire() []*entity.Projectile {
	player := g.World.Player
	muzzle := player.TipPosition()
	speed := g.Config.Projectile.PlayerSpeed

	offsets := g.volleyOffsets()
	volley := make([]*entity.Projectile, 0, len(offsets))
	for _, offset := range offsets {
		velocity := physics.FromDegrees(player.Angle+offset, speed).Add(player.Velocity)
		volley = append(volley, entity.NewProjectile(entity.OwnerPlayer, muzzle, velocity, g.Config.Projectile))
	}

	g.World.PlayerProjectiles = append(g.World.PlayerProjectiles, volley...)
	return volley
}
