// pkg/engine/combat.go
package engine

import (
	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Resolver applies projectile hits and power-up pickups once per tick.
type Resolver struct {
	combat config.CombatConfig
}

// Kill records an enemy destroyed during resolution.
type Kill struct {
	Enemy        *entity.Enemy
	ScoreAwarded int
}

// Resolution summarises one resolver pass.
type Resolution struct {
	Hits         int
	Kills        []Kill
	PlayerHit    bool
	PlayerDamage int
	PlayerKilled bool
	Collected    []*entity.Powerup
	ScoreGained  int
}

// NewResolver creates a resolver with the given combat rules.
func NewResolver(combat config.CombatConfig) *Resolver {
	return &Resolver{combat: combat}
}

// Resolve runs the three passes in order: player shots against enemies,
// enemy shots against the player, then power-up pickups. Removed entities
// are marked inactive during the scan and compacted at the end.
func (r *Resolver) Resolve(w *World) Resolution {
	var res Resolution

	r.resolvePlayerShots(w, &res)
	r.resolveEnemyShots(w, &res)
	r.resolvePickups(w, &res)

	w.Score += res.ScoreGained
	w.Compact()
	return res
}

// resolvePlayerShots lets each player projectile hit at most one enemy.
// Newest entities are scanned first.
func (r *Resolver) resolvePlayerShots(w *World, res *Resolution) {
	for i := len(w.PlayerProjectiles) - 1; i >= 0; i-- {
		proj := w.PlayerProjectiles[i]
		if !proj.IsActive() {
			continue
		}
		for j := len(w.Enemies) - 1; j >= 0; j-- {
			enemy := w.Enemies[j]
			if !enemy.IsActive() || !physics.Within(proj.Position, enemy.Position, enemy.Size.X) {
				continue
			}
			r.applyHit(proj, enemy, res)
			break
		}
	}
}

// applyHit uses the configured player shot damage, not the projectile's own
// Damage field.
func (r *Resolver) applyHit(proj *entity.Projectile, enemy *entity.Enemy, res *Resolution) {
	damage := r.combat.PlayerShotDamage
	enemy.TakeDamage(damage)
	proj.Deactivate()

	res.Hits++
	res.ScoreGained += damage * r.combat.DamageBonus

	if enemy.Dead() {
		enemy.Deactivate()
		res.ScoreGained += r.combat.KillBonus
		res.Kills = append(res.Kills, Kill{
			Enemy:        enemy,
			ScoreAwarded: damage*r.combat.DamageBonus + r.combat.KillBonus,
		})
	}
}

// resolveEnemyShots applies at most one enemy projectile hit per tick.
func (r *Resolver) resolveEnemyShots(w *World, res *Resolution) {
	player := w.Player
	for i := len(w.EnemyProjectiles) - 1; i >= 0; i-- {
		proj := w.EnemyProjectiles[i]
		if !proj.IsActive() || !physics.Within(proj.Position, player.Position, player.Size.X) {
			continue
		}

		player.TakeDamage(proj.Damage)
		proj.Deactivate()

		res.PlayerHit = true
		res.PlayerDamage = proj.Damage
		res.PlayerKilled = player.Dead()
		return
	}
}

// resolvePickups collects every power-up in range of the player.
func (r *Resolver) resolvePickups(w *World, res *Resolution) {
	for _, p := range w.Powerups {
		if !p.IsActive() || !p.InPickupRange(w.Player.Position, w.Player.Size) {
			continue
		}
		p.Collect(w.Player)
		res.Collected = append(res.Collected, p)
	}
}
