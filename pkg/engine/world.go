// pkg/engine/world.go
package engine

import (
	"github.com/opd-ai/space-warriors/pkg/entity"
)

// World holds the live entities of one session. It is owned by a Game and
// mutated only from Tick.
type World struct {
	Player            *entity.Player
	Enemies           []*entity.Enemy
	PlayerProjectiles []*entity.Projectile
	EnemyProjectiles  []*entity.Projectile
	Powerups          []*entity.Powerup
	Stars             []entity.Star
	Score             int
}

// Compact drops every inactive entity from the live collections.
func (w *World) Compact() {
	w.Enemies = compact(w.Enemies)
	w.PlayerProjectiles = compact(w.PlayerProjectiles)
	w.EnemyProjectiles = compact(w.EnemyProjectiles)
	w.Powerups = compact(w.Powerups)
}

// clear empties the transient collections and the score.
func (w *World) clear() {
	w.Enemies = nil
	w.PlayerProjectiles = nil
	w.EnemyProjectiles = nil
	w.Powerups = nil
	w.Score = 0
}

// compact filters items in place, keeping active entities in order.
func compact[T entity.Entity](items []T) []T {
	kept := items[:0]
	for _, item := range items {
		if item.IsActive() {
			kept = append(kept, item)
		}
	}
	clear(items[len(kept):])
	return kept
}
