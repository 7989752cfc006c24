package engine

import (
	"math"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// stubRand returns fixed draws.
type stubRand struct {
	f float64
	n int
}

func (r *stubRand) Float64() float64 { return r.f }

func (r *stubRand) IntN(n int) int { return r.n % n }

// quietConfig returns a config whose spawn timers never fire during a test.
func quietConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Spawn.EnemyInterval = 1 << 30
	cfg.Spawn.PowerupInterval = 1 << 30
	cfg.World.StarCount = 10
	return cfg
}

func newQuietGame() *Game {
	return NewGame(quietConfig(), WithRand(NewRand(7)))
}

func newTestWorld() *World {
	return &World{
		Player: entity.NewPlayer(physics.Vector2D{X: 0, Y: 0}, entity.DefaultPlayerTuning()),
	}
}

func playerShot(pos physics.Vector2D) *entity.Projectile {
	return entity.NewProjectile(entity.OwnerPlayer, pos, physics.Vector2D{}, entity.DefaultProjectileTuning())
}

func enemyShot(pos physics.Vector2D, damage int) *entity.Projectile {
	p := entity.NewProjectile(entity.OwnerEnemy, pos, physics.Vector2D{}, entity.DefaultProjectileTuning())
	p.Damage = damage
	return p
}
