// pkg/engine/spawner.go
package engine

import (
	"math"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Timer counts ticks toward a fixed interval.
type Timer struct {
	Interval int
	Elapsed  int
}

// Advance counts one tick. It reports true and restarts from zero when the
// interval has been reached.
func (t *Timer) Advance() bool {
	t.Elapsed++
	if t.Elapsed >= t.Interval {
		t.Elapsed = 0
		return true
	}
	return false
}

// Reset restarts the count.
func (t *Timer) Reset() {
	t.Elapsed = 0
}

// Spawner places enemies and power-ups on annuli around the player.
type Spawner struct {
	EnemyTimer   Timer
	PowerupTimer Timer

	spawn   config.SpawnConfig
	enemy   entity.EnemyTuning
	powerup entity.PowerupTuning
	rng     entity.Rand
}

// SpawnResult lists what one tick of the spawner produced.
type SpawnResult struct {
	Enemy          *entity.Enemy
	SizeMultiplier float64
	Powerup        *entity.Powerup
}

// NewSpawner creates a spawner with both timers at zero.
func NewSpawner(cfg *config.GameConfig, rng entity.Rand) *Spawner {
	return &Spawner{
		EnemyTimer:   Timer{Interval: cfg.Spawn.EnemyInterval},
		PowerupTimer: Timer{Interval: cfg.Spawn.PowerupInterval},
		spawn:        cfg.Spawn,
		enemy:        cfg.Enemy,
		powerup:      cfg.Powerup,
		rng:          rng,
	}
}

// Advance moves both timers one tick and spawns whatever came due.
func (s *Spawner) Advance(playerPos physics.Vector2D) SpawnResult {
	var result SpawnResult
	if s.EnemyTimer.Advance() {
		result.Enemy, result.SizeMultiplier = s.SpawnEnemy(playerPos)
	}
	if s.PowerupTimer.Advance() {
		result.Powerup = s.SpawnPowerup(playerPos)
	}
	return result
}

// SpawnEnemy creates an enemy on the enemy annulus with a random size
// multiplier, which it also returns.
func (s *Spawner) SpawnEnemy(playerPos physics.Vector2D) (*entity.Enemy, float64) {
	pos := s.annulusPoint(playerPos, s.spawn.EnemyMinDistance, s.spawn.EnemyMaxDistance)
	multiplier := s.uniform(s.spawn.SizeMultiplierMin, s.spawn.SizeMultiplierMax)
	return entity.NewEnemy(pos, multiplier, s.enemy), multiplier
}

// SpawnPowerup creates a triple-shot power-up on the power-up annulus.
func (s *Spawner) SpawnPowerup(playerPos physics.Vector2D) *entity.Powerup {
	pos := s.annulusPoint(playerPos, s.spawn.PowerupMinDistance, s.spawn.PowerupMaxDistance)
	return entity.NewPowerup(entity.TripleShot, pos, s.powerup)
}

// Reset zeroes both timers.
func (s *Spawner) Reset() {
	s.EnemyTimer.Reset()
	s.PowerupTimer.Reset()
}

func (s *Spawner) annulusPoint(center physics.Vector2D, minRadius, maxRadius float64) physics.Vector2D {
	angle := s.rng.Float64() * 2 * math.Pi
	return physics.AnnulusPoint(center, angle, s.uniform(minRadius, maxRadius))
}

func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
