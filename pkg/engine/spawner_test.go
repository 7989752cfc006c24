package engine

import (
	"math"
	"testing"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

func TestTimer_Advance(t *testing.T) {
	timer := Timer{Interval: 3}

	expected := []bool{false, false, true, false, false, true}
	for i, want := range expected {
		if got := timer.Advance(); got != want {
			t.Errorf("Advance() #%d = %v, expected %v", i+1, got, want)
		}
	}

	timer.Advance()
	timer.Reset()
	if timer.Elapsed != 0 {
		t.Errorf("Elapsed = %d after Reset, expected 0", timer.Elapsed)
	}
}

func TestSpawner_Intervals(t *testing.T) {
	s := NewSpawner(config.DefaultConfig(), NewRand(3))
	origin := physics.Vector2D{}

	enemies, powerups := 0, 0
	for tick := 1; tick <= 1800; tick++ {
		res := s.Advance(origin)
		if res.Enemy != nil {
			enemies++
			if tick%180 != 0 {
				t.Errorf("enemy spawned at tick %d, expected multiples of 180", tick)
			}
		}
		if res.Powerup != nil {
			powerups++
			if tick%600 != 0 {
				t.Errorf("powerup spawned at tick %d, expected multiples of 600", tick)
			}
		}
	}

	if enemies != 10 {
		t.Errorf("spawned %d enemies in 1800 ticks, expected 10", enemies)
	}
	if powerups != 3 {
		t.Errorf("spawned %d powerups in 1800 ticks, expected 3", powerups)
	}
}

func TestSpawner_EnemyAnnulusAndScaling(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewSpawner(cfg, NewRand(11))
	center := physics.Vector2D{X: 400, Y: 400}

	for i := 0; i < 500; i++ {
		enemy, multiplier := s.SpawnEnemy(center)

		d := enemy.Position.Distance(center)
		if d < 800-epsilon || d > 1200+epsilon {
			t.Fatalf("enemy spawned %v from player, expected [800, 1200]", d)
		}
		if multiplier < 0.7 || multiplier > 1.5 {
			t.Fatalf("multiplier = %v, expected [0.7, 1.5]", multiplier)
		}
		if expected := int(math.Floor(cfg.Enemy.BaseHealth * multiplier)); enemy.Health != expected {
			t.Fatalf("Health = %d, expected %d", enemy.Health, expected)
		}
		if !almostEqual(enemy.Size.X, 20*multiplier) || !almostEqual(enemy.Size.Y, 12*multiplier) {
			t.Fatalf("Size = %v, expected base size scaled by %v", enemy.Size, multiplier)
		}
	}
}

func TestSpawner_PowerupAnnulus(t *testing.T) {
	s := NewSpawner(config.DefaultConfig(), NewRand(5))
	center := physics.Vector2D{X: -50, Y: 75}

	for i := 0; i < 500; i++ {
		p := s.SpawnPowerup(center)
		if d := p.Position.Distance(center); d < 500-epsilon || d > 1000+epsilon {
			t.Fatalf("powerup spawned %v from player, expected [500, 1000]", d)
		}
	}
}

func TestSpawner_FixedDraws(t *testing.T) {
	// angle = 0.5 * 2π = π, radius = 800 + 0.5*400 = 1000
	s := NewSpawner(config.DefaultConfig(), &stubRand{f: 0.5})

	enemy, multiplier := s.SpawnEnemy(physics.Vector2D{})

	if !almostEqual(multiplier, 1.1) {
		t.Errorf("multiplier = %v, expected 1.1", multiplier)
	}
	if math.Abs(enemy.Position.X+1000) > 1e-6 || math.Abs(enemy.Position.Y) > 1e-6 {
		t.Errorf("Position = %v, expected (-1000, 0)", enemy.Position)
	}
}
