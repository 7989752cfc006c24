package engine

import (
	"testing"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/event"
	"github.com/opd-ai/space-warriors/pkg/input"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

func TestNewGame_InitialState(t *testing.T) {
	g := NewGame(nil, WithRand(NewRand(1)))

	if g.Status != StatusRunning {
		t.Errorf("Status = %v, expected running", g.Status)
	}
	p := g.World.Player
	if p.Position != (physics.Vector2D{X: 400, Y: 400}) {
		t.Errorf("Player.Position = %v, expected (400, 400)", p.Position)
	}
	if p.Health != 100 || p.MaxHealth != 100 {
		t.Errorf("Player health = %d/%d, expected 100/100", p.Health, p.MaxHealth)
	}
	if len(g.World.Stars) != 200 {
		t.Errorf("len(Stars) = %d, expected 200", len(g.World.Stars))
	}
	if g.Camera != (physics.Vector2D{X: -400, Y: -50}) {
		t.Errorf("Camera = %v, expected (-400, -50)", g.Camera)
	}
}

func TestTick_CameraFollowsPlayer(t *testing.T) {
	g := newQuietGame()

	var snap *Snapshot
	for i := 0; i < 30; i++ {
		snap = g.Tick(input.Intents{ThrustForward: true})
	}

	expected := snap.Player.Position.Sub(physics.Vector2D{X: 800, Y: 450})
	if snap.Camera != expected {
		t.Errorf("Camera = %v, expected %v", snap.Camera, expected)
	}
	if snap.Player.Position.X <= 400 {
		t.Errorf("player did not move forward: %v", snap.Player.Position)
	}
}

func TestTick_HeldIntents(t *testing.T) {
	tests := []struct {
		name   string
		in     input.Intents
		verify func(t *testing.T, s *Snapshot)
	}{
		{"rotate_left", input.Intents{RotateLeft: true}, func(t *testing.T, s *Snapshot) {
			if s.Player.Angle >= 0 {
				t.Errorf("Angle = %v, expected negative", s.Player.Angle)
			}
		}},
		{"rotate_right", input.Intents{RotateRight: true}, func(t *testing.T, s *Snapshot) {
			if s.Player.Angle <= 0 {
				t.Errorf("Angle = %v, expected positive", s.Player.Angle)
			}
		}},
		{"thrust_backward", input.Intents{ThrustBackward: true}, func(t *testing.T, s *Snapshot) {
			if s.Player.Velocity.X >= 0 {
				t.Errorf("Velocity = %v, expected to move backwards", s.Player.Velocity)
			}
		}},
		{"max_speed", input.Intents{ThrustForward: true}, func(t *testing.T, s *Snapshot) {
			if s.Player.Velocity.Length() > 8+epsilon {
				t.Errorf("speed = %v, expected <= 8", s.Player.Velocity.Length())
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newQuietGame()
			var snap *Snapshot
			for i := 0; i < 200; i++ {
				snap = g.Tick(tt.in)
			}
			tt.verify(t, snap)
		})
	}
}

func TestTick_FireAddsProjectiles(t *testing.T) {
	g := newQuietGame()

	snap := g.Tick(input.Intents{Fire: true})
	if len(snap.PlayerProjectiles) != 1 {
		t.Fatalf("len(PlayerProjectiles) = %d, expected 1", len(snap.PlayerProjectiles))
	}

	g.World.Player.ActivateTripleShot(600)
	snap = g.Tick(input.Intents{Fire: true})
	if len(snap.PlayerProjectiles) != 4 {
		t.Errorf("len(PlayerProjectiles) = %d, expected 4 after a triple volley", len(snap.PlayerProjectiles))
	}
}

func TestTick_ProjectilePrunedWhenLifetimeEnds(t *testing.T) {
	g := newQuietGame()

	snap := g.Tick(input.Intents{Fire: true})
	if snap.PlayerProjectiles[0].Lifetime != 299 {
		t.Fatalf("Lifetime = %d after first tick, expected 299", snap.PlayerProjectiles[0].Lifetime)
	}

	for i := 2; i < 300; i++ {
		snap = g.Tick(input.Intents{})
	}
	if len(snap.PlayerProjectiles) != 1 || snap.PlayerProjectiles[0].Lifetime != 1 {
		t.Fatalf("after 299 ticks expected one projectile with lifetime 1, got %+v", snap.PlayerProjectiles)
	}

	snap = g.Tick(input.Intents{})
	if len(snap.PlayerProjectiles) != 0 {
		t.Errorf("projectile should be pruned at tick 300, still have %d", len(snap.PlayerProjectiles))
	}
}

func TestTick_PowerupPickupAndExpiry(t *testing.T) {
	g := newQuietGame()
	g.World.Powerups = append(g.World.Powerups,
		entity.NewPowerup(entity.TripleShot, g.World.Player.Position, g.Config.Powerup))

	snap := g.Tick(input.Intents{})
	if !snap.Player.TripleShot.Active || snap.Player.TripleShot.RemainingTicks != 600 {
		t.Fatalf("TripleShot = %+v, expected active with 600 ticks", snap.Player.TripleShot)
	}
	if len(snap.Powerups) != 0 {
		t.Errorf("len(Powerups) = %d, expected 0 after pickup", len(snap.Powerups))
	}
	if snap.TripleShotRatio() != 1 {
		t.Errorf("TripleShotRatio() = %v, expected 1", snap.TripleShotRatio())
	}

	for i := 0; i < 599; i++ {
		snap = g.Tick(input.Intents{})
	}
	if !snap.Player.TripleShot.Active {
		t.Fatal("triple shot expired early")
	}

	snap = g.Tick(input.Intents{})
	if snap.Player.TripleShot.Active {
		t.Error("triple shot still active after 600 ticks")
	}
}

func TestTick_DamageFlashAndGameOver(t *testing.T) {
	g := newQuietGame()
	bus := g.EventBus
	var gameOvers int
	bus.Subscribe(event.GameOver, func(event.Event) { gameOvers++ })

	g.World.EnemyProjectiles = append(g.World.EnemyProjectiles, enemyShot(g.World.Player.Position, 30))
	snap := g.Tick(input.Intents{})

	if snap.Player.Health != 70 {
		t.Errorf("Health = %d, expected 70", snap.Player.Health)
	}
	if snap.DamageFlash != 10 {
		t.Errorf("DamageFlash = %d, expected 10", snap.DamageFlash)
	}
	if snap = g.Tick(input.Intents{}); snap.DamageFlash != 9 {
		t.Errorf("DamageFlash = %d on the next tick, expected 9", snap.DamageFlash)
	}

	g.World.Player.Health = 5
	g.World.EnemyProjectiles = append(g.World.EnemyProjectiles, enemyShot(g.World.Player.Position, 8))
	snap = g.Tick(input.Intents{})

	if !snap.GameOver() {
		t.Fatal("expected game over after lethal hit")
	}
	if snap.Player.Health != 0 {
		t.Errorf("Health = %d, expected 0", snap.Player.Health)
	}
	if gameOvers != 1 {
		t.Errorf("GameOver published %d times, expected 1", gameOvers)
	}

	frozen := snap.Player.Position
	snap = g.Tick(input.Intents{ThrustForward: true, Fire: true})
	if snap.Player.Position != frozen || len(snap.PlayerProjectiles) != 0 {
		t.Error("simulation advanced while game over")
	}
}

func TestTick_RestartFromGameOver(t *testing.T) {
	g := newQuietGame()
	g.World.Score = 250
	g.World.Enemies = append(g.World.Enemies, entity.NewEnemy(physics.Vector2D{X: 5000}, 1, g.Config.Enemy))
	g.World.Powerups = append(g.World.Powerups, entity.NewPowerup(entity.TripleShot, physics.Vector2D{X: -5000}, g.Config.Powerup))
	g.World.Player.Health = 0
	g.Status = StatusGameOver
	stars := g.World.Stars

	snap := g.Tick(input.Intents{Restart: true})

	if snap.Status != StatusRunning {
		t.Errorf("Status = %v, expected running", snap.Status)
	}
	if snap.Score != 0 {
		t.Errorf("Score = %d, expected 0", snap.Score)
	}
	if len(snap.Enemies)+len(snap.Powerups)+len(snap.PlayerProjectiles)+len(snap.EnemyProjectiles) != 0 {
		t.Error("transient collections not cleared on restart")
	}
	if snap.Player.Health != snap.Player.MaxHealth {
		t.Errorf("Health = %d, expected %d", snap.Player.Health, snap.Player.MaxHealth)
	}
	if &g.World.Stars[0] != &stars[0] {
		t.Error("star field should survive a restart")
	}
}

func TestTick_RestartIgnoredWhileRunning(t *testing.T) {
	g := newQuietGame()
	g.World.Score = 40

	snap := g.Tick(input.Intents{Restart: true})

	if snap.Score != 40 {
		t.Errorf("Score = %d, expected restart to be ignored", snap.Score)
	}
}

func TestTick_Quit(t *testing.T) {
	g := newQuietGame()
	var quits int
	g.EventBus.Subscribe(event.QuitRequested, func(event.Event) { quits++ })

	snap := g.Tick(input.Intents{Quit: true})
	if !snap.Quit || !g.Done() {
		t.Error("quit intent not recorded")
	}

	g.Tick(input.Intents{Quit: true})
	if quits != 1 {
		t.Errorf("QuitRequested published %d times, expected 1", quits)
	}
}

func TestTick_EnemiesSpawnAndApproach(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawn.EnemyInterval = 180
	g := NewGame(cfg, WithRand(NewRand(99)))

	var spawned int
	g.EventBus.Subscribe(event.EnemySpawned, func(event.Event) { spawned++ })

	var snap *Snapshot
	for i := 0; i < 180; i++ {
		snap = g.Tick(input.Intents{})
	}
	if len(snap.Enemies) != 1 || spawned != 1 {
		t.Fatalf("expected one enemy after 180 ticks, got %d (events %d)", len(snap.Enemies), spawned)
	}

	start := snap.Enemies[0].Position.Distance(snap.Player.Position)
	for i := 0; i < 60; i++ {
		snap = g.Tick(input.Intents{})
	}
	if d := snap.Enemies[0].Position.Distance(snap.Player.Position); d >= start {
		t.Errorf("enemy did not approach: %v -> %v", start, d)
	}
}

func TestTick_ScoreNeverDecreases(t *testing.T) {
	cfg := config.DefaultConfig()
	g := NewGame(cfg, WithRand(NewRand(2024)))

	last := 0
	for i := 0; i < 3000; i++ {
		snap := g.Tick(input.Intents{RotateRight: i%3 == 0, Fire: i%10 == 0})
		if snap.GameOver() {
			break
		}
		if snap.Score < last {
			t.Fatalf("score dropped from %d to %d at tick %d", last, snap.Score, i)
		}
		last = snap.Score
		if snap.Player.Health < 0 || snap.Player.Health > snap.Player.MaxHealth {
			t.Fatalf("player health %d out of range", snap.Player.Health)
		}
		for _, e := range snap.Enemies {
			if e.Health <= 0 || e.Health > e.MaxHealth {
				t.Fatalf("live enemy health %d out of range", e.Health)
			}
		}
	}
}

func TestTick_DeterministicForSeed(t *testing.T) {
	run := func() *Snapshot {
		g := NewGame(config.DefaultConfig(), WithRand(NewRand(42)))
		var snap *Snapshot
		for i := 0; i < 1200; i++ {
			snap = g.Tick(input.Intents{RotateLeft: i%2 == 0, Fire: i%15 == 0})
		}
		return snap
	}

	a, b := run(), run()
	if a.Score != b.Score || len(a.Enemies) != len(b.Enemies) || a.Player.Position != b.Player.Position {
		t.Fatalf("runs diverged: score %d/%d enemies %d/%d", a.Score, b.Score, len(a.Enemies), len(b.Enemies))
	}
	for i := range a.Enemies {
		if a.Enemies[i].Position != b.Enemies[i].Position {
			t.Errorf("enemy %d position %v != %v", i, a.Enemies[i].Position, b.Enemies[i].Position)
		}
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	g := newQuietGame()
	g.World.Enemies = append(g.World.Enemies, entity.NewEnemy(physics.Vector2D{X: 3000}, 1, g.Config.Enemy))

	snap := g.Snapshot()
	snap.Enemies[0].Health = -1
	snap.Stars[0].Radius = 99

	if g.World.Enemies[0].Health == -1 || g.World.Stars[0].Radius == 99 {
		t.Error("mutating the snapshot changed the world")
	}

	g.World.Enemies[0].Position = physics.Vector2D{X: 1, Y: 1}
	if snap.Enemies[0].Position == g.World.Enemies[0].Position {
		t.Error("mutating the world changed the snapshot")
	}
}

func TestSnapshot_Helpers(t *testing.T) {
	g := newQuietGame()
	g.World.Player.Health = 25
	snap := g.Snapshot()

	if snap.HealthRatio() != 0.25 {
		t.Errorf("HealthRatio() = %v, expected 0.25", snap.HealthRatio())
	}
	if snap.TripleShotRatio() != 0 {
		t.Errorf("TripleShotRatio() = %v, expected 0", snap.TripleShotRatio())
	}
	screen := snap.ToScreen(snap.Player.Position)
	if screen != (physics.Vector2D{X: 800, Y: 450}) {
		t.Errorf("ToScreen(player) = %v, expected viewport centre", screen)
	}
	blip := snap.Minimap(snap.Player.Position.Add(physics.Vector2D{X: 1000}), 0.02)
	if !almostEqual(blip.X, 20) || blip.Y != 0 {
		t.Errorf("Minimap() = %v, expected (20, 0)", blip)
	}
}
