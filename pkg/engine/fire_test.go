package engine

import (
	"math"
	"testing"

	"github.com/opd-ai/space-warriors/pkg/input"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

func TestFire_SingleShot(t *testing.T) {
	g := newQuietGame()
	player := g.World.Player
	player.Angle = 90

	volley := g.fire()

	if len(volley) != 1 {
		t.Fatalf("fire() emitted %d projectiles, expected 1", len(volley))
	}
	expectedMuzzle := player.Position.Add(physics.Vector2D{X: 0, Y: 18})
	if volley[0].Position.Distance(expectedMuzzle) > 1e-9 {
		t.Errorf("muzzle = %v, expected %v", volley[0].Position, expectedMuzzle)
	}
	if v := volley[0].Velocity; math.Abs(v.X) > 1e-9 || math.Abs(v.Y-25) > 1e-9 {
		t.Errorf("velocity = %v, expected (0, 25)", v)
	}
	if len(g.World.PlayerProjectiles) != 1 {
		t.Errorf("len(PlayerProjectiles) = %d, expected 1", len(g.World.PlayerProjectiles))
	}
}

func TestFire_TripleShotSpread(t *testing.T) {
	g := newQuietGame()
	g.World.Player.ActivateTripleShot(600)

	volley := g.fire()

	if len(volley) != 3 {
		t.Fatalf("fire() emitted %d projectiles, expected 3", len(volley))
	}
	for i, expected := range []float64{-20, 0, 20} {
		got := physics.RadiansToDegrees(volley[i].Velocity.Angle())
		if math.Abs(got-expected) > 1e-9 {
			t.Errorf("projectile %d angle = %v, expected %v", i, got, expected)
		}
		if volley[i].Position != volley[0].Position {
			t.Errorf("projectile %d should leave from the shared muzzle", i)
		}
	}
}

func TestFire_InheritsPlayerVelocity(t *testing.T) {
	g := newQuietGame()
	g.World.Player.Velocity = physics.Vector2D{X: 3, Y: -2}

	volley := g.fire()

	expected := physics.Vector2D{X: 28, Y: -2}
	if volley[0].Velocity.Distance(expected) > 1e-9 {
		t.Errorf("velocity = %v, expected %v", volley[0].Velocity, expected)
	}
}

func TestFire_SuppressedWhileGameOver(t *testing.T) {
	g := newQuietGame()
	g.Status = StatusGameOver

	snap := g.Tick(input.Intents{Fire: true})

	if len(snap.PlayerProjectiles) != 0 {
		t.Errorf("fired %d projectiles while game over, expected 0", len(snap.PlayerProjectiles))
	}
}
