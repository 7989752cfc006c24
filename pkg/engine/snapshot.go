// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Snapshot is a read-only copy of the world after a completed tick. It shares
// no memory with the Game, so renderers may keep it across ticks.
type Snapshot struct {
	Tick              uint64
	Status            Status
	Player            PlayerState
	Enemies           []EnemyState
	PlayerProjectiles []ProjectileState
	EnemyProjectiles  []ProjectileState
	Powerups          []PowerupState
	Stars             []StarState
	Score             int
	Camera            physics.Vector2D
	Viewport          physics.Vector2D
	DamageFlash       int
	Quit              bool

	tripleShotDuration int
}

// PlayerState is the render view of the player
type PlayerState struct {
	Position        physics.Vector2D
	Velocity        physics.Vector2D
	Angle           float64 // degrees
	Size            physics.Vector2D
	Health          int
	MaxHealth       int
	TripleShot      entity.TripleShotState
	AngularVelocity float64
}

// EnemyState is the render view of an enemy
type EnemyState struct {
	ID        entity.ID
	Position  physics.Vector2D
	Velocity  physics.Vector2D
	Angle     float64
	Size      physics.Vector2D
	Health    int
	MaxHealth int
}

// ProjectileState is the render view of a projectile
type ProjectileState struct {
	ID       entity.ID
	Owner    entity.Owner
	Position physics.Vector2D
	Velocity physics.Vector2D
	Length   float64
	Lifetime int
}

// PowerupState is the render view of a power-up
type PowerupState struct {
	ID       entity.ID
	Kind     entity.PowerupKind
	Position physics.Vector2D
	Size     float64
}

// StarState is a background star
type StarState struct {
	Position physics.Vector2D
	Radius   int
}

// Snapshot copies the current world state.
func (g *Game) Snapshot() *Snapshot {
	w := g.World
	p := w.Player

	snap := &Snapshot{
		Tick:   g.CurrentTick,
		Status: g.Status,
		Player: PlayerState{
			Position:        p.Position,
			Velocity:        p.Velocity,
			Angle:           p.Angle,
			Size:            p.Size,
			Health:          p.Health,
			MaxHealth:       p.MaxHealth,
			TripleShot:      p.TripleShot,
			AngularVelocity: p.AngularVelocity,
		},
		Enemies:           make([]EnemyState, 0, len(w.Enemies)),
		PlayerProjectiles: projectileStates(w.PlayerProjectiles),
		EnemyProjectiles:  projectileStates(w.EnemyProjectiles),
		Powerups:          make([]PowerupState, 0, len(w.Powerups)),
		Stars:             make([]StarState, len(w.Stars)),
		Score:             w.Score,
		Camera:            g.Camera,
		Viewport:          physics.Vector2D{X: g.Config.Viewport.Width, Y: g.Config.Viewport.Height},
		DamageFlash:       g.DamageFlash,
		Quit:              g.QuitRequested,

		tripleShotDuration: g.Config.Powerup.TripleShotDuration,
	}

	for _, e := range w.Enemies {
		snap.Enemies = append(snap.Enemies, EnemyState{
			ID:        e.ID,
			Position:  e.Position,
			Velocity:  e.Velocity,
			Angle:     e.Angle,
			Size:      e.Size,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
		})
	}
	for _, pu := range w.Powerups {
		snap.Powerups = append(snap.Powerups, PowerupState{
			ID:       pu.ID,
			Kind:     pu.Kind,
			Position: pu.Position,
			Size:     pu.Size,
		})
	}
	for i, s := range w.Stars {
		snap.Stars[i] = StarState{Position: s.Position, Radius: s.Radius}
	}

	return snap
}

func projectileStates(projectiles []*entity.Projectile) []ProjectileState {
	states := make([]ProjectileState, 0, len(projectiles))
	for _, p := range projectiles {
		states = append(states, ProjectileState{
			ID:       p.ID,
			Owner:    p.Owner,
			Position: p.Position,
			Velocity: p.Velocity,
			Length:   p.Length,
			Lifetime: p.Lifetime,
		})
	}
	return states
}

// GameOver reports whether the session is in its terminal state.
func (s *Snapshot) GameOver() bool {
	return s.Status == StatusGameOver
}

// ToScreen converts a world position to viewport coordinates.
func (s *Snapshot) ToScreen(world physics.Vector2D) physics.Vector2D {
	return world.Sub(s.Camera)
}

// HealthRatio returns player health as a fraction of max health.
func (s *Snapshot) HealthRatio() float64 {
	if s.Player.MaxHealth <= 0 {
		return 0
	}
	return float64(s.Player.Health) / float64(s.Player.MaxHealth)
}

// TripleShotRatio returns the fraction of triple shot time left, or 0.
func (s *Snapshot) TripleShotRatio() float64 {
	if !s.Player.TripleShot.Active || s.tripleShotDuration <= 0 {
		return 0
	}
	return min(float64(s.Player.TripleShot.RemainingTicks)/float64(s.tripleShotDuration), 1)
}

// Minimap projects a world position onto a minimap of the given scale
// centred on the player.
func (s *Snapshot) Minimap(world physics.Vector2D, scale float64) physics.Vector2D {
	return world.Sub(s.Player.Position).Scale(scale)
}
