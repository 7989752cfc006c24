// pkg/engine/game.go
package engine

import (
	"context"
	"math/rand/v2"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/event"
	"github.com/opd-ai/space-warriors/pkg/input"
	"github.com/opd-ai/space-warriors/pkg/logging"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Status is the session state machine
type Status int

const (
	StatusRunning Status = iota
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game owns one session of the simulation. It is advanced only through Tick
// and is not safe for concurrent use; frontends read the returned snapshots.
type Game struct {
	Config        *config.GameConfig
	World         *World
	Status        Status
	Camera        physics.Vector2D
	DamageFlash   int    // ticks of red flash left for the renderer
	CurrentTick   uint64 // ticks processed since creation
	RunTicks      uint64 // Running ticks since the last (re)start
	QuitRequested bool
	EventBus      *event.Bus

	spawner  *Spawner
	resolver *Resolver
	rng      entity.Rand
	logger   *logging.Logger
	ctx      context.Context
}

// Option customises a Game at construction
type Option func(*Game)

// WithRand injects the random source used for spawning and enemy fire.
func WithRand(rng entity.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithEventBus publishes game events to bus instead of a private one.
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) { g.EventBus = bus }
}

// WithContext attaches ctx to log lines, typically carrying a session ID.
func WithContext(ctx context.Context) Option {
	return func(g *Game) { g.ctx = ctx }
}

// NewRand returns a PCG source for seed. Seed 0 picks a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewGame creates a running session from cfg. A nil cfg uses the defaults.
func NewGame(cfg *config.GameConfig, opts ...Option) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	g := &Game{
		Config: cfg,
		World:  &World{},
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(cfg.Simulation.Seed)
	}
	if g.logger == nil {
		g.logger = logging.NewDiscardLogger()
	}
	if g.EventBus == nil {
		g.EventBus = event.NewEventBus()
	}

	g.spawner = NewSpawner(cfg, g.rng)
	g.resolver = NewResolver(cfg.Combat)
	g.World.Stars = entity.GenerateStarField(g.rng, cfg.World.StarCount, cfg.World.StarFieldExtent)
	g.reset()

	g.logger.Info(g.ctx, "session started", "stars", len(g.World.Stars))
	g.EventBus.Publish(event.NewSessionEvent(event.SessionStarted, g, 0, 0))
	return g
}

// Tick advances the session by one fixed step and returns a snapshot of the
// completed tick. While the game is over only restart and quit are honoured.
func (g *Game) Tick(in input.Intents) *Snapshot {
	g.CurrentTick++

	if in.Quit {
		g.requestQuit()
	}
	if g.QuitRequested {
		return g.Snapshot()
	}

	if g.Status == StatusGameOver {
		if in.Restart {
			g.Restart()
		}
		return g.Snapshot()
	}

	g.step(in)
	return g.Snapshot()
}

// step runs one Running tick in fixed order.
func (g *Game) step(in input.Intents) {
	g.RunTicks++
	if g.DamageFlash > 0 {
		g.DamageFlash--
	}

	g.applyIntents(in)
	g.World.Player.Update()
	g.advanceSpawner()
	g.updateEnemies()
	g.updateProjectiles()
	g.resolveCollisions()
	g.updateCamera()
}

// applyIntents applies held controls and the fire edge to the player.
func (g *Game) applyIntents(in input.Intents) {
	player := g.World.Player
	controls := g.Config.Controls

	if in.RotateLeft {
		player.Rotate(-controls.RotateStep)
	}
	if in.RotateRight {
		player.Rotate(controls.RotateStep)
	}
	if in.ThrustForward {
		player.Accelerate(controls.ThrustStep)
	}
	if in.ThrustBackward {
		player.Accelerate(-controls.ThrustStep)
	}
	if in.Fire {
		volley := g.fire()
		g.EventBus.Publish(event.NewProjectileEvent(g, entity.OwnerPlayer, len(volley)))
	}
}

// advanceSpawner runs the spawn timers and adds whatever came due.
func (g *Game) advanceSpawner() {
	spawned := g.spawner.Advance(g.World.Player.Position)

	if spawned.Enemy != nil {
		g.World.Enemies = append(g.World.Enemies, spawned.Enemy)
		g.logger.Debug(g.ctx, "enemy spawned",
			"enemy_id", spawned.Enemy.ID,
			"size_multiplier", spawned.SizeMultiplier,
			"health", spawned.Enemy.Health)
		g.EventBus.Publish(event.NewEnemyEvent(event.EnemySpawned, g, spawned.Enemy, spawned.SizeMultiplier, 0))
	}
	if spawned.Powerup != nil {
		g.World.Powerups = append(g.World.Powerups, spawned.Powerup)
		g.logger.Debug(g.ctx, "powerup spawned", "powerup_id", spawned.Powerup.ID, "kind", spawned.Powerup.Kind)
		g.EventBus.Publish(event.NewPowerupEvent(event.PowerupSpawned, g, spawned.Powerup))
	}
}

// updateEnemies steers every enemy and rolls its chance to shoot.
func (g *Game) updateEnemies() {
	target := g.World.Player.Position
	for _, enemy := range g.World.Enemies {
		enemy.Update(target)
		if g.rng.IntN(g.Config.Combat.EnemyShotOdds) != 0 {
			continue
		}
		if proj := enemy.Shoot(target, g.rng, g.Config.Projectile); proj != nil {
			g.World.EnemyProjectiles = append(g.World.EnemyProjectiles, proj)
			g.EventBus.Publish(event.NewProjectileEvent(g, entity.OwnerEnemy, 1))
		}
	}
}

// updateProjectiles moves all projectiles and prunes the expired ones.
func (g *Game) updateProjectiles() {
	for _, p := range g.World.PlayerProjectiles {
		p.Update()
	}
	for _, p := range g.World.EnemyProjectiles {
		p.Update()
	}
	g.World.PlayerProjectiles = compact(g.World.PlayerProjectiles)
	g.World.EnemyProjectiles = compact(g.World.EnemyProjectiles)
}

// resolveCollisions runs the combat resolver and turns its result into
// state transitions and events.
func (g *Game) resolveCollisions() {
	res := g.resolver.Resolve(g.World)

	for _, kill := range res.Kills {
		g.logger.Debug(g.ctx, "enemy destroyed", "enemy_id", kill.Enemy.ID, "score", g.World.Score)
		g.EventBus.Publish(event.NewEnemyEvent(event.EnemyDestroyed, g, kill.Enemy, 0, kill.ScoreAwarded))
	}
	for _, p := range res.Collected {
		g.EventBus.Publish(event.NewPowerupEvent(event.PowerupCollected, g, p))
	}

	if !res.PlayerHit {
		return
	}
	g.DamageFlash = g.Config.Combat.DamageFlashTicks
	g.EventBus.Publish(event.NewPlayerDamageEvent(g, res.PlayerDamage, g.World.Player.Health))

	if res.PlayerKilled {
		g.Status = StatusGameOver
		g.logger.Info(g.ctx, "game over", "score", g.World.Score, "ticks", g.RunTicks)
		g.EventBus.Publish(event.NewSessionEvent(event.GameOver, g, g.World.Score, g.RunTicks))
	}
}

// updateCamera centres the viewport on the player.
func (g *Game) updateCamera() {
	center := physics.Vector2D{X: g.Config.Viewport.Width / 2, Y: g.Config.Viewport.Height / 2}
	g.Camera = g.World.Player.Position.Sub(center)
}

// Restart starts a new run: a fresh player, empty collections, zero score
// and timers. The star field is kept.
func (g *Game) Restart() {
	finalScore := g.World.Score
	g.reset()

	g.logger.Info(g.ctx, "session restarted", "previous_score", finalScore)
	g.EventBus.Publish(event.NewSessionEvent(event.SessionRestarted, g, finalScore, 0))
}

func (g *Game) reset() {
	start := physics.Vector2D{X: g.Config.World.PlayerStartX, Y: g.Config.World.PlayerStartY}

	g.World.clear()
	g.World.Player = entity.NewPlayer(start, g.Config.Player)
	g.spawner.Reset()
	g.Status = StatusRunning
	g.DamageFlash = 0
	g.RunTicks = 0
	g.updateCamera()
}

func (g *Game) requestQuit() {
	if g.QuitRequested {
		return
	}
	g.QuitRequested = true
	g.logger.Info(g.ctx, "quit requested", "score", g.World.Score)
	g.EventBus.Publish(event.NewSessionEvent(event.QuitRequested, g, g.World.Score, g.RunTicks))
}

// Done reports whether a quit intent has been received.
func (g *Game) Done() bool {
	return g.QuitRequested
}
