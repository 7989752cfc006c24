// pkg/render/engo/scene.go
package engo

import (
	"context"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/input"
	"github.com/opd-ai/space-warriors/pkg/logging"
	"github.com/opd-ai/space-warriors/pkg/physics"
	"github.com/opd-ai/space-warriors/pkg/render"
)

const windowTitle = "Space Warriors"

// GameScene represents the main game scene in Engo
type GameScene struct {
	ctx    context.Context
	game   *engine.Game
	keymap input.Keymap
	logger *logging.Logger

	assets   *AssetManager
	loadErr  error
	renderer *EngoRenderer
	hud      *HUDSystem
	input    *InputSystem
	system   *GameSystem
}

// NewGameScene creates a new game scene
func NewGameScene(ctx context.Context, game *engine.Game, keymap input.Keymap, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	cfg := game.Config
	return &GameScene{
		ctx:    ctx,
		game:   game,
		keymap: keymap,
		logger: logger,
		assets: NewAssetManager(
			physics.Vector2D{X: cfg.Player.Width, Y: cfg.Player.Height},
			physics.Vector2D{X: cfg.Enemy.BaseWidth, Y: cfg.Enemy.BaseHeight},
			cfg.Powerup.Size,
		),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "SpaceWarriorsScene"
}

// Preload uploads the generated sprites and the HUD font (required by Engo)
func (scene *GameScene) Preload() {
	scene.loadErr = scene.assets.LoadAssets()
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world := u.(*ecs.World)
	if scene.loadErr != nil {
		scene.logger.Error(scene.ctx, "failed to load assets", scene.loadErr)
	}

	common.SetBackground(render.Background)
	rs := &common.RenderSystem{}
	world.AddSystem(rs)

	snap := scene.game.Snapshot()
	layout := render.NewLayout(snap.Viewport, scene.game.Config.Frontend)

	scene.renderer = NewEngoRenderer(rs, scene.assets, NewCamera(snap.Viewport))
	scene.hud = NewHUDSystem(rs, scene.assets, layout, scene.game.Config.Combat.DamageFlashTicks)

	scene.input = NewInputSystem(scene.keymap)
	scene.input.Setup()
	if unknown := scene.input.Unknown(); len(unknown) > 0 {
		scene.logger.Warn(scene.ctx, "keymap entries have no engo key", "keys", unknown)
	}

	scene.system = NewGameSystem(scene.ctx, scene.game, scene.input, scene.renderer, scene.hud, scene.logger)
	world.AddSystem(scene.input)
	world.AddSystem(scene.system)
	world.AddSystem(scene.hud)

	scene.renderer.Sync(snap)
	scene.hud.Show(snap)
}

// Exit is called when the window closes.
func (scene *GameScene) Exit() {
	scene.logger.Info(scene.ctx, "window closed", "tick", scene.game.CurrentTick)
	engo.Exit()
}

// sceneSink presents snapshots by syncing the scene's sprites.
type sceneSink struct {
	renderer *EngoRenderer
	hud      *HUDSystem
}

func (s sceneSink) Draw(snap *engine.Snapshot) error {
	s.renderer.Sync(snap)
	s.hud.Show(snap)
	return nil
}

// GameSystem ticks the game from engo's frame loop. Frame time is fed to a
// fixed-step runner, so the simulation keeps its tick rate whatever the
// frame rate.
type GameSystem struct {
	ctx    context.Context
	runner *engine.Runner
	logger *logging.Logger
	done   bool
	exit   func()
}

// NewGameSystem creates the system that drives game.
func NewGameSystem(ctx context.Context, game *engine.Game, keys input.KeySource, renderer *EngoRenderer, hud *HUDSystem, logger *logging.Logger) *GameSystem {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &GameSystem{
		ctx:    ctx,
		runner: engine.NewRunner(game, input.NewSampler(keys), sceneSink{renderer: renderer, hud: hud}, logger),
		logger: logger,
		exit:   engo.Exit,
	}
}

// Add satisfies the ecs.System interface
func (gs *GameSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (gs *GameSystem) Remove(basic ecs.BasicEntity) {
}

// Update advances the game by dt seconds.
func (gs *GameSystem) Update(dt float32) {
	gs.advance(time.Duration(float64(dt) * float64(time.Second)))
}

func (gs *GameSystem) advance(elapsed time.Duration) {
	if gs.done {
		return
	}
	if gs.ctx.Err() != nil {
		gs.stop("context cancelled")
		return
	}

	quit, err := gs.runner.Advance(elapsed)
	if err != nil {
		gs.logger.Error(gs.ctx, "frame update failed", err)
	}
	if quit {
		gs.stop("player quit")
	}
}

func (gs *GameSystem) stop(reason string) {
	gs.done = true
	gs.logger.Info(gs.ctx, "stopping window frontend", "reason", reason)
	gs.exit()
}

// Done reports whether the system has asked engo to exit.
func (gs *GameSystem) Done() bool {
	return gs.done
}

// Run opens the window and blocks until the player quits or the window is
// closed.
func Run(ctx context.Context, game *engine.Game, keymap input.Keymap, logger *logging.Logger) error {
	scene := NewGameScene(ctx, game, keymap, logger)
	cfg := game.Config

	opts := engo.RunOptions{
		Title:         windowTitle,
		Width:         int(cfg.Viewport.Width),
		Height:        int(cfg.Viewport.Height),
		Fullscreen:    cfg.Frontend.Fullscreen,
		VSync:         true,
		FPSLimit:      cfg.Simulation.TickRate,
		ScaleOnResize: true,
	}

	scene.logger.Info(ctx, "starting engo frontend",
		"width", opts.Width,
		"height", opts.Height,
		"fps_limit", opts.FPSLimit,
	)
	engo.Run(opts, scene)
	return scene.loadErr
}
