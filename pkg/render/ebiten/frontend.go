// pkg/render/ebiten/frontend.go
package ebiten

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/input"
	"github.com/opd-ai/space-warriors/pkg/logging"
	"github.com/opd-ai/space-warriors/pkg/render"
)

const windowTitle = "Space Warriors"

// Frontend runs a Game inside an ebiten window. Ebiten calls Update once per
// tick at the configured rate, so each Update is exactly one Game.Tick.
type Frontend struct {
	ctx    context.Context
	game   *engine.Game
	keymap input.Keymap
	mapper *input.Mapper
	logger *logging.Logger

	layout render.Layout
	face   text.Face
	pixel  *ebiten.Image

	pressed []ebiten.Key
	snap    *engine.Snapshot
}

// NewFrontend creates a window frontend for game.
func NewFrontend(game *engine.Game, keymap input.Keymap, logger *logging.Logger) *Frontend {
	if keymap == nil {
		keymap = input.DefaultKeymap()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	cfg := game.Config
	snap := game.Snapshot()
	return &Frontend{
		ctx:    context.Background(),
		game:   game,
		keymap: keymap,
		mapper: input.NewMapper(),
		logger: logger,
		layout: render.NewLayout(snap.Viewport, cfg.Frontend),
		face:   text.NewGoXFace(basicfont.Face7x13),
		pixel:  newPixel(),
		snap:   snap,
	}
}

// Update implements ebiten.Game.
func (f *Frontend) Update() error {
	if f.ctx.Err() != nil {
		return ebiten.Termination
	}

	f.pressed = inpututil.AppendPressedKeys(f.pressed[:0])
	intents := f.mapper.Map(keyState(f.keymap, f.pressed))

	f.snap = f.game.Tick(intents)
	if f.snap.Quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (f *Frontend) Draw(screen *ebiten.Image) {
	drawFrame(screen, f.snap, f.layout, f.face, f.pixel, f.game.Config.Combat.DamageFlashTicks)
}

// Layout implements ebiten.Game. The logical screen is always the
// configured viewport; ebiten scales it to the window.
func (f *Frontend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(f.layout.Viewport.X), int(f.layout.Viewport.Y)
}

// Run opens the window and blocks until the player quits or the window is
// closed.
func Run(ctx context.Context, game *engine.Game, keymap input.Keymap, logger *logging.Logger) error {
	f := NewFrontend(game, keymap, logger)
	f.ctx = ctx
	cfg := game.Config

	ebiten.SetWindowSize(int(cfg.Viewport.Width), int(cfg.Viewport.Height))
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizable(true)
	ebiten.SetFullscreen(cfg.Frontend.Fullscreen)
	ebiten.SetTPS(cfg.Simulation.TickRate)

	f.logger.Info(ctx, "starting window frontend",
		"width", cfg.Viewport.Width,
		"height", cfg.Viewport.Height,
		"tps", cfg.Simulation.TickRate,
		"fullscreen", cfg.Frontend.Fullscreen,
	)

	if err := ebiten.RunGame(f); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window frontend: %w", err)
	}
	return nil
}

var _ ebiten.Game = (*Frontend)(nil)
