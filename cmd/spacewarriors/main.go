// cmd/spacewarriors/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/input"
	"github.com/opd-ai/space-warriors/pkg/logging"
	"github.com/opd-ai/space-warriors/pkg/render"
	ebitenrender "github.com/opd-ai/space-warriors/pkg/render/ebiten"
	engorender "github.com/opd-ai/space-warriors/pkg/render/engo"
)

// resizePollInterval is how often the ansi frontend checks the terminal size.
const resizePollInterval = 500 * time.Millisecond

type options struct {
	configPath    string
	createDefault bool
	renderer      string
	seed          uint64
	logPath       string
	fullscreen    bool
	ticks         int
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config.json", "Path to configuration file")
	flag.BoolVar(&opts.createDefault, "default", false, "Create default configuration file")
	flag.StringVar(&opts.renderer, "renderer", "", "Renderer: ebiten, engo, tcell, ansi or null (overrides config)")
	flag.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one)")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file")
	flag.BoolVar(&opts.fullscreen, "fullscreen", false, "Run in fullscreen mode (window renderers only)")
	flag.IntVar(&opts.ticks, "ticks", 600, "Ticks to simulate with the null renderer")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()
	ctx := context.Background()
	bootLogger := logging.NewLogger()

	if opts.createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			bootLogger.Error(ctx, "Failed to create default configuration", err,
				"config_path", opts.configPath,
			)
			os.Exit(1)
		}
		bootLogger.Info(ctx, "Created default configuration file",
			"config_path", opts.configPath,
		)
		return
	}

	gameConfig, err := loadGameConfig(opts, bootLogger)
	if err != nil {
		bootLogger.Error(ctx, "Failed to load configuration", err,
			"config_path", opts.configPath,
		)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(opts.logPath, gameConfig.Frontend.Renderer)
	if err != nil {
		bootLogger.Error(ctx, "Failed to open log file", err, "log_path", opts.logPath)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithSessionID(ctx, "")

	game := engine.NewGame(gameConfig,
		engine.WithRand(engine.NewRand(gameConfig.Simulation.Seed)),
		engine.WithLogger(logger),
		engine.WithContext(ctx),
	)

	if err := run(ctx, game, opts.ticks, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Game exited with error", err,
			"renderer", gameConfig.Frontend.Renderer,
		)
		fmt.Fprintf(os.Stderr, "spacewarriors: %v\n", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Game finished", "tick", game.CurrentTick, "score", game.World.Score)
}

// loadGameConfig reads the config file when present, then applies flags and
// environment overrides.
func loadGameConfig(opts options, logger *logging.Logger) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig
	if _, err := os.Stat(opts.configPath); os.IsNotExist(err) {
		logger.Debug(context.Background(), "Configuration file not found, using default configuration",
			"config_path", opts.configPath,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, logging.WrapError(err, "apply environment overrides")
	}

	if opts.renderer != "" {
		gameConfig.Frontend.Renderer = opts.renderer
	}
	if opts.seed != 0 {
		gameConfig.Simulation.Seed = opts.seed
	}
	if opts.fullscreen {
		gameConfig.Frontend.Fullscreen = true
	}
	return gameConfig, gameConfig.Validate()
}

// newLogger picks the log destination. Terminal renderers own stdout and
// stderr, so without -log they log nothing.
func newLogger(path, renderer string) (*logging.Logger, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLoggerWithWriter(f), func() { f.Close() }, nil
	}
	switch renderer {
	case config.RendererANSI, config.RendererTcell:
		return logging.NewLoggerWithWriter(io.Discard), func() {}, nil
	}
	return logging.NewLogger(), func() {}, nil
}

func run(ctx context.Context, game *engine.Game, ticks int, logger *logging.Logger) error {
	cfg := game.Config
	keymap := input.DefaultKeymap()

	switch cfg.Frontend.Renderer {
	case config.RendererEbiten:
		return ebitenrender.Run(ctx, game, keymap, logger)
	case config.RendererEngo:
		return engorender.Run(ctx, game, keymap, logger)
	case config.RendererTcell:
		return runTcell(ctx, game, keymap, logger)
	case config.RendererANSI:
		return runANSI(ctx, game, keymap, logger)
	case config.RendererNull:
		return runNull(ctx, game, ticks, logger)
	}
	return fmt.Errorf("unknown renderer %q", cfg.Frontend.Renderer)
}

func keyHold(cfg *config.GameConfig) time.Duration {
	return time.Duration(cfg.Frontend.KeyHoldMillis) * time.Millisecond
}

// runANSI plays in the current terminal using raw mode and escape sequences.
func runANSI(ctx context.Context, game *engine.Game, keymap input.Keymap, logger *logging.Logger) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("ansi renderer needs a terminal on stdin")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return logging.WrapError(err, "enable raw mode")
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return logging.WrapError(err, "read terminal size")
	}

	presenter := render.NewANSIPresenter(os.Stdout, width, height, game.Config.Frontend)
	if err := presenter.Init(); err != nil {
		return err
	}
	defer presenter.Close()

	keys := input.NewByteStream(keymap, keyHold(game.Config))
	go keys.ReadFrom(os.Stdin)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go watchSize(ctx, int(os.Stdout.Fd()), width, height, presenter)

	return engine.NewRunner(game, input.NewSampler(keys), presenter, logger).Run(ctx)
}

// watchSize resizes the presenter when the terminal size changes.
func watchSize(ctx context.Context, fd, width, height int, presenter *render.ANSIPresenter) {
	ticker := time.NewTicker(resizePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		w, h, err := term.GetSize(fd)
		if err != nil || (w == width && h == height) {
			continue
		}
		width, height = w, h
		presenter.Resize(w, h)
	}
}

// runTcell plays in the current terminal through tcell.
func runTcell(ctx context.Context, game *engine.Game, keymap input.Keymap, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create screen")
	}

	keys := input.NewByteStream(keymap, keyHold(game.Config))
	presenter := render.NewTcellPresenter(screen, keys, game.Config.Frontend)
	if err := presenter.Init(); err != nil {
		return err
	}
	defer presenter.Close()
	go presenter.PollEvents()

	return engine.NewRunner(game, input.NewSampler(keys), presenter, logger).Run(ctx)
}

// idleKeys is a key source with nothing pressed.
type idleKeys struct{}

func (idleKeys) KeyState() input.KeyState { return input.KeyState{} }

// runNull simulates ticks with no input as fast as the runner allows and
// logs each frame at debug level.
func runNull(ctx context.Context, game *engine.Game, ticks int, logger *logging.Logger) error {
	sink := render.NewNullRenderer(logger)
	runner := engine.NewRunner(game, input.NewSampler(idleKeys{}), sink, logger)
	step := time.Second / time.Duration(game.Config.Simulation.TickRate)

	for game.CurrentTick < uint64(ticks) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := runner.Advance(step); err != nil {
			return err
		}
	}
	logger.Info(ctx, "Headless run complete",
		"ticks", game.CurrentTick,
		"frames", sink.Frames(),
		"status", game.Status.String(),
	)
	return nil
}
