package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/ssh"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/event"
	"github.com/opd-ai/space-warriors/pkg/input"
	"github.com/opd-ai/space-warriors/pkg/logging"
	"github.com/opd-ai/space-warriors/pkg/render"
	"github.com/opd-ai/space-warriors/pkg/resource"
	"github.com/opd-ai/space-warriors/pkg/validation"
)

// gameServer runs one game per SSH session.
type gameServer struct {
	gameConfig *config.GameConfig
	envConfig  *config.EnvironmentConfig
	sessions   *resource.SessionManager
	limiter    *validation.RateLimiter
	logger     *logging.Logger
}

// middleware handles SSH sessions and runs the game in them.
func (gs *gameServer) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		ctx := logging.WithSessionID(sess.Context(), "")
		remote := sess.RemoteAddr().String()

		if !gs.limiter.Allow(remote) {
			gs.logger.Warn(ctx, "Connection rate limited", "remote", remote)
			fmt.Fprintln(sess, "Too many connections, try again later.")
			_ = sess.Exit(1)
			return
		}

		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			_ = sess.Exit(1)
			return
		}
		if err := validation.ValidateTerminal(pty.Window.Width, pty.Window.Height); err != nil {
			fmt.Fprintf(sess, "Error: %v\r\n", err)
			_ = sess.Exit(1)
			return
		}

		name := validation.SanitizeUsername(sess.User())
		gs.logger.Info(ctx, "New game session",
			"user", name,
			"remote", remote,
			"terminal", pty.Term,
			"width", pty.Window.Width,
			"height", pty.Window.Height,
		)

		err := gs.sessions.Run(ctx, name, func(ctx context.Context) error {
			return gs.play(ctx, name, sess, sess, pty.Window.Width, pty.Window.Height, winCh)
		})
		switch {
		case errors.Is(err, resource.ErrSessionLimit):
			fmt.Fprintln(sess, "The server is full, try again later.")
			_ = sess.Exit(1)
		case errors.Is(err, resource.ErrShuttingDown):
			fmt.Fprintln(sess, "The server is shutting down.")
			_ = sess.Exit(1)
		case err != nil:
			gs.logger.Error(ctx, "Game session failed", err, "user", name)
		}

		next(sess)
	}
}

// play runs a game reading keys from in and drawing frames to out until the
// player quits, the input ends or ctx is done.
func (gs *gameServer) play(ctx context.Context, name string, in io.Reader, out io.Writer, width, height int, resize <-chan ssh.Window) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := event.NewEventBus()
	stats := event.NewSessionStats(bus)
	defer stats.Close()

	game := engine.NewGame(gs.gameConfig,
		engine.WithRand(engine.NewRand(gs.gameConfig.Simulation.Seed)),
		engine.WithLogger(gs.logger),
		engine.WithEventBus(bus),
		engine.WithContext(ctx),
	)

	writer := render.NewBreakerWriter("frames-"+logging.GetSessionID(ctx), out, gs.envConfig, gs.logger)
	presenter := render.NewANSIPresenter(writer, width, height, gs.gameConfig.Frontend)
	if err := presenter.Init(); err != nil {
		return logging.WrapError(err, "init terminal for %s", name)
	}
	defer presenter.Close()

	keys := input.NewByteStream(input.DefaultKeymap(), time.Duration(gs.gameConfig.Frontend.KeyHoldMillis)*time.Millisecond)
	go keys.ReadFrom(in)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case win, ok := <-resize:
				if !ok {
					return
				}
				presenter.Resize(win.Width, win.Height)
			}
		}
	}()

	started := time.Now()
	err := engine.NewRunner(game, input.NewSampler(keys), presenter, gs.logger).Run(ctx)

	counts := stats.Snapshot()
	gs.logger.Info(ctx, "Session ended",
		"user", name,
		"duration", time.Since(started).Round(time.Second).String(),
		"ticks", game.CurrentTick,
		"score", game.World.Score,
		"best_score", max(counts.BestScore, game.World.Score),
		"kills", counts.EnemiesKilled,
		"shots", counts.ShotsFired,
		"damage_taken", counts.DamageTaken,
		"deaths", counts.Deaths,
		"restarts", counts.Restarts,
	)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
