// pkg/engine/runner.go
package engine

import (
	"context"
	"time"

	"github.com/opd-ai/space-warriors/pkg/input"
	"github.com/opd-ai/space-warriors/pkg/logging"
)

// IntentSource supplies the intents for each tick.
type IntentSource interface {
	Intents() input.Intents
}

// FrameSink presents a completed snapshot.
type FrameSink interface {
	Draw(snap *Snapshot) error
}

// Runner drives a Game at a fixed tick rate with an accumulator. Frames are
// drawn at most once per wake-up; when the process falls behind, at most
// MaxCatchUp ticks run per wake-up and the rest of the backlog is dropped.
type Runner struct {
	game          *Game
	source        IntentSource
	sink          FrameSink
	logger        *logging.Logger
	step          time.Duration
	frameInterval time.Duration
	maxCatchUp    int
	accumulator   time.Duration
	now           func() time.Time
}

// NewRunner creates a runner using the game's simulation and frontend settings.
func NewRunner(game *Game, source IntentSource, sink FrameSink, logger *logging.Logger) *Runner {
	sim := game.Config.Simulation
	step := time.Second / time.Duration(sim.TickRate)

	frameInterval := step
	if fps := game.Config.Frontend.TerminalFPSCap; fps > 0 {
		frameInterval = max(step, time.Second/time.Duration(fps))
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	return &Runner{
		game:          game,
		source:        source,
		sink:          sink,
		logger:        logger,
		step:          step,
		frameInterval: frameInterval,
		maxCatchUp:    max(sim.MaxCatchUpTicks, 1),
		now:           time.Now,
	}
}

// SetFrameInterval overrides how often the runner wakes up to draw.
// Values below one tick are raised to one tick.
func (r *Runner) SetFrameInterval(d time.Duration) {
	r.frameInterval = max(d, r.step)
}

// Run ticks the game until ctx ends, the sink fails or a quit intent arrives.
// A quit returns nil.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.frameInterval)
	defer ticker.Stop()

	last := r.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		now := r.now()
		elapsed := now.Sub(last)
		last = now

		done, err := r.Advance(elapsed)
		if err != nil {
			return err
		}
		if done {
			r.logger.Info(ctx, "runner stopped by quit", "tick", r.game.CurrentTick)
			return nil
		}
	}
}

// Advance adds elapsed wall time to the accumulator, runs the ticks it pays
// for and draws the last snapshot. It reports whether the game has quit.
func (r *Runner) Advance(elapsed time.Duration) (bool, error) {
	r.accumulator += elapsed

	var snap *Snapshot
	ticks := 0
	for r.accumulator >= r.step && ticks < r.maxCatchUp {
		snap = r.game.Tick(r.source.Intents())
		r.accumulator -= r.step
		ticks++
		if snap.Quit {
			break
		}
	}

	if r.accumulator >= r.step {
		r.logger.Debug(context.Background(), "dropping tick backlog", "backlog", r.accumulator/r.step)
		r.accumulator = 0
	}

	if snap == nil {
		return false, nil
	}
	if err := r.sink.Draw(snap); err != nil {
		return false, logging.WrapError(err, "draw frame at tick %d", snap.Tick)
	}
	return snap.Quit, nil
}
