// pkg/render/renderer.go
package render

import (
	"context"
	"sync/atomic"

	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/logging"
)

// NullRenderer is a frame sink that draws nothing. It is used for headless
// runs and logs a summary of each frame at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames atomic.Uint64
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NullRenderer{logger: logger}
}

// Draw implements engine.FrameSink.
func (d *NullRenderer) Draw(snap *engine.Snapshot) error {
	d.frames.Add(1)
	if snap == nil {
		d.logger.Debug(context.Background(), "Draw called with nil snapshot")
		return nil
	}
	d.logger.Debug(context.Background(), "Draw called",
		"tick", snap.Tick,
		"status", snap.Status.String(),
		"score", snap.Score,
		"health", snap.Player.Health,
		"enemies", len(snap.Enemies),
		"projectiles", len(snap.PlayerProjectiles)+len(snap.EnemyProjectiles),
		"powerups", len(snap.Powerups),
	)
	return nil
}

// Frames returns how many frames have been drawn.
func (d *NullRenderer) Frames() uint64 {
	return d.frames.Load()
}

var _ engine.FrameSink = (*NullRenderer)(nil)
