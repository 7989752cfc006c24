// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/physics"
	"github.com/opd-ai/space-warriors/pkg/render"
)

// Camera maps world positions to screen positions using the camera offset
// of the most recent snapshot. Engo's own camera stays fixed on the viewport.
type Camera struct {
	offset   physics.Vector2D
	viewport physics.Vector2D
}

// NewCamera creates a camera for a viewport.
func NewCamera(viewport physics.Vector2D) *Camera {
	return &Camera{viewport: viewport}
}

// Follow takes the camera offset from snap.
func (c *Camera) Follow(snap *engine.Snapshot) {
	c.offset = snap.Camera
	c.viewport = snap.Viewport
}

// Offset returns the world position of the top-left screen corner.
func (c *Camera) Offset() physics.Vector2D {
	return c.offset
}

// WorldToScreen converts a world position to screen coordinates.
func (c *Camera) WorldToScreen(world physics.Vector2D) engo.Point {
	p := world.Sub(c.offset)
	return engo.Point{X: float32(p.X), Y: float32(p.Y)}
}

// Visible reports whether world is on screen or within margin of it.
func (c *Camera) Visible(world physics.Vector2D, margin float64) bool {
	return render.OnScreen(world.Sub(c.offset), c.viewport, margin)
}
