// pkg/render/layout.go
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Palette shared by the pixel frontends.
var (
	Background        = color.RGBA{0, 0, 20, 255}
	White             = color.RGBA{255, 255, 255, 255}
	Blue              = color.RGBA{0, 0, 255, 255}
	Yellow            = color.RGBA{255, 255, 0, 255}
	Red               = color.RGBA{255, 0, 0, 255}
	Green             = color.RGBA{0, 255, 0, 255}
	Cyan              = color.RGBA{0, 255, 255, 255}
	MinimapBackground = color.RGBA{40, 40, 40, 255}
	Overlay           = color.RGBA{0, 0, 0, 178}
)

// HUD and overlay text.
const (
	GameOverTitle = "GAME OVER"
	RestartHint   = "Press R to Restart"
	QuitHint      = "Press ESC to Quit"
)

// maxFlashAlpha is the opacity of the damage tint on the tick of the hit.
const maxFlashAlpha = 0.4

// ScoreText is the running score label.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// FinalScoreText is the score label on the game over overlay.
func FinalScoreText(score int) string {
	return fmt.Sprintf("Final Score: %d", score)
}

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies strictly inside r.
func (r Rect) Contains(p physics.Vector2D) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Center returns the middle of r.
func (r Rect) Center() physics.Vector2D {
	return physics.Vector2D{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Fill returns the left part of r covering ratio of its width.
func (r Rect) Fill(ratio float64) Rect {
	r.W *= clampRatio(ratio)
	return r
}

// Layout places the HUD elements for one viewport size.
type Layout struct {
	Viewport     physics.Vector2D
	HealthBar    Rect
	PowerupBar   Rect
	Minimap      Rect
	MinimapScale float64
	Score        physics.Vector2D
}

// NewLayout computes HUD positions for a viewport.
func NewLayout(viewport physics.Vector2D, cfg config.FrontendConfig) Layout {
	size := cfg.MinimapSize
	return Layout{
		Viewport:     viewport,
		HealthBar:    centeredRect(80, 30, 100, 10),
		PowerupBar:   centeredRect(80, 50, 100, 6),
		Minimap:      Rect{X: viewport.X - size - 20, Y: 20, W: size, H: size},
		MinimapScale: cfg.MinimapScale,
		Score:        physics.Vector2D{X: 10, Y: viewport.Y - 40},
	}
}

// MinimapPoint projects a world position onto the minimap. The second
// result is false when the point falls outside the minimap frame.
func (l Layout) MinimapPoint(snap *engine.Snapshot, world physics.Vector2D) (physics.Vector2D, bool) {
	p := l.Minimap.Center().Add(snap.Minimap(world, l.MinimapScale))
	return p, l.Minimap.Contains(p)
}

// EnemyHealthBar returns the bar drawn above an enemy at screen position.
func EnemyHealthBar(screen, size physics.Vector2D) Rect {
	return centeredRect(screen.X, screen.Y-size.Y-10, 30, 4)
}

// OnScreen reports whether a screen position is within the viewport
// extended by margin on every side.
func OnScreen(screen, viewport physics.Vector2D, margin float64) bool {
	return screen.X > -margin && screen.X < viewport.X+margin &&
		screen.Y > -margin && screen.Y < viewport.Y+margin
}

// ShipOutline returns the triangle for a ship centred at pos. The nose
// points along angle degrees.
func ShipOutline(pos, size physics.Vector2D, angle float64) [3]physics.Vector2D {
	points := [3]physics.Vector2D{
		{X: size.X, Y: 0},
		{X: -size.X / 2, Y: -size.Y / 2},
		{X: -size.X / 2, Y: size.Y / 2},
	}
	for i, p := range points {
		points[i] = pos.Add(p.Rotate(angle))
	}
	return points
}

// ProjectileSegment returns the streak drawn for a projectile. ok is false
// for a projectile with no velocity.
func ProjectileSegment(pos, vel physics.Vector2D, length float64) (start, end physics.Vector2D, ok bool) {
	if vel.IsZero() {
		return pos, pos, false
	}
	half := vel.Normalize().Scale(length / 2)
	return pos.Sub(half), pos.Add(half), true
}

// FlashAlpha returns the opacity of the damage tint.
func FlashAlpha(flash, duration int) float64 {
	if flash <= 0 || duration <= 0 {
		return 0
	}
	return clampRatio(float64(flash)/float64(duration)) * maxFlashAlpha
}

func centeredRect(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func clampRatio(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}
