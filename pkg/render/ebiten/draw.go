// pkg/render/ebiten/draw.go
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
	"github.com/opd-ai/space-warriors/pkg/render"
)

// Off-screen margins before an object is culled.
const (
	starMargin       = 50
	shipMargin       = 50
	projectileMargin = 20
	powerupMargin    = 50
)

// newPixel returns a 1x1 white source image for DrawTriangles.
func newPixel() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func drawFrame(screen *ebiten.Image, snap *engine.Snapshot, layout render.Layout, face text.Face, pixel *ebiten.Image, flashTicks int) {
	screen.Fill(render.Background)
	if snap == nil {
		return
	}

	for _, s := range snap.Stars {
		p := snap.ToScreen(s.Position)
		if render.OnScreen(p, snap.Viewport, starMargin) {
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(s.Radius), render.Yellow, true)
		}
	}

	for _, e := range snap.Enemies {
		p := snap.ToScreen(e.Position)
		if !render.OnScreen(p, snap.Viewport, shipMargin) {
			continue
		}
		fillTriangle(screen, pixel, render.ShipOutline(p, e.Size, e.Angle), render.Red)
		ratio := 0.0
		if e.MaxHealth > 0 {
			ratio = float64(e.Health) / float64(e.MaxHealth)
		}
		drawBar(screen, render.EnemyHealthBar(p, e.Size), ratio, render.Red, render.Green)
	}

	center := snap.Viewport.Scale(0.5)
	fillTriangle(screen, pixel, render.ShipOutline(center, snap.Player.Size, snap.Player.Angle), render.Blue)

	for _, p := range snap.PlayerProjectiles {
		drawProjectile(screen, snap, p, render.White)
	}
	for _, p := range snap.EnemyProjectiles {
		drawProjectile(screen, snap, p, render.Red)
	}

	for _, pu := range snap.Powerups {
		p := snap.ToScreen(pu.Position)
		if pu.Kind != entity.TripleShot || !render.OnScreen(p, snap.Viewport, powerupMargin) {
			continue
		}
		half := float32(pu.Size / 2)
		x, y := float32(p.X), float32(p.Y)
		vector.StrokeLine(screen, x-half, y, x+half, y, 3, render.Cyan, true)
		vector.StrokeLine(screen, x, y-half, x, y+half, 3, render.Cyan, true)
	}

	drawBar(screen, layout.HealthBar, snap.HealthRatio(), render.Red, render.Green)
	drawBar(screen, layout.PowerupBar, snap.TripleShotRatio(), render.MinimapBackground, render.Cyan)
	drawMinimap(screen, snap, layout)

	if alpha := render.FlashAlpha(snap.DamageFlash, flashTicks); alpha > 0 {
		tint := color.NRGBA{R: 255, A: uint8(alpha * 255)}
		vector.DrawFilledRect(screen, 0, 0, float32(snap.Viewport.X), float32(snap.Viewport.Y), tint, false)
	}

	drawText(screen, face, render.ScoreText(snap.Score), layout.Score, 2, render.White, false)

	if snap.GameOver() {
		drawGameOver(screen, snap, face)
	}
}

func drawProjectile(screen *ebiten.Image, snap *engine.Snapshot, p engine.ProjectileState, clr color.Color) {
	pos := snap.ToScreen(p.Position)
	if !render.OnScreen(pos, snap.Viewport, projectileMargin) {
		return
	}
	start, end, ok := render.ProjectileSegment(pos, p.Velocity, p.Length)
	if !ok {
		return
	}
	vector.StrokeLine(screen, float32(start.X), float32(start.Y), float32(end.X), float32(end.Y), 3, clr, true)
}

func drawBar(screen *ebiten.Image, r render.Rect, ratio float64, back, front color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), back, false)
	if fill := r.Fill(ratio); fill.W > 0 {
		vector.DrawFilledRect(screen, float32(fill.X), float32(fill.Y), float32(fill.W), float32(fill.H), front, false)
	}
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, render.White, false)
}

func drawMinimap(screen *ebiten.Image, snap *engine.Snapshot, layout render.Layout) {
	m := layout.Minimap
	vector.DrawFilledRect(screen, float32(m.X), float32(m.Y), float32(m.W), float32(m.H), render.MinimapBackground, false)
	vector.StrokeRect(screen, float32(m.X), float32(m.Y), float32(m.W), float32(m.H), 2, render.White, false)

	c := m.Center()
	vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), 3, render.Blue, true)
	for _, e := range snap.Enemies {
		if p, ok := layout.MinimapPoint(snap, e.Position); ok {
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 2, render.Red, true)
		}
	}
}

func drawGameOver(screen *ebiten.Image, snap *engine.Snapshot, face text.Face) {
	w, h := snap.Viewport.X, snap.Viewport.Y
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), render.Overlay, false)

	mid := physics.Vector2D{X: w / 2, Y: h / 2}
	drawText(screen, face, render.GameOverTitle, mid.Add(physics.Vector2D{Y: -100}), 7, render.Red, true)
	drawText(screen, face, render.FinalScoreText(snap.Score), mid.Add(physics.Vector2D{Y: -20}), 4, render.White, true)
	drawText(screen, face, render.RestartHint, mid.Add(physics.Vector2D{Y: 120}), 4, render.Green, true)
	drawText(screen, face, render.QuitHint, mid.Add(physics.Vector2D{Y: 160}), 3, render.White, true)
}

func drawText(screen *ebiten.Image, face text.Face, s string, at physics.Vector2D, scale float64, clr color.Color, centered bool) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(at.X, at.Y)
	op.ColorScale.ScaleWithColor(clr)
	if centered {
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
	}
	text.Draw(screen, s, face, op)
}

func fillTriangle(screen, pixel *ebiten.Image, pts [3]physics.Vector2D, clr color.RGBA) {
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	vertices := make([]ebiten.Vertex, 0, 3)
	for _, p := range pts {
		vertices = append(vertices, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, pixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
