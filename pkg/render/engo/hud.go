// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/render"
)

// Font sizes in points
const (
	scoreFontSize    = 36
	titleFontSize    = 96
	subtitleFontSize = 48
	hintFontSize     = 36
)

// maxMinimapDots bounds the minimap enemy markers kept in the scene.
const maxMinimapDots = 64

// HUDSystem manages the heads-up display: health and triple shot bars,
// minimap, score, damage flash and the game over overlay.
type HUDSystem struct {
	sink       SpriteSink
	assets     *AssetManager
	layout     render.Layout
	flashTicks int

	healthBack, healthFill   *sprite
	powerupBack, powerupFill *sprite
	minimap, minimapPlayer   *sprite
	minimapDots              []*sprite
	flash                    *sprite
	score                    *sprite

	overlay      *sprite
	overlayTexts []*sprite

	snap *engine.Snapshot
}

// NewHUDSystem creates a HUD for the given layout.
func NewHUDSystem(sink SpriteSink, assets *AssetManager, layout render.Layout, flashTicks int) *HUDSystem {
	hud := &HUDSystem{
		sink:       sink,
		assets:     assets,
		layout:     layout,
		flashTicks: flashTicks,
	}

	bar := func(r render.Rect, clr color.Color, z float32) *sprite {
		s := newSprite(sink, common.Rectangle{BorderWidth: 1, BorderColor: render.White}, clr, float32(r.W), float32(r.H), z)
		s.Position = engo.Point{X: float32(r.X), Y: float32(r.Y)}
		return s
	}
	hud.healthBack = bar(layout.HealthBar, render.Red, zHUD)
	hud.healthFill = bar(layout.HealthBar, render.Green, zHUD+0.1)
	hud.powerupBack = bar(layout.PowerupBar, render.MinimapBackground, zHUD)
	hud.powerupFill = bar(layout.PowerupBar, render.Cyan, zHUD+0.1)

	m := layout.Minimap
	hud.minimap = newSprite(sink, common.Rectangle{BorderWidth: 2, BorderColor: render.White}, render.MinimapBackground, float32(m.W), float32(m.H), zHUD)
	hud.minimap.Position = engo.Point{X: float32(m.X), Y: float32(m.Y)}
	hud.minimapPlayer = newSprite(sink, common.Circle{}, render.Blue, 6, 6, zHUD+0.2)
	c := m.Center()
	hud.minimapPlayer.place(engo.Point{X: float32(c.X), Y: float32(c.Y)}, 0)

	vp := layout.Viewport
	hud.flash = newSprite(sink, common.Rectangle{}, color.NRGBA{R: 255}, float32(vp.X), float32(vp.Y), zOverlay)
	hud.flash.Hidden = true

	hud.score = hud.newText(render.ScoreText(0), scoreFontSize, render.White, zHUD)
	hud.score.Position = engo.Point{X: float32(layout.Score.X), Y: float32(layout.Score.Y - scoreFontSize)}

	return hud
}

func (hud *HUDSystem) newText(s string, size int, clr color.Color, z float32) *sprite {
	return newSprite(hud.sink, common.Text{Font: hud.assets.Font(size), Text: s}, clr, 0, 0, z)
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {
}

// Show sets the snapshot the next Update displays.
func (hud *HUDSystem) Show(snap *engine.Snapshot) {
	hud.snap = snap
}

// Update refreshes the HUD from the latest snapshot.
func (hud *HUDSystem) Update(dt float32) {
	snap := hud.snap
	if snap == nil {
		return
	}

	fillBar(hud.healthFill, hud.layout.HealthBar, snap.HealthRatio())
	fillBar(hud.powerupFill, hud.layout.PowerupBar, snap.TripleShotRatio())
	hud.updateMinimap(snap)

	alpha := render.FlashAlpha(snap.DamageFlash, hud.flashTicks)
	hud.flash.Hidden = alpha <= 0
	hud.flash.Color = color.NRGBA{R: 255, A: uint8(alpha * 255)}

	hud.setText(hud.score, render.ScoreText(snap.Score))
	hud.updateGameOver(snap)
}

func fillBar(s *sprite, r render.Rect, ratio float64) {
	fill := r.Fill(ratio)
	s.Width = float32(fill.W)
	s.Hidden = fill.W <= 0
}

func (hud *HUDSystem) updateMinimap(snap *engine.Snapshot) {
	shown := 0
	for _, e := range snap.Enemies {
		if shown == maxMinimapDots {
			break
		}
		p, ok := hud.layout.MinimapPoint(snap, e.Position)
		if !ok {
			continue
		}
		if shown == len(hud.minimapDots) {
			hud.minimapDots = append(hud.minimapDots, newSprite(hud.sink, common.Circle{}, render.Red, 4, 4, zHUD+0.2))
		}
		dot := hud.minimapDots[shown]
		dot.Hidden = false
		dot.place(engo.Point{X: float32(p.X), Y: float32(p.Y)}, 0)
		shown++
	}
	for _, dot := range hud.minimapDots[shown:] {
		dot.Hidden = true
	}
}

// MinimapMarkers returns how many enemy markers are visible.
func (hud *HUDSystem) MinimapMarkers() int {
	n := 0
	for _, dot := range hud.minimapDots {
		if !dot.Hidden {
			n++
		}
	}
	return n
}

func (hud *HUDSystem) updateGameOver(snap *engine.Snapshot) {
	if !snap.GameOver() {
		hud.clearOverlay()
		return
	}
	if hud.overlay != nil {
		hud.setText(hud.overlayTexts[1], render.FinalScoreText(snap.Score))
		return
	}

	vp := hud.layout.Viewport
	hud.overlay = newSprite(hud.sink, common.Rectangle{}, render.Overlay, float32(vp.X), float32(vp.Y), zOverlay)

	lines := []struct {
		text string
		size int
		clr  color.Color
		dy   float64
	}{
		{render.GameOverTitle, titleFontSize, render.Red, -100},
		{render.FinalScoreText(snap.Score), subtitleFontSize, render.White, -20},
		{render.RestartHint, subtitleFontSize, render.Green, 120},
		{render.QuitHint, hintFontSize, render.White, 160},
	}
	for _, l := range lines {
		s := hud.newText(l.text, l.size, l.clr, zOverlayText)
		hud.centreText(s, vp.X/2, vp.Y/2+l.dy)
		hud.overlayTexts = append(hud.overlayTexts, s)
	}
}

func (hud *HUDSystem) clearOverlay() {
	if hud.overlay == nil {
		return
	}
	hud.sink.Remove(hud.overlay.BasicEntity)
	for _, s := range hud.overlayTexts {
		hud.sink.Remove(s.BasicEntity)
	}
	hud.overlay = nil
	hud.overlayTexts = nil
}

// OverlayVisible reports whether the game over overlay is shown.
func (hud *HUDSystem) OverlayVisible() bool {
	return hud.overlay != nil
}

func (hud *HUDSystem) setText(s *sprite, text string) {
	t, ok := s.Drawable.(common.Text)
	if !ok || t.Text == text {
		return
	}
	t.Text = text
	s.Drawable = t
}

// centreText positions a text sprite so its baseline centre is at x, y.
// Without a loaded font the width is unknown and the text starts at x.
func (hud *HUDSystem) centreText(s *sprite, x, y float64) {
	w := float32(0)
	if t, ok := s.Drawable.(common.Text); ok && t.Font != nil {
		w, _, _ = t.Font.TextDimensions(t.Text)
		w = float32(int(w))
	}
	s.Position = engo.Point{X: float32(x) - w/2, Y: float32(y)}
}
