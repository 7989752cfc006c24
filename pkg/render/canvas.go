// pkg/render/canvas.go
package render

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/entity"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Color is a terminal foreground colour.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWhite
	ColorGray
	ColorBlue
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
)

// Cell is one character on the canvas.
type Cell struct {
	Rune  rune
	Color Color
}

const (
	hudBarWidth    = 10
	minimapCols    = 17
	minimapRows    = 7
	overlayPadding = 2
)

// Canvas rasterises snapshots onto a grid of character cells. The player is
// kept at the centre; each cell covers cellWidth by cellHeight world units.
type Canvas struct {
	width        int
	height       int
	cells        []Cell
	cellWidth    float64
	cellHeight   float64
	minimapSize  float64
	minimapScale float64

	// Flash is set while the last rasterised snapshot had a damage flash.
	Flash bool
}

// NewCanvas creates a canvas of width by height cells.
func NewCanvas(width, height int, cfg config.FrontendConfig) *Canvas {
	c := &Canvas{
		cellWidth:    cfg.CellWidth,
		cellHeight:   cfg.CellHeight,
		minimapSize:  cfg.MinimapSize,
		minimapScale: cfg.MinimapScale,
	}
	c.Resize(width, height)
	return c
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Resize changes the canvas dimensions and clears it.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != c.width || height != c.height || c.cells == nil {
		c.width = width
		c.height = height
		c.cells = make([]Cell, width*height)
	}
	c.Clear()
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' '}
	}
}

// Set writes one cell. Writes outside the canvas are ignored.
func (c *Canvas) Set(x, y int, r rune, col Color) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Color: col}
	return true
}

// At returns the cell at x, y, or a blank cell outside the canvas.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.width+x]
}

// Row returns the text of row y.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
		b.WriteRune(cell.Rune)
	}
	return b.String()
}

// Text writes s starting at x, y.
func (c *Canvas) Text(x, y int, s string, col Color) {
	for _, r := range s {
		c.Set(x, y, r, col)
		x++
	}
}

// CenterText writes s centred on row y.
func (c *Canvas) CenterText(y int, s string, col Color) {
	c.Text((c.width-utf8.RuneCountInString(s))/2, y, s, col)
}

// Rasterize draws a full frame for snap.
func (c *Canvas) Rasterize(snap *engine.Snapshot) {
	c.Clear()
	c.Flash = snap.DamageFlash > 0

	center := snap.Player.Position
	for _, s := range snap.Stars {
		glyph := '.'
		if s.Radius > 1 {
			glyph = '*'
		}
		c.plot(center, s.Position, glyph, ColorYellow)
	}
	for _, e := range snap.Enemies {
		glyph := 'X'
		if e.Health*2 < e.MaxHealth {
			glyph = 'x'
		}
		c.plot(center, e.Position, glyph, ColorRed)
	}
	c.plot(center, center, DirectionGlyph(snap.Player.Angle), ColorBlue)
	for _, p := range snap.PlayerProjectiles {
		c.plot(center, p.Position, LineGlyph(p.Velocity), ColorWhite)
	}
	for _, p := range snap.EnemyProjectiles {
		c.plot(center, p.Position, LineGlyph(p.Velocity), ColorRed)
	}
	for _, pu := range snap.Powerups {
		if pu.Kind == entity.TripleShot {
			c.plot(center, pu.Position, '+', ColorCyan)
		}
	}

	c.drawHUD(snap)
	c.drawMinimap(snap)
	if snap.GameOver() {
		c.drawGameOver(snap)
	}
}

func (c *Canvas) plot(center, pos physics.Vector2D, r rune, col Color) {
	if c.cellWidth <= 0 || c.cellHeight <= 0 {
		return
	}
	x := int(math.Floor((pos.X-center.X)/c.cellWidth)) + c.width/2
	y := int(math.Floor((pos.Y-center.Y)/c.cellHeight)) + c.height/2
	// Row 0 holds the HUD.
	if y < 1 {
		return
	}
	c.Set(x, y, r, col)
}

func (c *Canvas) drawHUD(snap *engine.Snapshot) {
	for x := 0; x < c.width; x++ {
		c.Set(x, 0, ' ', ColorDefault)
	}
	c.Text(0, 0, "HP "+Bar(snap.HealthRatio(), hudBarWidth), ColorGreen)
	c.Text(hudBarWidth+5, 0, "3x "+Bar(snap.TripleShotRatio(), hudBarWidth), ColorCyan)
	c.Text(0, c.height-1, ScoreText(snap.Score), ColorWhite)
}

func (c *Canvas) drawMinimap(snap *engine.Snapshot) {
	if c.minimapSize <= 0 || c.width < minimapCols+2 || c.height < minimapRows+3 {
		return
	}
	left := c.width - minimapCols - 2
	top := 1
	right := left + minimapCols + 1
	bottom := top + minimapRows + 1

	for x := left; x <= right; x++ {
		for y := top; y <= bottom; y++ {
			edge := x == left || x == right || y == top || y == bottom
			switch {
			case (x == left || x == right) && (y == top || y == bottom):
				c.Set(x, y, '+', ColorWhite)
			case edge && (y == top || y == bottom):
				c.Set(x, y, '-', ColorWhite)
			case edge:
				c.Set(x, y, '|', ColorWhite)
			default:
				c.Set(x, y, ' ', ColorDefault)
			}
		}
	}

	half := c.minimapSize / 2
	for _, e := range snap.Enemies {
		rel := snap.Minimap(e.Position, c.minimapScale)
		if math.Abs(rel.X) >= half || math.Abs(rel.Y) >= half {
			continue
		}
		col := int(math.Floor((rel.X + half) / c.minimapSize * minimapCols))
		row := int(math.Floor((rel.Y + half) / c.minimapSize * minimapRows))
		c.Set(left+1+col, top+1+row, 'o', ColorRed)
	}
	c.Set(left+1+minimapCols/2, top+1+minimapRows/2, '@', ColorBlue)
}

func (c *Canvas) drawGameOver(snap *engine.Snapshot) {
	lines := []struct {
		text  string
		color Color
	}{
		{GameOverTitle, ColorRed},
		{FinalScoreText(snap.Score), ColorWhite},
		{RestartHint, ColorGreen},
		{QuitHint, ColorWhite},
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l.text))
	}
	width += overlayPadding * 2
	height := len(lines)*2 + 1
	left := (c.width - width) / 2
	top := (c.height - height) / 2

	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			c.Set(x, y, ' ', ColorDefault)
		}
	}
	for i, l := range lines {
		c.CenterText(top+1+i*2, l.text, l.color)
	}
}

// Bar renders ratio as a fixed-width text bar.
func Bar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(clampRatio(ratio) * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

var directionGlyphs = [8]rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}

// DirectionGlyph returns an arrow for a heading in degrees. Screen y grows
// downward, so 90 degrees points down.
func DirectionGlyph(angle float64) rune {
	return directionGlyphs[octant(angle)]
}

var lineGlyphs = [4]rune{'-', '\\', '|', '/'}

// LineGlyph returns a streak character aligned with a velocity.
func LineGlyph(vel physics.Vector2D) rune {
	if vel.IsZero() {
		return '*'
	}
	return lineGlyphs[octant(physics.RadiansToDegrees(vel.Angle()))%4]
}

func octant(angle float64) int {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return int(math.Round(a/45)) % 8
}
