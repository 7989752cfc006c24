// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/space-warriors/pkg/physics"
	"github.com/opd-ai/space-warriors/pkg/render"
)

const fontURL = "gomono.ttf"

// Sprite names
const (
	SpritePlayer  = "player"
	SpriteEnemy   = "enemy"
	SpritePowerup = "powerup"
)

// AssetManager builds the game's textures and fonts. Images are generated in
// memory; LoadAssets uploads them and needs a GL context.
type AssetManager struct {
	images  map[string]*image.NRGBA
	sprites map[string]common.Drawable
	fonts   map[int]*common.Font
}

// NewAssetManager creates a new asset manager with its images generated.
func NewAssetManager(playerSize, enemySize physics.Vector2D, powerupSize float64) *AssetManager {
	return &AssetManager{
		images: map[string]*image.NRGBA{
			SpritePlayer:  shipImage(playerSize, render.Blue),
			SpriteEnemy:   shipImage(enemySize, render.Red),
			SpritePowerup: crossImage(int(math.Ceil(powerupSize)), 3, render.Cyan),
		},
		sprites: make(map[string]common.Drawable),
		fonts:   make(map[int]*common.Font),
	}
}

// LoadAssets uploads the generated images and loads the HUD font.
func (am *AssetManager) LoadAssets() error {
	for name, img := range am.images {
		am.sprites[name] = common.NewTextureSingle(common.NewImageObject(img))
	}
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	return nil
}

// Sprite returns a loaded sprite, or nil before LoadAssets.
func (am *AssetManager) Sprite(name string) common.Drawable {
	return am.sprites[name]
}

// Image returns a generated sprite image.
func (am *AssetManager) Image(name string) *image.NRGBA {
	return am.images[name]
}

// Font returns the HUD font at size points, creating it on first use. It
// returns nil if the font has not been loaded.
func (am *AssetManager) Font(size int) *common.Font {
	if f, ok := am.fonts[size]; ok {
		return f
	}
	f := &common.Font{URL: fontURL, FG: color.White, Size: float64(size)}
	if err := f.CreatePreloaded(); err != nil {
		return nil
	}
	am.fonts[size] = f
	return f
}

// shipImage draws a ship triangle with its nose pointing along +X. The image
// is twice the ship's length wide so the hull centre sits at the image centre.
func shipImage(size physics.Vector2D, clr color.RGBA) *image.NRGBA {
	w := int(math.Ceil(size.X * 2))
	h := int(math.Ceil(size.Y))
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))

	center := physics.Vector2D{X: float64(w) / 2, Y: float64(h) / 2}
	tri := render.ShipOutline(center, size, 0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := physics.Vector2D{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if insideTriangle(p, tri) {
				img.Set(x, y, clr)
			}
		}
	}
	return img
}

// crossImage draws a plus sign of the given size and stroke width.
func crossImage(size, stroke int, clr color.RGBA) *image.NRGBA {
	size = max(size, 1)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	lo := (size - stroke) / 2
	hi := lo + stroke
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x >= lo && x < hi) || (y >= lo && y < hi) {
				img.Set(x, y, clr)
			}
		}
	}
	return img
}

func insideTriangle(p physics.Vector2D, t [3]physics.Vector2D) bool {
	d1 := edgeSign(p, t[0], t[1])
	d2 := edgeSign(p, t[1], t[2])
	d3 := edgeSign(p, t[2], t[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(p, a, b physics.Vector2D) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}
