package engo

import (
	"testing"

	"github.com/opd-ai/space-warriors/pkg/physics"
	"github.com/opd-ai/space-warriors/pkg/render"
)

func TestNewAssetManager(t *testing.T) {
	am := NewAssetManager(physics.Vector2D{X: 64, Y: 60}, physics.Vector2D{X: 20, Y: 12}, 12)

	tests := []struct {
		name          string
		width, height int
	}{
		{SpritePlayer, 128, 60},
		{SpriteEnemy, 40, 12},
		{SpritePowerup, 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := am.Image(tt.name)
			if img == nil {
				t.Fatalf("Image(%q) = nil", tt.name)
			}
			b := img.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("Image(%q) size = %dx%d, expected %dx%d", tt.name, b.Dx(), b.Dy(), tt.width, tt.height)
			}
			if am.Sprite(tt.name) != nil {
				t.Errorf("Sprite(%q) before LoadAssets should be nil", tt.name)
			}
		})
	}
}

func TestShipImage_Shape(t *testing.T) {
	img := shipImage(physics.Vector2D{X: 20, Y: 10}, render.Red)

	// Hull centre and a point just behind the nose are filled.
	for _, p := range [][2]int{{20, 5}, {30, 5}} {
		if a := img.NRGBAAt(p[0], p[1]).A; a == 0 {
			t.Errorf("pixel %v should be inside the hull", p)
		}
	}
	// Corners are outside the triangle.
	for _, p := range [][2]int{{0, 0}, {39, 0}, {39, 9}} {
		if a := img.NRGBAAt(p[0], p[1]).A; a != 0 {
			t.Errorf("pixel %v should be transparent", p)
		}
	}
	if got := img.NRGBAAt(20, 5); got.R != render.Red.R || got.B != render.Red.B {
		t.Errorf("hull colour = %v, expected %v", got, render.Red)
	}
}

func TestCrossImage(t *testing.T) {
	img := crossImage(9, 3, render.Cyan)

	tests := []struct {
		x, y   int
		filled bool
	}{
		{4, 0, true},
		{0, 4, true},
		{4, 4, true},
		{8, 4, true},
		{0, 0, false},
		{8, 8, false},
		{2, 2, false},
	}

	for _, tt := range tests {
		filled := img.NRGBAAt(tt.x, tt.y).A != 0
		if filled != tt.filled {
			t.Errorf("pixel (%d, %d) filled = %v, expected %v", tt.x, tt.y, filled, tt.filled)
		}
	}
}

func TestInsideTriangle(t *testing.T) {
	tri := [3]physics.Vector2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}

	tests := []struct {
		name     string
		p        physics.Vector2D
		expected bool
	}{
		{"inside", physics.Vector2D{X: 2, Y: 2}, true},
		{"vertex", physics.Vector2D{X: 0, Y: 0}, true},
		{"edge", physics.Vector2D{X: 5, Y: 0}, true},
		{"outside", physics.Vector2D{X: 8, Y: 8}, false},
		{"negative", physics.Vector2D{X: -1, Y: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := insideTriangle(tt.p, tri); got != tt.expected {
				t.Errorf("insideTriangle(%v) = %v, expected %v", tt.p, got, tt.expected)
			}
		})
	}
}
