package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/space-warriors/pkg/physics"
)

func TestCamera_Follow(t *testing.T) {
	c := NewCamera(physics.Vector2D{X: 100, Y: 100})
	snap := testSnapshot()
	c.Follow(snap)

	if got := c.Offset(); got != snap.Camera {
		t.Errorf("Offset() = %v, expected %v", got, snap.Camera)
	}

	tests := []struct {
		name     string
		world    physics.Vector2D
		expected engo.Point
	}{
		{"top left", physics.Vector2D{X: 600, Y: 700}, engo.Point{X: 0, Y: 0}},
		{"player", physics.Vector2D{X: 1000, Y: 1000}, engo.Point{X: 400, Y: 300}},
		{"off screen", physics.Vector2D{X: 500, Y: 650}, engo.Point{X: -100, Y: -50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.WorldToScreen(tt.world); got != tt.expected {
				t.Errorf("WorldToScreen(%v) = %v, expected %v", tt.world, got, tt.expected)
			}
		})
	}
}

func TestCamera_Visible(t *testing.T) {
	c := NewCamera(physics.Vector2D{X: 800, Y: 600})
	c.Follow(testSnapshot())

	tests := []struct {
		name     string
		world    physics.Vector2D
		margin   float64
		expected bool
	}{
		{"centre", physics.Vector2D{X: 1000, Y: 1000}, 0, true},
		{"inside margin", physics.Vector2D{X: 580, Y: 700}, 50, true},
		{"outside margin", physics.Vector2D{X: 540, Y: 700}, 50, false},
		{"far right", physics.Vector2D{X: 1500, Y: 1000}, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Visible(tt.world, tt.margin); got != tt.expected {
				t.Errorf("Visible(%v, %v) = %v, expected %v", tt.world, tt.margin, got, tt.expected)
			}
		})
	}
}
