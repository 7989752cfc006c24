package render

import (
	"math"
	"testing"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/physics"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecAlmostEqual(a, b physics.Vector2D) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestNewLayout_PlacesHUD(t *testing.T) {
	cfg := config.DefaultConfig()
	layout := NewLayout(physics.Vector2D{X: 1600, Y: 900}, cfg.Frontend)

	expectedMinimap := Rect{X: 1460, Y: 20, W: 120, H: 120}
	if layout.Minimap != expectedMinimap {
		t.Errorf("Minimap = %+v, expected %+v", layout.Minimap, expectedMinimap)
	}
	expectedHealth := Rect{X: 30, Y: 25, W: 100, H: 10}
	if layout.HealthBar != expectedHealth {
		t.Errorf("HealthBar = %+v, expected %+v", layout.HealthBar, expectedHealth)
	}
	if layout.Score != (physics.Vector2D{X: 10, Y: 860}) {
		t.Errorf("Score = %v, expected {10 860}", layout.Score)
	}
}

func TestLayout_MinimapPoint(t *testing.T) {
	cfg := config.DefaultConfig()
	layout := NewLayout(physics.Vector2D{X: 1600, Y: 900}, cfg.Frontend)
	snap := &engine.Snapshot{Player: engine.PlayerState{Position: physics.Vector2D{X: 400, Y: 400}}}

	tests := []struct {
		name     string
		world    physics.Vector2D
		expected physics.Vector2D
		inside   bool
	}{
		{"player at centre", physics.Vector2D{X: 400, Y: 400}, physics.Vector2D{X: 1520, Y: 80}, true},
		{"scaled offset", physics.Vector2D{X: 1400, Y: -100}, physics.Vector2D{X: 1540, Y: 70}, true},
		{"on the frame is outside", physics.Vector2D{X: 3400, Y: 400}, physics.Vector2D{X: 1580, Y: 80}, false},
		{"far away", physics.Vector2D{X: 400, Y: 9000}, physics.Vector2D{X: 1520, Y: 252}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, inside := layout.MinimapPoint(snap, tt.world)
			if !vecAlmostEqual(p, tt.expected) {
				t.Errorf("MinimapPoint() = %v, expected %v", p, tt.expected)
			}
			if inside != tt.inside {
				t.Errorf("MinimapPoint() inside = %v, expected %v", inside, tt.inside)
			}
		})
	}
}

func TestRect_Fill(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 100, H: 6}

	tests := []struct {
		ratio    float64
		expected float64
	}{
		{0.5, 50},
		{1, 100},
		{1.7, 100},
		{-0.2, 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := r.Fill(tt.ratio).W; !almostEqual(got, tt.expected) {
			t.Errorf("Fill(%v).W = %v, expected %v", tt.ratio, got, tt.expected)
		}
	}
}

func TestOnScreen(t *testing.T) {
	viewport := physics.Vector2D{X: 1600, Y: 900}

	tests := []struct {
		screen   physics.Vector2D
		margin   float64
		expected bool
	}{
		{physics.Vector2D{X: 800, Y: 450}, 0, true},
		{physics.Vector2D{X: -10, Y: 450}, 20, true},
		{physics.Vector2D{X: -30, Y: 450}, 20, false},
		{physics.Vector2D{X: 800, Y: 1000}, 50, false},
	}

	for _, tt := range tests {
		if got := OnScreen(tt.screen, viewport, tt.margin); got != tt.expected {
			t.Errorf("OnScreen(%v, %v) = %v, expected %v", tt.screen, tt.margin, got, tt.expected)
		}
	}
}

func TestShipOutline_NoseFollowsAngle(t *testing.T) {
	pos := physics.Vector2D{X: 100, Y: 100}
	size := physics.Vector2D{X: 30, Y: 15}

	tests := []struct {
		angle    float64
		expected physics.Vector2D
	}{
		{0, physics.Vector2D{X: 130, Y: 100}},
		{90, physics.Vector2D{X: 100, Y: 130}},
		{180, physics.Vector2D{X: 70, Y: 100}},
	}

	for _, tt := range tests {
		nose := ShipOutline(pos, size, tt.angle)[0]
		if math.Abs(nose.X-tt.expected.X) > 1e-6 || math.Abs(nose.Y-tt.expected.Y) > 1e-6 {
			t.Errorf("ShipOutline(angle %v) nose = %v, expected %v", tt.angle, nose, tt.expected)
		}
	}
}

func TestProjectileSegment(t *testing.T) {
	start, end, ok := ProjectileSegment(physics.Vector2D{}, physics.Vector2D{X: 25}, 10)
	if !ok {
		t.Fatal("ProjectileSegment() ok = false for a moving projectile")
	}
	if !vecAlmostEqual(start, physics.Vector2D{X: -5}) || !vecAlmostEqual(end, physics.Vector2D{X: 5}) {
		t.Errorf("ProjectileSegment() = %v, %v, expected {-5 0}, {5 0}", start, end)
	}

	if _, _, ok := ProjectileSegment(physics.Vector2D{}, physics.Vector2D{}, 10); ok {
		t.Error("ProjectileSegment() ok = true for a stationary projectile")
	}
}

func TestFlashAlpha(t *testing.T) {
	tests := []struct {
		flash, duration int
		expected        float64
	}{
		{10, 10, 0.4},
		{5, 10, 0.2},
		{0, 10, 0},
		{3, 0, 0},
	}

	for _, tt := range tests {
		if got := FlashAlpha(tt.flash, tt.duration); !almostEqual(got, tt.expected) {
			t.Errorf("FlashAlpha(%d, %d) = %v, expected %v", tt.flash, tt.duration, got, tt.expected)
		}
	}
}

func TestScoreText(t *testing.T) {
	if got := ScoreText(120); got != "Score: 120" {
		t.Errorf("ScoreText(120) = %q, expected %q", got, "Score: 120")
	}
	if got := FinalScoreText(60); got != "Final Score: 60" {
		t.Errorf("FinalScoreText(60) = %q, expected %q", got, "Final Score: 60")
	}
}
