package entity

import (
	"github.com/opd-ai/space-warriors/pkg/physics"
)

// Star is a static background point. It never moves and takes no part in
// collisions.
type Star struct {
	Position physics.Vector2D
	Radius   int
}

// GenerateStarField scatters count stars uniformly over a square of side
// extent centred on the origin. Radii are uniform integers in [1, 3].
func GenerateStarField(rng Rand, count int, extent float64) []Star {
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = Star{
			Position: physics.Vector2D{
				X: (rng.Float64() - 0.5) * extent,
				Y: (rng.Float64() - 0.5) * extent,
			},
			Radius: rng.IntN(3) + 1,
		}
	}
	return stars
}
