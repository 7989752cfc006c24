// pkg/physics/collision.go
package physics

// Circle represents a circular proximity shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Contains reports whether point lies strictly inside the circle.
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.Distance(point) < c.Radius
}

// Collides checks if two circles are overlapping
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Within reports whether a and b are closer than radius.
func Within(a, b Vector2D, radius float64) bool {
	return a.Distance(b) < radius
}
