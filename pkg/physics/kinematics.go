package physics

import "math"

// ZeroSnapEpsilon is the magnitude below which decaying motion is forced to zero.
const ZeroSnapEpsilon = 0.01

// ClampLength rescales v so its magnitude does not exceed max.
// Direction is preserved; components are never truncated individually.
func ClampLength(v Vector2D, max float64) Vector2D {
	if v.Length() > max {
		return v.Normalize().Scale(max)
	}
	return v
}

// SnapToZero returns the zero vector when v is shorter than ZeroSnapEpsilon.
func SnapToZero(v Vector2D) Vector2D {
	if v.Length() < ZeroSnapEpsilon {
		return Vector2D{}
	}
	return v
}

// SnapScalar returns 0 when |s| is below ZeroSnapEpsilon.
func SnapScalar(s float64) float64 {
	if math.Abs(s) < ZeroSnapEpsilon {
		return 0
	}
	return s
}

// ClampScalar limits s to [-limit, limit].
func ClampScalar(s, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, s))
}

// Damp applies a per-tick deceleration factor to v and zero-snaps the result.
func Damp(v Vector2D, factor float64) Vector2D {
	return SnapToZero(v.Scale(factor))
}

// AnnulusPoint returns center offset by radius along angle (radians).
func AnnulusPoint(center Vector2D, angle, radius float64) Vector2D {
	return center.Add(FromAngle(angle, radius))
}
