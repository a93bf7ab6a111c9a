package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	FullTurn = 2 * math32.Pi
	HalfTurn = math32.Pi
	// Degree is one degree in radians.
	Degree = math32.Pi / 180
)

// NormalizeAngle wraps an angle in radians into [0, 2π).
func NormalizeAngle(a float32) float32 {
	a = math32.Mod(a, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	if a >= FullTurn {
		a = 0
	}
	return a
}

// NormalizeSigned wraps an angle in radians into [-π, π).
func NormalizeSigned(a float32) float32 {
	if a >= -HalfTurn && a < HalfTurn {
		return a
	}
	a = NormalizeAngle(a + HalfTurn)
	return a - HalfTurn
}

// ClampAngle normalizes the angle into [-π, π) and then limits its magnitude to max.
func ClampAngle(a, max float32) float32 {
	a = NormalizeSigned(a)
	if a < -max {
		return -max
	} else if a > max {
		return max
	}
	return a
}

// VecAngle returns the signed angle, counter-clockwise positive, between the +Y axis and v. The +Y axis
// is the forward direction of a player with zero yaw, so the result is directly comparable with yaw.
func VecAngle(v mgl32.Vec2) float32 {
	return math32.Atan2(-v.X(), v.Y())
}

// HzLen returns the length of the horizontal (XY) part of the vector.
func HzLen(v mgl32.Vec3) float32 {
	return math32.Hypot(v.X(), v.Y())
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}
