package math

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Clamp returns the value f clamped to the range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// WrapDegrees folds an angle into [0, 360). Non-finite input yields NaN.
func WrapDegrees(degrees float32) float32 {
	d := math32.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	// tiny negative angles round up to 360 in float32
	if d >= 360 {
		d -= 360
	}
	return d
}

// WrapDegreesVec3 applies WrapDegrees to each component.
func WrapDegreesVec3(v Vec3) Vec3 {
	return Vec3{WrapDegrees(v.X), WrapDegrees(v.Y), WrapDegrees(v.Z)}
}
