// Package vec provides 2D vector helpers on top of cp.Vector.
//
// All functions take and return values. Nothing here mutates its inputs, so
// a vector read from a body can be passed around without aliasing the
// engine's internal state.
package vec

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-6

// Zero is the zero vector.
var Zero = cp.Vector{}

// Length returns the Euclidean length of v.
func Length(v cp.Vector) float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between a and b.
func Distance(a, b cp.Vector) float64 {
	return Length(cp.Vector{X: b.X - a.X, Y: b.Y - a.Y})
}

// Normalize returns the unit vector in the direction of v.
// Vectors shorter than Epsilon normalize to Zero.
func Normalize(v cp.Vector) cp.Vector {
	l := Length(v)
	if l < Epsilon {
		return Zero
	}
	return cp.Vector{X: v.X / l, Y: v.Y / l}
}

// ClampLength limits v to maxLen while preserving direction.
func ClampLength(v cp.Vector, maxLen float64) cp.Vector {
	l := Length(v)
	if l <= maxLen || l < Epsilon {
		return v
	}
	s := maxLen / l
	return cp.Vector{X: v.X * s, Y: v.Y * s}
}

// Scale multiplies v by s.
func Scale(v cp.Vector, s float64) cp.Vector {
	return cp.Vector{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of a and b.
func Dot(a, b cp.Vector) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Reflect returns d reflected off a surface with normal n.
// d' = d - 2 * dot(d, n) * n, with n normalized first.
func Reflect(d, n cp.Vector) cp.Vector {
	n = Normalize(n)
	k := 2 * Dot(d, n)
	return cp.Vector{X: d.X - k*n.X, Y: d.Y - k*n.Y}
}

// IsZero reports whether v is shorter than Epsilon.
func IsZero(v cp.Vector) bool {
	return Length(v) < Epsilon
}
