package entity

import "github.com/jakecoffman/cp"

// ID is a unique identifier for an actor or projectile.
// IDs are never recycled; 0 means "no entity".
type ID uint64

// IDSource hands out monotonically increasing IDs.
type IDSource struct {
	next ID
}

// Next returns a new unique ID
func (s *IDSource) Next() ID {
	s.next++
	return s.next
}

// Tag classifies bodies for contact routing.
type Tag int

const (
	TagNone Tag = iota
	TagPlayer
	TagEnemy
	TagProjectile
	TagWall
)

// String returns the string representation of the tag
func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagEnemy:
		return "enemy"
	case TagProjectile:
		return "projectile"
	case TagWall:
		return "wall"
	default:
		return "none"
	}
}

// Rect is an axis-aligned rectangle anchored at its minimum corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Clamp returns p limited to r.
func (r Rect) Clamp(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: clamp(p.X, r.X, r.X+r.Width),
		Y: clamp(p.Y, r.Y, r.Y+r.Height),
	}
}

// Center returns the middle of r.
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// At maps unit coordinates (u, v in [0,1]) onto r.
func (r Rect) At(u, v float64) cp.Vector {
	return cp.Vector{X: r.X + u*r.Width, Y: r.Y + v*r.Height}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScreenSize is a fixed visible area, centred on the world origin.
type ScreenSize struct {
	Width, Height float64
}

// Size implements Screen
func (s ScreenSize) Size() (float64, float64) {
	return s.Width, s.Height
}
