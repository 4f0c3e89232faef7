package entity

import "github.com/jakecoffman/cp"

// ProjectileSpec holds the tuning a projectile is created from
type ProjectileSpec struct {
	Speed          float64 // units per second along the travel direction
	Lifetime       float64 // seconds
	KnockbackForce float64
	RotationForce  float64
	Width, Height  float64 // footprint used for screen culling
}

// Projectile is a shot fired by an actor. It travels along its local +X axis.
type Projectile struct {
	ID    ID
	Owner ID
	Type  string

	// Body is nil in headless use; Pos is used instead.
	Body Body
	Pos  cp.Vector

	Direction cp.Vector // unit travel direction (local +X rotated into world)
	ProjectileSpec

	Age        float64
	Destroying bool // destruction requested, waiting for the next quantum
}

// NewProjectile creates a projectile at pos heading along angle (radians)
func NewProjectile(id, owner ID, pos cp.Vector, angle float64, spec ProjectileSpec) *Projectile {
	return &Projectile{
		ID:             id,
		Owner:          owner,
		Pos:            pos,
		Direction:      cp.ForAngle(angle),
		ProjectileSpec: spec,
	}
}

// Position returns the projectile's world position
func (p *Projectile) Position() cp.Vector {
	if p.Body != nil {
		return p.Body.Position()
	}
	return p.Pos
}

// SetPosition moves the projectile
func (p *Projectile) SetPosition(pos cp.Vector) {
	p.Pos = pos
	if p.Body != nil {
		p.Body.SetPosition(pos)
	}
}

// Tick accumulates dt and reports whether the lifetime has been reached
func (p *Projectile) Tick(dt float64) (expired bool) {
	p.Age += dt
	return p.Age >= p.Lifetime
}

// Translate moves the projectile speed*dt along its travel direction
func (p *Projectile) Translate(dt float64) {
	p.SetPosition(p.Position().Add(p.Direction.Mult(p.Speed * dt)))
}

// OutOfScreen reports whether the projectile is fully outside a screen of the
// given size centred on the origin. A projectile exactly on the bound is
// still on screen.
func (p *Projectile) OutOfScreen(screenW, screenH float64) bool {
	return OutOfBounds(p.Position(), screenW, screenH, p.Width, p.Height)
}

// OutOfBounds reports whether a footprint of w x h centred at pos lies
// strictly beyond the screen's half extents plus its own half extents.
func OutOfBounds(pos cp.Vector, screenW, screenH, w, h float64) bool {
	right := screenW/2 + w/2
	top := screenH/2 + h/2
	return pos.X > right || pos.X < -right || pos.Y > top || pos.Y < -top
}
