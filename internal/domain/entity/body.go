package entity

import "github.com/jakecoffman/cp"

// BodyKind is the physics classification of a body
type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyKinematic
)

// Body is a rigid body owned by the physics engine.
//
// The combat core reads and writes velocity and applies impulses. Position is
// only written for bodies the core moves itself (projectiles, spawn
// placement), never for physics-driven actors.
type Body interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	AngularVelocity() float64

	// ApplyLinearImpulse applies impulse at a world point, waking the body first if wake is set.
	ApplyLinearImpulse(impulse, worldPoint cp.Vector, wake bool)
	// ApplyAngularImpulse changes angular momentum by magnitude.
	ApplyAngularImpulse(magnitude float64, wake bool)
	// WakeUp reactivates a sleeping body.
	WakeUp()

	Kind() BodyKind
}
