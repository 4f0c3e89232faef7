package entity

import "github.com/jakecoffman/cp"

// Intent is the per-tick input for a controlled actor.
// It is computed once per tick and never mutated afterwards.
type Intent struct {
	Move           cp.Vector // desired direction, each axis in [-1, 1]
	Attack         bool      // attack held
	AttackPressed  bool      // attack pressed this tick
	AttackReleased bool      // attack released this tick
}

// Hit describes an incoming hit on an actor.
type Hit struct {
	Knockback     cp.Vector  // unit direction the actor is pushed
	Impulse       float64    // impulse magnitude; 0 means no shove
	RotationForce float64    // angular impulse applied with the shove
	Point         *cp.Vector // world hit point; nil uses the body position
}
