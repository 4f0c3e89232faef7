package entity

import "github.com/jakecoffman/cp"

// Clips names the animation clips an actor plays
type Clips struct {
	Idle   string
	Attack string
	Hit    string
}

// Actor is a combatant: a body plus combat state and movement settings.
type Actor struct {
	ID   ID
	Type string // config key, e.g. "player" or "slime"
	Tag  Tag

	// Body is nil for actors moved without physics; Pos is used instead.
	Body Body
	Pos  cp.Vector

	State   CombatState
	Control Control

	MoveRange Rect
	MoveSpeed float64

	// Timers (seconds)
	AttackInterval float64 // periodic attack cadence, 0 = never
	MoveInterval   float64 // wander retarget interval, 0 = only on arrival
	FireInterval   float64 // continuous-fire cadence while attack is held

	ContinuousFire   bool
	LockMoveOnAttack bool
	Bounces          bool // reflects off walls (free-physics variant)

	Animator Animator
	Clips    Clips

	// Projectile firing; empty ProjectileType means melee/no projectile
	ProjectileType string
	ShootOffset    *cp.Vector
	Facing         float64 // radians, 0 = +X

	// Wander target
	Target    cp.Vector
	HasTarget bool

	// Recoil counts down the seconds locomotion leaves the body to physics
	// after a knockback this actor initiated.
	Recoil float64
}

// Position returns the body position, or Pos for body-less actors
func (a *Actor) Position() cp.Vector {
	if a.Body != nil {
		return a.Body.Position()
	}
	return a.Pos
}

// Velocity returns the body velocity, zero for body-less actors
func (a *Actor) Velocity() cp.Vector {
	if a.Body != nil {
		return a.Body.Velocity()
	}
	return cp.Vector{}
}

// FiresProjectiles reports whether attacking spawns a projectile
func (a *Actor) FiresProjectiles() bool {
	return a.ProjectileType != ""
}

// IsActive returns true until the actor is torn down
func (a *Actor) IsActive() bool {
	return a.State != StateDisabled
}

// ShootPoint returns the world-space spawn point for projectiles
func (a *Actor) ShootPoint() (cp.Vector, bool) {
	if a.ShootOffset == nil {
		return cp.Vector{}, false
	}
	return a.Position().Add(a.ShootOffset.Rotate(cp.ForAngle(a.Facing))), true
}
