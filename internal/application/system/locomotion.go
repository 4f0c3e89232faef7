package system

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/domain/vec"
	"github.com/younwookim/arena/internal/infrastructure/config"
)

// TargetPicker chooses a new wander target for an actor
type TargetPicker interface {
	Pick(a *entity.Actor)
}

// LocomotionSystem turns intents and wander targets into body velocity
type LocomotionSystem struct {
	arrivalThreshold float64
	picker           TargetPicker
}

// NewLocomotionSystem creates a new locomotion system
func NewLocomotionSystem(cfg config.LocomotionConfig, picker TargetPicker) *LocomotionSystem {
	return &LocomotionSystem{
		arrivalThreshold: cfg.ArrivalThreshold,
		picker:           picker,
	}
}

// Update sets the actor's velocity for this tick
func (s *LocomotionSystem) Update(a *entity.Actor, intent entity.Intent, dt float64) {
	if a == nil || !a.IsActive() || a.Control == entity.ControlFree {
		return
	}
	if a.Recoil > 0 {
		a.Recoil -= dt
		return
	}

	switch a.State {
	case entity.StateAttacking:
		if a.LockMoveOnAttack {
			s.stop(a)
			return
		}
	case entity.StateHit:
		// Knockback owns the velocity until the hit clip ends
		return
	}

	switch a.Control {
	case entity.ControlInput:
		s.applyDirection(a, intent.Move, dt)
	case entity.ControlWander:
		s.seekTarget(a, dt)
	}
}

// applyDirection moves along the normalized dir at move speed
func (s *LocomotionSystem) applyDirection(a *entity.Actor, dir cp.Vector, dt float64) {
	vel := vec.Scale(vec.Normalize(dir), a.MoveSpeed)
	s.move(a, vel, dt)
}

func (s *LocomotionSystem) seekTarget(a *entity.Actor, dt float64) {
	if !a.HasTarget {
		s.stop(a)
		s.pick(a)
		return
	}

	delta := a.Target.Sub(a.Position())
	dist := vec.Length(delta)
	if dist < s.arrivalThreshold {
		s.stop(a)
		s.pick(a)
		return
	}

	vel := vec.Scale(vec.Normalize(delta), a.MoveSpeed)
	if a.Body == nil && a.MoveSpeed*dt > dist {
		// Land on the target instead of overshooting it
		a.Pos = a.MoveRange.Clamp(a.Target)
		return
	}
	s.move(a, vel, dt)
}

func (s *LocomotionSystem) pick(a *entity.Actor) {
	if s.picker != nil {
		s.picker.Pick(a)
	}
}

// move sets body velocity, or integrates and clamps position for body-less actors
func (s *LocomotionSystem) move(a *entity.Actor, vel cp.Vector, dt float64) {
	if a.Body != nil {
		a.Body.SetVelocity(vel)
		return
	}
	a.Pos = a.MoveRange.Clamp(a.Pos.Add(vel.Mult(dt)))
}

func (s *LocomotionSystem) stop(a *entity.Actor) {
	if a.Body != nil {
		a.Body.SetVelocity(vec.Zero)
	}
}
