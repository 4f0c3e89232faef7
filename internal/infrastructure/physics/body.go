package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/domain/entity"
)

// BodySpec describes a box-shaped body
type BodySpec struct {
	Width, Height  float64
	Mass           float64
	LinearDamping  float64 // 1/s, applied as v *= 1/(1+dt*damping)
	AngularDamping float64
	Elasticity     float64
	Friction       float64
	LockRotation   bool
	Sensor         bool // reports contacts without a collision response
	Kinematic      bool
}

// Body wraps a Chipmunk body and its single box shape.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	owner entity.ID
	tag   entity.Tag
	kind  entity.BodyKind
	spec  BodySpec

	removed bool
}

var _ entity.Body = (*Body)(nil)

func newBody(owner entity.ID, tag entity.Tag, spec BodySpec, pos cp.Vector) *Body {
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	if spec.Width <= 0 {
		spec.Width = 1
	}
	if spec.Height <= 0 {
		spec.Height = 1
	}
	b := &Body{owner: owner, tag: tag, spec: spec}

	if spec.Kinematic {
		b.body = cp.NewKinematicBody()
		b.kind = entity.BodyKinematic
	} else {
		moment := cp.MomentForBox(spec.Mass, spec.Width, spec.Height)
		if spec.LockRotation {
			moment = cp.INFINITY
		}
		b.body = cp.NewBody(spec.Mass, moment)
		b.kind = entity.BodyDynamic
	}
	b.body.UserData = b
	b.body.SetPosition(pos)

	if spec.LinearDamping > 0 || spec.AngularDamping > 0 {
		lin, ang := spec.LinearDamping, spec.AngularDamping
		b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(body, gravity, damping, dt)
			if lin > 0 {
				body.SetVelocityVector(body.Velocity().Mult(1 / (1 + dt*lin)))
			}
			if ang > 0 {
				body.SetAngularVelocity(body.AngularVelocity() / (1 + dt*ang))
			}
		})
	}

	b.shape = cp.NewBox(b.body, spec.Width, spec.Height, 0)
	b.shape.SetCollisionType(collisionType(tag))
	b.shape.SetSensor(spec.Sensor)
	b.shape.SetElasticity(spec.Elasticity)
	b.shape.SetFriction(spec.Friction)
	return b
}

// Owner returns the entity this body belongs to
func (b *Body) Owner() entity.ID { return b.owner }

// Tag returns the contact-routing tag
func (b *Body) Tag() entity.Tag { return b.tag }

// Spec returns the spec the body was created from
func (b *Body) Spec() BodySpec { return b.spec }

// Angle returns the body rotation in radians
func (b *Body) Angle() float64 { return b.body.Angle() }

func (b *Body) Position() cp.Vector { return b.body.Position() }

func (b *Body) SetPosition(p cp.Vector) { b.body.SetPosition(p) }

func (b *Body) Velocity() cp.Vector { return b.body.Velocity() }

func (b *Body) SetVelocity(v cp.Vector) { b.body.SetVelocityVector(v) }

func (b *Body) AngularVelocity() float64 { return b.body.AngularVelocity() }

// ApplyLinearImpulse applies impulse at worldPoint
func (b *Body) ApplyLinearImpulse(impulse, worldPoint cp.Vector, wake bool) {
	if wake {
		b.WakeUp()
	}
	b.body.ApplyImpulseAtWorldPoint(impulse, worldPoint)
}

// ApplyAngularImpulse adds magnitude/moment to the angular velocity.
// Rotation-locked bodies are unaffected.
func (b *Body) ApplyAngularImpulse(magnitude float64, wake bool) {
	if wake {
		b.WakeUp()
	}
	moment := b.body.Moment()
	if moment <= 0 || moment >= cp.INFINITY {
		return
	}
	b.body.SetAngularVelocity(b.body.AngularVelocity() + magnitude/moment)
}

// WakeUp reactivates the body if the space put it to sleep
func (b *Body) WakeUp() { b.body.Activate() }

func (b *Body) Kind() entity.BodyKind { return b.kind }
