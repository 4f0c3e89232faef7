// Package physics adapts the Chipmunk2D space to the combat core.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/domain/entity"
)

// ContactFunc receives collision-begin reports. It runs inside Step, while the
// space is locked: it must not mutate bodies or the space.
type ContactFunc func(c entity.Contact)

// World owns a gravity-free Chipmunk space.
type World struct {
	space  *cp.Space
	bodies int
	walls  []*cp.Shape
}

// NewWorld creates an empty top-down world
func NewWorld() *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &World{space: space}
}

func collisionType(tag entity.Tag) cp.CollisionType {
	return cp.CollisionType(tag)
}

// AddBody creates a box body at pos and adds it to the space
func (w *World) AddBody(owner entity.ID, tag entity.Tag, spec BodySpec, pos cp.Vector) *Body {
	b := newBody(owner, tag, spec, pos)
	w.space.AddBody(b.body)
	w.space.AddShape(b.shape)
	w.bodies++
	return b
}

// AddWall adds a static segment from a to b tagged as a wall
func (w *World) AddWall(a, b cp.Vector, radius float64) {
	seg := cp.NewSegment(w.space.StaticBody, a, b, radius)
	seg.SetCollisionType(collisionType(entity.TagWall))
	seg.SetElasticity(1)
	seg.SetFriction(0)
	w.space.AddShape(seg)
	w.walls = append(w.walls, seg)
}

// Remove takes b out of the space. Removing twice is a no-op.
// Must not be called from a ContactFunc.
func (w *World) Remove(b *Body) {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	w.bodies--
}

// OnContact routes collision-begin events between tagA and tagB shapes to fn.
// Self in the delivered contact is always the tagA side.
func (w *World) OnContact(tagA, tagB entity.Tag, fn ContactFunc) {
	handler := w.space.NewCollisionHandler(collisionType(tagA), collisionType(tagB))
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		fn(contactFromArbiter(arb, tagA, tagB))
		return true
	}
}

func contactFromArbiter(arb *cp.Arbiter, tagA, tagB entity.Tag) entity.Contact {
	c := entity.Contact{
		SelfTag:  tagA,
		OtherTag: tagB,
		Normal:   arb.Normal(),
	}

	a, b := arb.Bodies()
	if self, ok := a.UserData.(*Body); ok {
		c.Self = self
		c.SelfOwner = self.owner
	}
	if other, ok := b.UserData.(*Body); ok {
		c.Other = other
		c.OtherOwner = other.owner
	}

	set := arb.ContactPointSet()
	if set.Count > 0 {
		c.Point = set.Points[0].PointA
		c.OtherPoint = set.Points[0].PointB
		c.HasPoint = true
	}
	return c
}

// Step advances the simulation by dt seconds
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// BodyCount returns the number of dynamic and kinematic bodies in the space
func (w *World) BodyCount() int {
	return w.bodies
}

// Walls returns the endpoints of every wall segment
func (w *World) Walls() [][2]cp.Vector {
	out := make([][2]cp.Vector, 0, len(w.walls))
	for _, s := range w.walls {
		seg := s.Class.(*cp.Segment)
		out = append(out, [2]cp.Vector{seg.A(), seg.B()})
	}
	return out
}
