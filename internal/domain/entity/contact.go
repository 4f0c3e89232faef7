package entity

import "github.com/jakecoffman/cp"

// Contact is a collision-begin report from the physics engine.
// It is only valid for the duration of the callback that delivers it.
type Contact struct {
	Self       Body
	Other      Body // nil for static geometry such as walls
	SelfOwner  ID
	OtherOwner ID
	SelfTag    Tag
	OtherTag   Tag

	// Normal points from Self towards Other. Zero when the solver gave none.
	Normal cp.Vector
	// Point is the world contact point on Self; valid when HasPoint is set.
	Point    cp.Vector
	HasPoint bool
	// OtherPoint is the world contact point on Other.
	OtherPoint cp.Vector
}
