package world

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
)

// RigidBody is the physics body a character controller drives. The host's solver owns the body and may
// alter its velocity between writes, so the velocity read back is authoritative.
type RigidBody interface {
	Velocity() mgl32.Vec3
	SetVelocity(v mgl32.Vec3)
	Position() mgl32.Vec3
}

// CollisionFeed reports the contact normals produced by the physics tick that just completed. The host
// clears the set between ticks.
type CollisionFeed interface {
	Contacts() iter.Seq[mgl32.Vec3]
}

// RaycastHit is the result of a successful ray cast.
type RaycastHit struct {
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Collider string
}

// BoxcastHit is the result of a successful box cast. Distance is how far the box travelled along the cast
// direction before touching the collider.
type BoxcastHit struct {
	Distance float32
	Normal   mgl32.Vec3
	Collider string
}

// Raycaster casts rays against the scene.
type Raycaster interface {
	// Raycast casts a ray from origin along direction for at most maxDistance, only considering colliders
	// on layers included in mask.
	Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask LayerMask) (RaycastHit, bool)
}

// BoxCaster sweeps oriented boxes through the scene.
type BoxCaster interface {
	// BoxCast sweeps a box with the given half extents and rotation from origin along direction for at
	// most maxDistance, only considering colliders on layers included in mask. Colliders the box
	// overlaps at its starting position are ignored.
	BoxCast(origin, halfExtents, direction mgl32.Vec3, rotation mgl32.Quat, maxDistance float32, mask LayerMask) (BoxcastHit, bool)
}
