package world

import (
	"iter"
	"slices"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/utils"
)

// Body is a kinematic box body moved through a World. Each call to Simulate integrates gravity, resolves
// collisions axis by axis against the world's colliders and records the normal of every contact that
// stopped the body, which is what a character controller consumes on the next physics tick.
type Body struct {
	world *World
	mask  LayerMask

	pos         mgl32.Vec3
	vel         mgl32.Vec3
	halfExtents mgl32.Vec3
	gravity     float32

	contacts []mgl32.Vec3

	cache  *utils.BBoxCache
	tick   int64
	lastDt float32
}

const (
	// broadPhaseMargin is how far around its swept box a body looks up colliders.
	broadPhaseMargin = 1
	// broadPhaseThreshold is the movement, in position or velocity, after which cached colliders are looked up again.
	broadPhaseThreshold = 0.1
	// broadPhaseMaxAge is the amount of ticks cached colliders are reused for.
	broadPhaseMaxAge = 2
)

// Compile-time interface compliance checks.
var (
	_ RigidBody     = (*Body)(nil)
	_ CollisionFeed = (*Body)(nil)
)

// NewBody returns a body centered on pos that collides with the colliders of w on the layers in mask.
func NewBody(w *World, pos, halfExtents mgl32.Vec3, mask LayerMask, gravity float32) *Body {
	return &Body{
		world:       w,
		mask:        mask,
		pos:         pos,
		halfExtents: halfExtents,
		gravity:     gravity,
		cache:       utils.NewBBoxCache(broadPhaseThreshold, broadPhaseMaxAge),
	}
}

func (b *Body) Position() mgl32.Vec3 {
	return b.pos
}

func (b *Body) Velocity() mgl32.Vec3 {
	return b.vel
}

func (b *Body) SetVelocity(v mgl32.Vec3) {
	b.vel = v
}

// Teleport moves the body to pos without sweeping it through the world.
func (b *Body) Teleport(pos mgl32.Vec3) {
	b.pos = pos
	b.cache.Invalidate()
}

// CacheStats returns the statistics of the broad phase collider cache of the body.
func (b *Body) CacheStats() utils.BBoxCacheStats {
	return b.cache.Stats()
}

// Contacts returns the contact normals recorded by the last call to Simulate.
func (b *Body) Contacts() iter.Seq[mgl32.Vec3] {
	return slices.Values(b.contacts)
}

// BoundingBox returns the bounding box of the body at its current position.
func (b *Body) BoundingBox() cube.BBox {
	lo, hi := b.pos.Sub(b.halfExtents), b.pos.Add(b.halfExtents)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// Simulate advances the body by dt seconds.
func (b *Body) Simulate(dt float32) {
	b.contacts = b.contacts[:0]
	b.vel[1] += b.gravity * dt

	box := b.BoundingBox()
	delta := b.vel.Mul(dt)
	boxes := b.nearbyBoxes(box, delta, dt)

	// Vertical movement is resolved first so that a body resting on the ground slides freely.
	for _, axis := range [3]int{1, 0, 2} {
		var step mgl32.Vec3
		step[axis] = delta[axis]

		for _, stationary := range boxes {
			res := clipCollide(stationary, box, step)
			if !res.clipped {
				continue
			}
			step = res.velocity

			var normal mgl32.Vec3
			normal[res.axis] = res.normal
			b.contacts = append(b.contacts, normal)

			// The solver removes the velocity pushing into the contact.
			if dot := b.vel.Dot(normal); dot < 0 {
				b.vel = b.vel.Sub(normal.Mul(dot))
			}
		}
		box = box.Translate(step)
	}

	b.pos = mgl32.Vec3{
		(box.Min().X() + box.Max().X()) * 0.5,
		(box.Min().Y() + box.Max().Y()) * 0.5,
		(box.Min().Z() + box.Max().Z()) * 0.5,
	}
}

// nearbyBoxes returns the colliders the body may touch while moving box by delta, reusing the previous
// lookup while the body keeps moving the same way.
func (b *Body) nearbyBoxes(box cube.BBox, delta mgl32.Vec3, dt float32) []cube.BBox {
	b.tick++
	if dt != b.lastDt {
		b.cache.Invalidate()
		b.lastDt = dt
	}
	if boxes, ok := b.cache.Get(b.pos, b.vel, b.tick); ok {
		return boxes
	}

	lo, hi := box.Min(), box.Max()
	for i := range 3 {
		if delta[i] < 0 {
			lo[i] += delta[i]
		} else {
			hi[i] += delta[i]
		}
	}
	margin := mgl32.Vec3{broadPhaseMargin, broadPhaseMargin, broadPhaseMargin}
	region := growBox(cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2]), margin)

	boxes := b.world.Boxes(region, b.mask)
	b.cache.Set(b.pos, b.vel, boxes, b.tick)
	return boxes
}
