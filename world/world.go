package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
)

// Collider is a static axis-aligned box in the world.
type Collider struct {
	Name  string
	Box   cube.BBox
	Layer Layer
}

// World is a static scene of axis-aligned colliders. It answers ray and box casts for hosts that have no
// physics engine of their own, such as tests and the example program.
type World struct {
	layers    *Layers
	colliders []Collider
}

// Compile-time interface compliance checks.
var (
	_ Raycaster = (*World)(nil)
	_ BoxCaster = (*World)(nil)
)

// New returns an empty world using the layer registry passed. If layers is nil, DefaultLayers is used.
func New(layers *Layers) *World {
	if layers == nil {
		layers = DefaultLayers()
	}
	return &World{layers: layers}
}

// Layers returns the layer registry of the world.
func (w *World) Layers() *Layers {
	return w.layers
}

// AddBox adds a static collider on the named layer.
func (w *World) AddBox(name string, box cube.BBox, layerName string) error {
	layer, ok := w.layers.Layer(layerName)
	if !ok {
		return oerror.New("world: collider %q uses unknown layer %q", name, layerName)
	}
	w.colliders = append(w.colliders, Collider{Name: name, Box: box, Layer: layer})
	return nil
}

// Colliders returns the colliders of the world.
func (w *World) Colliders() []Collider {
	return w.colliders
}

// Boxes returns the boxes of the colliders on the layers in mask that overlap region.
func (w *World) Boxes(region cube.BBox, mask LayerMask) []cube.BBox {
	var boxes []cube.BBox
	for _, c := range w.colliders {
		if mask.Includes(c.Layer) && intersects(c.Box, region) {
			boxes = append(boxes, c.Box)
		}
	}
	return boxes
}

func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask LayerMask) (RaycastHit, bool) {
	dir := game.SafeNormalize(direction)
	if dir == (mgl32.Vec3{}) || maxDistance <= 0 {
		return RaycastHit{}, false
	}
	end := origin.Add(dir.Mul(maxDistance))

	var (
		closest RaycastHit
		found   bool
	)
	for _, c := range w.colliders {
		if !mask.Includes(c.Layer) || containsPoint(c.Box, origin) {
			continue
		}
		res, ok := trace.BBoxIntercept(c.Box, origin, end)
		if !ok {
			continue
		}
		dist := res.Position().Sub(origin).Len()
		if found && dist >= closest.Distance {
			continue
		}
		closest = RaycastHit{
			Distance: dist,
			Point:    res.Position(),
			Normal:   faceNormal(c.Box, res.Position()),
			Collider: c.Name,
		}
		found = true
	}
	return closest, found
}

// BoxCast sweeps the box by growing every collider by the world-space extent of the rotated box and casting
// a ray against the grown colliders. For rotated boxes the grown collider is the axis-aligned bound of the
// swept shape, so hits are conservative: they never report a distance further than the exact one.
func (w *World) BoxCast(origin, halfExtents, direction mgl32.Vec3, rotation mgl32.Quat, maxDistance float32, mask LayerMask) (BoxcastHit, bool) {
	dir := game.SafeNormalize(direction)
	if dir == (mgl32.Vec3{}) || maxDistance <= 0 {
		return BoxcastHit{}, false
	}
	end := origin.Add(dir.Mul(maxDistance))
	extent := orientedExtent(halfExtents, rotation)

	var (
		closest BoxcastHit
		found   bool
	)
	for _, c := range w.colliders {
		if !mask.Includes(c.Layer) {
			continue
		}
		grown := growBox(c.Box, extent)
		if containsPoint(grown, origin) {
			continue
		}
		res, ok := trace.BBoxIntercept(grown, origin, end)
		if !ok {
			continue
		}
		dist := res.Position().Sub(origin).Len()
		if found && dist >= closest.Distance {
			continue
		}
		closest = BoxcastHit{
			Distance: dist,
			Normal:   faceNormal(grown, res.Position()),
			Collider: c.Name,
		}
		found = true
	}
	return closest, found
}

// orientedExtent returns the half extents of the axis-aligned box bounding a box with the given half
// extents and rotation.
func orientedExtent(halfExtents mgl32.Vec3, rotation mgl32.Quat) mgl32.Vec3 {
	axes := [3]mgl32.Vec3{
		rotation.Rotate(game.WorldRight).Mul(halfExtents.X()),
		rotation.Rotate(game.WorldUp).Mul(halfExtents.Y()),
		rotation.Rotate(game.WorldForward).Mul(halfExtents.Z()),
	}
	var extent mgl32.Vec3
	for _, axis := range axes {
		for i := range 3 {
			extent[i] += math32.Abs(axis[i])
		}
	}
	return extent
}
