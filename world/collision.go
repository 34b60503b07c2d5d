package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

type clipCollideResult struct {
	clipped bool
	axis    int
	normal  float32

	velocity mgl32.Vec3
}

// clipCollide clips the velocity of a moving box against a stationary one. If the boxes already overlap,
// the moving box is pushed out along the axis of least penetration. The axis and sign of the resolved
// contact are reported so the caller can derive a contact normal.
func clipCollide(stationary, moving cube.BBox, velocity mgl32.Vec3) (result clipCollideResult) {
	result.velocity = velocity
	if hasZeroVolume(stationary) {
		return
	}

	axisPenetrations := [3]float32{}
	axisPenetrationsSigned := [3]float32{}
	normalDirs := [3]float32{}
	separatingAxes, separatingAxis := 0, 0

	for i := range 3 {
		minPenetration := moving.Max()[i] - stationary.Min()[i]
		maxPenetration := stationary.Max()[i] - moving.Min()[i]

		if math32.Abs(minPenetration) <= 1e-7 {
			minPenetration = 0
		}
		if math32.Abs(maxPenetration) <= 1e-7 {
			maxPenetration = 0
		}

		minPositive := math32.Max(0, minPenetration)
		maxPositive := math32.Max(0, maxPenetration)

		if minPositive == 0 {
			axisPenetrationsSigned[i] = minPenetration
			normalDirs[i] = -1
			separatingAxes++
			separatingAxis = i
		} else if maxPositive == 0 {
			axisPenetrationsSigned[i] = maxPenetration
			normalDirs[i] = 1
			separatingAxes++
			separatingAxis = i
		} else if minPositive < maxPositive {
			axisPenetrations[i] = minPositive
			axisPenetrationsSigned[i] = minPositive
			normalDirs[i] = -1
		} else {
			axisPenetrations[i] = maxPositive
			axisPenetrationsSigned[i] = maxPositive
			normalDirs[i] = 1
		}

		if separatingAxes > 1 {
			return
		}
	}

	// No separating axes means the boxes overlap.
	if separatingAxes == 0 {
		bestAxis := 0
		for i := 1; i < 3; i++ {
			if axisPenetrations[i] < axisPenetrations[bestAxis] {
				bestAxis = i
			}
		}

		desired := axisPenetrations[bestAxis] * normalDirs[bestAxis]
		if desired > 0 {
			result.velocity[bestAxis] = math32.Max(desired, velocity[bestAxis])
		} else {
			result.velocity[bestAxis] = math32.Min(desired, velocity[bestAxis])
		}
		result.clipped, result.axis, result.normal = true, bestAxis, normalDirs[bestAxis]
		return
	}

	swept := axisPenetrationsSigned[separatingAxis] - (normalDirs[separatingAxis] * velocity[separatingAxis])
	if swept <= 0 {
		return
	}

	result.velocity[separatingAxis] = axisPenetrationsSigned[separatingAxis] * normalDirs[separatingAxis]
	result.clipped, result.axis, result.normal = true, separatingAxis, normalDirs[separatingAxis]
	return
}

func hasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}

// containsPoint returns true if the point lies strictly inside the box.
func containsPoint(bb cube.BBox, p mgl32.Vec3) bool {
	for i := range 3 {
		if p[i] <= bb.Min()[i] || p[i] >= bb.Max()[i] {
			return false
		}
	}
	return true
}

// intersects returns true if the two boxes overlap with a non-zero volume.
func intersects(a, b cube.BBox) bool {
	for i := range 3 {
		if a.Max()[i] <= b.Min()[i] || a.Min()[i] >= b.Max()[i] {
			return false
		}
	}
	return true
}

// growBox returns the box expanded by extent on every side.
func growBox(bb cube.BBox, extent mgl32.Vec3) cube.BBox {
	lo, hi := bb.Min().Sub(extent), bb.Max().Add(extent)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// faceNormal returns the outward normal of the face of bb closest to the point p, which is expected to lie
// on the surface of the box.
func faceNormal(bb cube.BBox, p mgl32.Vec3) mgl32.Vec3 {
	var normal mgl32.Vec3
	best := float32(math32.MaxFloat32)
	for i := range 3 {
		if d := math32.Abs(p[i] - bb.Min()[i]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[i] = -1
		}
		if d := math32.Abs(p[i] - bb.Max()[i]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[i] = 1
		}
	}
	return normal
}
