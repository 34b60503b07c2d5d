package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MoveTowards moves current towards target by at most maxDelta, never overshooting the target.
func MoveTowards(current, target, maxDelta float32) float32 {
	if math32.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// ClampMagnitude returns v scaled down so that its length does not exceed max.
func ClampMagnitude(v mgl32.Vec2, max float32) mgl32.Vec2 {
	lenSqr := v.X()*v.X() + v.Y()*v.Y()
	if lenSqr <= max*max {
		return v
	}
	return v.Mul(max / math32.Sqrt(lenSqr))
}

// SafeNormalize returns the unit vector of v, or the zero vector if v has no length.
// mgl32.Vec3.Normalize divides by the length unconditionally, which produces NaN for zero vectors.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ProjectOnPlane removes the component of v along the unit normal n, leaving a vector parallel to the
// plane perpendicular to n.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// FlattenDirection drops the vertical component of v and normalizes what is left.
func FlattenDirection(v mgl32.Vec3) mgl32.Vec3 {
	return SafeNormalize(mgl32.Vec3{v.X(), 0, v.Z()})
}

// LerpVec3 linearly interpolates between a and b. t is clamped to [0, 1].
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	t = mgl32.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

// WrapDegrees wraps an angle in degrees into [0, 360).
func WrapDegrees(angle float32) float32 {
	angle = math32.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	if angle >= 360 {
		angle -= 360
	}
	return angle
}

// OrbitRotation returns the rotation for the given pitch and yaw in degrees. Pitch is applied around the
// right axis first and yaw around the up axis second, so a positive pitch tilts the forward axis
// downwards and a positive yaw turns it towards +X.
func OrbitRotation(pitch, yaw float32) mgl32.Quat {
	qPitch := mgl32.QuatRotate(mgl32.DegToRad(pitch), WorldRight)
	qYaw := mgl32.QuatRotate(mgl32.DegToRad(yaw), WorldUp)
	return qYaw.Mul(qPitch).Normalize()
}

// DirectionVector returns the forward axis of the given rotation.
func DirectionVector(rotation mgl32.Quat) mgl32.Vec3 {
	return rotation.Rotate(WorldForward)
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3ApproxEq determines whether two vectors are within the given threshold of each other on every axis.
func Vec3ApproxEq(a, b mgl32.Vec3, threshold float32) bool {
	for i := range 3 {
		if math32.Abs(a[i]-b[i]) > threshold {
			return false
		}
	}
	return true
}
