package game

import "github.com/go-gl/mathgl/mgl32"

// World axes. The world is Y-up with +Z as forward and +X as right.
var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldDown    = mgl32.Vec3{0, -1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 0, 1}
)

const (
	// DefaultGravity is the vertical gravity acceleration applied by hosts that do not configure their own.
	DefaultGravity = float32(-9.81)

	// MinimalLookInput is the dead zone below which a look delta axis is treated as no input.
	MinimalLookInput = float32(0.001)
	// FocusSettleDistance is the distance under which the focus point is considered centered.
	FocusSettleDistance = float32(0.01)
)
