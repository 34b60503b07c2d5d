package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/world"
)

// Frame is the input of a single rendered frame.
type Frame struct {
	// Target is the position the camera focuses on. It is only read.
	Target mgl32.Vec3
	// Look is the look delta of the frame. X orbits around the up axis and Y tilts the camera.
	Look mgl32.Vec2
	// UnscaledDelta is the real time in seconds since the previous frame.
	UnscaledDelta float32
	// Rotation is the rotation kept when there is no look input. The zero value keeps the rotation of the
	// previous frame.
	Rotation mgl32.Quat
}

// Pose is the placement of the camera computed for a frame.
type Pose struct {
	Position   mgl32.Vec3
	Rotation   mgl32.Quat
	FocusPoint mgl32.Vec3
	// Obstructed is true if geometry between the target and the camera pulled the camera in.
	Obstructed bool
}

// OrbitCamera orbits a focus target at a fixed distance, smoothing the focus point, rotating on look input
// and pulling itself in front of geometry that would hide the target.
type OrbitCamera struct {
	cfg    Config
	lens   Lens
	caster world.BoxCaster

	enabled bool

	focusPoint  mgl32.Vec3
	orbitAngles mgl32.Vec2
	rotation    mgl32.Quat
	position    mgl32.Vec3
}

// New creates a stopped camera focusing on focus. caster may be nil, in which case the camera is never
// obstructed.
func New(cfg Config, lens Lens, caster world.BoxCaster, focus mgl32.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		cfg:         cfg.Validate(),
		lens:        lens.Validate(),
		caster:      caster,
		focusPoint:  focus,
		orbitAngles: mgl32.Vec2{45, 0},
	}
	c.rotation = game.OrbitRotation(c.orbitAngles.X(), c.orbitAngles.Y())
	c.position = focus.Sub(game.DirectionVector(c.rotation).Mul(c.cfg.Distance))
	return c
}

// Start enables look input.
func (c *OrbitCamera) Start() {
	c.enabled = true
}

// Stop disables look input. A stopped camera keeps following its target.
func (c *OrbitCamera) Stop() {
	c.enabled = false
}

// Enabled returns true if the camera was started and not stopped since.
func (c *OrbitCamera) Enabled() bool {
	return c.enabled
}

// Config returns the validated config of the camera.
func (c *OrbitCamera) Config() Config {
	return c.cfg
}

// Rotation returns the rotation committed by the last update.
func (c *OrbitCamera) Rotation() mgl32.Quat {
	return c.rotation
}

// Position returns the position committed by the last update.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	return c.position
}

// FocusPoint returns the smoothed focus point.
func (c *OrbitCamera) FocusPoint() mgl32.Vec3 {
	return c.focusPoint
}

// OrbitAngles returns the pitch and yaw of the camera in degrees.
func (c *OrbitCamera) OrbitAngles() mgl32.Vec2 {
	return c.orbitAngles
}

// HalfExtents returns the half extents of the box swept for obstructions.
func (c *OrbitCamera) HalfExtents() mgl32.Vec3 {
	return c.lens.HalfExtents()
}

// Update places the camera for a rendered frame.
func (c *OrbitCamera) Update(f Frame) Pose {
	c.updateFocusPoint(f.Target, f.UnscaledDelta)

	lookRotation := f.Rotation
	if lookRotation == (mgl32.Quat{}) {
		lookRotation = c.rotation
	}
	if c.manualRotation(f.Look, f.UnscaledDelta) {
		c.constrainAngles()
		lookRotation = game.OrbitRotation(c.orbitAngles.X(), c.orbitAngles.Y())
	}

	lookDirection := game.DirectionVector(lookRotation)
	lookPosition := c.focusPoint.Sub(lookDirection.Mul(c.cfg.Distance))

	rectOffset := lookDirection.Mul(c.lens.NearClipPlane)
	rectPosition := lookPosition.Add(rectOffset)
	castLine := rectPosition.Sub(f.Target)
	castDistance := castLine.Len()

	var obstructed bool
	if c.caster != nil && castDistance > 0 {
		castDirection := castLine.Mul(1 / castDistance)
		if hit, ok := c.caster.BoxCast(f.Target, c.HalfExtents(), castDirection, lookRotation, castDistance, c.cfg.ObstructionMask); ok {
			rectPosition = f.Target.Add(castDirection.Mul(hit.Distance))
			lookPosition = rectPosition.Sub(rectOffset)
			obstructed = true
		}
	}

	c.position, c.rotation = lookPosition, lookRotation
	return Pose{
		Position:   lookPosition,
		Rotation:   lookRotation,
		FocusPoint: c.focusPoint,
		Obstructed: obstructed,
	}
}

func (c *OrbitCamera) updateFocusPoint(target mgl32.Vec3, dt float32) {
	if c.cfg.FocusRadius <= 0 {
		c.focusPoint = target
		return
	}
	c.focusPoint = game.LerpVec3(target, c.focusPoint, c.focusFactor(target.Sub(c.focusPoint).Len(), dt))
}

// focusFactor returns how much of the current focus offset is kept this frame, given the distance d
// between the target and the focus point.
func (c *OrbitCamera) focusFactor(d, dt float32) float32 {
	t := float32(1)
	if d > game.FocusSettleDistance && c.cfg.FocusCentering > 0 {
		t = math32.Pow(1-c.cfg.FocusCentering, dt)
	}
	if d > c.cfg.FocusRadius {
		t = math32.Min(t, c.cfg.FocusRadius/d)
	}
	return t
}

func (c *OrbitCamera) manualRotation(look mgl32.Vec2, dt float32) bool {
	if !c.enabled {
		return false
	}
	pitch, yaw := -look.Y(), look.X()
	if math32.Abs(pitch) <= game.MinimalLookInput && math32.Abs(yaw) <= game.MinimalLookInput {
		return false
	}
	c.orbitAngles = c.orbitAngles.Add(mgl32.Vec2{pitch, yaw}.Mul(c.cfg.RotationSpeed * dt))
	return true
}

func (c *OrbitCamera) constrainAngles() {
	c.orbitAngles[0] = mgl32.Clamp(c.orbitAngles.X(), c.cfg.MinVerticalAngle, c.cfg.MaxVerticalAngle)
	c.orbitAngles[1] = game.WrapDegrees(c.orbitAngles.Y())
}
