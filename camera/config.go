package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/world"
)

// Config holds the tuning of an orbit camera.
type Config struct {
	// Distance is the distance kept between the focus point and the camera when nothing obstructs it.
	Distance float32 `toml:"distance"`
	// FocusRadius is the dead zone the target may move in before the focus point is dragged along. A radius
	// of zero makes the focus point follow the target exactly.
	FocusRadius float32 `toml:"focus_radius"`
	// FocusCentering is the fraction of the focus offset removed every second.
	FocusCentering float32 `toml:"focus_centering"`
	// RotationSpeed is the orbit speed in degrees per second at full look input.
	RotationSpeed float32 `toml:"rotation_speed"`
	// MinVerticalAngle and MaxVerticalAngle bound the pitch, in degrees.
	MinVerticalAngle float32 `toml:"min_vertical_angle"`
	MaxVerticalAngle float32 `toml:"max_vertical_angle"`
	// ObstructionMask selects the layers that block the camera.
	ObstructionMask world.LayerMask `toml:"-"`
}

// DefaultConfig returns the default camera tuning.
func DefaultConfig() Config {
	return Config{
		Distance:         5,
		FocusRadius:      1,
		FocusCentering:   0.5,
		RotationSpeed:    90,
		MinVerticalAngle: -30,
		MaxVerticalAngle: 60,
		ObstructionMask:  world.AllLayers,
	}
}

// Validate returns a copy of the config with every value clamped into its supported range. A maximum
// vertical angle below the minimum is raised to the minimum.
func (c Config) Validate() Config {
	c.Distance = mgl32.Clamp(c.Distance, 1, 20)
	c.FocusRadius = math32.Max(c.FocusRadius, 0)
	c.FocusCentering = mgl32.Clamp(c.FocusCentering, 0, 1)
	c.RotationSpeed = mgl32.Clamp(c.RotationSpeed, 0, 360)
	c.MinVerticalAngle = mgl32.Clamp(c.MinVerticalAngle, -89, 89)
	c.MaxVerticalAngle = mgl32.Clamp(c.MaxVerticalAngle, -89, 89)
	if c.MaxVerticalAngle < c.MinVerticalAngle {
		c.MaxVerticalAngle = c.MinVerticalAngle
	}
	return c
}

// Lens describes the projection of the camera, which sizes the box swept for obstructions.
type Lens struct {
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float32 `toml:"field_of_view"`
	// Aspect is the width of the view divided by its height.
	Aspect float32 `toml:"aspect"`
	// NearClipPlane is the distance from the camera to its near plane.
	NearClipPlane float32 `toml:"near_clip_plane"`
}

// DefaultLens returns a 60 degree, 16:9 lens.
func DefaultLens() Lens {
	return Lens{FieldOfView: 60, Aspect: 16.0 / 9.0, NearClipPlane: 0.3}
}

// Validate returns a copy of the lens with every value clamped into its supported range.
func (l Lens) Validate() Lens {
	l.FieldOfView = mgl32.Clamp(l.FieldOfView, 1, 179)
	if l.Aspect <= 0 {
		l.Aspect = 1
	}
	l.NearClipPlane = math32.Max(l.NearClipPlane, 0)
	return l
}

// HalfExtents returns the half extents of the near plane rectangle. The depth is always zero.
func (l Lens) HalfExtents() mgl32.Vec3 {
	y := l.NearClipPlane * math32.Tan(0.5*mgl32.DegToRad(l.FieldOfView))
	return mgl32.Vec3{y * l.Aspect, y, 0}
}
