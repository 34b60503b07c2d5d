package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/world"
)

// Config holds the tuning of a character controller. It is validated once when the controller is created
// and never changes afterwards.
type Config struct {
	// MaxSpeed is the horizontal speed reached with a full move input.
	MaxSpeed float32 `toml:"max_speed"`
	// MaxAcceleration is the per-second speed change allowed per ground axis while grounded.
	MaxAcceleration float32 `toml:"max_acceleration"`
	// MaxAirAcceleration is the per-second speed change allowed per ground axis while airborne.
	MaxAirAcceleration float32 `toml:"max_air_acceleration"`
	// MaxGroundAngle is the steepest slope, in degrees, still considered ground.
	MaxGroundAngle float32 `toml:"max_ground_angle"`
	// MaxSnapSpeed is the speed above which the controller no longer snaps to the ground.
	MaxSnapSpeed float32 `toml:"max_snap_speed"`
	// JumpHeight is the peak height of a jump from rest.
	JumpHeight float32 `toml:"jump_height"`
	// MaxAirJumps is the amount of jumps allowed without touching the ground.
	MaxAirJumps int `toml:"max_air_jumps"`
	// ProbeDistance is how far below the body the ground snapping probe reaches.
	ProbeDistance float32 `toml:"probe_distance"`
	// GravityY is the vertical gravity the host applies to the body, used to derive jump speed.
	GravityY float32 `toml:"gravity_y"`
	// ProbeMask selects the layers the ground snapping probe can hit.
	ProbeMask world.LayerMask `toml:"-"`
}

// DefaultConfig returns the default controller tuning.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:           10,
		MaxAcceleration:    10,
		MaxAirAcceleration: 1,
		MaxGroundAngle:     45,
		MaxSnapSpeed:       100,
		JumpHeight:         2,
		MaxAirJumps:        1,
		ProbeDistance:      1,
		GravityY:           game.DefaultGravity,
		ProbeMask:          world.AllLayers,
	}
}

// Validate returns a copy of the config with every value clamped into its supported range.
func (c Config) Validate() Config {
	c.MaxSpeed = mgl32.Clamp(c.MaxSpeed, 0, 100)
	c.MaxAcceleration = mgl32.Clamp(c.MaxAcceleration, 0, 100)
	c.MaxAirAcceleration = mgl32.Clamp(c.MaxAirAcceleration, 0, 100)
	c.MaxGroundAngle = mgl32.Clamp(c.MaxGroundAngle, 0, 90)
	c.MaxSnapSpeed = mgl32.Clamp(c.MaxSnapSpeed, 0, 100)
	c.JumpHeight = mgl32.Clamp(c.JumpHeight, 0, 10)
	c.MaxAirJumps = min(max(c.MaxAirJumps, 0), 10)
	c.ProbeDistance = math32.Max(c.ProbeDistance, 0)
	c.GravityY = math32.Min(c.GravityY, 0)
	return c
}

// MinGroundDotProduct returns the smallest vertical component a contact normal may have to count as ground.
func (c Config) MinGroundDotProduct() float32 {
	return math32.Cos(mgl32.DegToRad(c.MaxGroundAngle))
}

// Options define controller behaviour that is not part of its tuning.
type Options struct {
	// Debugf receives internal step traces for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}
