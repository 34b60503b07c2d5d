package controller

import "github.com/go-gl/mathgl/mgl32"

// Input represents a single input-sampling frame of player intent.
type Input struct {
	// Move is the 2D move vector. X moves along the right axis and Y along the forward axis. Its magnitude
	// is clamped to 1.
	Move mgl32.Vec2
	// Jump is true on the frame a jump was requested. It is latched until the next physics step.
	Jump bool
}

// InputSpace is a reference frame move input is relative to, typically the camera the player looks
// through. Only the horizontal part of its forward and right axes is used.
type InputSpace interface {
	Rotation() mgl32.Quat
}
