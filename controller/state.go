package controller

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"
)

// State is a snapshot of the controller between two physics steps.
type State struct {
	Enabled bool

	Velocity        mgl32.Vec3
	DesiredVelocity mgl32.Vec3
	DesiredJump     bool

	JumpPhase              int
	StepsSinceLastGrounded int
	StepsSinceLastJump     int
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Enabled:                c.enabled,
		Velocity:               c.velocity,
		DesiredVelocity:        c.desiredVelocity,
		DesiredJump:            c.desiredJump,
		JumpPhase:              c.jumpPhase,
		StepsSinceLastGrounded: c.stepsSinceLastGrounded,
		StepsSinceLastJump:     c.stepsSinceLastJump,
	}
}

// Fingerprint returns a hash of the state. Two controllers fed the same config, contacts and inputs
// produce the same fingerprint after every step.
func (s State) Fingerprint() uint64 {
	buf := make([]byte, 0, 64)
	for _, v := range [...]mgl32.Vec3{s.Velocity, s.DesiredVelocity} {
		for _, f := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	for _, n := range [...]int{s.JumpPhase, s.StepsSinceLastGrounded, s.StepsSinceLastJump} {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(n))
	}
	var flags byte
	if s.Enabled {
		flags |= 1
	}
	if s.DesiredJump {
		flags |= 2
	}
	return xxh3.Hash(append(buf, flags))
}
