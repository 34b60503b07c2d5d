package controller

import "github.com/go-gl/mathgl/mgl32"

// StepOutcome describes which path the controller took for a physics step.
type StepOutcome uint8

const (
	StepOutcomeNormal StepOutcome = iota
	StepOutcomeStopped
)

// StepResult captures the outcome of a single physics step.
type StepResult struct {
	// Velocity is the velocity written to the body.
	Velocity mgl32.Vec3
	// ContactNormal is the ground normal the step was resolved against, or the up axis while airborne.
	ContactNormal mgl32.Vec3

	OnGround  bool
	Snapped   bool
	Jumped    bool
	JumpPhase int

	Outcome StepOutcome
}
