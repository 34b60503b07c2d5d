package controller

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/world"
)

// Controller drives a rigid body with slope-relative acceleration, ground snapping and air jumps. Input is
// sampled once per rendered frame through SampleInput, while Step runs once per fixed physics tick, before
// the host integrates the body.
type Controller struct {
	cfg     Config
	opts    Options
	enabled bool

	body  world.RigidBody
	probe world.Raycaster
	feed  world.CollisionFeed
	space InputSpace

	minGroundDotProduct float32

	velocity        mgl32.Vec3
	desiredVelocity mgl32.Vec3
	contactNormal   mgl32.Vec3
	desiredJump     bool
	onGround        bool

	jumpPhase              int
	stepsSinceLastGrounded int
	stepsSinceLastJump     int
}

// New creates a stopped controller for body. probe is used for ground snapping and feed, when non-nil, is
// drained for contact normals at the start of every step. Either may be nil.
func New(cfg Config, body world.RigidBody, probe world.Raycaster, feed world.CollisionFeed, opts Options) *Controller {
	cfg = cfg.Validate()
	return &Controller{
		cfg:                 cfg,
		opts:                opts,
		body:                body,
		probe:               probe,
		feed:                feed,
		minGroundDotProduct: cfg.MinGroundDotProduct(),
	}
}

// Config returns the validated config of the controller.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetInputSpace sets the reference frame move input is relative to. A nil space makes move input relative
// to the world axes.
func (c *Controller) SetInputSpace(space InputSpace) {
	c.space = space
}

// Start enables the controller. Input sampled before Start is ignored.
func (c *Controller) Start() {
	c.enabled = true
}

// Stop disables the controller and drops any pending intent. Stepping a stopped controller leaves the body
// untouched.
func (c *Controller) Stop() {
	c.enabled = false
	c.desiredVelocity = mgl32.Vec3{}
	c.desiredJump = false
}

// Enabled returns true if the controller was started and not stopped since.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// SampleInput reads the player intent of a rendered frame. It may be called any number of times between
// physics steps: the last move wins, while a jump request stays latched until the next step consumes it.
func (c *Controller) SampleInput(in Input) {
	if !c.enabled {
		return
	}
	move := game.ClampMagnitude(in.Move, 1)
	if c.space != nil {
		rot := c.space.Rotation()
		forward := game.FlattenDirection(rot.Rotate(game.WorldForward))
		right := game.FlattenDirection(rot.Rotate(game.WorldRight))
		c.desiredVelocity = forward.Mul(move.Y()).Add(right.Mul(move.X())).Mul(c.cfg.MaxSpeed)
	} else {
		c.desiredVelocity = mgl32.Vec3{move.X(), 0, move.Y()}.Mul(c.cfg.MaxSpeed)
	}
	c.desiredJump = c.desiredJump || in.Jump
}

// EvaluateContacts records the contact normals reported by the physics engine since the last step. Normals
// steep enough to count as ground mark the controller grounded and are accumulated into the contact normal.
func (c *Controller) EvaluateContacts(normals iter.Seq[mgl32.Vec3]) {
	for n := range normals {
		if n.Y() >= c.minGroundDotProduct {
			c.onGround = true
			c.contactNormal = c.contactNormal.Add(n)
		}
	}
}

// Step runs a single fixed physics step of dt seconds and writes the resulting velocity to the body.
func (c *Controller) Step(dt float32) StepResult {
	if !c.enabled {
		c.clearState()
		return StepResult{Velocity: c.body.Velocity(), ContactNormal: game.WorldUp, Outcome: StepOutcomeStopped}
	}
	if c.feed != nil {
		c.EvaluateContacts(c.feed.Contacts())
	}

	snapped := c.updateState()
	c.adjustVelocity(dt)

	var jumped bool
	if c.desiredJump {
		c.desiredJump = false
		jumped = c.jump()
	}
	c.body.SetVelocity(c.velocity)

	result := StepResult{
		Velocity:      c.velocity,
		ContactNormal: c.contactNormal,
		OnGround:      c.onGround,
		Snapped:       snapped,
		Jumped:        jumped,
		JumpPhase:     c.jumpPhase,
		Outcome:       StepOutcomeNormal,
	}
	c.debugf("step: vel=%v normal=%v ground=%v snapped=%v jumped=%v phase=%d", c.velocity, c.contactNormal, c.onGround, snapped, jumped, c.jumpPhase)
	c.clearState()
	return result
}

// updateState refreshes the velocity from the body and resolves whether the controller is grounded for
// this step, snapping it back to the ground if it just lost contact.
func (c *Controller) updateState() (snapped bool) {
	c.stepsSinceLastGrounded++
	c.stepsSinceLastJump++
	c.velocity = c.body.Velocity()

	if !c.onGround {
		snapped = c.snapToGround()
		c.onGround = snapped
	}
	if c.onGround {
		c.stepsSinceLastGrounded = 0
		c.jumpPhase = 0
		if !snapped {
			c.contactNormal = game.SafeNormalize(c.contactNormal)
		}
		return snapped
	}
	c.contactNormal = game.WorldUp
	return false
}

func (c *Controller) snapToGround() bool {
	if c.stepsSinceLastGrounded > 1 || c.stepsSinceLastJump <= 2 {
		return false
	}
	speed := c.velocity.Len()
	if speed > c.cfg.MaxSnapSpeed || c.probe == nil {
		return false
	}
	hit, ok := c.probe.Raycast(c.body.Position(), game.WorldDown, c.cfg.ProbeDistance, c.cfg.ProbeMask)
	if !ok || hit.Normal.Y() < c.minGroundDotProduct {
		return false
	}

	c.contactNormal = hit.Normal
	if dot := c.velocity.Dot(hit.Normal); dot > 0 {
		c.velocity = game.SafeNormalize(c.velocity.Sub(hit.Normal.Mul(dot))).Mul(speed)
	}
	c.debugf("snapped to %s at distance %v", hit.Collider, hit.Distance)
	return true
}

// adjustVelocity moves the velocity along the contact plane towards the desired velocity, bounded by the
// acceleration available in the current state.
func (c *Controller) adjustVelocity(dt float32) {
	xAxis := game.SafeNormalize(game.ProjectOnPlane(game.WorldRight, c.contactNormal))
	zAxis := game.SafeNormalize(game.ProjectOnPlane(game.WorldForward, c.contactNormal))

	currentX, currentZ := c.velocity.Dot(xAxis), c.velocity.Dot(zAxis)

	acceleration := c.cfg.MaxAirAcceleration
	if c.onGround {
		acceleration = c.cfg.MaxAcceleration
	}
	maxSpeedChange := acceleration * dt

	newX := game.MoveTowards(currentX, c.desiredVelocity.X(), maxSpeedChange)
	newZ := game.MoveTowards(currentZ, c.desiredVelocity.Z(), maxSpeedChange)
	c.velocity = c.velocity.Add(xAxis.Mul(newX - currentX)).Add(zAxis.Mul(newZ - currentZ))
}

// jump applies a jump along the contact normal. Jumps are allowed from the ground, or in the air while
// air jumps remain.
func (c *Controller) jump() bool {
	if !c.onGround && c.jumpPhase >= c.cfg.MaxAirJumps {
		c.debugf("jump denied: phase=%d", c.jumpPhase)
		return false
	}
	c.stepsSinceLastJump = 0
	c.jumpPhase++

	jumpSpeed := math32.Sqrt(-2 * c.cfg.GravityY * c.cfg.JumpHeight)
	if aligned := c.velocity.Dot(c.contactNormal); aligned > 0 {
		jumpSpeed = math32.Max(jumpSpeed-aligned, 0)
	}
	c.velocity = c.velocity.Add(c.contactNormal.Mul(jumpSpeed))
	return true
}

func (c *Controller) clearState() {
	c.onGround = false
	c.contactNormal = mgl32.Vec3{}
}

func (c *Controller) debugf(format string, args ...any) {
	if c.opts.Debugf != nil {
		c.opts.Debugf(format, args...)
	}
}
