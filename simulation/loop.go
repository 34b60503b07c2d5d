package simulation

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/camera"
	"github.com/oomph-ac/locomotion/controller"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/utils"
	"github.com/oomph-ac/locomotion/world"
	"github.com/sirupsen/logrus"
)

// Body is a rigid body the loop integrates after every controller step.
type Body interface {
	world.RigidBody
	Simulate(dt float32)
	Teleport(pos mgl32.Vec3)
}

// Config configures a Loop.
type Config struct {
	// FixedStep is the physics timestep in seconds. It must be positive.
	FixedStep float32
	// MaxStepsPerFrame bounds the physics steps run for a single frame. Time that could not be simulated
	// is dropped.
	MaxStepsPerFrame int
	// HistorySize is the amount of ticks kept in the history.
	HistorySize int
}

// FrameInput is the player input read during a rendered frame.
type FrameInput struct {
	Move mgl32.Vec2
	Jump bool
	Look mgl32.Vec2
}

// FrameResult is the outcome of a rendered frame.
type FrameResult struct {
	// Steps is the amount of physics steps run during the frame.
	Steps int
	// Position is the position of the body after the frame.
	Position mgl32.Vec3
	Camera   camera.Pose
}

// TickRecord records a single physics step.
type TickRecord struct {
	Tick        int64
	Result      controller.StepResult
	Position    mgl32.Vec3
	Fingerprint uint64
}

// Loop owns a controller, the body it drives and the camera looking at it. The controller is stepped on a
// fixed timestep through an accumulator while the camera is updated once per rendered frame.
type Loop struct {
	log *logrus.Logger

	ctrl *controller.Controller
	cam  *camera.OrbitCamera
	body Body

	fixedStep   float32
	maxSteps    int
	accumulator float32
	tick        int64
	running     bool

	history *utils.CircularQueue[TickRecord]
}

// New creates a stopped loop. log may be nil, in which case nothing is logged.
func New(cfg Config, ctrl *controller.Controller, cam *camera.OrbitCamera, body Body, log *logrus.Logger) *Loop {
	assert.IsTrue(cfg.FixedStep > 0, "fixed step must be positive, got %v", cfg.FixedStep)
	assert.IsTrue(ctrl != nil && cam != nil && body != nil, "loop requires a controller, a camera and a body")
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Loop{
		log:       log,
		ctrl:      ctrl,
		cam:       cam,
		body:      body,
		fixedStep: cfg.FixedStep,
		maxSteps:  max(cfg.MaxStepsPerFrame, 1),
		history:   utils.NewCircularQueue[TickRecord](cfg.HistorySize),
	}
}

// Start starts the controller and the camera. Move input is made relative to the camera.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.ctrl.SetInputSpace(l.cam)
	l.ctrl.Start()
	l.cam.Start()
	l.running = true
	l.log.Infof("simulation started: %s", utils.KeyValsToString("fixed_step", l.fixedStep, "max_steps", l.maxSteps, "history", l.history.Cap()))
}

// Stop stops the controller and the camera and drops any time left in the accumulator.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.ctrl.Stop()
	l.cam.Stop()
	l.running = false
	l.accumulator = 0
	if last, ok := l.history.Last(); ok {
		l.log.Infof("simulation stopped after %d ticks at %v", l.tick, game.RoundVec32(last.Position, 3))
		return
	}
	l.log.Infof("simulation stopped after %d ticks", l.tick)
}

// Respawn moves the body to pos at rest and drops any time left in the accumulator.
func (l *Loop) Respawn(pos mgl32.Vec3) {
	l.body.Teleport(pos)
	l.body.SetVelocity(mgl32.Vec3{})
	l.accumulator = 0
	l.log.Infof("respawned at %v", pos)
}

// Running returns true if the loop was started and not stopped since.
func (l *Loop) Running() bool {
	return l.running
}

// Tick returns the amount of physics steps run so far.
func (l *Loop) Tick() int64 {
	return l.tick
}

// History returns the most recent physics steps, oldest first.
func (l *Loop) History() []TickRecord {
	records := make([]TickRecord, 0, l.history.Len())
	for r := range l.history.Iter() {
		records = append(records, r)
	}
	return records
}

// Advance runs a rendered frame that took delta seconds. Input is sampled once, every physics step the
// accumulated time allows is run and the camera is placed last.
func (l *Loop) Advance(delta float32, in FrameInput) FrameResult {
	if !l.running {
		return FrameResult{Position: l.body.Position(), Camera: l.cam.Update(camera.Frame{Target: l.body.Position()})}
	}
	l.ctrl.SampleInput(controller.Input{Move: in.Move, Jump: in.Jump})

	l.accumulator += delta
	var steps int
	for l.accumulator >= l.fixedStep && steps < l.maxSteps {
		l.step()
		l.accumulator -= l.fixedStep
		steps++
	}
	if l.accumulator >= l.fixedStep {
		l.log.Warnf("simulation fell behind, dropping %.3fs", l.accumulator)
		l.accumulator = 0
	}

	pose := l.cam.Update(camera.Frame{
		Target:        l.body.Position(),
		Look:          in.Look,
		UnscaledDelta: delta,
	})
	return FrameResult{Steps: steps, Position: l.body.Position(), Camera: pose}
}

func (l *Loop) step() {
	res := l.ctrl.Step(l.fixedStep)
	l.body.Simulate(l.fixedStep)
	l.tick++

	record := TickRecord{
		Tick:        l.tick,
		Result:      res,
		Position:    l.body.Position(),
		Fingerprint: l.ctrl.State().Fingerprint(),
	}
	if l.history.Cap() > 0 {
		_ = l.history.Append(record)
	}
	if l.log.IsLevelEnabled(logrus.DebugLevel) {
		l.log.Debugf("tick %d %s", l.tick, utils.KeyValsToString(
			"pos", game.RoundVec32(record.Position, 3),
			"vel", game.RoundVec32(res.Velocity, 3),
			"ground", res.OnGround,
			"snapped", res.Snapped,
			"jumped", res.Jumped,
			"phase", res.JumpPhase,
		))
	}
}
