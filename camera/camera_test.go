package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/world"
)

type castCall struct {
	origin, halfExtents, direction mgl32.Vec3
	rotation                       mgl32.Quat
	maxDistance                    float32
}

type mockCaster struct {
	hit   world.BoxcastHit
	ok    bool
	calls []castCall
}

func (m *mockCaster) BoxCast(origin, halfExtents, direction mgl32.Vec3, rotation mgl32.Quat, maxDistance float32, mask world.LayerMask) (world.BoxcastHit, bool) {
	m.calls = append(m.calls, castCall{origin, halfExtents, direction, rotation, maxDistance})
	return m.hit, m.ok
}

func newTestCamera(cfg Config, caster world.BoxCaster) *OrbitCamera {
	c := New(cfg, DefaultLens(), caster, mgl32.Vec3{})
	c.Start()
	return c
}

func TestYawWraps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationSpeed = 73
	c := newTestCamera(cfg, nil)
	for range 5 {
		c.Update(Frame{Look: mgl32.Vec2{1, 0}, UnscaledDelta: 1})
	}
	if yaw := c.OrbitAngles().Y(); yaw != 5 {
		t.Fatalf("expected yaw 365 to wrap to 5, got %v", yaw)
	}

	cfg.RotationSpeed = 10
	c = newTestCamera(cfg, nil)
	c.Update(Frame{Look: mgl32.Vec2{-1, 0}, UnscaledDelta: 1})
	if yaw := c.OrbitAngles().Y(); yaw != 350 {
		t.Fatalf("expected yaw -10 to wrap to 350, got %v", yaw)
	}
}

func TestPitchIsClamped(t *testing.T) {
	c := newTestCamera(DefaultConfig(), nil)
	c.Update(Frame{Look: mgl32.Vec2{0, -1}, UnscaledDelta: 1})
	if pitch := c.OrbitAngles().X(); pitch != 60 {
		t.Fatalf("expected pitch to clamp to 60, got %v", pitch)
	}
	c.Update(Frame{Look: mgl32.Vec2{0, 1}, UnscaledDelta: 1})
	if pitch := c.OrbitAngles().X(); pitch != -30 {
		t.Fatalf("expected pitch to clamp to -30, got %v", pitch)
	}
	want := game.OrbitRotation(-30, 0)
	if got := c.Rotation(); !game.Vec3ApproxEq(got.V, want.V, 1e-5) || !game.Float32ApproxEq(got.W, want.W) {
		t.Fatalf("expected rotation to follow the clamped angles, got %v", got)
	}
}

func TestFocusSnapsWithoutRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FocusRadius = 0
	c := newTestCamera(cfg, nil)

	target := mgl32.Vec3{10, 2, -3}
	if pose := c.Update(Frame{Target: target, UnscaledDelta: 0.016}); pose.FocusPoint != target {
		t.Fatalf("expected the focus point to snap to %v, got %v", target, pose.FocusPoint)
	}
}

func TestFocusWithoutCentering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FocusCentering = 0
	c := newTestCamera(cfg, nil)

	if pose := c.Update(Frame{Target: mgl32.Vec3{0.5, 0, 0}, UnscaledDelta: 0.1}); pose.FocusPoint != (mgl32.Vec3{}) {
		t.Fatalf("a target inside the focus radius must not move the focus point, got %v", pose.FocusPoint)
	}
	pose := c.Update(Frame{Target: mgl32.Vec3{4, 0, 0}, UnscaledDelta: 0.1})
	if !game.Vec3ApproxEq(pose.FocusPoint, mgl32.Vec3{3, 0, 0}, 1e-5) {
		t.Fatalf("expected the focus point to be pulled to the radius edge, got %v", pose.FocusPoint)
	}
}

func TestFocusCentering(t *testing.T) {
	c := newTestCamera(DefaultConfig(), nil)
	pose := c.Update(Frame{Target: mgl32.Vec3{0.5, 0, 0}, UnscaledDelta: 1})
	if !game.Vec3ApproxEq(pose.FocusPoint, mgl32.Vec3{0.25, 0, 0}, 1e-5) {
		t.Fatalf("expected half of the focus offset to be removed after a second, got %v", pose.FocusPoint)
	}
}

func TestFocusFactor(t *testing.T) {
	c := newTestCamera(DefaultConfig(), nil)
	for _, tc := range []struct {
		d, want float32
	}{
		{d: 0.005, want: 1},
		{d: 0.5, want: 0.5},
		{d: 1.5, want: 0.5},
		{d: 4, want: 0.25},
	} {
		if got := c.focusFactor(tc.d, 1); !game.Float32ApproxEq(got, tc.want) {
			t.Fatalf("focus factor at distance %v: expected %v, got %v", tc.d, tc.want, got)
		}
	}

	cfg := DefaultConfig()
	cfg.FocusCentering = 0
	c = newTestCamera(cfg, nil)
	if got := c.focusFactor(0.5, 1); got != 1 {
		t.Fatalf("expected no centering inside the radius, got %v", got)
	}
	if got := c.focusFactor(2, 1); got != 0.5 {
		t.Fatalf("expected the factor to clamp to radius/distance, got %v", got)
	}
}

func TestObstructionPullsCameraIn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FocusRadius = 0
	caster := &mockCaster{hit: world.BoxcastHit{Distance: 2, Collider: "wall"}, ok: true}
	c := newTestCamera(cfg, caster)
	lens := DefaultLens()

	pose := c.Update(Frame{UnscaledDelta: 0.016})
	if !pose.Obstructed {
		t.Fatalf("expected the camera to be obstructed")
	}
	dir := game.DirectionVector(pose.Rotation)
	want := dir.Mul(-(2 + lens.NearClipPlane))
	if !game.Vec3ApproxEq(pose.Position, want, 1e-5) {
		t.Fatalf("expected camera at %v, got %v", want, pose.Position)
	}
	if d := pose.Position.Len(); d >= cfg.Distance {
		t.Fatalf("obstructed camera must be closer than %v, got %v", cfg.Distance, d)
	}

	if len(caster.calls) != 1 {
		t.Fatalf("expected a single cast, got %d", len(caster.calls))
	}
	call := caster.calls[0]
	if call.halfExtents != lens.HalfExtents() || call.halfExtents.Z() != 0 {
		t.Fatalf("unexpected cast half extents %v", call.halfExtents)
	}
	if !game.Float32ApproxEq(call.maxDistance, cfg.Distance-lens.NearClipPlane) {
		t.Fatalf("expected the cast to stop at the near plane, got %v", call.maxDistance)
	}
	if !game.Vec3ApproxEq(call.direction, dir.Mul(-1), 1e-5) {
		t.Fatalf("expected the cast to point back along the view, got %v", call.direction)
	}
}

func TestZeroLengthCastIsSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Distance, cfg.FocusRadius = 5, 0
	lens := DefaultLens()
	lens.NearClipPlane = 5
	caster := &mockCaster{ok: true}
	c := New(cfg, lens, caster, mgl32.Vec3{})
	c.Start()

	// The near plane sits on the target, so there is nothing to sweep.
	pose := c.Update(Frame{Target: mgl32.Vec3{}, UnscaledDelta: 0.016})
	if len(caster.calls) != 0 {
		t.Fatalf("expected no cast, got %d", len(caster.calls))
	}
	if pose.Obstructed {
		t.Fatalf("a skipped cast must not obstruct the camera")
	}
	for i := range 3 {
		if math32.IsNaN(pose.Position[i]) || math32.IsInf(pose.Position[i], 0) {
			t.Fatalf("expected a finite position, got %v", pose.Position)
		}
	}
	want := game.DirectionVector(pose.Rotation).Mul(-cfg.Distance)
	if !game.Vec3ApproxEq(pose.Position, want, 1e-5) {
		t.Fatalf("expected camera at %v, got %v", want, pose.Position)
	}
}

func TestObstructionByWorld(t *testing.T) {
	w := world.New(nil)
	if err := w.AddBox("wall", cube.Box(-5, 0, -2.5, 5, 10, -2), world.LayerObstacle); err != nil {
		t.Fatalf("add wall: %v", err)
	}
	cfg := DefaultConfig()
	cfg.ObstructionMask, _ = w.Layers().Mask(world.LayerObstacle)
	c := New(cfg, DefaultLens(), w, mgl32.Vec3{0, 1, 0})

	target := mgl32.Vec3{0, 1, 0}
	pose := c.Update(Frame{Target: target, UnscaledDelta: 0.016})
	if !pose.Obstructed {
		t.Fatalf("expected the wall behind the target to obstruct the camera")
	}
	if d := pose.Position.Sub(target).Len(); d >= cfg.Distance {
		t.Fatalf("expected the camera to be pulled in front of the wall, got distance %v", d)
	}
	nearPlane := pose.Position.Add(game.DirectionVector(pose.Rotation).Mul(DefaultLens().NearClipPlane))
	if nearPlane.Z() < -2 {
		t.Fatalf("near plane ended up inside or behind the wall at %v", nearPlane)
	}
}

func TestUpdateIsIdempotentWithoutTime(t *testing.T) {
	c := newTestCamera(DefaultConfig(), &mockCaster{})
	f := Frame{Target: mgl32.Vec3{0.3, 0, 0.2}, Look: mgl32.Vec2{0.5, 0.2}}
	first := c.Update(f)
	if second := c.Update(f); first != second {
		t.Fatalf("expected identical poses, got %+v and %+v", first, second)
	}
}

func TestRotationKeptWithoutLookInput(t *testing.T) {
	c := newTestCamera(DefaultConfig(), nil)
	held := game.OrbitRotation(10, 20)

	pose := c.Update(Frame{Look: mgl32.Vec2{0.0005, -0.0005}, UnscaledDelta: 1, Rotation: held})
	if pose.Rotation != held {
		t.Fatalf("input inside the dead zone must keep the frame rotation, got %v", pose.Rotation)
	}
	if pose = c.Update(Frame{UnscaledDelta: 1}); pose.Rotation != held {
		t.Fatalf("expected the previous rotation to be kept, got %v", pose.Rotation)
	}
	if c.OrbitAngles() != (mgl32.Vec2{45, 0}) {
		t.Fatalf("orbit angles must not change without look input, got %v", c.OrbitAngles())
	}
}

func TestStoppedCameraIgnoresLook(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FocusRadius = 0
	c := New(cfg, DefaultLens(), nil, mgl32.Vec3{})

	target := mgl32.Vec3{1, 2, 3}
	pose := c.Update(Frame{Target: target, Look: mgl32.Vec2{1, 1}, UnscaledDelta: 1})
	if c.OrbitAngles() != (mgl32.Vec2{45, 0}) {
		t.Fatalf("stopped camera must ignore look input, got %v", c.OrbitAngles())
	}
	if pose.FocusPoint != target {
		t.Fatalf("stopped camera must keep following its target, got %v", pose.FocusPoint)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Distance: 0, FocusCentering: 2, RotationSpeed: 400, MinVerticalAngle: 20, MaxVerticalAngle: 10}.Validate()
	if cfg.Distance != 1 || cfg.FocusCentering != 1 || cfg.RotationSpeed != 360 || cfg.MaxVerticalAngle != 20 {
		t.Fatalf("unexpected validated config %+v", cfg)
	}
}

func TestHalfExtents(t *testing.T) {
	ext := Lens{FieldOfView: 90, Aspect: 2, NearClipPlane: 1}.HalfExtents()
	if !game.Float32ApproxEq(ext.Y(), math32.Tan(math32.Pi/4)) || !game.Float32ApproxEq(ext.X(), 2*ext.Y()) || ext.Z() != 0 {
		t.Fatalf("unexpected half extents %v", ext)
	}
}
