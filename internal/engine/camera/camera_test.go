package camera

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Faultbox/midgard-motion/internal/engine/physics"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

type fakeCaster struct {
	hit      bool
	distance float32

	calls   int
	origin  math.Vec3
	dir     math.Vec3
	maxDist float32
	radius  float32
}

func (f *fakeCaster) SphereSweep(origin math.Vec3, radius float32, dir math.Vec3, maxDistance float32, mask physics.LayerMask) (physics.Hit, bool) {
	f.calls++
	f.origin, f.dir, f.maxDist, f.radius = origin, dir, maxDistance, radius
	if f.hit && f.distance <= maxDistance {
		return physics.Hit{Distance: f.distance}, true
	}
	return physics.Hit{}, false
}

type fakeHost struct {
	captured int
	err      error
}

func (h *fakeHost) CaptureCursor() error {
	h.captured++
	return h.err
}

type fixedTarget struct{ pos math.Vec3 }

func (t *fixedTarget) Position() math.Vec3 { return t.pos }

const dt = float32(1.0 / 60)

func newTestRig(t *testing.T, caster SphereCaster) *Rig {
	t.Helper()
	r, err := NewRig(DefaultConfig(), caster, nil)
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}
	r.SetTarget(&fixedTarget{})
	return r
}

func TestNewRigRequiresCaster(t *testing.T) {
	_, err := NewRig(DefaultConfig(), nil, nil)
	if !errors.Is(err, ErrNilCaster) {
		t.Errorf("expected ErrNilCaster, got %v", err)
	}
}

func TestInitialize(t *testing.T) {
	host := &fakeHost{}
	r, err := NewRig(DefaultConfig(), &fakeCaster{}, host)
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}

	start := Transform{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Rotation: math.QuatEuler(20, 45, 0)}
	if err := r.Initialize(start); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	wantZoom := math.Vec3{Y: 2, Z: -4}.Length()
	if r.CurrentZoom() != wantZoom || r.TargetZoom() != wantZoom {
		t.Errorf("zoom = %v/%v, want %v", r.CurrentZoom(), r.TargetZoom(), wantZoom)
	}
	if math.Abs(r.Yaw()-45) > 0.01 || math.Abs(r.Pitch()-20) > 0.01 {
		t.Errorf("yaw/pitch = %v/%v, want 45/20", r.Yaw(), r.Pitch())
	}
	if r.Position() != start.Position {
		t.Errorf("position = %v, want %v", r.Position(), start.Position)
	}
	if host.captured != 1 {
		t.Errorf("cursor captured %d times, want 1", host.captured)
	}
}

func TestInitializeCaptureError(t *testing.T) {
	sentinel := errors.New("no focus")
	r, _ := NewRig(DefaultConfig(), &fakeCaster{}, &fakeHost{err: sentinel})
	if err := r.Initialize(Transform{Rotation: math.QuatIdentity()}); !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped capture error, got %v", err)
	}
}

func TestUpdateWithoutTarget(t *testing.T) {
	caster := &fakeCaster{}
	r, _ := NewRig(DefaultConfig(), caster, nil)
	_ = r.Initialize(Transform{Position: math.Vec3{Z: -4}, Rotation: math.QuatIdentity()})

	p := r.Update(math.Vec2{X: 5, Y: 5}, 3, dt)

	if caster.calls != 0 {
		t.Error("rig without target should not query the world")
	}
	if r.Yaw() != 0 || r.Pitch() != 0 {
		t.Errorf("orbit should not change, got yaw %v pitch %v", r.Yaw(), r.Pitch())
	}
	if p.Position != (math.Vec3{Z: -4}) {
		t.Errorf("position should be unchanged, got %v", p.Position)
	}
}

func TestPitchStaysClamped(t *testing.T) {
	r := newTestRig(t, &fakeCaster{})
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		look := math.Vec2{X: rng.Float32()*40 - 20, Y: rng.Float32()*40 - 20}
		r.Update(look, 0, dt)
		if r.Pitch() < cfg.PitchMin || r.Pitch() > cfg.PitchMax {
			t.Fatalf("frame %d: pitch %v outside [%v, %v]", i, r.Pitch(), cfg.PitchMin, cfg.PitchMax)
		}
	}
}

func TestLookInput(t *testing.T) {
	r := newTestRig(t, &fakeCaster{})
	r.Update(math.Vec2{X: 1, Y: 0.5}, 0, 0.1)

	// yaw += 1 * 120 * 0.1, pitch -= 0.5 * 120 * 0.1
	if math.Abs(r.Yaw()-12) > 1e-4 {
		t.Errorf("yaw = %v, want 12", r.Yaw())
	}
	if math.Abs(r.Pitch()+6) > 1e-4 {
		t.Errorf("pitch = %v, want -6", r.Pitch())
	}
}

func TestZoomClampAndConvergence(t *testing.T) {
	r := newTestRig(t, &fakeCaster{})
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		r.Update(math.Vec2{}, rng.Float32()*200-100, dt)
		if r.TargetZoom() < cfg.MinZoom || r.TargetZoom() > cfg.MaxZoom {
			t.Fatalf("frame %d: target zoom %v outside [%v, %v]", i, r.TargetZoom(), cfg.MinZoom, cfg.MaxZoom)
		}
	}

	// Pin the target at the maximum and measure geometric convergence
	for r.TargetZoom() < cfg.MaxZoom {
		r.Update(math.Vec2{}, -1000, dt)
	}
	gap := math.Abs(r.TargetZoom() - r.CurrentZoom())
	ratio := 1 - dt*zoomGain
	for i := 0; i < 60; i++ {
		r.Update(math.Vec2{}, 0, dt)
		gap *= ratio
		if got := math.Abs(r.TargetZoom() - r.CurrentZoom()); got > gap+1e-4 {
			t.Fatalf("frame %d: zoom gap %v exceeds geometric bound %v", i, got, gap)
		}
	}
	if math.Abs(r.CurrentZoom()-cfg.MaxZoom) > 1e-3 {
		t.Errorf("current zoom %v did not converge to %v", r.CurrentZoom(), cfg.MaxZoom)
	}
}

func TestScrollNoiseIgnored(t *testing.T) {
	r := newTestRig(t, &fakeCaster{})
	before := r.TargetZoom()

	for i := 0; i < 100; i++ {
		r.Update(math.Vec2{}, 0.01, dt)
		r.Update(math.Vec2{}, -0.005, dt)
	}

	if r.TargetZoom() != before {
		t.Errorf("target zoom drifted from %v to %v", before, r.TargetZoom())
	}
}

func TestCollisionPullIn(t *testing.T) {
	caster := &fakeCaster{hit: true, distance: 2}
	r := newTestRig(t, caster)

	p := r.Update(math.Vec2{}, 0, dt)

	if !p.Blocked {
		t.Fatal("expected blocked placement")
	}
	want := float32(2) - DefaultConfig().CollisionRadius
	if math.Abs(p.Distance-want) > 1e-5 {
		t.Errorf("distance = %v, want %v", p.Distance, want)
	}
	if got := p.Desired.Length(); math.Abs(got-want) > 1e-4 {
		t.Errorf("desired position %v is %v from target, want %v", p.Desired, got, want)
	}
	if got := p.Desired.Length(); got > caster.distance {
		t.Errorf("desired position lies beyond the obstruction: %v > %v", got, caster.distance)
	}
	if caster.radius != DefaultConfig().CollisionRadius {
		t.Errorf("sweep radius = %v", caster.radius)
	}
}

func TestSweepUsesCurrentZoom(t *testing.T) {
	caster := &fakeCaster{}
	r := newTestRig(t, caster)

	r.Update(math.Vec2{}, 100, dt) // zoom in: target drops, current lags

	if caster.maxDist != r.CurrentZoom() {
		t.Errorf("sweep length %v, want in-flight zoom %v", caster.maxDist, r.CurrentZoom())
	}
	if caster.maxDist == r.TargetZoom() {
		t.Error("sweep should not use the final target zoom")
	}
}

func TestUnblockedPlacement(t *testing.T) {
	caster := &fakeCaster{}
	r := newTestRig(t, caster)
	target := &fixedTarget{pos: math.Vec3{X: 3, Y: 1, Z: -2}}
	r.SetTarget(target)

	var p Placement
	for i := 0; i < 300; i++ {
		p = r.Update(math.Vec2{}, 0, dt)
	}

	if p.Blocked {
		t.Fatal("expected unblocked placement")
	}
	if p.Distance != r.CurrentZoom() {
		t.Errorf("distance = %v, want current zoom %v", p.Distance, r.CurrentZoom())
	}
	// yaw 0, pitch 0: straight along the normalized offset
	dir := DefaultConfig().Offset.Normalize()
	want := target.pos.Add(dir.Scale(r.CurrentZoom()))
	if !p.Desired.ApproxEqual(want, 1e-4) {
		t.Errorf("desired = %v, want %v", p.Desired, want)
	}
	if !p.Position.ApproxEqual(want, 1e-3) {
		t.Errorf("smoothed position %v did not settle on %v", p.Position, want)
	}
	if caster.origin != target.pos {
		t.Errorf("sweep origin = %v, want target position", caster.origin)
	}

	focus := target.pos.Add(math.Vec3{Y: DefaultConfig().Offset.Y * 0.5})
	wantFwd := focus.Sub(p.Position).Normalize()
	if !p.Rotation.Forward().ApproxEqual(wantFwd, 1e-4) {
		t.Errorf("camera forward = %v, want %v", p.Rotation.Forward(), wantFwd)
	}
}

func TestSmoothingCarriesVelocity(t *testing.T) {
	r := newTestRig(t, &fakeCaster{})
	p := r.Update(math.Vec2{}, 0, dt)

	if p.Velocity == (math.Vec3{}) {
		t.Error("first frame from origin should build up smoothing velocity")
	}
	if r.Velocity() != p.Velocity {
		t.Error("rig should keep the smoothing velocity between frames")
	}
	if p.Position == p.Desired {
		t.Error("smoothing should not jump straight to the desired position")
	}
}

func TestPlanarRotation(t *testing.T) {
	r := newTestRig(t, &fakeCaster{})
	// 90 degrees of yaw, with pitch input that must not leak into the frame
	r.Update(math.Vec2{X: 0.75, Y: -2}, 0, 1)

	q := r.PlanarRotation()
	if !q.Forward().ApproxEqual(math.Vec3{X: 1}, 1e-4) {
		t.Errorf("planar forward = %v, want +X", q.Forward())
	}
	if !q.Right().ApproxEqual(math.Vec3{Z: -1}, 1e-4) {
		t.Errorf("planar right = %v, want -Z", q.Right())
	}
}

func TestMoveDirection(t *testing.T) {
	r := newTestRig(t, &fakeCaster{})
	for i := 0; i < 60; i++ {
		r.Update(math.Vec2{}, 0, dt)
	}

	if d := r.MoveDirection(math.Vec2{}); d != (math.Vec3{}) {
		t.Errorf("zero input should give zero direction, got %v", d)
	}
	if d := r.MoveDirection(math.Vec2{X: 0.05, Y: 0.05}); d != (math.Vec3{}) {
		t.Errorf("dead-zone input should give zero direction, got %v", d)
	}

	d := r.MoveDirection(math.Vec2{Y: 1})
	if math.Abs(d.Length()-1) > 1e-4 || d.Y != 0 {
		t.Errorf("direction should be unit and horizontal, got %v", d)
	}
	// camera sits behind the target looking toward +Z
	if d.Z < 0.99 {
		t.Errorf("forward input should move away from the camera, got %v", d)
	}
}
