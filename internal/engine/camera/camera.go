// Package camera provides the third-person follow camera rig.
package camera

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/engine/physics"
	"github.com/Faultbox/midgard-motion/internal/logger"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// ErrNilCaster is returned when the rig has no sweep service.
var ErrNilCaster = errors.New("camera: sphere caster is required")

const (
	// scrollThreshold filters scroll noise.
	scrollThreshold = 0.01
	// zoomGain is the fixed per-second zoom convergence rate.
	zoomGain = 10
)

// SphereCaster sweeps a sphere through the world.
type SphereCaster interface {
	SphereSweep(origin math.Vec3, radius float32, dir math.Vec3, maxDistance float32, mask physics.LayerMask) (physics.Hit, bool)
}

// CursorCapturer locks and hides the host pointer.
type CursorCapturer interface {
	CaptureCursor() error
}

// Target is anything the camera can follow.
type Target interface {
	Position() math.Vec3
}

// Transform is a position and rotation pair.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
}

// Config holds rig tuning.
type Config struct {
	Offset math.Vec3

	LookSpeed float32 // degrees per unit of look input per second
	PitchMin  float32
	PitchMax  float32

	ZoomSpeed float32
	MinZoom   float32
	MaxZoom   float32

	CollisionLayers     physics.LayerMask
	CollisionRadius     float32
	CollisionSmoothTime float32
}

// DefaultConfig returns the stock rig tuning.
func DefaultConfig() Config {
	return Config{
		Offset:              math.Vec3{X: 0, Y: 2, Z: -4},
		LookSpeed:           120,
		PitchMin:            -40,
		PitchMax:            80,
		ZoomSpeed:           2,
		MinZoom:             2,
		MaxZoom:             6,
		CollisionLayers:     physics.LayerWall | physics.LayerGround,
		CollisionRadius:     0.2,
		CollisionSmoothTime: 0.05,
	}
}

// Placement is the outcome of one rig update.
type Placement struct {
	Desired  math.Vec3 // collision-adjusted goal position
	Distance float32   // distance from target used for Desired
	Blocked  bool      // whether the sweep hit something
	Position math.Vec3
	Rotation math.Quat
	Velocity math.Vec3
}

// Rig orbits a target, zooms, and pulls in to avoid clipping geometry.
type Rig struct {
	cfg    Config
	caster SphereCaster
	host   CursorCapturer
	target Target

	// Orbit, degrees
	yaw   float32
	pitch float32

	currentZoom float32
	targetZoom  float32

	position       math.Vec3
	rotation       math.Quat
	smoothVelocity math.Vec3
}

// NewRig creates a rig. host may be nil when there is no pointer to capture.
func NewRig(cfg Config, caster SphereCaster, host CursorCapturer) (*Rig, error) {
	if caster == nil {
		return nil, fmt.Errorf("new rig: %w", ErrNilCaster)
	}
	zoom := cfg.Offset.Length()
	return &Rig{
		cfg:         cfg,
		caster:      caster,
		host:        host,
		rotation:    math.QuatIdentity(),
		currentZoom: zoom,
		targetZoom:  zoom,
	}, nil
}

// SetTarget binds the follow target. A nil target pauses the rig.
func (r *Rig) SetTarget(t Target) { r.target = t }

// HasTarget reports whether a follow target is bound.
func (r *Rig) HasTarget() bool { return r.target != nil }

// Initialize resets zoom to the offset length, takes yaw and pitch from the
// starting rotation, and captures the cursor.
func (r *Rig) Initialize(start Transform) error {
	r.currentZoom = r.cfg.Offset.Length()
	r.targetZoom = r.currentZoom

	pitch, yaw, _ := start.Rotation.Euler()
	r.yaw = yaw
	r.pitch = pitch

	r.position = start.Position
	r.rotation = start.Rotation.Normalize()
	r.smoothVelocity = math.Vec3{}

	logger.Debug("camera initialized",
		zap.Float32("yaw", r.yaw),
		zap.Float32("pitch", r.pitch),
		zap.Float32("zoom", r.currentZoom),
	)

	if r.host != nil {
		if err := r.host.CaptureCursor(); err != nil {
			return fmt.Errorf("capturing cursor: %w", err)
		}
	}
	return nil
}

// Update advances the rig by one frame. It must run after the target has
// moved for the frame. Without a target it returns the current placement
// unchanged.
func (r *Rig) Update(look math.Vec2, scroll float32, dt float32) Placement {
	if r.target == nil {
		return Placement{Position: r.position, Rotation: r.rotation, Velocity: r.smoothVelocity}
	}

	r.applyLook(look, dt)
	r.applyZoom(scroll, dt)

	targetPos := r.target.Position()
	rotation := math.QuatEuler(r.pitch, r.yaw, 0)
	direction := rotation.Rotate(r.cfg.Offset.Normalize())

	distance := r.currentZoom
	hit, blocked := r.caster.SphereSweep(targetPos, r.cfg.CollisionRadius, direction, distance, r.cfg.CollisionLayers)
	if blocked {
		distance = hit.Distance - r.cfg.CollisionRadius
	}

	desired := targetPos.Add(direction.Scale(distance))
	r.position = math.SmoothDamp(r.position, desired, &r.smoothVelocity, r.cfg.CollisionSmoothTime, dt)

	focus := targetPos.Add(math.Up.Scale(r.cfg.Offset.Y * 0.5))
	r.rotation = math.LookRotation(focus.Sub(r.position), math.Up)

	return Placement{
		Desired:  desired,
		Distance: distance,
		Blocked:  blocked,
		Position: r.position,
		Rotation: r.rotation,
		Velocity: r.smoothVelocity,
	}
}

func (r *Rig) applyLook(look math.Vec2, dt float32) {
	r.yaw += look.X * r.cfg.LookSpeed * dt
	r.pitch -= look.Y * r.cfg.LookSpeed * dt
	r.pitch = math.Clamp(r.pitch, r.cfg.PitchMin, r.cfg.PitchMax)
}

func (r *Rig) applyZoom(scroll float32, dt float32) {
	if math.Abs(scroll) > scrollThreshold {
		r.targetZoom -= scroll * r.cfg.ZoomSpeed * dt
		r.targetZoom = math.Clamp(r.targetZoom, r.cfg.MinZoom, r.cfg.MaxZoom)
	}
	r.currentZoom = math.Lerp(r.currentZoom, r.targetZoom, dt*zoomGain)
}

// PlanarRotation returns the yaw-only rotation used as the movement frame.
func (r *Rig) PlanarRotation() math.Quat {
	return math.QuatEuler(0, r.yaw, 0)
}

// MoveDirection converts analog input into a horizontal world direction
// relative to where the camera is looking. It returns zero inside the dead
// zone and a unit vector otherwise.
func (r *Rig) MoveDirection(in math.Vec2) math.Vec3 {
	if in.LengthSq() < 0.01 {
		return math.Vec3{}
	}
	f := r.rotation.Forward().Flat().Normalize()
	rt := r.rotation.Right().Flat().Normalize()
	return f.Scale(in.Y).Add(rt.Scale(in.X)).Normalize()
}

// Position returns the camera position.
func (r *Rig) Position() math.Vec3 { return r.position }

// Rotation returns the camera rotation.
func (r *Rig) Rotation() math.Quat { return r.rotation }

// Velocity returns the smoothing velocity carried between frames.
func (r *Rig) Velocity() math.Vec3 { return r.smoothVelocity }

// Yaw returns the orbit yaw in degrees.
func (r *Rig) Yaw() float32 { return r.yaw }

// Pitch returns the orbit pitch in degrees.
func (r *Rig) Pitch() float32 { return r.pitch }

// CurrentZoom returns the smoothed zoom distance.
func (r *Rig) CurrentZoom() float32 { return r.currentZoom }

// TargetZoom returns the zoom distance being approached.
func (r *Rig) TargetZoom() float32 { return r.targetZoom }
