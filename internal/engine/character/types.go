// Package character provides the third-person locomotion controller: ground
// sensing, gravity and jumping, crouch and sprint state, camera-relative
// steering, and capsule shape blending.
package character

import (
	"errors"

	"github.com/Faultbox/midgard-motion/internal/engine/physics"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Errors returned when a required collaborator is missing.
var (
	ErrNilMotor = errors.New("character: motion executor is required")
	ErrNilProbe = errors.New("character: ground probe is required")
)

// MotionExecutor moves the character capsule with collision and exposes its shape.
type MotionExecutor interface {
	// Move applies a displacement and resolves penetration.
	Move(displacement math.Vec3)
	// Position returns the transform origin in world space.
	Position() math.Vec3
	Height() float32
	SetHeight(h float32)
	Center() math.Vec3
	SetCenter(c math.Vec3)
	// IsGrounded reports whether the last Move touched ground.
	IsGrounded() bool
}

// GroundProbe answers overlap queries for ground detection.
type GroundProbe interface {
	OverlapSphere(pos math.Vec3, radius float32, mask physics.LayerMask, triggers physics.TriggerInteraction) bool
}

// Config holds locomotion tuning.
type Config struct {
	WalkSpeed     float32
	SprintSpeed   float32
	CrouchSpeed   float32
	RotationSpeed float32

	JumpHeight float32
	Gravity    float32 // negative is down

	GroundCheckRadius float32
	GroundLayer       physics.LayerMask

	CrouchHeight          float32
	CrouchCenter          math.Vec3
	CrouchTransitionSpeed float32
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:             5,
		SprintSpeed:           8,
		CrouchSpeed:           3,
		RotationSpeed:         10,
		JumpHeight:            1.5,
		Gravity:               -20,
		GroundCheckRadius:     0.25,
		GroundLayer:           physics.LayerGround,
		CrouchHeight:          1.0,
		CrouchCenter:          math.Vec3{Y: 0.5},
		CrouchTransitionSpeed: 8,
	}
}

const (
	// StickToGroundVelocity keeps the ground probe engaged on slopes and steps.
	StickToGroundVelocity = -2.0
	// TerminalVelocity bounds fall speed.
	TerminalVelocity = -20.0
	// inputDeadZone is the squared magnitude below which move input is ignored.
	inputDeadZone = 0.01
)

// State is a read-only snapshot of the controller.
type State struct {
	VerticalVelocity float32
	IsGrounded       bool
	IsCrouching      bool
	IsSprinting      bool
	MoveInput        math.Vec2
	Height           float32
	Center           math.Vec3
}
