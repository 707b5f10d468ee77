package character

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/engine/input"
	"github.com/Faultbox/midgard-motion/internal/engine/physics"
	"github.com/Faultbox/midgard-motion/internal/logger"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Controller drives a character capsule from player intent.
// Call Tick once per simulation step; input setters may be called any time
// between ticks.
type Controller struct {
	cfg   Config
	motor MotionExecutor
	probe GroundProbe

	heading math.Quat

	moveInput        math.Vec2
	verticalVelocity float32
	isGrounded       bool
	isCrouching      bool
	isSprinting      bool

	// Standing profile, captured from the motor at attachment.
	standHeight float32
	standCenter math.Vec3
}

// New attaches a controller to a motion executor and ground probe.
func New(cfg Config, motor MotionExecutor, probe GroundProbe) (*Controller, error) {
	if motor == nil {
		return nil, fmt.Errorf("new controller: %w", ErrNilMotor)
	}
	if probe == nil {
		return nil, fmt.Errorf("new controller: %w", ErrNilProbe)
	}

	c := &Controller{
		cfg:         cfg,
		motor:       motor,
		probe:       probe,
		heading:     math.QuatIdentity(),
		standHeight: motor.Height(),
		standCenter: motor.Center(),
	}

	logger.Debug("locomotion attached",
		zap.Float32("standHeight", c.standHeight),
		zap.Float32("crouchHeight", cfg.CrouchHeight),
	)
	return c, nil
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	return State{
		VerticalVelocity: c.verticalVelocity,
		IsGrounded:       c.isGrounded,
		IsCrouching:      c.isCrouching,
		IsSprinting:      c.isSprinting,
		MoveInput:        c.moveInput,
		Height:           c.motor.Height(),
		Center:           c.motor.Center(),
	}
}

// Heading returns the character's facing rotation.
func (c *Controller) Heading() math.Quat { return c.heading }

// SetHeading sets the facing rotation, e.g. at spawn.
func (c *Controller) SetHeading(q math.Quat) { c.heading = q.Normalize() }

// Position returns the character's world position.
func (c *Controller) Position() math.Vec3 { return c.motor.Position() }

// SetMoveInput records the latest analog move vector.
func (c *Controller) SetMoveInput(v math.Vec2) { c.moveInput = v }

// CancelMove clears the move vector.
func (c *Controller) CancelMove() { c.moveInput = math.Vec2{} }

// SetSprinting records whether the sprint input is held.
func (c *Controller) SetSprinting(held bool) { c.isSprinting = held }

// Jump handles a jump press. It does nothing while airborne, and stands the
// character up instead of jumping while crouched.
func (c *Controller) Jump() {
	grounded := c.isGrounded || c.motor.IsGrounded()
	if !grounded {
		return
	}

	if c.isCrouching {
		c.isCrouching = false
		logger.Debug("uncrouch via jump")
		return
	}

	// v = sqrt(2 * g * h) with g negative
	c.verticalVelocity = math.Sqrt(c.cfg.JumpHeight * -2 * c.cfg.Gravity)
	logger.Debug("jump", zap.Float32("velocity", c.verticalVelocity))
}

// Crouch toggles crouching. Entering a crouch stops sprinting.
func (c *Controller) Crouch() {
	if c.isCrouching {
		c.isCrouching = false
	} else {
		c.isCrouching = true
		c.isSprinting = false
	}
	logger.Debug("crouch toggled", zap.Bool("crouching", c.isCrouching))
}

// ApplyInput feeds a polled input snapshot: the move vector replaces the
// previous one and edges are applied in the order they occurred.
func (c *Controller) ApplyInput(s input.Snapshot) {
	c.moveInput = s.Move
	for _, e := range s.Edges {
		switch e {
		case input.EdgeJump:
			c.Jump()
		case input.EdgeCrouch:
			c.Crouch()
		case input.EdgeSprintStart:
			c.SetSprinting(true)
		case input.EdgeSprintEnd:
			c.SetSprinting(false)
		}
	}
}

// Tick runs one simulation step in the required order. forward and right
// are the camera's reference axes.
func (c *Controller) Tick(dt float32, forward, right math.Vec3) {
	c.GroundCheck()
	c.IntegrateGravity(dt)
	c.ResolveMovement(dt, forward, right)
	c.BlendCapsuleShape(dt)
}

// GroundProbePoint returns the world-space bottom of the capsule.
func (c *Controller) GroundProbePoint() math.Vec3 {
	center := c.motor.Center()
	bottomY := center.Y - c.motor.Height()/2
	return c.motor.Position().Add(c.heading.Rotate(math.Vec3{Y: bottomY}))
}

// GroundCheck probes for ground at the bottom of the capsule.
func (c *Controller) GroundCheck() {
	was := c.isGrounded
	c.isGrounded = c.probe.OverlapSphere(
		c.GroundProbePoint(),
		c.cfg.GroundCheckRadius,
		c.cfg.GroundLayer,
		physics.QueryTriggerIgnore,
	)
	if c.isGrounded && !was {
		logger.Debug("landed", zap.Float32("verticalVelocity", c.verticalVelocity))
	}
}

// IntegrateGravity accumulates gravity into the vertical velocity.
func (c *Controller) IntegrateGravity(dt float32) {
	if c.isGrounded && c.verticalVelocity < 0 {
		c.verticalVelocity = StickToGroundVelocity
		return
	}

	c.verticalVelocity += c.cfg.Gravity * dt
	if c.verticalVelocity < TerminalVelocity {
		c.verticalVelocity = TerminalVelocity
	}
}

// ResolveMovement moves the capsule for this step and turns it toward the
// movement direction.
func (c *Controller) ResolveMovement(dt float32, forward, right math.Vec3) {
	dir := CameraRelativeDirection(c.moveInput, forward, right)

	speed := c.speed()
	velocity := math.Vec3{X: dir.X * speed, Y: c.verticalVelocity, Z: dir.Z * speed}
	c.motor.Move(velocity.Scale(dt))

	if dir.LengthSq() > inputDeadZone {
		target := math.LookRotation(dir, math.Up)
		c.heading = c.heading.Slerp(target, c.cfg.RotationSpeed*dt)
	}

	// Sprint wins over crouch.
	if c.isCrouching && c.isSprinting {
		c.isCrouching = false
	}
}

// BlendCapsuleShape eases the capsule toward the standing or crouched profile.
func (c *Controller) BlendCapsuleShape(dt float32) {
	targetHeight, targetCenter := c.standHeight, c.standCenter
	if c.isCrouching {
		targetHeight, targetCenter = c.cfg.CrouchHeight, c.cfg.CrouchCenter
	}

	t := dt * c.cfg.CrouchTransitionSpeed
	c.motor.SetHeight(math.Lerp(c.motor.Height(), targetHeight, t))
	c.motor.SetCenter(c.motor.Center().Lerp(targetCenter, t))
}

// speed picks the movement speed by state priority: crouch, sprint, walk.
func (c *Controller) speed() float32 {
	switch {
	case c.isCrouching:
		return c.cfg.CrouchSpeed
	case c.isSprinting:
		return c.cfg.SprintSpeed
	default:
		return c.cfg.WalkSpeed
	}
}

// CameraRelativeDirection converts analog input into a horizontal world
// direction using the camera's forward and right axes. The result is zero
// for input inside the dead zone and unit length otherwise.
func CameraRelativeDirection(in math.Vec2, forward, right math.Vec3) math.Vec3 {
	if in.LengthSq() < inputDeadZone {
		return math.Vec3{}
	}
	f := forward.Flat().Normalize()
	r := right.Flat().Normalize()
	return f.Scale(in.Y).Add(r.Scale(in.X)).Normalize()
}
