package game

import (
	"fmt"
	"strings"

	"github.com/Faultbox/midgard-motion/internal/config"
	"github.com/Faultbox/midgard-motion/internal/engine/camera"
	"github.com/Faultbox/midgard-motion/internal/engine/character"
	"github.com/Faultbox/midgard-motion/internal/engine/input"
	"github.com/Faultbox/midgard-motion/internal/engine/physics"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

func vec3(v config.Vec3) math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// CameraConfig converts camera settings to rig tuning.
func CameraConfig(c config.CameraConfig) (camera.Config, error) {
	layers, err := physics.ParseLayers(c.CollisionLayers)
	if err != nil {
		return camera.Config{}, fmt.Errorf("camera collision layers: %w", err)
	}
	return camera.Config{
		Offset:              vec3(c.Offset),
		LookSpeed:           c.LookSpeed,
		PitchMin:            c.PitchMin,
		PitchMax:            c.PitchMax,
		ZoomSpeed:           c.ZoomSpeed,
		MinZoom:             c.MinZoom,
		MaxZoom:             c.MaxZoom,
		CollisionLayers:     layers,
		CollisionRadius:     c.CollisionRadius,
		CollisionSmoothTime: c.CollisionSmoothTime,
	}, nil
}

// LocomotionConfig converts locomotion settings to controller tuning.
func LocomotionConfig(c config.LocomotionConfig) (character.Config, error) {
	ground, err := physics.ParseLayers(c.GroundLayers)
	if err != nil {
		return character.Config{}, fmt.Errorf("ground layers: %w", err)
	}
	return character.Config{
		WalkSpeed:             c.WalkSpeed,
		SprintSpeed:           c.SprintSpeed,
		CrouchSpeed:           c.CrouchSpeed,
		RotationSpeed:         c.RotationSpeed,
		JumpHeight:            c.JumpHeight,
		Gravity:               c.Gravity,
		GroundCheckRadius:     c.GroundCheckRadius,
		GroundLayer:           ground,
		CrouchHeight:          c.CrouchHeight,
		CrouchCenter:          vec3(c.CrouchCenter),
		CrouchTransitionSpeed: c.CrouchTransitionSpeed,
	}, nil
}

// BodyConfig converts the standing capsule shape. The body collides with
// every layer except triggers.
func BodyConfig(c config.BodyConfig) physics.BodyConfig {
	return physics.BodyConfig{
		Height: c.Height,
		Radius: c.Radius,
		Center: vec3(c.Center),
		Mask:   physics.LayerAll &^ physics.LayerTrigger,
	}
}

// BuildWorld creates the collision world from its box list.
func BuildWorld(c config.WorldConfig) (*physics.World, error) {
	w := physics.NewWorld()
	for i, b := range c.Boxes {
		layer, err := physics.ParseLayers([]string{b.Layer})
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		w.Add(physics.Box{
			Min:     vec3(b.Min),
			Max:     vec3(b.Max),
			Layer:   layer,
			Trigger: b.Trigger,
		})
	}
	return w, nil
}

var eventTypes = map[string]input.EventType{
	"quit":        input.EventQuit,
	"move":        input.EventMove,
	"move_cancel": input.EventMoveCancel,
	"look":        input.EventLook,
	"scroll":      input.EventScroll,
	"jump":        input.EventJump,
	"crouch":      input.EventCrouch,
	"sprint_down": input.EventSprintDown,
	"sprint_up":   input.EventSprintUp,
}

// ScriptSteps converts scripted events into replay steps.
func ScriptSteps(steps []config.ScriptStep) ([]input.Step, error) {
	out := make([]input.Step, 0, len(steps))
	prev := 0
	for i, s := range steps {
		t, ok := eventTypes[strings.ToLower(s.Event)]
		if !ok {
			return nil, fmt.Errorf("script step %d: unknown event %q", i, s.Event)
		}
		if s.Frame < prev {
			return nil, fmt.Errorf("script step %d: frame %d before frame %d", i, s.Frame, prev)
		}
		prev = s.Frame
		out = append(out, input.Step{
			Frame: s.Frame,
			Event: input.Event{
				Type:   t,
				Vector: math.Vec2{X: s.X, Y: s.Y},
				Amount: s.Amount,
			},
		})
	}
	return out, nil
}

// Bindings converts key bindings for the SDL input source.
func Bindings(k config.KeyBindings) input.Bindings {
	return input.Bindings{
		Forward: k.Forward,
		Back:    k.Back,
		Left:    k.Left,
		Right:   k.Right,
		Jump:    k.Jump,
		Crouch:  k.Crouch,
		Sprint:  k.Sprint,
		Quit:    k.Quit,
	}
}
