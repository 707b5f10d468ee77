package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-motion/internal/engine/physics"
)

// Validate reports every setting that would make the controllers misbehave.
func (c *Config) Validate() error {
	var errs []error

	cam := c.Camera
	if cam.MinZoom <= 0 || cam.MinZoom > cam.MaxZoom {
		errs = append(errs, fmt.Errorf("camera zoom range [%v, %v] is invalid", cam.MinZoom, cam.MaxZoom))
	}
	if cam.PitchMin > cam.PitchMax {
		errs = append(errs, fmt.Errorf("camera pitch range [%v, %v] is invalid", cam.PitchMin, cam.PitchMax))
	}
	if cam.Offset == (Vec3{}) {
		errs = append(errs, errors.New("camera offset must be non-zero"))
	}
	if cam.CollisionRadius < 0 || cam.CollisionSmoothTime < 0 {
		errs = append(errs, errors.New("camera collision settings must be non-negative"))
	}

	if _, err := physics.ParseLayers(cam.CollisionLayers); err != nil {
		errs = append(errs, fmt.Errorf("camera collision_layers: %w", err))
	}

	loc := c.Locomotion
	if len(loc.GroundLayers) == 0 {
		errs = append(errs, errors.New("locomotion ground_layers must name at least one layer"))
	} else if _, err := physics.ParseLayers(loc.GroundLayers); err != nil {
		errs = append(errs, fmt.Errorf("locomotion ground_layers: %w", err))
	}
	if loc.Gravity >= 0 {
		errs = append(errs, fmt.Errorf("gravity must be negative, got %v", loc.Gravity))
	}
	if loc.JumpHeight < 0 {
		errs = append(errs, fmt.Errorf("jump height must be non-negative, got %v", loc.JumpHeight))
	}
	if loc.CrouchHeight <= 0 || loc.CrouchHeight > c.Body.Height {
		errs = append(errs, fmt.Errorf("crouch height %v must be in (0, %v]", loc.CrouchHeight, c.Body.Height))
	}

	if c.Body.Height <= 0 || c.Body.Radius <= 0 {
		errs = append(errs, errors.New("body height and radius must be positive"))
	}

	for i, box := range c.World.Boxes {
		if _, err := physics.ParseLayers([]string{box.Layer}); err != nil {
			errs = append(errs, fmt.Errorf("world box %d: %w", i, err))
		}
	}

	switch c.Input.Backend {
	case "script", "sdl":
	default:
		errs = append(errs, fmt.Errorf("unknown input backend %q", c.Input.Backend))
	}

	return errors.Join(errs...)
}
