package physics

import (
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Body is a capsule-shaped character body resolved against a World.
// The capsule is approximated by its bounding box for collision.
type Body struct {
	world *World
	mask  LayerMask

	position math.Vec3
	height   float32
	center   math.Vec3
	radius   float32

	grounded bool
}

// BodyConfig holds body shape settings.
type BodyConfig struct {
	Height float32
	Radius float32
	Center math.Vec3
	Mask   LayerMask
}

// DefaultBodyConfig returns a 2m tall, 0.5m radius capsule standing on its origin.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{
		Height: 2,
		Radius: 0.5,
		Center: math.Vec3{Y: 1},
		Mask:   LayerAll &^ LayerTrigger,
	}
}

// NewBody places a body in world at position.
func NewBody(world *World, position math.Vec3, cfg BodyConfig) *Body {
	return &Body{
		world:    world,
		mask:     cfg.Mask,
		position: position,
		height:   cfg.Height,
		center:   cfg.Center,
		radius:   cfg.Radius,
	}
}

// Position returns the body origin in world space.
func (b *Body) Position() math.Vec3 { return b.position }

// SetPosition teleports the body without collision.
func (b *Body) SetPosition(p math.Vec3) { b.position = p }

// Height returns the capsule height.
func (b *Body) Height() float32 { return b.height }

// SetHeight sets the capsule height.
func (b *Body) SetHeight(h float32) { b.height = h }

// Center returns the capsule center relative to the origin.
func (b *Body) Center() math.Vec3 { return b.center }

// SetCenter sets the capsule center relative to the origin.
func (b *Body) SetCenter(c math.Vec3) { b.center = c }

// Radius returns the capsule radius.
func (b *Body) Radius() float32 { return b.radius }

// IsGrounded reports whether the last Move was blocked from below.
func (b *Body) IsGrounded() bool { return b.grounded }

// Move displaces the body, first horizontally and then vertically, pushing
// it out of any box it ends up inside.
func (b *Body) Move(displacement math.Vec3) {
	b.grounded = false

	if horizontal := displacement.Flat(); horizontal != (math.Vec3{}) {
		b.moveAxis(horizontal)
	}
	if displacement.Y != 0 {
		b.moveAxis(math.Vec3{Y: displacement.Y})
	}
}

func (b *Body) bounds() Box {
	c := b.position.Add(b.center)
	half := math.Vec3{X: b.radius, Y: b.height / 2, Z: b.radius}
	return Box{Min: c.Sub(half), Max: c.Add(half)}
}

func (b *Body) moveAxis(motion math.Vec3) {
	b.position = b.position.Add(motion)
	if b.world == nil {
		return
	}

	for _, other := range b.world.Boxes {
		if other.Trigger || !b.mask.Has(other.Layer) {
			continue
		}
		self := b.bounds()
		if !self.intersects(other) {
			continue
		}

		push := minimumTranslation(self, other)
		b.position = b.position.Add(push)
		if motion.Y < 0 && push.Y > 0 {
			b.grounded = true
		}
	}
}

// minimumTranslation returns the smallest axis-aligned push that separates a from b.
func minimumTranslation(a, b Box) math.Vec3 {
	overlapX := min(a.Max.X-b.Min.X, b.Max.X-a.Min.X)
	overlapY := min(a.Max.Y-b.Min.Y, b.Max.Y-a.Min.Y)
	overlapZ := min(a.Max.Z-b.Min.Z, b.Max.Z-a.Min.Z)

	ac, bc := a.Center(), b.Center()
	switch {
	case overlapY <= overlapX && overlapY <= overlapZ:
		if ac.Y < bc.Y {
			return math.Vec3{Y: -overlapY}
		}
		return math.Vec3{Y: overlapY}
	case overlapX <= overlapZ:
		if ac.X < bc.X {
			return math.Vec3{X: -overlapX}
		}
		return math.Vec3{X: overlapX}
	default:
		if ac.Z < bc.Z {
			return math.Vec3{Z: -overlapZ}
		}
		return math.Vec3{Z: overlapZ}
	}
}
