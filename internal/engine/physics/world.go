package physics

import (
	gomath "math"

	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Box is an axis-aligned static collider.
type Box struct {
	Min, Max math.Vec3
	Layer    LayerMask
	Trigger  bool
}

// Center returns the box center.
func (b Box) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// closestPoint returns the point of b nearest to p.
func (b Box) closestPoint(p math.Vec3) math.Vec3 {
	return math.Vec3{
		X: math.Clamp(p.X, b.Min.X, b.Max.X),
		Y: math.Clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: math.Clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

// expand grows the box by r on every side.
func (b Box) expand(r float32) Box {
	d := math.Vec3{X: r, Y: r, Z: r}
	return Box{Min: b.Min.Sub(d), Max: b.Max.Add(d), Layer: b.Layer, Trigger: b.Trigger}
}

func (b Box) contains(p math.Vec3) bool {
	return p.X > b.Min.X && p.X < b.Max.X &&
		p.Y > b.Min.Y && p.Y < b.Max.Y &&
		p.Z > b.Min.Z && p.Z < b.Max.Z
}

func (b Box) intersects(o Box) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// Hit describes the first obstruction found by a sweep.
type Hit struct {
	Distance float32
	Point    math.Vec3
	Box      int // index into World.Boxes
}

// World is a static set of boxes.
type World struct {
	Boxes []Box
}

// NewWorld creates a world from boxes.
func NewWorld(boxes ...Box) *World {
	return &World{Boxes: boxes}
}

// Add appends a collider and returns its index.
func (w *World) Add(b Box) int {
	w.Boxes = append(w.Boxes, b)
	return len(w.Boxes) - 1
}

// OverlapSphere reports whether a sphere at pos intersects any box on mask.
func (w *World) OverlapSphere(pos math.Vec3, radius float32, mask LayerMask, triggers TriggerInteraction) bool {
	r2 := radius * radius
	for _, b := range w.Boxes {
		if !mask.Has(b.Layer) {
			continue
		}
		if b.Trigger && triggers == QueryTriggerIgnore {
			continue
		}
		if b.closestPoint(pos).Sub(pos).LengthSq() <= r2 {
			return true
		}
	}
	return false
}

// SphereSweep moves a sphere from origin along dir and returns the nearest
// obstruction within maxDistance. Triggers never block a sweep, and boxes
// the sphere already overlaps at origin are skipped. Box corners are
// treated as square, so hits near edges are slightly conservative.
func (w *World) SphereSweep(origin math.Vec3, radius float32, dir math.Vec3, maxDistance float32, mask LayerMask) (Hit, bool) {
	dir = dir.Normalize()
	if dir == (math.Vec3{}) || maxDistance <= 0 {
		return Hit{}, false
	}

	best := Hit{Distance: maxDistance}
	found := false
	for i, b := range w.Boxes {
		if !mask.Has(b.Layer) || b.Trigger {
			continue
		}
		eb := b.expand(radius)
		if eb.contains(origin) {
			continue
		}
		t, ok := raySlab(origin, dir, eb)
		if !ok || t > best.Distance {
			continue
		}
		best = Hit{Distance: t, Point: origin.Add(dir.Scale(t)), Box: i}
		found = true
	}
	return best, found
}

// raySlab intersects a ray with a box using the slab method and returns the
// entry distance.
func raySlab(origin, dir math.Vec3, b Box) (float32, bool) {
	tmin := float32(0)
	tmax := float32(gomath.MaxFloat32)

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
