package physics

import (
	"testing"

	"github.com/Faultbox/midgard-motion/pkg/math"
)

func groundBox() Box {
	return Box{
		Min:   math.Vec3{X: -50, Y: -1, Z: -50},
		Max:   math.Vec3{X: 50, Y: 0, Z: 50},
		Layer: LayerGround,
	}
}

func TestParseLayers(t *testing.T) {
	tests := []struct {
		names   []string
		want    LayerMask
		wantErr bool
	}{
		{nil, LayerNone, false},
		{[]string{"ground"}, LayerGround, false},
		{[]string{"Ground", " wall "}, LayerGround | LayerWall, false},
		{[]string{"all"}, LayerAll, false},
		{[]string{"nope"}, LayerNone, true},
		{[]string{"ground", "wal"}, LayerNone, true},
	}

	for _, tt := range tests {
		got, err := ParseLayers(tt.names)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLayers(%v) error = %v, wantErr %v", tt.names, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLayers(%v) = %b, want %b", tt.names, got, tt.want)
		}
	}
}

func TestOverlapSphere(t *testing.T) {
	trigger := Box{
		Min:     math.Vec3{X: 10, Y: 0, Z: 10},
		Max:     math.Vec3{X: 12, Y: 2, Z: 12},
		Layer:   LayerGround,
		Trigger: true,
	}
	w := NewWorld(groundBox(), trigger)

	tests := []struct {
		name     string
		pos      math.Vec3
		radius   float32
		mask     LayerMask
		triggers TriggerInteraction
		want     bool
	}{
		{"touching ground", math.Vec3{Y: 0.2}, 0.25, LayerGround, QueryTriggerIgnore, true},
		{"above ground", math.Vec3{Y: 0.3}, 0.25, LayerGround, QueryTriggerIgnore, false},
		{"wrong layer", math.Vec3{Y: 0.1}, 0.25, LayerWall, QueryTriggerIgnore, false},
		{"trigger ignored", math.Vec3{X: 11, Y: 3, Z: 11}, 1.5, LayerGround, QueryTriggerIgnore, false},
		{"trigger collides", math.Vec3{X: 11, Y: 3, Z: 11}, 1.5, LayerGround, QueryTriggerCollide, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.OverlapSphere(tt.pos, tt.radius, tt.mask, tt.triggers); got != tt.want {
				t.Errorf("OverlapSphere() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphereSweep(t *testing.T) {
	wall := Box{
		Min:   math.Vec3{X: -5, Y: 0, Z: -3},
		Max:   math.Vec3{X: 5, Y: 5, Z: -2},
		Layer: LayerWall,
	}
	w := NewWorld(groundBox(), wall)
	origin := math.Vec3{Y: 1}
	back := math.Vec3{Z: -1}

	hit, ok := w.SphereSweep(origin, 0.2, back, 4, LayerWall)
	if !ok {
		t.Fatal("expected sweep to hit wall")
	}
	// wall face at z=-2, expanded by radius 0.2
	if math.Abs(hit.Distance-1.8) > 1e-4 {
		t.Errorf("hit distance = %v, want 1.8", hit.Distance)
	}
	if hit.Box != 1 {
		t.Errorf("hit box = %d, want 1", hit.Box)
	}

	if _, ok := w.SphereSweep(origin, 0.2, back, 1.5, LayerWall); ok {
		t.Error("sweep shorter than the gap should not hit")
	}
	if _, ok := w.SphereSweep(origin, 0.2, math.Vec3{Z: 1}, 10, LayerWall); ok {
		t.Error("sweep away from the wall should not hit")
	}
	if _, ok := w.SphereSweep(origin, 0.2, back, 4, LayerGround); ok {
		t.Error("sweep should respect the layer mask")
	}
	if _, ok := w.SphereSweep(origin, 0.2, math.Vec3{}, 4, LayerAll); ok {
		t.Error("zero direction should not hit")
	}
}

func TestSphereSweepNearest(t *testing.T) {
	near := Box{Min: math.Vec3{X: -1, Y: 0, Z: 3}, Max: math.Vec3{X: 1, Y: 2, Z: 4}, Layer: LayerWall}
	far := Box{Min: math.Vec3{X: -1, Y: 0, Z: 6}, Max: math.Vec3{X: 1, Y: 2, Z: 7}, Layer: LayerWall}
	w := NewWorld(far, near)

	hit, ok := w.SphereSweep(math.Vec3{Y: 1}, 0.5, math.Vec3{Z: 1}, 10, LayerAll)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Box != 1 || math.Abs(hit.Distance-2.5) > 1e-4 {
		t.Errorf("got box %d at %v, want box 1 at 2.5", hit.Box, hit.Distance)
	}
}

func TestSphereSweepSkipsStartingOverlap(t *testing.T) {
	w := NewWorld(groundBox())
	// origin sits within radius of the ground surface
	if _, ok := w.SphereSweep(math.Vec3{Y: 0.1}, 0.2, math.Vec3{Z: 1}, 5, LayerAll); ok {
		t.Error("sweep starting inside a collider should ignore it")
	}
}
