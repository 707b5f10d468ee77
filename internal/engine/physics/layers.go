// Package physics provides a small static collision world that answers the
// spatial queries the locomotion and camera controllers need, plus a
// capsule body that moves through it.
package physics

import (
	"fmt"
	"strings"
)

// LayerMask selects collider layers by bit.
type LayerMask uint32

// Named layers.
const (
	LayerDefault LayerMask = 1 << iota
	LayerGround
	LayerWall
	LayerTrigger
	LayerPlayer

	LayerNone LayerMask = 0
	LayerAll  LayerMask = ^LayerMask(0)
)

var layerNames = map[string]LayerMask{
	"default": LayerDefault,
	"ground":  LayerGround,
	"wall":    LayerWall,
	"trigger": LayerTrigger,
	"player":  LayerPlayer,
	"all":     LayerAll,
}

// Has reports whether m includes any bit of layer.
func (m LayerMask) Has(layer LayerMask) bool {
	return m&layer != 0
}

// ParseLayers builds a mask from layer names. Names are matched
// case-insensitively; an unknown name is an error.
func ParseLayers(names []string) (LayerMask, error) {
	var m LayerMask
	for _, n := range names {
		layer, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return LayerNone, fmt.Errorf("unknown layer %q", n)
		}
		m |= layer
	}
	return m, nil
}

// TriggerInteraction controls whether trigger colliders count for a query.
type TriggerInteraction int

const (
	QueryTriggerIgnore TriggerInteraction = iota
	QueryTriggerCollide
)
