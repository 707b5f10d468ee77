// Package input turns device events into per-frame input snapshots.
//
// Continuous axes (move, sprint hold) keep their last reported value until
// changed. Look and scroll deltas accumulate between drains. Jump, crouch and
// sprint transitions are recorded as ordered edges that a drain hands out
// exactly once.
package input

import (
	"sync"

	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Edge is a discrete input transition.
type Edge int

const (
	EdgeJump Edge = iota
	EdgeCrouch
	EdgeSprintStart
	EdgeSprintEnd
)

func (e Edge) String() string {
	switch e {
	case EdgeJump:
		return "jump"
	case EdgeCrouch:
		return "crouch"
	case EdgeSprintStart:
		return "sprint_start"
	case EdgeSprintEnd:
		return "sprint_end"
	default:
		return "unknown"
	}
}

// Snapshot is the input state for one frame.
type Snapshot struct {
	Move   math.Vec2 // analog move, last value wins
	Look   math.Vec2 // look delta since previous drain
	Scroll float32   // scroll delta since previous drain
	Sprint bool      // sprint currently held
	Edges  []Edge    // transitions since previous drain, in order
	Quit   bool
}

// Source produces one snapshot per frame.
type Source interface {
	Poll() Snapshot
}

// EventType identifies a queued event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventMove
	EventMoveCancel
	EventLook
	EventScroll
	EventJump
	EventCrouch
	EventSprintDown
	EventSprintUp
)

// Event is a single device-level input event.
type Event struct {
	Type   EventType
	Vector math.Vec2 // EventMove, EventLook
	Amount float32   // EventScroll
}

// Queue collects events from any goroutine and drains them on the tick.
type Queue struct {
	mu sync.Mutex

	move   math.Vec2
	sprint bool
	look   math.Vec2
	scroll float32
	edges  []Edge
	quit   bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		edges: make([]Edge, 0, 8),
	}
}

// Push records an event.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch e.Type {
	case EventQuit:
		q.quit = true
	case EventMove:
		q.move = e.Vector
	case EventMoveCancel:
		q.move = math.Vec2{}
	case EventLook:
		q.look = q.look.Add(e.Vector)
	case EventScroll:
		q.scroll += e.Amount
	case EventJump:
		q.edges = append(q.edges, EdgeJump)
	case EventCrouch:
		q.edges = append(q.edges, EdgeCrouch)
	case EventSprintDown:
		if !q.sprint {
			q.sprint = true
			q.edges = append(q.edges, EdgeSprintStart)
		}
	case EventSprintUp:
		if q.sprint {
			q.sprint = false
			q.edges = append(q.edges, EdgeSprintEnd)
		}
	}
}

// Poll drains the queue into a snapshot. Deltas and edges reset; move and
// sprint persist.
func (q *Queue) Poll() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := Snapshot{
		Move:   q.move,
		Look:   q.look,
		Scroll: q.scroll,
		Sprint: q.sprint,
		Quit:   q.quit,
	}
	if len(q.edges) > 0 {
		s.Edges = append([]Edge(nil), q.edges...)
	}

	q.look = math.Vec2{}
	q.scroll = 0
	q.edges = q.edges[:0]
	return s
}
