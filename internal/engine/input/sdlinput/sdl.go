// Package sdlinput feeds SDL2 keyboard and mouse events into an input queue.
package sdlinput

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-motion/internal/engine/input"
	"github.com/Faultbox/midgard-motion/internal/logger"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

type scancodes struct {
	forward, back, left, right sdl.Scancode
	jump, crouch, sprint, quit sdl.Scancode
}

// Source polls SDL2 events and feeds a Queue.
type Source struct {
	queue    *input.Queue
	keys     scancodes
	held     map[sdl.Scancode]bool
	lookGain float32
}

// New creates an SDL input source. lookGain scales relative mouse motion.
// Every binding must name a key SDL knows, and no two actions may share one.
func New(b input.Bindings, lookGain float32) (*Source, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	codes, err := resolve(b)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	return &Source{
		queue: input.NewQueue(),
		keys: scancodes{
			forward: codes[0],
			back:    codes[1],
			left:    codes[2],
			right:   codes[3],
			jump:    codes[4],
			crouch:  codes[5],
			sprint:  codes[6],
			quit:    codes[7],
		},
		held:     make(map[sdl.Scancode]bool),
		lookGain: lookGain,
	}, nil
}

// resolve maps key names to scancodes in Actions order.
func resolve(b input.Bindings) ([]sdl.Scancode, error) {
	actions := b.Actions()
	codes := make([]sdl.Scancode, len(actions))
	seen := make(map[sdl.Scancode]string, len(actions))

	var errs []error
	for i, a := range actions {
		sc := sdl.GetScancodeFromName(a[1])
		if sc == sdl.SCANCODE_UNKNOWN {
			errs = append(errs, fmt.Errorf("binding %s: unknown key %q", a[0], a[1]))
			continue
		}
		// distinct names can still resolve to one scancode
		if other, ok := seen[sc]; ok {
			errs = append(errs, fmt.Errorf("binding %s: key %q already bound to %s", a[0], a[1], other))
			continue
		}
		seen[sc] = a[0]
		codes[i] = sc
	}
	return codes, errors.Join(errs...)
}

// Poll pumps pending SDL events and returns this frame's snapshot.
func (s *Source) Poll() input.Snapshot {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.queue.Push(input.Event{Type: input.EventQuit})

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			s.handleKey(e.Keysym.Scancode, e.Type == sdl.KEYDOWN)

		case *sdl.MouseMotionEvent:
			// SDL reports +Y downward; look input treats +Y as up
			s.queue.Push(input.Event{
				Type:   input.EventLook,
				Vector: math.Vec2{X: float32(e.XRel) * s.lookGain, Y: -float32(e.YRel) * s.lookGain},
			})

		case *sdl.MouseWheelEvent:
			s.queue.Push(input.Event{Type: input.EventScroll, Amount: float32(e.Y)})
		}
	}
	return s.queue.Poll()
}

func (s *Source) handleKey(sc sdl.Scancode, down bool) {
	s.held[sc] = down

	switch sc {
	case s.keys.quit:
		if down {
			s.queue.Push(input.Event{Type: input.EventQuit})
		}
		return
	case s.keys.jump:
		if down {
			s.queue.Push(input.Event{Type: input.EventJump})
		}
		return
	case s.keys.crouch:
		if down {
			s.queue.Push(input.Event{Type: input.EventCrouch})
		}
		return
	case s.keys.sprint:
		if down {
			s.queue.Push(input.Event{Type: input.EventSprintDown})
		} else {
			s.queue.Push(input.Event{Type: input.EventSprintUp})
		}
		return
	}

	s.pushMove()
}

// pushMove rebuilds the move vector from held direction keys.
func (s *Source) pushMove() {
	var v math.Vec2
	if s.held[s.keys.forward] {
		v.Y++
	}
	if s.held[s.keys.back] {
		v.Y--
	}
	if s.held[s.keys.right] {
		v.X++
	}
	if s.held[s.keys.left] {
		v.X--
	}

	if v == (math.Vec2{}) {
		s.queue.Push(input.Event{Type: input.EventMoveCancel})
		return
	}
	s.queue.Push(input.Event{Type: input.EventMove, Vector: v.Normalize()})
}

// Cursor locks and hides the pointer through SDL relative mouse mode.
type Cursor struct{}

// CaptureCursor locks the pointer to the window and hides it.
func (Cursor) CaptureCursor() error {
	sdl.SetRelativeMouseMode(true)
	if _, err := sdl.ShowCursor(sdl.DISABLE); err != nil {
		return err
	}
	logger.Debug("cursor captured")
	return nil
}
