package input

// Step is a scripted event fired on a given frame.
type Step struct {
	Frame int
	Event Event
}

// Script replays a fixed timeline of events, one frame per Poll.
type Script struct {
	queue *Queue
	steps []Step
	next  int
	frame int
}

// NewScript creates a replay source. Steps must be sorted by frame.
func NewScript(steps []Step) *Script {
	return &Script{
		queue: NewQueue(),
		steps: steps,
	}
}

// Poll pushes the events scheduled for the current frame and drains them.
func (s *Script) Poll() Snapshot {
	for s.next < len(s.steps) && s.steps[s.next].Frame <= s.frame {
		s.queue.Push(s.steps[s.next].Event)
		s.next++
	}
	s.frame++
	return s.queue.Poll()
}

// Done reports whether every step has been replayed.
func (s *Script) Done() bool {
	return s.next >= len(s.steps)
}

// Frame returns the number of frames polled so far.
func (s *Script) Frame() int {
	return s.frame
}
