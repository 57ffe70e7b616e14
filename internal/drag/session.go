// Package drag tracks one drag gesture over a list: the Session state machine and the
// input sources (pointer, keyboard) that feed it the same start/move/end vocabulary.
package drag

import "fmt"

type Phase int

const (
	Idle Phase = iota
	Active
	// Settling lasts from the physical end of a gesture until the completer returns.
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Settling:
		return "settling"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Completer receives each completed, non-trivial gesture exactly once.
type Completer[ID comparable] interface {
	GestureComplete(moved, target ID)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc[ID comparable] func(moved, target ID)

func (f CompleterFunc[ID]) GestureComplete(moved, target ID) { f(moved, target) }

type EndResult int

const (
	// EndIgnored: no gesture was active.
	EndIgnored EndResult = iota
	// EndDiscarded: the gesture ended without a target or on its origin.
	EndDiscarded
	// EndCompleted: the completer was invoked.
	EndCompleted
)

// Session is the drag state of one list view. It is not safe for concurrent use; all
// transitions happen on the UI loop.
type Session[ID comparable] struct {
	phase    Phase
	activeID ID
	overID   ID
	hasOver  bool

	completer Completer[ID]
}

func NewSession[ID comparable](c Completer[ID]) *Session[ID] {
	return &Session[ID]{completer: c}
}

func (s *Session[ID]) Phase() Phase { return s.phase }

// Active returns the dragged id while a gesture is in progress.
func (s *Session[ID]) Active() (ID, bool) {
	if s.phase == Idle {
		var zero ID
		return zero, false
	}
	return s.activeID, true
}

// Over returns the current hover target, if any.
func (s *Session[ID]) Over() (ID, bool) {
	if s.phase == Idle || !s.hasOver {
		var zero ID
		return zero, false
	}
	return s.overID, true
}

// IsOverlay reports whether id is the item currently being dragged.
func (s *Session[ID]) IsOverlay(id ID) bool {
	active, ok := s.Active()
	return ok && active == id
}

// Start begins a gesture on id. It returns false, changing nothing, when a gesture is
// already in progress.
func (s *Session[ID]) Start(id ID) bool {
	if s.phase != Idle {
		return false
	}
	s.phase = Active
	s.activeID = id
	s.clearOver()
	return true
}

// Move records the hover target. It never touches the list.
func (s *Session[ID]) Move(over ID) {
	if s.phase != Active {
		return
	}
	s.overID = over
	s.hasOver = true
}

// MoveNone records that nothing is under the pointer.
func (s *Session[ID]) MoveNone() {
	if s.phase != Active {
		return
	}
	s.clearOver()
}

// End finishes the gesture. When over is present and differs from the active id the
// completer is invoked once; in every case the session returns to Idle.
func (s *Session[ID]) End(over ID, hasOver bool) EndResult {
	if s.phase != Active {
		return EndIgnored
	}
	moved := s.activeID
	s.phase = Settling
	defer s.reset()

	if !hasOver || over == moved {
		return EndDiscarded
	}
	if s.completer != nil {
		s.completer.GestureComplete(moved, over)
	}
	return EndCompleted
}

// Cancel abandons the gesture without invoking the completer.
func (s *Session[ID]) Cancel() bool {
	if s.phase == Idle {
		return false
	}
	s.reset()
	return true
}

// Dispatch applies an event from a Source and reports whether it was accepted.
func (s *Session[ID]) Dispatch(ev Event[ID]) bool {
	switch ev.Kind {
	case EventStart:
		return s.Start(ev.ID)
	case EventMove:
		if s.phase != Active {
			return false
		}
		if ev.HasID {
			s.Move(ev.ID)
		} else {
			s.MoveNone()
		}
		return true
	case EventEnd:
		return s.End(ev.ID, ev.HasID) != EndIgnored
	case EventCancel:
		return s.Cancel()
	}
	return false
}

func (s *Session[ID]) clearOver() {
	var zero ID
	s.overID = zero
	s.hasOver = false
}

func (s *Session[ID]) reset() {
	var zero ID
	s.phase = Idle
	s.activeID = zero
	s.clearOver()
}
