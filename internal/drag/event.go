package drag

type EventKind int

const (
	EventStart EventKind = iota
	EventMove
	EventEnd
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventMove:
		return "move"
	case EventEnd:
		return "end"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is the vocabulary every input source speaks. For start, ID is the dragged item;
// for move and end it is the item under the pointer or keyboard focus, absent when
// HasID is false.
type Event[ID comparable] struct {
	Kind  EventKind
	ID    ID
	HasID bool
}

// Sink consumes events. *Session is the production sink. Dispatch reports whether the
// event was accepted; a refused start means another gesture owns the sink.
type Sink[ID comparable] interface {
	Dispatch(ev Event[ID]) bool
}

// Source is implemented by PointerSource and KeyboardSource.
type Source interface {
	// Dragging reports whether the source has an activated gesture in flight.
	Dragging() bool
	// Reset drops any armed or active gesture, emitting a cancel if one was active.
	Reset()
}

func startEvent[ID comparable](id ID) Event[ID] {
	return Event[ID]{Kind: EventStart, ID: id, HasID: true}
}

func moveEvent[ID comparable](id ID, ok bool) Event[ID] {
	return Event[ID]{Kind: EventMove, ID: id, HasID: ok}
}

func endEvent[ID comparable](id ID, ok bool) Event[ID] {
	return Event[ID]{Kind: EventEnd, ID: id, HasID: ok}
}

func cancelEvent[ID comparable]() Event[ID] {
	return Event[ID]{Kind: EventCancel}
}
