package drag

// KeyboardSource drives the same gesture from discrete key presses: pick up the focused
// item, step the drop target through the visible items, drop or cancel.
type KeyboardSource[ID comparable] struct {
	sink    Sink[ID]
	targets func() []ID

	dragging bool
	active   ID
	over     ID
}

// NewKeyboardSource takes the visible ids, in display order, as the candidate targets.
func NewKeyboardSource[ID comparable](sink Sink[ID], targets func() []ID) *KeyboardSource[ID] {
	return &KeyboardSource[ID]{sink: sink, targets: targets}
}

func (k *KeyboardSource[ID]) Dragging() bool { return k.dragging }

// Over returns the current keyboard drop target.
func (k *KeyboardSource[ID]) Over() (ID, bool) {
	return k.over, k.dragging
}

// Pickup starts a gesture on id with the item itself as the initial target. It fails
// when the sink is already busy with another gesture.
func (k *KeyboardSource[ID]) Pickup(id ID) bool {
	if k.dragging {
		return false
	}
	if !k.sink.Dispatch(startEvent(id)) {
		return false
	}
	k.dragging = true
	k.active = id
	k.over = id
	k.sink.Dispatch(moveEvent(id, true))
	return true
}

// Step moves the target delta positions through the visible ids, clamped to the ends.
func (k *KeyboardSource[ID]) Step(delta int) {
	if !k.dragging {
		return
	}
	ids := k.targets()
	if len(ids) == 0 {
		return
	}
	cur := indexOfID(ids, k.over)
	if cur < 0 {
		cur = indexOfID(ids, k.active)
	}
	if cur < 0 {
		cur = 0
		delta = 0
	}
	next := cur + delta
	if next < 0 {
		next = 0
	}
	if next > len(ids)-1 {
		next = len(ids) - 1
	}
	k.over = ids[next]
	k.sink.Dispatch(moveEvent(k.over, true))
}

// Drop ends the gesture on the current target.
func (k *KeyboardSource[ID]) Drop() {
	if !k.dragging {
		return
	}
	over := k.over
	k.clear()
	k.sink.Dispatch(endEvent(over, true))
}

func (k *KeyboardSource[ID]) Reset() {
	if !k.dragging {
		return
	}
	k.clear()
	k.sink.Dispatch(cancelEvent[ID]())
}

func (k *KeyboardSource[ID]) clear() {
	var zero ID
	k.dragging = false
	k.active = zero
	k.over = zero
}

func indexOfID[ID comparable](ids []ID, id ID) int {
	for i := range ids {
		if ids[i] == id {
			return i
		}
	}
	return -1
}
