package drag

import "math"

// DefaultActivationDistance is the pointer travel, in terminal cells, that turns a
// press on a row into a drag. Anything shorter is a click.
const DefaultActivationDistance = 1

type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerMotion
	PointerRelease
)

// PointerInput is one pointer event in cell coordinates. Primary is false for buttons
// other than the one that drags (right click, wheel).
type PointerInput struct {
	Action  PointerAction
	X, Y    int
	Primary bool
}

// HitTest maps a cell to the item drawn there.
type HitTest[ID comparable] func(x, y int) (ID, bool)

// PointerSource turns press/motion/release into drag events. A press only arms the
// gesture; it starts once travel from the press origin reaches the activation distance.
type PointerSource[ID comparable] struct {
	sink       Sink[ID]
	hit        HitTest[ID]
	activation float64

	armed    bool
	dragging bool
	originX  int
	originY  int
	pressed  ID
}

func NewPointerSource[ID comparable](sink Sink[ID], hit HitTest[ID], activationDistance int) *PointerSource[ID] {
	if activationDistance < 1 {
		activationDistance = DefaultActivationDistance
	}
	return &PointerSource[ID]{sink: sink, hit: hit, activation: float64(activationDistance)}
}

func (p *PointerSource[ID]) Dragging() bool { return p.dragging }

// SetHitTest replaces the hit test, e.g. after the list layout changed.
func (p *PointerSource[ID]) SetHitTest(hit HitTest[ID]) { p.hit = hit }

// Handle feeds one pointer event. A release that never reached the activation distance
// is a click and is returned so the caller can select the row.
func (p *PointerSource[ID]) Handle(in PointerInput) (clicked ID, ok bool) {
	var zero ID
	switch in.Action {
	case PointerPress:
		if !in.Primary || p.dragging {
			p.Reset()
			return zero, false
		}
		id, hit := p.lookup(in.X, in.Y)
		if !hit {
			p.disarm()
			return zero, false
		}
		p.armed = true
		p.originX, p.originY = in.X, in.Y
		p.pressed = id

	case PointerMotion:
		if !p.dragging {
			if !p.armed || !p.exceeded(in.X, in.Y) {
				return zero, false
			}
			if !p.sink.Dispatch(startEvent(p.pressed)) {
				p.disarm()
				return zero, false
			}
			p.dragging = true
		}
		over, hit := p.lookup(in.X, in.Y)
		p.sink.Dispatch(moveEvent(over, hit))

	case PointerRelease:
		if p.dragging {
			over, hit := p.lookup(in.X, in.Y)
			p.disarm()
			p.sink.Dispatch(endEvent(over, hit))
			return zero, false
		}
		if p.armed {
			id := p.pressed
			p.disarm()
			return id, true
		}
	}
	return zero, false
}

// Reset drops the armed press and cancels an active drag.
func (p *PointerSource[ID]) Reset() {
	wasDragging := p.dragging
	p.disarm()
	if wasDragging {
		p.sink.Dispatch(cancelEvent[ID]())
	}
}

func (p *PointerSource[ID]) lookup(x, y int) (ID, bool) {
	if p.hit == nil {
		var zero ID
		return zero, false
	}
	return p.hit(x, y)
}

func (p *PointerSource[ID]) exceeded(x, y int) bool {
	dx := float64(x - p.originX)
	dy := float64(y - p.originY)
	return math.Hypot(dx, dy) >= p.activation
}

func (p *PointerSource[ID]) disarm() {
	var zero ID
	p.armed = false
	p.dragging = false
	p.pressed = zero
}
