//go:build !tinygo

package hal

// Pointer ids used when the mouse stands in for touch. They sit far above the
// small ids touch screens hand out.
const (
	MousePointerID  = 1 << 20
	AnchorPointerID = MousePointerID + 1
)

type hostTouch struct {
	ch chan TouchEvent
	tr touchTracker

	// Shift-drag anchor: a second, fixed pointer at the press position.
	anchor   TouchPoint
	anchored bool
}

func newHostTouch() *hostTouch {
	return &hostTouch{ch: make(chan TouchEvent, 64)}
}

func (t *hostTouch) Events() <-chan TouchEvent { return t.ch }

func (t *hostTouch) emit(ev TouchEvent) {
	select {
	case t.ch <- ev:
	default:
	}
}

// touchTracker turns successive snapshots of the active pointer set into
// down, move and up events.
type touchTracker struct {
	prev []TouchPoint
}

// update diffs cur against the previous snapshot. Releases are reported
// first, then presses, then a single move if any pointer that stayed down
// changed position.
func (tr *touchTracker) update(cur []TouchPoint, emit func(TouchEvent)) {
	active := append([]TouchPoint(nil), tr.prev...)

	for _, p := range tr.prev {
		if indexOfPointer(cur, p.ID) >= 0 {
			continue
		}
		i := indexOfPointer(active, p.ID)
		active = append(active[:i], active[i+1:]...)
		emit(TouchEvent{Phase: TouchUp, ID: p.ID, X: p.X, Y: p.Y, Pointers: clonePointers(active)})
	}

	moved := false
	for _, p := range cur {
		i := indexOfPointer(tr.prev, p.ID)
		if i < 0 {
			active = append(active, p)
			emit(TouchEvent{Phase: TouchDown, ID: p.ID, X: p.X, Y: p.Y, Pointers: clonePointers(active)})
			continue
		}
		if tr.prev[i].X != p.X || tr.prev[i].Y != p.Y {
			moved = true
		}
	}
	if moved {
		first := cur[0]
		emit(TouchEvent{Phase: TouchMove, ID: first.ID, X: first.X, Y: first.Y, Pointers: clonePointers(cur)})
	}

	tr.prev = append(tr.prev[:0], cur...)
}

func indexOfPointer(ps []TouchPoint, id int) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePointers(ps []TouchPoint) []TouchPoint {
	if len(ps) == 0 {
		return nil
	}
	return append([]TouchPoint(nil), ps...)
}
