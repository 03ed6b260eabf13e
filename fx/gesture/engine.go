// Package gesture turns touch pointer events into a 2D affine view transform.
//
// The engine keeps two matrices: the committed view transform and the move
// transform of the gesture in progress. Drawing uses Composed, which applies
// the move transform in front of the committed one, so a live gesture previews
// on top of prior state. The move transform is folded into the view transform
// whenever a pointer lifts.
//
// Coordinates are surface pixels with Y down; the transforms work in
// normalized device coordinates with Y up.
//
// Engine is not safe for concurrent use; callers serialize input and drawing.
package gesture

import (
	"math"
	"sort"

	"effects/fx/quarkgl"
)

// Pointer is the position of one active touch pointer.
type Pointer struct {
	ID   int
	X, Y float32
}

type sample struct {
	id   int
	down quarkgl.Vec2
	move quarkgl.Vec2
}

// Engine tracks active pointers and derives the gesture transform.
type Engine struct {
	w, h quarkgl.Scalar

	// Sorted by id, mirroring the ordering of the platform's pointer index.
	samples []sample

	view quarkgl.Mat3
	move quarkgl.Mat3
}

// New returns an engine with identity transforms.
func New() *Engine {
	return &Engine{
		view: quarkgl.Mat3Identity(),
		move: quarkgl.Mat3Identity(),
	}
}

// Resize sets the surface size used to normalize pointer deltas.
func (e *Engine) Resize(w, h int) {
	e.w = quarkgl.Scalar(w)
	e.h = quarkgl.Scalar(h)
}

// Active returns the number of pointers currently down.
func (e *Engine) Active() int { return len(e.samples) }

// View returns the committed transform.
func (e *Engine) View() quarkgl.Mat3 { return e.view }

// Move returns the in-progress transform.
func (e *Engine) Move() quarkgl.Mat3 { return e.move }

// Composed returns the transform to draw with: move applied in front of view.
func (e *Engine) Composed() quarkgl.Mat3 { return quarkgl.Mat3Mul(e.view, e.move) }

// PointerDown registers a pointer at (x, y) for both its down and move sample.
// A pointer id that is already active is re-registered.
func (e *Engine) PointerDown(id int, x, y float32) {
	p := quarkgl.V2(x, y)
	if i, ok := e.find(id); ok {
		e.samples[i] = sample{id: id, down: p, move: p}
		return
	}
	i := sort.Search(len(e.samples), func(i int) bool { return e.samples[i].id >= id })
	e.samples = append(e.samples, sample{})
	copy(e.samples[i+1:], e.samples[i:])
	e.samples[i] = sample{id: id, down: p, move: p}
}

// PointerUp removes the pointer and commits the move transform.
//
// Pointers that stay down are re-anchored at their current position, so the
// rest of the gesture continues from the committed state instead of replaying
// the delta that was just committed.
func (e *Engine) PointerUp(id int) {
	if i, ok := e.find(id); ok {
		e.samples = append(e.samples[:i], e.samples[i+1:]...)
	}
	e.view = quarkgl.Mat3Mul(e.view, e.move)
	e.move = quarkgl.Mat3Identity()
	for i := range e.samples {
		e.samples[i].down = e.samples[i].move
	}
}

// PointerMove updates the move sample of every known pointer in ps and
// recomputes the move transform. It reports whether the transform changed
// and a redraw is needed. Unknown pointer ids are ignored.
func (e *Engine) PointerMove(ps []Pointer) bool {
	for _, p := range ps {
		if i, ok := e.find(p.ID); ok {
			e.samples[i].move = quarkgl.V2(p.X, p.Y)
		}
	}
	if e.w <= 0 || e.h <= 0 {
		return false
	}

	var m quarkgl.Mat3
	var ok bool
	switch len(e.samples) {
	case 1:
		m, ok = e.translate(e.samples[0])
	case 2:
		m, ok = e.scaleRotate(e.samples[0], e.samples[1])
	default:
		return false
	}
	if !ok || !m.Finite() {
		return false
	}
	e.move = m
	return true
}

func (e *Engine) translate(s sample) (quarkgl.Mat3, bool) {
	dx := (s.down.X - s.move.X) * 2 / e.w
	dy := (s.move.Y - s.down.Y) * 2 / e.h
	return quarkgl.Mat3Translate(dx, dy), true
}

func (e *Engine) scaleRotate(a, b sample) (quarkgl.Mat3, bool) {
	orig := a.down.Sub(b.down)
	cur := a.move.Sub(b.move)
	lenOrig := orig.Len()
	lenMove := cur.Len()
	if lenOrig <= 0 || lenMove <= 0 {
		// Coincident pointers: no defined scale or angle this frame.
		return quarkgl.Mat3{}, false
	}

	scale := lenOrig / lenMove
	angle := angleOf(cur, lenMove) - angleOf(orig, lenOrig)

	pivot := quarkgl.V2(b.move.X/e.w*2-1, -(b.move.Y/e.h*2 - 1))
	m := quarkgl.Mat3Mul(quarkgl.Mat3Scale(scale, scale), quarkgl.Mat3RotateAbout(angle, pivot))
	return m, true
}

// angleOf is acos(dx/len) signed by dy, the atan2 of d for len > 0.
func angleOf(d quarkgl.Vec2, l quarkgl.Scalar) quarkgl.Scalar {
	c := float64(d.X / l)
	c = math.Max(-1, math.Min(1, c))
	a := quarkgl.Scalar(math.Acos(c))
	if d.Y > 0 {
		return a
	}
	return -a
}

func (e *Engine) find(id int) (int, bool) {
	i := sort.Search(len(e.samples), func(i int) bool { return e.samples[i].id >= id })
	if i < len(e.samples) && e.samples[i].id == id {
		return i, true
	}
	return 0, false
}

// Snapshot returns the committed and in-progress transforms together, the
// pair a shader combines as view*move.
func (e *Engine) Snapshot() (view, move quarkgl.Mat3) { return e.view, e.move }
