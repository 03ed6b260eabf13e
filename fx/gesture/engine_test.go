package gesture

import (
	"math"
	"testing"

	"effects/fx/quarkgl"
)

const eps = 1e-5

func newEngine(w, h int) *Engine {
	e := New()
	e.Resize(w, h)
	return e
}

func TestSinglePointerTranslation(t *testing.T) {
	const w, h = 400, 300
	e := newEngine(w, h)
	e.PointerDown(7, 100, 100)

	if !e.PointerMove([]Pointer{{ID: 7, X: 100 - w/2, Y: 100}}) {
		t.Fatal("expected render request")
	}
	want := quarkgl.Mat3Translate(1, 0)
	if !e.Move().ApproxEqual(want, eps) {
		t.Fatalf("move = %v, want %v", e.Move(), want)
	}
	if e.View() != quarkgl.Mat3Identity() {
		t.Fatal("view changed mid-gesture")
	}

	// Dragging down on screen moves content down in Y-up coordinates.
	e.PointerMove([]Pointer{{ID: 7, X: 100, Y: 100 + h/2}})
	if !e.Move().ApproxEqual(quarkgl.Mat3Translate(0, 1), eps) {
		t.Fatalf("move = %v, want translate(0,1)", e.Move())
	}
}

func TestTwoPointersUnmovedIsIdentity(t *testing.T) {
	e := newEngine(100, 100)
	e.PointerDown(0, 0, 0)
	e.PointerDown(1, 10, 0)

	if !e.PointerMove([]Pointer{{ID: 0, X: 0, Y: 0}, {ID: 1, X: 10, Y: 0}}) {
		t.Fatal("expected render request")
	}
	if !e.Move().ApproxEqual(quarkgl.Mat3Identity(), eps) {
		t.Fatalf("move = %v, want identity", e.Move())
	}
}

func TestTwoPointerScale(t *testing.T) {
	e := newEngine(100, 100)
	e.PointerDown(0, 0, 0)
	e.PointerDown(1, 10, 0)
	e.PointerMove([]Pointer{{ID: 0, X: 0, Y: 0}, {ID: 1, X: 20, Y: 0}})

	m := e.Move()
	if math.Abs(float64(m[0]-0.5)) > eps || math.Abs(float64(m[4]-0.5)) > eps {
		t.Fatalf("scale = (%v,%v), want 0.5", m[0], m[4])
	}
	if math.Abs(float64(m[1])) > eps || math.Abs(float64(m[3])) > eps {
		t.Fatalf("unexpected rotation terms %v %v", m[1], m[3])
	}
}

func TestTwoPointerRotationAboutSecondPointer(t *testing.T) {
	const w, h = 200, 100
	e := newEngine(w, h)
	e.PointerDown(0, 0, 0)
	e.PointerDown(1, 10, 0)
	e.PointerMove([]Pointer{{ID: 0, X: 0, Y: 0}, {ID: 1, X: 0, Y: 10}})

	m := e.Move()
	// Quarter turn at unit scale.
	if math.Abs(float64(m[0])) > eps || math.Abs(float64(m[1]-1)) > eps {
		t.Fatalf("move = %v, want a quarter turn", m)
	}
	pivot := quarkgl.V2(0/float32(w)*2-1, -(10/float32(h)*2 - 1))
	got := m.Apply(pivot)
	if math.Abs(float64(got.X-pivot.X)) > eps || math.Abs(float64(got.Y-pivot.Y)) > eps {
		t.Fatalf("pivot %v moved to %v", pivot, got)
	}
}

func TestCoincidentPointersSkipUpdate(t *testing.T) {
	e := newEngine(100, 100)
	e.PointerDown(0, 5, 5)
	e.PointerDown(1, 5, 5)

	before := e.Move()
	if e.PointerMove([]Pointer{{ID: 0, X: 5, Y: 5}, {ID: 1, X: 9, Y: 9}}) {
		t.Fatal("degenerate down separation produced an update")
	}
	if e.Move() != before || !e.Composed().Finite() {
		t.Fatal("degenerate input leaked into transform")
	}

	e2 := newEngine(100, 100)
	e2.PointerDown(0, 0, 0)
	e2.PointerDown(1, 10, 0)
	if e2.PointerMove([]Pointer{{ID: 0, X: 3, Y: 3}, {ID: 1, X: 3, Y: 3}}) {
		t.Fatal("coincident move produced an update")
	}
	e2.PointerUp(0)
	if !e2.View().Finite() {
		t.Fatal("commit produced non-finite view")
	}
}

func TestThreePointersLeaveMoveUnchanged(t *testing.T) {
	e := newEngine(100, 100)
	e.PointerDown(0, 10, 10)
	e.PointerMove([]Pointer{{ID: 0, X: 0, Y: 10}})
	before := e.Move()

	e.PointerDown(1, 50, 50)
	e.PointerDown(2, 60, 60)
	if e.PointerMove([]Pointer{{ID: 0, X: 1, Y: 1}, {ID: 1, X: 2, Y: 2}, {ID: 2, X: 3, Y: 3}}) {
		t.Fatal("three pointers produced an update")
	}
	if e.Move() != before {
		t.Fatal("move changed with three pointers")
	}
}

func TestCommitOnRelease(t *testing.T) {
	e := newEngine(100, 100)
	e.PointerDown(3, 50, 50)
	e.PointerMove([]Pointer{{ID: 3, X: 25, Y: 75}})

	composed := e.Composed()
	e.PointerUp(3)

	if !e.View().ApproxEqual(composed, eps) {
		t.Fatalf("view after commit = %v, want %v", e.View(), composed)
	}
	if e.Move() != quarkgl.Mat3Identity() {
		t.Fatalf("move not reset: %v", e.Move())
	}
	if e.Active() != 0 {
		t.Fatalf("active = %d, want 0", e.Active())
	}

	// A second drag builds on the committed baseline.
	e.PointerDown(4, 50, 50)
	e.PointerMove([]Pointer{{ID: 4, X: 25, Y: 75}})
	want := quarkgl.Mat3Mul(composed, quarkgl.Mat3Translate(0.5, 0.5))
	if !e.Composed().ApproxEqual(want, eps) {
		t.Fatalf("composed = %v, want %v", e.Composed(), want)
	}
	if !e.Composed().ApproxEqual(quarkgl.Mat3Translate(1, 1), eps) {
		t.Fatalf("two drags of 0.5 should add up to 1: %v", e.Composed())
	}
}

func TestReleaseReanchorsRemainingPointer(t *testing.T) {
	e := newEngine(100, 100)
	e.PointerDown(0, 0, 0)
	e.PointerDown(1, 10, 0)
	e.PointerMove([]Pointer{{ID: 0, X: 0, Y: 0}, {ID: 1, X: 20, Y: 0}})
	committed := e.Composed()

	e.PointerUp(1)
	if !e.View().ApproxEqual(committed, eps) {
		t.Fatal("partial release did not commit")
	}

	// The remaining pointer has not moved since the commit: no jump.
	e.PointerMove([]Pointer{{ID: 0, X: 0, Y: 0}})
	if !e.Move().ApproxEqual(quarkgl.Mat3Identity(), eps) {
		t.Fatalf("move after re-anchor = %v, want identity", e.Move())
	}
}

func TestMoveIgnoresUnknownPointers(t *testing.T) {
	e := newEngine(100, 100)
	if e.PointerMove([]Pointer{{ID: 9, X: 1, Y: 1}}) {
		t.Fatal("move without pointers produced an update")
	}
	e.PointerDown(1, 10, 10)
	e.PointerMove([]Pointer{{ID: 9, X: 90, Y: 90}, {ID: 1, X: 10, Y: 10}})
	if !e.Move().ApproxEqual(quarkgl.Mat3Identity(), eps) {
		t.Fatalf("unknown pointer affected move: %v", e.Move())
	}
	e.PointerUp(42)
	if e.Active() != 1 {
		t.Fatalf("active = %d after unknown release", e.Active())
	}
}

func TestZeroSizeSurfaceSkipsUpdate(t *testing.T) {
	e := New()
	e.PointerDown(0, 1, 1)
	if e.PointerMove([]Pointer{{ID: 0, X: 2, Y: 2}}) {
		t.Fatal("update without a surface size")
	}
}

func TestPointersKeptInIDOrder(t *testing.T) {
	e := New()
	e.PointerDown(5, 0, 0)
	e.PointerDown(2, 0, 0)
	e.PointerDown(9, 0, 0)
	e.PointerDown(2, 1, 1)
	if e.Active() != 3 {
		t.Fatalf("active = %d, want 3", e.Active())
	}
	for i := 1; i < len(e.samples); i++ {
		if e.samples[i-1].id >= e.samples[i].id {
			t.Fatalf("samples out of order: %+v", e.samples)
		}
	}
}
