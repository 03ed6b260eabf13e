//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// poll samples touch screens and the mouse. The left button acts as one
// pointer; pressing it with Shift held also pins a second pointer at the
// press position, so dragging scales and rotates about that spot.
func (t *hostTouch) poll() {
	var cur []TouchPoint
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		cur = append(cur, TouchPoint{ID: int(id), X: float32(x), Y: float32(y)})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
		t.anchor = TouchPoint{ID: AnchorPointerID, X: float32(x), Y: float32(y)}
		t.anchored = shift
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		cur = append(cur, TouchPoint{ID: MousePointerID, X: float32(x), Y: float32(y)})
		if t.anchored {
			cur = append(cur, t.anchor)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		t.anchored = false
	}

	t.tr.update(cur, t.emit)
}
