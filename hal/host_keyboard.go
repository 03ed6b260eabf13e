//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var hostKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyF1, KeyF1},
	{ebiten.KeyF2, KeyF2},
	{ebiten.KeyF3, KeyF3},
}

func (k *hostKeyboard) poll() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	for _, hk := range hostKeys {
		if inpututil.IsKeyJustPressed(hk.key) {
			k.emit(KeyEvent{Code: hk.code, Press: true, Shift: shift})
		}
		if inpututil.IsKeyJustReleased(hk.key) {
			k.emit(KeyEvent{Code: hk.code, Press: false, Shift: shift})
		}
	}
}
