//go:build !tinygo && !cgo

package hal

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
