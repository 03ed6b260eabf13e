//go:build !tinygo && !cgo

package hal

func (t *hostTouch) poll() {
	// No pointer input without the window backend.
}
