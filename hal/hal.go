// Package hal is the contact point between the effect views and the host
// platform: log sink, input devices, clock, software framebuffer and the
// shader-capable graphics surface.
package hal

import (
	"errors"
	"time"

	"effects/fx/gfx"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyTab
	KeySpace
	KeyBackspace
	KeyF1
	KeyF2
	KeyF3
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Shift bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// TouchPhase is the kind of a touch event.
type TouchPhase uint8

const (
	TouchDown TouchPhase = iota + 1
	TouchMove
	TouchUp
)

func (p TouchPhase) String() string {
	switch p {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	default:
		return "unknown"
	}
}

// TouchPoint is one active pointer in surface pixels.
type TouchPoint struct {
	ID   int
	X, Y float32
}

// TouchEvent reports a pointer transition. ID, X and Y describe the pointer
// that went down or up; for moves they describe the first pointer. Pointers
// holds every pointer active after the event.
type TouchEvent struct {
	Phase    TouchPhase
	ID       int
	X, Y     float32
	Pointers []TouchPoint
}

// Touch provides pointer events.
type Touch interface {
	Events() <-chan TouchEvent
}

// Display provides access to the software framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Touch() Touch
}

// Clock reports monotonic uptime.
type Clock interface {
	Now() time.Duration
}

// HAL provides the only contact point between the views and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Clock() Clock
	Graphics() gfx.Graphics
}

// App is driven by the host loop once per displayed frame: Update handles
// input and state, Draw renders to HAL.Graphics.
type App interface {
	Update() error
	Draw()
}
