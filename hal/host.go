//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"effects/fx/gfx"
)

// Surface is the initial size and capability of the host surface.
type Surface struct {
	Width, Height int
	// NoShaders reports the surface as unable to compile shaders.
	NoShaders bool
	// OverlayHeight is the height of the software framebuffer strip.
	OverlayHeight int
}

func (s Surface) withDefaults() Surface {
	if s.Width <= 0 {
		s.Width = 640
	}
	if s.Height <= 0 {
		s.Height = 480
	}
	if s.OverlayHeight <= 0 {
		s.OverlayHeight = 24
	}
	return s
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	touch  *hostTouch
	t      *hostTime
	g      gfx.Graphics
}

// newHost returns a host HAL drawing to g. A fixed step makes the clock
// advance by exactly that much per frame instead of following wall time.
func newHost(s Surface, g gfx.Graphics, fixedStep time.Duration) *hostHAL {
	s = s.withDefaults()
	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		fb:     newHostFramebuffer(s.Width, s.OverlayHeight),
		kbd:    newHostKeyboard(),
		touch:  newHostTouch(),
		t:      newHostTime(fixedStep),
		g:      g,
	}
}

func (h *hostHAL) Logger() Logger         { return h.logger }
func (h *hostHAL) Display() Display       { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input           { return hostInput{kbd: h.kbd, touch: h.touch} }
func (h *hostHAL) Clock() Clock           { return h.t }
func (h *hostHAL) Graphics() gfx.Graphics { return h.g }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd   *hostKeyboard
	touch *hostTouch
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Touch() Touch       { return in.touch }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Surface
	Title string
	TPS   int
}
