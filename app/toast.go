package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"effects/fx/gfx"
	"effects/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3500 * time.Millisecond

var toastFont = &proggy.TinySZ8pt7b

const (
	toastFontHeight = 10
	toastFontOffset = 6
)

// Toast colours as SGR sequences.
const (
	sgrError = "\x1b[31m"
	sgrInfo  = "\x1b[37m"
	sgrReset = "\x1b[0m"
)

// Toaster logs messages and shows the latest one as a strip at the bottom of
// the surface. It is the error reporter handed to every view.
type Toaster struct {
	mu    sync.Mutex
	log   hal.Logger
	clock hal.Clock
	fb    hal.Framebuffer
	d     *fbDisplay
	cols  int

	until    time.Duration
	visible  bool
	reported bool
}

// NewToaster returns a toaster drawing into fb. A nil fb only logs.
func NewToaster(log hal.Logger, clock hal.Clock, fb hal.Framebuffer) *Toaster {
	t := &Toaster{log: log, clock: clock, fb: fb, d: &fbDisplay{fb: fb}}
	if fb != nil {
		_, w := tinyfont.LineWidth(toastFont, "0")
		if w > 0 {
			t.cols = fb.Width() / int(w)
		}
	}
	return t
}

// ReportError implements views.ErrorReporter.
func (t *Toaster) ReportError(view string, err error) {
	if err == nil {
		return
	}
	t.show(sgrError, fmt.Sprintf("%s: %v", view, err))
}

// Info shows a neutral message.
func (t *Toaster) Info(msg string) {
	t.show(sgrInfo, msg)
}

func (t *Toaster) show(sgr, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.log != nil {
		t.log.WriteLineString("toast: " + msg)
	}
	if t.fb == nil || t.cols <= 0 {
		return
	}

	t.fb.ClearRGB(0, 0, 0)
	term := tinyterm.NewTerminal(t.d)
	term.Configure(&tinyterm.Config{
		Font:              toastFont,
		FontHeight:        toastFontHeight,
		FontOffset:        toastFontOffset,
		UseSoftwareScroll: true,
	})
	fmt.Fprint(term, sgr+truncate(msg, t.cols*t.rows())+sgrReset)
	term.Display()

	t.until = t.now() + ToastDuration
	t.visible = true
}

// Update expires the toast and reports whether its visibility changed since
// the previous call.
func (t *Toaster) Update() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible && t.now() >= t.until {
		t.visible = false
	}
	changed := t.visible != t.reported
	t.reported = t.visible
	return changed
}

// Visible reports whether a toast is on screen.
func (t *Toaster) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Draw blits the toast strip along the bottom edge of g.
func (t *Toaster) Draw(g gfx.Graphics) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.visible || t.fb == nil {
		return
	}
	_, h := g.Size()
	g.Blit(t.fb.Buffer(), t.fb.StrideBytes(), t.fb.Width(), t.fb.Height(), 0, h-t.fb.Height())
}

func (t *Toaster) rows() int {
	return max(t.fb.Height()/toastFontHeight, 1)
}

func (t *Toaster) now() time.Duration {
	if t.clock == nil {
		return 0
	}
	return t.clock.Now()
}

// truncate keeps the first n runes of s on one logical line.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
