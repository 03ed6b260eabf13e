// Package app is the effect shell: it owns the ordered view registry, routes
// keyboard and touch input, and decides each frame whether the selected view
// renders.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"effects/fx/gesture"
	"effects/fx/gfx"
	"effects/fx/particles"
	"effects/fx/quarkgl"
	"effects/fx/views"
	"effects/hal"
	"effects/internal/buildinfo"
)

// ViewID identifies a registered view. The order of the constants is the
// tab order.
type ViewID uint8

const (
	ViewFractal ViewID = iota
	ViewParticles
	ViewRubber
)

var viewNames = [...]string{
	ViewFractal:   "fractal",
	ViewParticles: "particles",
	ViewRubber:    "rubber",
}

func (id ViewID) String() string {
	if int(id) < len(viewNames) {
		return viewNames[id]
	}
	return fmt.Sprintf("view(%d)", uint8(id))
}

var ErrUnknownView = errors.New("unknown view")

// ParseView maps a view name to its id.
func ParseView(name string) (ViewID, error) {
	for i, n := range viewNames {
		if strings.EqualFold(n, name) {
			return ViewID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

type Config struct {
	// View is selected at startup.
	View ViewID
	Seed int64
	// MaxStep clamps the particle integration step; zero disables the clamp.
	MaxStep time.Duration
	// Load overrides the shader loader (tests).
	Load views.Loader
}

func DefaultConfig() Config {
	return Config{
		View:    ViewParticles,
		Seed:    1,
		MaxStep: particles.DefaultMaxStep,
	}
}

var failedClear = quarkgl.RGB(0, 0, 0)

type entry struct {
	id     ViewID
	v      views.View
	failed bool
}

// App implements hal.App.
type App struct {
	log   hal.Logger
	clock hal.Clock
	g     gfx.Graphics
	toast *Toaster

	registry []entry
	byID     map[ViewID]int
	cur      int

	kbd   <-chan hal.KeyEvent
	touch <-chan hal.TouchEvent

	w, h   int
	dirty  bool
	paused bool
}

// New builds the registry and selects cfg.View.
func New(h hal.HAL, cfg Config) (*App, error) {
	if h == nil {
		return nil, errors.New("app: nil hal")
	}
	g := h.Graphics()
	if g == nil {
		return nil, errors.New("app: no graphics surface")
	}

	a := &App{
		log:   h.Logger(),
		clock: h.Clock(),
		g:     g,
		byID:  make(map[ViewID]int),
		cur:   -1,
	}
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	a.toast = NewToaster(a.log, a.clock, fb)
	if in := h.Input(); in != nil {
		if k := in.Keyboard(); k != nil {
			a.kbd = k.Events()
		}
		if t := in.Touch(); t != nil {
			a.touch = t.Events()
		}
	}

	opts := views.Options{
		Reporter: a.toast,
		Load:     cfg.Load,
		Seed:     cfg.Seed,
		MaxStep:  cfg.MaxStep,
	}
	a.register(ViewFractal, views.NewFractal(opts))
	a.register(ViewParticles, views.NewParticles(opts))
	a.register(ViewRubber, views.NewRubber(opts))

	i, ok := a.byID[cfg.View]
	if !ok {
		return nil, fmt.Errorf("app: %w: %s", ErrUnknownView, cfg.View)
	}
	a.logf("%s views=%d shaders=%t", buildinfo.Line(), len(a.registry), g.ShaderCompilerSupported())
	a.selectIndex(i)
	return a, nil
}

func (a *App) register(id ViewID, v views.View) {
	a.byID[id] = len(a.registry)
	a.registry = append(a.registry, entry{id: id, v: v})
}

// Current returns the selected view id.
func (a *App) Current() ViewID { return a.registry[a.cur].id }

// View returns the registered view for id.
func (a *App) View(id ViewID) views.View {
	i, ok := a.byID[id]
	if !ok {
		return nil
	}
	return a.registry[i].v
}

func (a *App) Paused() bool { return a.paused }

// Select makes id the current view and re-initializes its surface.
func (a *App) Select(id ViewID) error {
	i, ok := a.byID[id]
	if !ok {
		return fmt.Errorf("app: %w: %s", ErrUnknownView, id)
	}
	a.selectIndex(i)
	return nil
}

func (a *App) selectIndex(i int) {
	if a.paused {
		a.setPaused(false)
	}
	a.cur = i
	e := &a.registry[i]
	e.failed = false

	a.w, a.h = a.g.Size()
	a.toast.Info(e.v.Name())
	a.call(e, func() {
		e.v.SurfaceCreated(a.g)
		e.v.SurfaceChanged(a.w, a.h)
	})
	a.dirty = true
	a.logf("view=%s mode=%s size=%dx%d", e.v.Name(), e.v.RenderMode(), a.w, a.h)
}

// Update drains pending input, tracks surface size and expires the toast.
func (a *App) Update() error {
	a.drainKeys()
	a.drainTouch()

	if w, h := a.g.Size(); w != a.w || h != a.h {
		a.w, a.h = w, h
		e := &a.registry[a.cur]
		a.call(e, func() { e.v.SurfaceChanged(w, h) })
		a.dirty = true
	}
	if a.toast.Update() {
		a.dirty = true
	}
	return nil
}

// Draw renders the current view if it is continuous and running, or if a
// render was requested.
func (a *App) Draw() {
	e := &a.registry[a.cur]
	continuous := e.v.RenderMode() == views.RenderContinuously && !a.paused
	if !continuous && !a.dirty {
		return
	}
	a.dirty = false

	now := a.now()
	a.call(e, func() { e.v.Render(now, a.g) })
	if e.failed {
		a.g.Clear(failedClear)
	}
	a.toast.Draw(a.g)
}

func (a *App) drainKeys() {
	for {
		select {
		case ev, ok := <-a.kbd:
			if !ok {
				a.kbd = nil
				return
			}
			a.handleKey(ev)
		default:
			return
		}
	}
}

func (a *App) drainTouch() {
	for {
		select {
		case ev, ok := <-a.touch:
			if !ok {
				a.touch = nil
				return
			}
			a.handleTouch(ev)
		default:
			return
		}
	}
}

func (a *App) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	n := len(a.registry)
	switch ev.Code {
	case hal.KeyTab:
		if ev.Shift {
			a.selectIndex((a.cur - 1 + n) % n)
		} else {
			a.selectIndex((a.cur + 1) % n)
		}
	case hal.KeyF1, hal.KeyF2, hal.KeyF3:
		if i := int(ev.Code - hal.KeyF1); i < n {
			a.selectIndex(i)
		}
	case hal.KeySpace:
		a.setPaused(!a.paused)
	case hal.KeyBackspace:
		a.selectIndex(a.cur)
	}
}

func (a *App) handleTouch(ev hal.TouchEvent) {
	tev := views.TouchEvent{ID: ev.ID, X: ev.X, Y: ev.Y}
	switch ev.Phase {
	case hal.TouchDown:
		tev.Phase = views.PointerDown
	case hal.TouchMove:
		tev.Phase = views.PointerMove
	case hal.TouchUp:
		tev.Phase = views.PointerUp
	default:
		return
	}
	if len(ev.Pointers) > 0 {
		tev.Pointers = make([]gesture.Pointer, len(ev.Pointers))
		for i, p := range ev.Pointers {
			tev.Pointers[i] = gesture.Pointer{ID: p.ID, X: p.X, Y: p.Y}
		}
	}

	e := &a.registry[a.cur]
	var redraw bool
	a.call(e, func() { redraw = e.v.HandleTouch(tev) })
	if redraw {
		a.dirty = true
	}
}

func (a *App) setPaused(p bool) {
	a.paused = p
	e := &a.registry[a.cur]
	if pv, ok := e.v.(views.Pauser); ok {
		if p {
			a.call(e, pv.Pause)
		} else {
			a.call(e, pv.Resume)
		}
	}
	if p {
		a.toast.Info("paused")
	} else {
		a.dirty = true
		a.toast.Info("resumed")
	}
}

// call runs fn for e unless e already failed. A panic disables the view
// until it is selected again.
func (a *App) call(e *entry, fn func()) {
	if e.failed {
		return
	}
	if err := guard(a.log, e.v.Name(), fn); err != nil {
		e.failed = true
		a.toast.ReportError(e.v.Name(), err)
	}
}

func (a *App) now() time.Duration {
	if a.clock == nil {
		return 0
	}
	return a.clock.Now()
}

func (a *App) logf(format string, args ...any) {
	if a.log == nil {
		return
	}
	a.log.WriteLineString("app: " + fmt.Sprintf(format, args...))
}
