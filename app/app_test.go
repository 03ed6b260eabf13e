package app

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"effects/fx/gfx"
	"effects/fx/views"
	"effects/hal"
)

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *testLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *testLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type testClock struct{ now time.Duration }

func (c *testClock) Now() time.Duration { return c.now }

type testFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFramebuffer(w, h int) *testFramebuffer {
	return &testFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFramebuffer) Width() int              { return f.w }
func (f *testFramebuffer) Height() int             { return f.h }
func (f *testFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *testFramebuffer) Buffer() []byte          { return f.buf }
func (f *testFramebuffer) Present() error          { f.presents++; return nil }

func (f *testFramebuffer) ClearRGB(r, g, b uint8) {
	p := rgb565From888(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *testFramebuffer) lit() int {
	n := 0
	for i := 0; i+1 < len(f.buf); i += 2 {
		if f.buf[i] != 0 || f.buf[i+1] != 0 {
			n++
		}
	}
	return n
}

type testHAL struct {
	log   *testLogger
	clock *testClock
	fb    *testFramebuffer
	g     *hal.RecordingGraphics
	keys  chan hal.KeyEvent
	touch chan hal.TouchEvent
}

func newTestHAL() *testHAL {
	return &testHAL{
		log:   &testLogger{},
		clock: &testClock{},
		fb:    newTestFramebuffer(320, 24),
		g:     hal.NewRecordingGraphics(320, 240, true),
		keys:  make(chan hal.KeyEvent, 16),
		touch: make(chan hal.TouchEvent, 16),
	}
}

func (h *testHAL) Logger() hal.Logger           { return h.log }
func (h *testHAL) Display() hal.Display         { return h }
func (h *testHAL) Input() hal.Input             { return h }
func (h *testHAL) Clock() hal.Clock             { return h.clock }
func (h *testHAL) Graphics() gfx.Graphics       { return h.g }
func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Keyboard() hal.Keyboard       { return keyboard(h.keys) }
func (h *testHAL) Touch() hal.Touch             { return touch(h.touch) }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type touch chan hal.TouchEvent

func (t touch) Events() <-chan hal.TouchEvent { return t }

func (h *testHAL) frame(a *App, d time.Duration) {
	h.clock.now += d
	if err := a.Update(); err != nil {
		panic(err)
	}
	a.Draw()
}

func newTestApp(t *testing.T, view ViewID) (*App, *testHAL) {
	t.Helper()
	h := newTestHAL()
	cfg := DefaultConfig()
	cfg.View = view
	a, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, h
}

func TestParseView(t *testing.T) {
	for _, id := range []ViewID{ViewFractal, ViewParticles, ViewRubber} {
		got, err := ParseView(strings.ToUpper(id.String()))
		if err != nil || got != id {
			t.Fatalf("ParseView(%s) = %v, %v", id, got, err)
		}
	}
	if _, err := ParseView("plasma"); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("ParseView(plasma) err = %v", err)
	}
}

func TestNewRejectsUnknownView(t *testing.T) {
	cfg := DefaultConfig()
	cfg.View = ViewID(42)
	if _, err := New(newTestHAL(), cfg); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("err = %v", err)
	}
	if _, err := New(nil, cfg); err == nil {
		t.Fatalf("expected error for nil hal")
	}
}

func TestTabCyclesViewsInOrder(t *testing.T) {
	a, h := newTestApp(t, ViewParticles)

	steps := []struct {
		ev   hal.KeyEvent
		want ViewID
	}{
		{hal.KeyEvent{Code: hal.KeyTab, Press: true}, ViewRubber},
		{hal.KeyEvent{Code: hal.KeyTab, Press: true}, ViewFractal},
		{hal.KeyEvent{Code: hal.KeyTab, Press: false}, ViewFractal},
		{hal.KeyEvent{Code: hal.KeyTab, Press: true, Shift: true}, ViewRubber},
		{hal.KeyEvent{Code: hal.KeyF2, Press: true}, ViewParticles},
		{hal.KeyEvent{Code: hal.KeyF1, Press: true}, ViewFractal},
	}
	for i, s := range steps {
		h.keys <- s.ev
		h.frame(a, 16*time.Millisecond)
		if got := a.Current(); got != s.want {
			t.Fatalf("step %d: view = %s, want %s", i, got, s.want)
		}
	}
	if !h.log.contains("app: view=fractal mode=when-dirty") {
		t.Fatalf("missing selection log line")
	}
}

func TestBackspaceRestartsView(t *testing.T) {
	a, h := newTestApp(t, ViewParticles)
	p := a.View(ViewParticles).(*views.Particles)
	for i := 0; i < 3; i++ {
		h.frame(a, 16*time.Millisecond)
	}
	if p.Stats().Live == 0 {
		t.Fatalf("no particles")
	}

	h.keys <- hal.KeyEvent{Code: hal.KeyBackspace, Press: true}
	if err := a.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := p.Stats().Live; got != 0 {
		t.Fatalf("live = %d after restart, want 0", got)
	}
	if a.Current() != ViewParticles {
		t.Fatalf("view = %s", a.Current())
	}
}

func TestWhenDirtyViewRendersOnDemand(t *testing.T) {
	a, h := newTestApp(t, ViewFractal)

	h.frame(a, 16*time.Millisecond)
	first := h.g.Stats().Draws
	if first != 1 {
		t.Fatalf("draws after first frame = %d, want 1", first)
	}
	h.frame(a, 16*time.Millisecond)
	if got := h.g.Stats().Draws; got != first {
		t.Fatalf("idle frame drew: %d", got)
	}

	h.touch <- hal.TouchEvent{Phase: hal.TouchDown, ID: 1, X: 10, Y: 10,
		Pointers: []hal.TouchPoint{{ID: 1, X: 10, Y: 10}}}
	h.frame(a, 16*time.Millisecond)
	if got := h.g.Stats().Draws; got != first {
		t.Fatalf("pointer down drew: %d", got)
	}

	h.touch <- hal.TouchEvent{Phase: hal.TouchMove, ID: 1, X: 40, Y: 10,
		Pointers: []hal.TouchPoint{{ID: 1, X: 40, Y: 10}}}
	h.frame(a, 16*time.Millisecond)
	if got := h.g.Stats().Draws; got != first+1 {
		t.Fatalf("draws after move = %d, want %d", got, first+1)
	}
}

func TestResizeRedrawsWhenDirtyView(t *testing.T) {
	a, h := newTestApp(t, ViewFractal)
	h.frame(a, 16*time.Millisecond)
	before := h.g.Stats().Draws

	h.g.Resize(100, 100)
	h.frame(a, 16*time.Millisecond)
	if got := h.g.Stats().Draws; got != before+1 {
		t.Fatalf("draws = %d, want %d", got, before+1)
	}
}

func TestPauseFreezesParticles(t *testing.T) {
	a, h := newTestApp(t, ViewParticles)
	p := a.View(ViewParticles).(*views.Particles)

	h.frame(a, 16*time.Millisecond)
	h.frame(a, 16*time.Millisecond)
	live := p.Stats().Live
	if live == 0 {
		t.Fatalf("no particles after two frames")
	}

	h.keys <- hal.KeyEvent{Code: hal.KeySpace, Press: true}
	h.frame(a, 16*time.Millisecond)
	if !a.Paused() {
		t.Fatalf("not paused")
	}
	for i := 0; i < 5; i++ {
		h.frame(a, time.Second)
	}
	if got := p.Stats().Live; got != live {
		t.Fatalf("live = %d while paused, want %d", got, live)
	}

	h.keys <- hal.KeyEvent{Code: hal.KeySpace, Press: true}
	h.frame(a, 16*time.Millisecond)
	if a.Paused() {
		t.Fatalf("still paused")
	}
	if got := p.Stats().Live; got <= live {
		t.Fatalf("live = %d after resume, want > %d", got, live)
	}
}

func TestSelectingViewClearsPause(t *testing.T) {
	a, h := newTestApp(t, ViewParticles)
	h.keys <- hal.KeyEvent{Code: hal.KeySpace, Press: true}
	h.keys <- hal.KeyEvent{Code: hal.KeyTab, Press: true}
	h.frame(a, 16*time.Millisecond)
	if a.Paused() {
		t.Fatalf("pause survived view switch")
	}
	if a.Current() != ViewRubber {
		t.Fatalf("view = %s", a.Current())
	}
}

func TestMissingShaderReportedAsToast(t *testing.T) {
	h := newTestHAL()
	cfg := DefaultConfig()
	cfg.View = ViewFractal
	cfg.Load = func(name string, _ gfx.VertexStage) (gfx.Source, error) {
		return gfx.Source{}, gfx.ErrUnknownShader
	}
	a, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.frame(a, 16*time.Millisecond)

	if !h.log.contains("toast: fractal: ") {
		t.Fatalf("error not logged: %q", h.log.lines)
	}
	st := h.g.Stats()
	if st.Draws != 0 || st.Clears == 0 {
		t.Fatalf("stats = %s, want clears only", st)
	}
	if st.Blits == 0 {
		t.Fatalf("toast not drawn")
	}
}

type panicView struct {
	views.View
}

func (panicView) Name() string                       { return "boom" }
func (panicView) RenderMode() views.RenderMode       { return views.RenderContinuously }
func (panicView) SurfaceCreated(gfx.Graphics)        { panic("surface lost") }
func (panicView) SurfaceChanged(int, int)            {}
func (panicView) Render(time.Duration, gfx.Graphics) {}

func TestPanickingViewIsDisabled(t *testing.T) {
	a, h := newTestApp(t, ViewParticles)
	a.register(ViewID(9), panicView{})
	if err := a.Select(ViewID(9)); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !h.log.contains("view panic: view=boom panic=surface lost") {
		t.Fatalf("panic not logged")
	}
	if !h.log.contains("toast: boom: panic: surface lost") {
		t.Fatalf("panic not reported")
	}

	clears := h.g.Stats().Clears
	h.frame(a, 16*time.Millisecond)
	if got := h.g.Stats().Clears; got != clears+1 {
		t.Fatalf("failed view clears = %d, want %d", got, clears+1)
	}

	if err := a.Select(ViewFractal); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if a.Current() != ViewFractal {
		t.Fatalf("view = %s", a.Current())
	}
}

func TestGuardReturnsViewPanic(t *testing.T) {
	l := &testLogger{}
	err := guard(l, "v", func() { panic(errors.New("bad")) })
	var vp *ViewPanic
	if !errors.As(err, &vp) || vp.View != "v" || len(vp.Stack) == 0 {
		t.Fatalf("err = %#v", err)
	}
	if err := guard(l, "v", func() {}); err != nil {
		t.Fatalf("clean call err = %v", err)
	}
}

func TestTakeRunes(t *testing.T) {
	p, rest := takeRunes("héllo", 2)
	if p != "hé" || rest != "llo" {
		t.Fatalf("takeRunes = %q, %q", p, rest)
	}
	if p, rest := takeRunes("ab", 5); p != "ab" || rest != "" {
		t.Fatalf("short = %q, %q", p, rest)
	}
}
