package views

import (
	"time"

	"effects/fx/gesture"
	"effects/fx/gfx"
	"effects/fx/quarkgl"
)

// Fractal draws a full-view fractal quad that pans, zooms and rotates under
// touch. It only redraws on input.
type Fractal struct {
	surface

	eng  *gesture.Engine
	prog gfx.Program

	hView, hMove, hRes gfx.Handle
}

func NewFractal(opts Options) *Fractal {
	return &Fractal{
		surface: surface{name: "fractal", opts: opts},
		eng:     gesture.New(),
	}
}

func (v *Fractal) Name() string           { return v.name }
func (v *Fractal) RenderMode() RenderMode { return RenderWhenDirty }

func (v *Fractal) SurfaceCreated(g gfx.Graphics) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.eng = gesture.New()
	v.eng.Resize(v.w, v.h)
	v.prog = v.compile(g, "fractal", gfx.FullView)
	if v.prog != nil {
		v.hView = v.prog.Handle("ViewMatrix")
		v.hMove = v.prog.Handle("MoveMatrix")
		v.hRes = v.prog.Handle("Resolution")
	}
}

func (v *Fractal) SurfaceChanged(w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resize(w, h)
	v.eng.Resize(w, h)
}

func (v *Fractal) Render(_ time.Duration, g gfx.Graphics) {
	v.mu.Lock()
	defer v.mu.Unlock()

	g.Clear(clearColor)
	if v.prog == nil {
		return
	}
	view, move := v.eng.Snapshot()
	v.prog.Use()
	v.prog.UniformMatrix3(v.hView, view)
	v.prog.UniformMatrix3(v.hMove, move)
	v.prog.Uniform2f(v.hRes, float32(v.w), float32(v.h))
	v.prog.DrawQuad()
}

// HandleTouch feeds the gesture engine. Only moves that change the transform
// request a redraw; a release commits without changing what is drawn.
func (v *Fractal) HandleTouch(ev TouchEvent) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev.Phase {
	case PointerDown:
		v.eng.PointerDown(ev.ID, ev.X, ev.Y)
	case PointerUp:
		v.eng.PointerUp(ev.ID)
	case PointerMove:
		return v.eng.PointerMove(ev.Pointers)
	}
	return false
}

// Transform returns the committed and in-progress transforms.
func (v *Fractal) Transform() (view, move quarkgl.Mat3) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.eng.Snapshot()
}
