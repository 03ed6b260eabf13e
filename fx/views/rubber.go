package views

import (
	"time"

	"effects/fx/gfx"
	"effects/fx/quarkgl"
	"effects/fx/rubber"
)

// Rubber draws the wobbling cube with the software renderer and blits the
// result. It needs no shader compiler.
type Rubber struct {
	surface

	rng   rubber.Rand
	model *rubber.Model
	r     *quarkgl.Renderer
	tgt   quarkgl.RGB565Target
}

func NewRubber(opts Options) *Rubber {
	v := &Rubber{
		surface: surface{name: "rubber", opts: opts},
		rng:     opts.rand(3),
	}
	v.model = rubber.NewModel(v.rng)
	v.r = quarkgl.NewRenderer(0, 0, true)
	v.r.ClearColor = clearColor
	return v
}

func (v *Rubber) Name() string           { return v.name }
func (v *Rubber) RenderMode() RenderMode { return RenderContinuously }

func (v *Rubber) SurfaceCreated(gfx.Graphics) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model = rubber.NewModel(v.rng)
}

func (v *Rubber) SurfaceChanged(w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resize(w, h)
	if w <= 0 || h <= 0 {
		v.tgt = quarkgl.RGB565Target{}
		return
	}
	v.tgt = quarkgl.RGB565Target{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
	v.r.EnableDepth(true, w, h)
}

func (v *Rubber) Render(now time.Duration, g gfx.Graphics) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.tgt.W == 0 {
		g.Clear(clearColor)
		return
	}
	v.model.Update(now)
	v.r.Render(&v.tgt, v.model.Scene())
	g.Blit(v.tgt.Buf, v.tgt.Stride, v.tgt.W, v.tgt.H, 0, 0)
}

func (v *Rubber) HandleTouch(TouchEvent) bool { return false }
