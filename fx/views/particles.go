package views

import (
	"time"

	"effects/fx/gfx"
	"effects/fx/particles"
	"effects/fx/quarkgl"
)

// Particles draws the emitter-driven particle field, one quad per particle.
type Particles struct {
	surface

	rng  particles.Rand
	sys  *particles.System
	prog gfx.Program
	proj quarkgl.Mat4
	inst []particles.Instance

	paused bool

	hProj, hPos, hColor gfx.Handle
}

func NewParticles(opts Options) *Particles {
	v := &Particles{
		surface: surface{name: "particles", opts: opts},
		rng:     opts.rand(2),
		proj:    particles.Projection(0, 0),
	}
	v.sys = v.newSystem()
	return v
}

func (v *Particles) newSystem() *particles.System {
	sys := particles.NewSystem(v.rng)
	sys.Stepper.MaxStep = v.opts.MaxStep
	return sys
}

func (v *Particles) Name() string           { return v.name }
func (v *Particles) RenderMode() RenderMode { return RenderContinuously }

func (v *Particles) SurfaceCreated(g gfx.Graphics) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sys = v.newSystem()
	v.prog = v.compile(g, "particle", particleVertex)
	if v.prog != nil {
		v.hProj = v.prog.Handle("Projection")
		v.hPos = v.prog.Handle("Position")
		v.hColor = v.prog.Handle("Color")
	}
}

func (v *Particles) SurfaceChanged(w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resize(w, h)
	v.proj = particles.Projection(w, h)
}

// Render advances the simulation to now and draws it. Nothing is simulated
// while the program is unavailable or the view is paused.
func (v *Particles) Render(now time.Duration, g gfx.Graphics) {
	v.mu.Lock()
	defer v.mu.Unlock()

	g.Clear(clearColor)
	if v.prog == nil {
		return
	}
	if !v.paused {
		v.sys.Advance(now)
	}
	v.inst = v.sys.AppendInstances(v.inst[:0])

	v.prog.Use()
	v.prog.UniformMatrix4(v.hProj, v.proj)
	for _, in := range v.inst {
		c := in.Intensity
		v.prog.Uniform3f(v.hColor, c, c, c)
		p := in.Position
		v.prog.Uniform4f(v.hPos, p.X, p.Y, p.Z, p.W)
		v.prog.DrawQuad()
	}
}

func (v *Particles) HandleTouch(TouchEvent) bool { return false }

// Pause freezes the simulation; Render keeps drawing the last state.
func (v *Particles) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = true
}

// Resume restarts integration so the paused interval is not simulated.
func (v *Particles) Resume() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = false
	v.sys.Stepper.Restart()
}

// Frame returns the projection and a copy of the draw data of the last
// rendered frame.
func (v *Particles) Frame() (quarkgl.Mat4, []particles.Instance) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.proj, append([]particles.Instance(nil), v.inst...)
}

// Stats summarizes the simulation.
func (v *Particles) Stats() particles.Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sys.Stats()
}

// particleVertex places a quad of half-size Position.w around Position.xy and
// projects it.
func particleVertex(u gfx.Uniforms, corner quarkgl.Vec2) quarkgl.Vec4 {
	proj, ok := gfx.Mat4Value(u, "Projection")
	if !ok {
		return quarkgl.Vec4{}
	}
	pos, ok := gfx.Vec4Value(u, "Position")
	if !ok {
		return quarkgl.Vec4{}
	}
	return quarkgl.Mat4MulV4(proj, quarkgl.Vec4{
		X: pos.X + corner.X*pos.W,
		Y: pos.Y + corner.Y*pos.W,
		Z: pos.Z,
		W: 1,
	})
}
