package particles

import (
	"time"

	"effects/fx/quarkgl"
)

const (
	// Scale is the half-size of a particle quad in view units.
	Scale quarkgl.Scalar = 0.03
	// FadeCount is the number of oldest particles that fade in from black.
	FadeCount = 1000
)

// Instance is the per-particle draw data: position and scale packed as
// (x, y, 0, Scale), and a grey intensity.
type Instance struct {
	Position  quarkgl.Vec4
	Intensity quarkgl.Scalar
}

// Intensity returns the colour intensity of the particle at insertion index i.
func Intensity(i int) quarkgl.Scalar {
	if i < FadeCount {
		return quarkgl.Scalar(i) / FadeCount
	}
	return 1
}

// Projection maps the [-1,1] simulation square onto a w x h surface without
// stretching.
func Projection(w, h int) quarkgl.Mat4 {
	aspect := quarkgl.Scalar(1)
	if w > 0 && h > 0 {
		aspect = quarkgl.Scalar(w) / quarkgl.Scalar(h)
	}
	return quarkgl.Mat4Ortho(-aspect, aspect, -1, 1, -1, 1)
}

// System bundles a store with its emitter and stepper.
type System struct {
	Store   *Store
	Emitter *Emitter
	Stepper *Stepper
}

// NewSystem returns a system with default capacity and step clamp.
func NewSystem(rng Rand) *System {
	return &System{
		Store:   NewStore(),
		Emitter: NewEmitter(rng),
		Stepper: NewStepper(),
	}
}

// Advance runs one simulation frame: move the emitter, emit a batch, then
// step every particle. It returns the dt the stepper applied.
func (sys *System) Advance(now time.Duration) time.Duration {
	sys.Emitter.Tick(now)
	sys.Emitter.Emit(sys.Store)
	return sys.Stepper.Step(now, sys.Emitter.Position(), sys.Store)
}

// AppendInstances appends the draw data of every live particle, oldest first.
func (sys *System) AppendInstances(dst []Instance) []Instance {
	sys.Store.Each(func(i int, p *Particle) {
		dst = append(dst, Instance{
			Position:  quarkgl.Vec4{X: p.Pos.X, Y: p.Pos.Y, Z: 0, W: Scale},
			Intensity: Intensity(i),
		})
	})
	return dst
}

// Stats summarizes the simulation state.
type Stats struct {
	Live      int
	Evicted   uint64
	Emitter   quarkgl.Vec2
	Heading   quarkgl.Scalar
	MeanSpeed quarkgl.Scalar
}

// Stats returns a summary of the current state.
func (sys *System) Stats() Stats {
	st := Stats{
		Live:    sys.Store.Len(),
		Evicted: sys.Store.Evicted(),
		Emitter: sys.Emitter.Position(),
		Heading: sys.Emitter.Heading(),
	}
	var sum quarkgl.Scalar
	sys.Store.Each(func(_ int, p *Particle) { sum += p.Speed })
	if st.Live > 0 {
		st.MeanSpeed = sum / quarkgl.Scalar(st.Live)
	}
	return st
}
