package particles

import (
	"time"

	"effects/fx/quarkgl"
)

const (
	// DefaultMaxStep bounds the time a single Step integrates.
	DefaultMaxStep = 250 * time.Millisecond

	// MaxSpeed caps the speed gained by relaxation.
	MaxSpeed quarkgl.Scalar = 0.8

	relaxRadius quarkgl.Scalar = 0.2
)

// Stepper advances particles by the time elapsed between calls.
//
// Speed decays by speed*(1-dt) with dt in seconds, which changes sign for
// dt >= 1. MaxStep clamps dt; zero or negative disables the clamp.
type Stepper struct {
	MaxStep time.Duration

	last    time.Duration
	started bool
}

// NewStepper returns a stepper with DefaultMaxStep.
func NewStepper() *Stepper {
	return &Stepper{MaxStep: DefaultMaxStep}
}

// Restart forgets the previous time so the next Step integrates nothing.
func (st *Stepper) Restart() { st.started = false }

// Step advances every particle in s to time now and returns the dt applied.
// The first call integrates nothing. A clock that moves backwards yields 0.
func (st *Stepper) Step(now time.Duration, emitter quarkgl.Vec2, s *Store) time.Duration {
	var dt time.Duration
	if st.started {
		dt = now - st.last
	}
	st.last = now
	st.started = true

	if dt < 0 {
		dt = 0
	}
	if st.MaxStep > 0 && dt > st.MaxStep {
		dt = st.MaxStep
	}

	sec := quarkgl.Scalar(dt.Seconds())
	s.Each(func(_ int, p *Particle) {
		advance(p, emitter, sec)
	})
	return dt
}

// advance relaxes p toward the emitter when it is close, then integrates and
// decays its speed.
func advance(p *Particle, emitter quarkgl.Vec2, dt quarkgl.Scalar) {
	to := emitter.Sub(p.Pos)
	l := to.Len()
	if l > 0 && l < relaxRadius {
		p.Dir = p.Dir.Mul(p.Speed).Add(to.Mul((1 - p.Speed) / l))
		p.Speed += relaxRadius - l
		if p.Speed > MaxSpeed {
			p.Speed = MaxSpeed
		}
	}
	p.Pos = p.Pos.Add(p.Dir.Mul(p.Speed * dt))
	p.Speed *= 1 - dt
}
