package particles

import (
	"math"
	"time"

	"effects/fx/quarkgl"
)

const (
	// Cycle is the time the emitter takes to reach a waypoint.
	Cycle = 4000 * time.Millisecond
	// Batch is the number of particles spawned per Emit.
	Batch = 100
	// InitialSpeed is the speed of a freshly spawned particle.
	InitialSpeed quarkgl.Scalar = 0.8

	spreadDeg   = 20
	headingSpan = 720
	minLen      = 0.2
)

// Rand is a source of uniform values in [0,1). *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// Emitter is the moving particle source.
type Emitter struct {
	rng Rand

	posSource, posTarget         quarkgl.Vec2
	headingSource, headingTarget quarkgl.Scalar
	cycleStart                   time.Duration
	started                      bool

	pos     quarkgl.Vec2
	heading quarkgl.Scalar
}

// NewEmitter returns an emitter at rest in the origin. The first Tick draws
// its first waypoint.
func NewEmitter(rng Rand) *Emitter {
	return &Emitter{rng: rng}
}

// Tick advances the emitter to time now.
//
// Once more than Cycle has passed since the current waypoint was drawn, the
// target becomes the new source and a new target is drawn. Position and
// heading are the eased blend between source and target. Past the end of a
// cycle the blend overshoots until the next refresh.
func (e *Emitter) Tick(now time.Duration) {
	if !e.started || now-e.cycleStart > Cycle {
		e.posSource = e.posTarget
		e.posTarget = quarkgl.V2(e.uniform(-1, 1), e.uniform(-1, 1))
		e.headingSource = e.headingTarget
		e.headingTarget = e.uniform(0, headingSpan)
		e.cycleStart = now
		e.started = true
	}

	t := quarkgl.Ease(quarkgl.Scalar(now-e.cycleStart) / quarkgl.Scalar(Cycle))
	e.pos = quarkgl.LerpVec2(e.posSource, e.posTarget, t)
	e.heading = quarkgl.Lerp(e.headingSource, e.headingTarget, t)
}

// Position returns the eased emitter position as of the last Tick.
func (e *Emitter) Position() quarkgl.Vec2 { return e.pos }

// Heading returns the eased heading in degrees as of the last Tick.
func (e *Emitter) Heading() quarkgl.Scalar { return e.heading }

// Waypoints returns the source and target positions of the current cycle.
func (e *Emitter) Waypoints() (source, target quarkgl.Vec2) { return e.posSource, e.posTarget }

// Emit inserts Batch new particles at the current position into s.
//
// Each particle heads within ±20° of the emitter heading, 0° pointing up,
// with a direction length in [0.2,1.0).
func (e *Emitter) Emit(s *Store) {
	for i := 0; i < Batch; i++ {
		deg := e.heading + e.uniform(-spreadDeg, spreadDeg)
		rad := float64(quarkgl.Radians(deg))
		l := e.uniform(minLen, 1)
		s.Insert(Particle{
			Pos:   e.pos,
			Dir:   quarkgl.V2(quarkgl.Scalar(math.Sin(rad))*l, quarkgl.Scalar(math.Cos(rad))*l),
			Speed: InitialSpeed,
		})
	}
}

func (e *Emitter) uniform(lo, hi quarkgl.Scalar) quarkgl.Scalar {
	return lo + (hi-lo)*e.rng.Float32()
}
