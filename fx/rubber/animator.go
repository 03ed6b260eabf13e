package rubber

import (
	"time"

	"effects/fx/quarkgl"
)

const (
	// Cycle is the time between shape and eye waypoints.
	Cycle = 2000 * time.Millisecond

	eyeRange = 5
	jitter   = 0.5
)

// Rand is a source of uniform values in [0,1).
type Rand interface {
	Float32() float32
}

// Animator eases the eye and the control vertices between random waypoints.
type Animator struct {
	rng Rand

	eyeSource, eyeTarget quarkgl.Vec3
	source, target       [ControlCount]quarkgl.Vec3
	cycleStart           time.Duration
	started              bool

	eye      quarkgl.Vec3
	controls [ControlCount]quarkgl.Vec3
}

// NewAnimator returns an animator looking at the origin from (0,0,5), with
// the shape collapsed into the origin until the first cycle unfolds it.
func NewAnimator(rng Rand) *Animator {
	eye := quarkgl.V3(0, 0, eyeRange)
	return &Animator{rng: rng, eyeSource: eye, eyeTarget: eye, eye: eye}
}

// Tick advances to time now, drawing new waypoints once a cycle has passed.
func (a *Animator) Tick(now time.Duration) {
	if !a.started || now-a.cycleStart > Cycle {
		a.eyeSource = a.eyeTarget
		a.eyeTarget = quarkgl.V3(a.uniform(-eyeRange, eyeRange), a.uniform(-eyeRange, eyeRange), a.uniform(-eyeRange, eyeRange))
		for i, c := range Controls {
			a.source[i] = a.target[i]
			a.target[i] = quarkgl.V3(
				c.X+c.X*a.uniform(-jitter, jitter),
				c.Y+c.Y*a.uniform(-jitter, jitter),
				c.Z+c.Z*a.uniform(-jitter, jitter),
			)
		}
		a.cycleStart = now
		a.started = true
	}

	t := quarkgl.Ease(quarkgl.Scalar(now-a.cycleStart) / quarkgl.Scalar(Cycle))
	a.eye = quarkgl.LerpVec3(a.eyeSource, a.eyeTarget, t)
	for i := range a.controls {
		a.controls[i] = quarkgl.LerpVec3(a.source[i], a.target[i], t)
	}
}

// Eye returns the current eye position.
func (a *Animator) Eye() quarkgl.Vec3 { return a.eye }

// Controls returns the current control vertex positions.
func (a *Animator) Controls() *[ControlCount]quarkgl.Vec3 { return &a.controls }

func (a *Animator) uniform(lo, hi quarkgl.Scalar) quarkgl.Scalar {
	return lo + (hi-lo)*a.rng.Float32()
}
