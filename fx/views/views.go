// Package views binds the simulation and gesture packages to a gfx surface.
//
// Each view follows the same lifecycle: SurfaceCreated when the surface is
// (re)initialized, SurfaceChanged on every resize, then Render once per frame
// it is asked to draw. Input arrives through HandleTouch, which reports
// whether a redraw is needed. A view guards its state with one mutex, so
// input and rendering may come from different goroutines.
package views

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"effects/fx/gesture"
	"effects/fx/gfx"
	"effects/fx/quarkgl"
)

// RenderMode says when a view wants to be drawn.
type RenderMode uint8

const (
	// RenderWhenDirty draws after surface changes and input that requests it.
	RenderWhenDirty RenderMode = iota
	// RenderContinuously draws every frame.
	RenderContinuously
)

func (m RenderMode) String() string {
	if m == RenderContinuously {
		return "continuous"
	}
	return "when-dirty"
}

// Phase is the kind of a pointer event.
type Phase uint8

const (
	PointerDown Phase = iota + 1
	PointerMove
	PointerUp
)

// TouchEvent is a pointer transition in surface pixels. For PointerMove,
// Pointers holds every active pointer.
type TouchEvent struct {
	Phase    Phase
	ID       int
	X, Y     float32
	Pointers []gesture.Pointer
}

// ErrorReporter surfaces failures to the user. A failing view keeps running
// and draws a blank frame.
type ErrorReporter interface {
	ReportError(view string, err error)
}

// View is one effect.
type View interface {
	Name() string
	RenderMode() RenderMode
	SurfaceCreated(g gfx.Graphics)
	SurfaceChanged(w, h int)
	Render(now time.Duration, g gfx.Graphics)
	HandleTouch(ev TouchEvent) bool
}

// Pauser is implemented by views whose state depends on elapsed time.
// Resume is called before the first Render after a pause.
type Pauser interface {
	Pause()
	Resume()
}

// Loader returns the shader source for a program name.
type Loader func(name string, vertex gfx.VertexStage) (gfx.Source, error)

// Options are shared by all views.
type Options struct {
	Reporter ErrorReporter
	// Load defaults to gfx.Load.
	Load Loader
	// Seed seeds the random waypoints of animated views.
	Seed int64
	// MaxStep clamps the particle integration step; zero disables the clamp.
	MaxStep time.Duration
}

func (o Options) rand(salt int64) *rand.Rand {
	return rand.New(rand.NewSource(o.Seed + salt))
}

var clearColor = quarkgl.RGB(0, 0, 0)

// surface is the state every view shares: size, capability and the one-shot
// capability report.
type surface struct {
	mu     sync.Mutex
	name   string
	opts   Options
	w, h   int
	warned bool
}

func (s *surface) report(err error) {
	if s.opts.Reporter != nil {
		s.opts.Reporter.ReportError(s.name, err)
	}
}

// compile checks the capability and builds the named program. It returns nil
// after reporting when either fails. Must be called with s.mu held.
func (s *surface) compile(g gfx.Graphics, shader string, vs gfx.VertexStage) gfx.Program {
	if !g.ShaderCompilerSupported() {
		if !s.warned {
			s.warned = true
			s.report(gfx.ErrNoShaderCompiler)
		}
		return nil
	}

	load := s.opts.Load
	if load == nil {
		load = gfx.Load
	}
	src, err := load(shader, vs)
	if err != nil {
		s.report(err)
		return nil
	}
	p, err := g.Compile(src)
	if err != nil {
		s.report(fmt.Errorf("%s: %w", s.name, err))
		return nil
	}
	return p
}

func (s *surface) resize(w, h int) {
	s.w, s.h = w, h
}
