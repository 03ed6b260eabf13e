package hal

import (
	"fmt"
	"sync"

	"effects/fx/gfx"
	"effects/fx/quarkgl"
)

// GraphicsStats counts the work submitted to a RecordingGraphics.
type GraphicsStats struct {
	Programs uint64
	Binds    uint64
	Draws    uint64
	Culled   uint64
	Clears   uint64
	Blits    uint64
}

func (s GraphicsStats) String() string {
	return fmt.Sprintf("programs=%d binds=%d draws=%d culled=%d clears=%d blits=%d",
		s.Programs, s.Binds, s.Draws, s.Culled, s.Clears, s.Blits)
}

// RecordingGraphics is a graphics surface without pixels. It validates shader
// sources, runs vertex stages and counts what would have been drawn.
type RecordingGraphics struct {
	mu      sync.Mutex
	w, h    int
	shaders bool
	stats   GraphicsStats
}

// NewRecordingGraphics returns a w x h surface. shaders is its shader
// compiler capability.
func NewRecordingGraphics(w, h int, shaders bool) *RecordingGraphics {
	return &RecordingGraphics{w: w, h: h, shaders: shaders}
}

// Stats returns a copy of the counters.
func (g *RecordingGraphics) Stats() GraphicsStats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// Resize changes the reported surface size.
func (g *RecordingGraphics) Resize(w, h int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.w, g.h = w, h
}

func (g *RecordingGraphics) ShaderCompilerSupported() bool { return g.shaders }

func (g *RecordingGraphics) Size() (w, h int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.w, g.h
}

func (g *RecordingGraphics) Clear(quarkgl.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats.Clears++
}

func (g *RecordingGraphics) Compile(src gfx.Source) (gfx.Program, error) {
	if !g.shaders {
		return nil, gfx.ErrNoShaderCompiler
	}
	u, err := gfx.ParseUniforms(src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", src.Name, err)
	}
	vs := src.Vertex
	if vs == nil {
		vs = gfx.FullView
	}
	g.mu.Lock()
	g.stats.Programs++
	g.mu.Unlock()
	return &recordingProgram{g: g, vertex: vs, u: u}, nil
}

func (g *RecordingGraphics) Blit(buf []byte, stride, w, h, x, y int) {
	if w <= 0 || h <= 0 || len(buf) < stride*(h-1)+w*2 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats.Blits++
}

type recordingProgram struct {
	g      *RecordingGraphics
	vertex gfx.VertexStage
	u      *gfx.UniformSet
}

func (p *recordingProgram) Use() {
	p.g.mu.Lock()
	defer p.g.mu.Unlock()
	p.g.stats.Binds++
}

func (p *recordingProgram) Handle(name string) gfx.Handle { return p.u.Handle(name) }

func (p *recordingProgram) Uniform2f(h gfx.Handle, x, y float32)        { p.u.Set(h, x, y) }
func (p *recordingProgram) Uniform3f(h gfx.Handle, x, y, z float32)     { p.u.Set(h, x, y, z) }
func (p *recordingProgram) Uniform4f(h gfx.Handle, x, y, z, w float32)  { p.u.Set(h, x, y, z, w) }
func (p *recordingProgram) UniformMatrix3(h gfx.Handle, m quarkgl.Mat3) { p.u.SetMat3(h, m) }
func (p *recordingProgram) UniformMatrix4(h gfx.Handle, m quarkgl.Mat4) { p.u.SetMat4(h, m) }

// DrawQuad counts the quad as culled when every corner falls outside the
// clip volume on the same side.
func (p *recordingProgram) DrawQuad() {
	var out [4]int
	for _, c := range gfx.QuadCorners {
		v := p.vertex(p.u, c)
		if v.W <= 0 {
			out[0]++
			continue
		}
		switch {
		case v.X > v.W:
			out[1]++
		case v.X < -v.W:
			out[2]++
		case v.Y > v.W || v.Y < -v.W:
			out[3]++
		}
	}
	culled := false
	for _, n := range out {
		if n == len(gfx.QuadCorners) {
			culled = true
		}
	}

	p.g.mu.Lock()
	defer p.g.mu.Unlock()
	if culled {
		p.g.stats.Culled++
		return
	}
	p.g.stats.Draws++
}
