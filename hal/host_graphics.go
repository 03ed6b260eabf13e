//go:build !tinygo && cgo

package hal

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"effects/fx/gfx"
	"effects/fx/quarkgl"
)

// ebitenGraphics draws Kage programs onto the current ebiten screen image.
// It is only touched from the game goroutine.
type ebitenGraphics struct {
	screen    *ebiten.Image
	w, h      int
	noShaders bool

	blits   map[[2]int]*ebiten.Image
	blitPix []byte
}

func newEbitenGraphics(noShaders bool) *ebitenGraphics {
	return &ebitenGraphics{noShaders: noShaders, blits: make(map[[2]int]*ebiten.Image)}
}

func (g *ebitenGraphics) resize(w, h int) {
	g.w, g.h = w, h
}

func (g *ebitenGraphics) begin(screen *ebiten.Image) { g.screen = screen }
func (g *ebitenGraphics) end()                       { g.screen = nil }

func (g *ebitenGraphics) ShaderCompilerSupported() bool { return !g.noShaders }
func (g *ebitenGraphics) Size() (w, h int)              { return g.w, g.h }

func (g *ebitenGraphics) Clear(c quarkgl.Color) {
	if g.screen == nil {
		return
	}
	g.screen.Fill(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (g *ebitenGraphics) Compile(src gfx.Source) (gfx.Program, error) {
	if g.noShaders {
		return nil, gfx.ErrNoShaderCompiler
	}
	u, err := gfx.ParseUniforms(src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", src.Name, err)
	}
	sh, err := ebiten.NewShader(src.Fragment)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", src.Name, err)
	}
	vs := src.Vertex
	if vs == nil {
		vs = gfx.FullView
	}
	return &ebitenProgram{g: g, sh: sh, vertex: vs, u: u}, nil
}

func (g *ebitenGraphics) Blit(buf []byte, stride, w, h, x, y int) {
	if g.screen == nil || w <= 0 || h <= 0 {
		return
	}
	key := [2]int{w, h}
	img := g.blits[key]
	if img == nil {
		img = ebiten.NewImage(w, h)
		g.blits[key] = img
	}
	if n := w * h * 4; cap(g.blitPix) < n {
		g.blitPix = make([]byte, n)
	} else {
		g.blitPix = g.blitPix[:n]
	}
	expandRGB565(g.blitPix, buf, stride, w, h)
	img.WritePixels(g.blitPix)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x), float64(y))
	g.screen.DrawImage(img, &op)
}

var quadIndices = []uint16{0, 1, 2, 2, 1, 3}

type ebitenProgram struct {
	g      *ebitenGraphics
	sh     *ebiten.Shader
	vertex gfx.VertexStage
	u      *gfx.UniformSet

	verts [4]ebiten.Vertex
	opts  ebiten.DrawTrianglesShaderOptions
}

func (p *ebitenProgram) Use()                          {}
func (p *ebitenProgram) Handle(name string) gfx.Handle { return p.u.Handle(name) }

func (p *ebitenProgram) Uniform2f(h gfx.Handle, x, y float32)        { p.u.Set(h, x, y) }
func (p *ebitenProgram) Uniform3f(h gfx.Handle, x, y, z float32)     { p.u.Set(h, x, y, z) }
func (p *ebitenProgram) Uniform4f(h gfx.Handle, x, y, z, w float32)  { p.u.Set(h, x, y, z, w) }
func (p *ebitenProgram) UniformMatrix3(h gfx.Handle, m quarkgl.Mat3) { p.u.SetMat3(h, m) }
func (p *ebitenProgram) UniformMatrix4(h gfx.Handle, m quarkgl.Mat4) { p.u.SetMat4(h, m) }

// DrawQuad runs the vertex stage on the CPU and hands the four corners to
// the Kage fragment shader. srcPos carries the corner coordinates.
func (p *ebitenProgram) DrawQuad() {
	g := p.g
	if g.screen == nil || g.w <= 0 || g.h <= 0 {
		return
	}
	for i, c := range gfx.QuadCorners {
		clip := p.vertex(p.u, c)
		if clip.W == 0 {
			return
		}
		x := (clip.X/clip.W*0.5 + 0.5) * float32(g.w)
		y := (0.5 - clip.Y/clip.W*0.5) * float32(g.h)
		p.verts[i] = ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: c.X, SrcY: c.Y,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	p.opts.Uniforms = p.u.Snapshot()
	g.screen.DrawTrianglesShader(p.verts[:], quadIndices, p.sh, &p.opts)
}
