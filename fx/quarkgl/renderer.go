package quarkgl

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderWireframe,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on || w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render clears the target and draws every enabled mesh of the scene.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := Scalar(w) / Scalar(h)
	view := s.Camera.View()
	proj := s.Camera.Projection(aspect)

	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		mvp := Mat4Mul(proj, Mat4Mul(view, m.Transform))
		if r.Mode == RenderWireframe && len(m.Lines) >= 2 {
			r.renderLines(t, w, h, mvp, m)
			return
		}
		r.renderTriangles(t, w, h, mvp, m, s.Light)
	})
}

func (r *Renderer) renderLines(t Target, w, h int, mvp Mat4, m *Mesh) {
	for i := 0; i+1 < len(m.Lines); i += 2 {
		i0 := int(m.Lines[i])
		i1 := int(m.Lines[i+1])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) {
			continue
		}
		p0, ok0 := project(mvp, m.Vertices[i0].Pos)
		p1, ok1 := project(mvp, m.Vertices[i1].Pos)
		if !ok0 || !ok1 {
			continue
		}
		x0, y0 := ndcToScreen(p0, w, h)
		x1, y1 := ndcToScreen(p1, w, h)
		r.drawLine(t, w, h, x0, y0, p0.Z, x1, y1, p1.Z, m.Color)
	}
}

func (r *Renderer) renderTriangles(t Target, w, h int, mvp Mat4, m *Mesh, light Light) {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		v0, v1, v2 := m.Vertices[i0].Pos, m.Vertices[i1].Pos, m.Vertices[i2].Pos

		ndc0, ok0 := project(mvp, v0)
		ndc1, ok1 := project(mvp, v1)
		ndc2, ok2 := project(mvp, v2)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		c := m.Color
		if light.Mode == LightAmbientDirectional {
			c = c.MulScalar(lightIntensity(light, triangleNormal(v0, v1, v2)))
		}

		if r.Mode == RenderWireframe {
			r.drawLine(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, c)
			r.drawLine(t, w, h, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c)
			r.drawLine(t, w, h, x2, y2, ndc2.Z, x0, y0, ndc0.Z, c)
			continue
		}
		r.fillTriangle(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c)
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

// project maps a model-space point to NDC. Points on or behind the eye plane
// (w <= 0) are rejected.
func project(mvp Mat4, p Vec3) (ndcPoint, bool) {
	c := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if c.W <= 0 {
		return ndcPoint{}, false
	}
	inv := 1 / c.W
	return ndcPoint{X: c.X * inv, Y: c.Y * inv, Z: c.Z * inv}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*dir)
}

func (r *Renderer) depthTest(w, h int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	idx := y*w + x
	if idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := clampF32(z*0.5+0.5, 0, 1)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

// drawLine is Bresenham with linear depth along the major axis.
func (r *Renderer) drawLine(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	dz := float32(0)
	if steps > 0 {
		dz = (z1 - z0) / float32(steps)
	}
	z := z0

	err := dx + dy
	for {
		if r.depthTest(w, h, x0, y0, z) {
			t.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		z += dz
	}
}

func (r *Renderer) fillTriangle(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c Color) {
	minX, maxX := max(min(x0, x1, x2), 0), min(max(x0, x1, x2), w-1)
	minY, maxY := max(min(y0, y1, y2), 0), min(max(y0, y1, y2), h-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	if area < 0 {
		// Accept both windings.
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = -area
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			z := (float32(w0)*z0 + float32(w1)*z1 + float32(w2)*z2) * invArea
			if !r.depthTest(w, h, x, y, z) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
