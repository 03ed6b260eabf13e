// Package rubber animates a wobbling wireframe cube.
//
// The cube is described by 20 control vertices (8 corners and 12 edge
// midpoints). Each edge is a quadratic curve through a corner, a midpoint and
// a corner; each face is the Coons patch bounded by four such curves. Every
// cycle the control vertices drift toward randomly jittered copies of the unit
// cube while the eye drifts to a random point, both eased.
package rubber

import "effects/fx/quarkgl"

// Face is a cube face: its colour and the four edge curves bounding it.
//
// Edges 0 and 3 run along u (v=0 and v=1), edges 1 and 2 along v (u=0 and
// u=1). Edge 1 starts where edge 0 starts and edge 2 where edge 0 ends.
type Face struct {
	Color quarkgl.Color
	Edges [4]int
}

var (
	blue   = quarkgl.RGBf(.3, .5, 1)
	orange = quarkgl.RGBf(1, .5, .3)
	green  = quarkgl.RGBf(.5, 1, .3)
)

// Faces lists the six faces, paired by colour.
var Faces = [6]Face{
	{blue, [4]int{0, 1, 2, 3}},
	{blue, [4]int{10, 6, 9, 11}},
	{orange, [4]int{4, 2, 6, 5}},
	{orange, [4]int{7, 9, 1, 8}},
	{green, [4]int{12, 7, 13, 0}},
	{green, [4]int{3, 14, 5, 15}},
}

// Edges holds the control vertex indices of each edge curve: start, middle,
// end.
var Edges = [16][3]int{
	{0, 8, 2}, {0, 9, 1}, {2, 10, 3}, {1, 11, 3},
	{2, 12, 6}, {3, 13, 7}, {6, 14, 7}, {4, 15, 0},
	{5, 16, 1}, {4, 17, 5}, {6, 18, 4}, {7, 19, 5},
	{4, 18, 6}, {6, 12, 2}, {1, 16, 5}, {5, 19, 7},
}

// ControlCount is the number of control vertices.
const ControlCount = 20

// Controls is the rest shape: corners first, then edge midpoints.
var Controls = [ControlCount]quarkgl.Vec3{
	{X: -1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1},
	{X: 0, Y: 1, Z: 1}, {X: -1, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: 1, Y: 0, Z: -1}, {X: -1, Y: 1, Z: 0},
	{X: -1, Y: -1, Z: 0}, {X: -1, Y: 0, Z: -1}, {X: 0, Y: 1, Z: -1}, {X: 0, Y: -1, Z: -1},
}

// Curve evaluates the quadratic through p0 (t=0), p1 (t=0.5) and p2 (t=1).
func Curve(p0, p1, p2 quarkgl.Vec3, t quarkgl.Scalar) quarkgl.Vec3 {
	b0 := (1 - t) * (1 - 2*t)
	b1 := 4 * t * (1 - t)
	b2 := t * (2*t - 1)
	return p0.Mul(b0).Add(p1.Mul(b1)).Add(p2.Mul(b2))
}

// edgePoint evaluates edge e over the control positions cp.
func edgePoint(cp *[ControlCount]quarkgl.Vec3, e int, t quarkgl.Scalar) quarkgl.Vec3 {
	ix := Edges[e]
	return Curve(cp[ix[0]], cp[ix[1]], cp[ix[2]], t)
}

// PatchPoint evaluates face f at (u, v) as a bilinearly blended Coons patch.
func PatchPoint(cp *[ControlCount]quarkgl.Vec3, f Face, u, v quarkgl.Scalar) quarkgl.Vec3 {
	e0, e1, e2, e3 := f.Edges[0], f.Edges[1], f.Edges[2], f.Edges[3]

	ruledU := edgePoint(cp, e0, u).Mul(1 - v).Add(edgePoint(cp, e3, u).Mul(v))
	ruledV := edgePoint(cp, e1, v).Mul(1 - u).Add(edgePoint(cp, e2, v).Mul(u))

	p00 := cp[Edges[e0][0]]
	p10 := cp[Edges[e0][2]]
	p01 := cp[Edges[e3][0]]
	p11 := cp[Edges[e3][2]]
	bilinear := p00.Mul((1 - u) * (1 - v)).
		Add(p10.Mul(u * (1 - v))).
		Add(p01.Mul((1 - u) * v)).
		Add(p11.Mul(u * v))

	return ruledU.Add(ruledV).Sub(bilinear)
}

// gridLines returns the line list of an (n+1)x(n+1) vertex grid laid out row
// by row, offset by base.
func gridLines(n int, base uint16) []uint16 {
	side := n + 1
	lines := make([]uint16, 0, 4*n*side)
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			i := base + uint16(r*side+c)
			if c < n {
				lines = append(lines, i, i+1)
			}
			if r < n {
				lines = append(lines, i, i+uint16(side))
			}
		}
	}
	return lines
}
