package quarkgl

import "math"

// Mat3 is a column-major 3x3 matrix holding a 2D affine transform.
//
// Layout is m[col*3+row], the order a mat3 shader uniform expects:
//
//	| m0 m3 m6 |
//	| m1 m4 m7 |
//	| m2 m5 m8 |
//
// Translation lives in m6/m7.
type Mat3 [9]Scalar

func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3Mul returns a*b. Applied to a point, b acts first.
func Mat3Mul(a, b Mat3) Mat3 {
	var out Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			out[col*3+row] =
				a[0*3+row]*b[col*3+0] +
					a[1*3+row]*b[col*3+1] +
					a[2*3+row]*b[col*3+2]
		}
	}
	return out
}

func Mat3Translate(x, y Scalar) Mat3 {
	m := Mat3Identity()
	m[6] = x
	m[7] = y
	return m
}

func Mat3Scale(x, y Scalar) Mat3 {
	m := Mat3Identity()
	m[0] = x
	m[4] = y
	return m
}

// Mat3Rotate rotates counter-clockwise by rad around the origin.
func Mat3Rotate(rad Scalar) Mat3 {
	c := Scalar(math.Cos(float64(rad)))
	s := Scalar(math.Sin(float64(rad)))
	return Mat3{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
}

// Mat3RotateAbout rotates by rad around pivot p.
func Mat3RotateAbout(rad Scalar, p Vec2) Mat3 {
	return Mat3Mul(Mat3Translate(p.X, p.Y), Mat3Mul(Mat3Rotate(rad), Mat3Translate(-p.X, -p.Y)))
}

// Apply transforms point p (w=1).
func (m Mat3) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[3]*p.Y + m[6],
		Y: m[1]*p.X + m[4]*p.Y + m[7],
	}
}

// Finite reports whether every element is a finite number.
func (m Mat3) Finite() bool {
	for _, v := range m {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// ApproxEqual compares element-wise within eps.
func (m Mat3) ApproxEqual(o Mat3, eps Scalar) bool {
	for i := range m {
		d := m[i] - o[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}
