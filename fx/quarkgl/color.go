package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// RGBf builds an opaque color from 0..1 channels.
func RGBf(r, g, b Scalar) Color {
	return Color{R: unit8(r), G: unit8(g), B: unit8(b), A: 0xFF}
}

// MulScalar scales the RGB channels by s, clamped to 0..1.
func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

func unit8(v Scalar) uint8 {
	return uint8(Clamp01(v)*255 + 0.5)
}
