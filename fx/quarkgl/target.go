package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
)

// RGB565Target renders into a little-endian RGB565 pixel buffer.
//
// Callers provide the backing buffer and layout (stride in bytes).
type RGB565Target struct {
	Buf    []byte
	Stride int
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) valid() bool {
	return t != nil && t.Stride >= t.W*2 && t.W > 0 && t.H > 0 && len(t.Buf) >= t.Stride*(t.H-1)+t.W*2
}

// Clear fills the first row and replicates it down the buffer.
func (t *RGB565Target) Clear(c Color) {
	if !t.valid() {
		return
	}
	p := RGB565(c)
	row := t.Buf[:t.W*2]
	for x := 0; x < t.W; x++ {
		row[x*2] = byte(p)
		row[x*2+1] = byte(p >> 8)
	}
	for y := 1; y < t.H; y++ {
		off := y * t.Stride
		copy(t.Buf[off:off+t.W*2], row)
	}
}

func (t *RGB565Target) SetPixel(x, y int, c Color) {
	if !t.valid() || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	p := RGB565(c)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// RGB565 packs c as rrrrrggggggbbbbb.
func RGB565(c Color) uint16 {
	return uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
}
