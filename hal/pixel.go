package hal

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// expandRGB565 converts a w x h RGB565 region into opaque RGBA8888 in dst.
func expandRGB565(dst, src []byte, stride, w, h int) {
	for y := 0; y < h; y++ {
		row := y * stride
		for x := 0; x < w; x++ {
			i := row + x*2
			j := (y*w + x) * 4
			if i+1 >= len(src) || j+3 >= len(dst) {
				return
			}
			r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
			dst[j+0] = r
			dst[j+1] = g
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
	}
}
