package view

// Clamp01 limits v to [0, 1]. Alpha may exceed 1 during sparkles.
func Clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// RGBA8 converts float color channels into 8-bit non-premultiplied values.
func RGBA8(r, g, b, a float32) (uint8, uint8, uint8, uint8) {
	return to8(r), to8(g), to8(b), to8(a)
}

// Shade8 scales r,g,b by alpha for renderers without blending.
func Shade8(r, g, b, a float32) (int32, int32, int32) {
	a = Clamp01(a)
	return int32(to8(r * a)), int32(to8(g * a)), int32(to8(b * a))
}

func to8(v float32) uint8 {
	return uint8(Clamp01(v)*255 + 0.5)
}
