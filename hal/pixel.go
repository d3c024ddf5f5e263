package hal

import "image/color"

// RGB565 packs an 8-bit-per-channel color into PixelFormatRGB565.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// ColorOf565 expands an RGB565 pixel to an opaque color, scaling each
// channel so that full intensity maps to 0xff.
func ColorOf565(p uint16) color.RGBA {
	r := (p >> 11) & 0x1f
	g := (p >> 5) & 0x3f
	b := p & 0x1f
	return color.RGBA{
		R: uint8(r * 255 / 31),
		G: uint8(g * 255 / 63),
		B: uint8(b * 255 / 31),
		A: 0xff,
	}
}
