package hal

import (
	"image/color"
	"math/bits"

	"tinygo.org/x/drivers/pixel"
)

// RGBAFrom565 expands a native-order RGB565 word.
func RGBAFrom565(p uint16) color.RGBA {
	return pixel.RGB565BE(bits.ReverseBytes16(p)).RGBA()
}

// RGB565From converts an 8-bit-per-channel color, dropping the low bits.
func RGB565From(c color.RGBA) uint16 {
	return bits.ReverseBytes16(uint16(pixel.NewRGB565BE(c.R, c.G, c.B)))
}
