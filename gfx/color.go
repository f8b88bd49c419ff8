package gfx

import (
	"image/color"

	"hxpanel/hal"
)

// Color is a native-order RGB565 value: rrrrrggggggbbbbb.
type Color uint16

// RGB packs 8-bit channels, dropping the low bits.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3))
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.ToRGBA().RGBA()
}

// ToRGBA expands c with the low bits replicated.
func (c Color) ToRGBA() color.RGBA {
	return hal.RGBAFrom565(uint16(c))
}

const blendMask = 0x07E0F81F

// AlphaBlend mixes fg over bg. alpha is scaled from 0..255 to 0..32 and all
// three channels are blended in one 32-bit word.
func AlphaBlend(fg, bg Color, alpha uint8) Color {
	a := (uint32(alpha) + 4) >> 3
	b := (uint32(bg) | uint32(bg)<<16) & blendMask
	f := (uint32(fg) | uint32(fg)<<16) & blendMask
	r := ((((f - b) * a) >> 5) + b) & blendMask
	return Color(r>>16 | r)
}

// Named colors used by the widgets.
const (
	Black          Color = 0x0000
	White          Color = 0xFFFF
	Silver         Color = 0xBDF7
	Gray           Color = 0x7BEF
	DarkGray       Color = 0xA554
	LightSlateGray Color = 0x7432
	DimGray        Color = 0x634C
	DarkBlue       Color = 0x0011
	Navy           Color = 0x000F
	MidnightBlue   Color = 0x10CD
	DodgerBlue     Color = 0x1C7F
	OrangeRed      Color = 0xFA20
	Red            Color = 0xF800
	Lime           Color = 0x07E0
	Blue           Color = 0x001F
	Gold           Color = 0xFEA0
)
