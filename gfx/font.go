package gfx

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font renders single-line text as opaque cells of Height() rows.
type Font interface {
	Height() int
	// Advance is the cell width of r, including the fallback width for
	// runes the font does not carry.
	Advance(r rune) int
	// DrawRune paints the cell of r with its top-left corner at (x, y) and
	// returns the cell width.
	DrawRune(s Surface, x, y int, r rune, fg, bg Color) int
}

// TextWidth is the sum of the advances of every rune of s.
func TextWidth(f Font, s string) int {
	w := 0
	for _, r := range s {
		w += f.Advance(r)
	}
	return w
}

// DrawString paints s left to right and returns the x after the last cell.
func DrawString(f Font, s Surface, x, y int, text string, fg, bg Color) int {
	for _, r := range text {
		x += f.DrawRune(s, x, y, r, fg, bg)
	}
	return x
}

// BitFont adapts a tinyfont.Fonter to the 1bpp column glyph path of the
// panel. Cells are at most 32 rows high.
type BitFont struct {
	f        tinyfont.Fonter
	height   int
	ascent   int
	fallback int
	sink     columnSink
}

// NewBitFont measures f over printable ASCII.
func NewBitFont(f tinyfont.Fonter) (*BitFont, error) {
	if f == nil {
		return nil, errors.New("gfx: nil font")
	}
	h := int(f.GetYAdvance())
	if h <= 0 || h > 32 {
		return nil, fmt.Errorf("gfx: bit font height %d out of range 1..32", h)
	}
	bf := &BitFont{f: f, height: h}
	for r := rune(0x20); r < 0x7F; r++ {
		info, ok := bf.glyph(r)
		if !ok {
			continue
		}
		if a := -int(info.YOffset); a > bf.ascent {
			bf.ascent = a
		}
	}
	if bf.ascent > h {
		bf.ascent = h
	}
	if info, ok := bf.glyph(' '); ok {
		bf.fallback = int(info.XAdvance)
	}
	if bf.fallback == 0 {
		bf.fallback = h / 2
	}
	return bf, nil
}

func (bf *BitFont) glyph(r rune) (tinyfont.GlyphInfo, bool) {
	g := bf.f.GetGlyph(r)
	if g == nil {
		return tinyfont.GlyphInfo{}, false
	}
	info := g.Info()
	return info, info.Rune == r && info.XAdvance > 0
}

func (bf *BitFont) Height() int { return bf.height }

func (bf *BitFont) Advance(r rune) int {
	if info, ok := bf.glyph(r); ok {
		return int(info.XAdvance)
	}
	return bf.fallback
}

func (bf *BitFont) DrawRune(s Surface, x, y int, r rune, fg, bg Color) int {
	info, ok := bf.glyph(r)
	w := bf.fallback
	if ok {
		w = int(info.XAdvance)
	}
	bf.sink.reset(w, bf.height)
	if ok {
		bf.f.GetGlyph(r).Draw(&bf.sink, 0, int16(bf.ascent), color.RGBA{A: 0xFF})
	}
	s.DrawGlyphColumns(x, y, bf.height, bf.sink.cols, uint16(fg), uint16(bg))
	return w
}

// columnSink collects SetPixel calls into one bit word per column.
type columnSink struct {
	cols []uint32
	h    int
}

func (c *columnSink) reset(w, h int) {
	if cap(c.cols) < w {
		c.cols = make([]uint32, w)
	}
	c.cols = c.cols[:w]
	for i := range c.cols {
		c.cols[i] = 0
	}
	c.h = h
}

func (c *columnSink) Size() (x, y int16) { return int16(len(c.cols)), int16(c.h) }

func (c *columnSink) SetPixel(x, y int16, _ color.RGBA) {
	if x < 0 || y < 0 || int(x) >= len(c.cols) || int(y) >= c.h {
		return
	}
	c.cols[x] |= 1 << uint(y)
}

func (c *columnSink) Display() error { return nil }

var _ drivers.Displayer = (*columnSink)(nil)

// AlphaFont holds 8-bit coverage cells rasterized once from a font.Face.
type AlphaFont struct {
	height   int
	fallback int
	glyphs   map[rune]*Icon
	buf      []uint16
}

// NewAlphaFont rasterizes every rune of set from face. Runes the face does
// not carry are left out and later drawn as blank cells.
func NewAlphaFont(face font.Face, set []rune) *AlphaFont {
	m := face.Metrics()
	af := &AlphaFont{
		height: (m.Ascent + m.Descent).Ceil(),
		glyphs: make(map[rune]*Icon, len(set)),
	}
	dot := fixed.P(0, m.Ascent.Ceil())
	for _, r := range set {
		dr, mask, maskp, adv, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		w := adv.Round()
		if w <= 0 {
			continue
		}
		cell := image.NewAlpha(image.Rect(0, 0, w, af.height))
		if mask != nil {
			draw.DrawMask(cell, dr, image.Opaque, image.Point{}, mask, maskp, draw.Over)
		}
		af.glyphs[r] = &Icon{W: w, H: af.height, Alpha: cell.Pix}
	}
	if g, ok := af.glyphs[' ']; ok {
		af.fallback = g.W
	} else {
		af.fallback = af.height / 3
	}
	return af
}

// ASCII is the printable ASCII range.
func ASCII() []rune {
	set := make([]rune, 0, 0x7F-0x20)
	for r := rune(0x20); r < 0x7F; r++ {
		set = append(set, r)
	}
	return set
}

func (af *AlphaFont) Height() int { return af.height }

func (af *AlphaFont) Advance(r rune) int {
	if g, ok := af.glyphs[r]; ok {
		return g.W
	}
	return af.fallback
}

func (af *AlphaFont) DrawRune(s Surface, x, y int, r rune, fg, bg Color) int {
	g, ok := af.glyphs[r]
	if !ok {
		s.FillRect(x, y, af.fallback, af.height, uint16(bg))
		return af.fallback
	}
	af.buf = g.Blend(af.buf, fg, bg)
	s.DrawImage(x, y, g.W, g.H, af.buf)
	return g.W
}
