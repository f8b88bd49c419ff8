// Package gfx draws into one screen rectangle of the panel: colors, fonts,
// aligned text, icons and bitmaps.
package gfx

import (
	"hxpanel/geom"
)

// Surface is the part of the display driver a Graphics needs. Coordinates
// are screen pixels and every method clips.
type Surface interface {
	FillRect(x, y, w, h int, c uint16)
	DrawRect(x, y, w, h int, c uint16)
	DrawFastHLine(x, y, length int, c uint16)
	DrawFastVLine(x, y, length int, c uint16)
	DrawImage(x, y, w, h int, pix []uint16)
	DrawGlyphColumns(x, y, h int, cols []uint32, fg, bg uint16)
}

// Align combines one horizontal and one vertical alignment.
type Align uint8

const (
	AlignLeft   Align = 0x00
	AlignCenter Align = 0x01
	AlignRight  Align = 0x02
	hzMask      Align = 0x03

	AlignTop    Align = 0x00
	AlignMiddle Align = 0x10
	AlignBottom Align = 0x20
	vtMask      Align = 0x30
)

// FontID selects one of the shared fonts.
type FontID uint8

const (
	SmallFont FontID = iota
	LargeFont
	TinyFont
)

// Resources are shared by every Graphics of a tree.
type Resources struct {
	Fonts []Font
	buf   []uint16
}

// Font returns font id, or the first font when id is unknown.
func (r *Resources) Font(id FontID) Font {
	if int(id) < len(r.Fonts) {
		return r.Fonts[id]
	}
	return r.Fonts[0]
}

// Graphics translates widget-local coordinates by a fixed screen offset and
// keeps the current colors and font. State is never reset implicitly.
type Graphics struct {
	s      Surface
	screen geom.Rect
	res    *Resources

	fill, stroke, text Color
	font               FontID
}

// NewGraphics returns a context for screen with black fill and white
// stroke and text.
func NewGraphics(s Surface, screen geom.Rect, res *Resources) *Graphics {
	return &Graphics{s: s, screen: screen, res: res, fill: Black, stroke: White, text: White}
}

func (g *Graphics) Screen() geom.Rect { return g.screen }

func (g *Graphics) SetFillColor(c Color)   { g.fill = c }
func (g *Graphics) SetStrokeColor(c Color) { g.stroke = c }
func (g *Graphics) SetFontColor(c Color)   { g.text = c }
func (g *Graphics) SetFont(id FontID)      { g.font = id }

func (g *Graphics) FillColor() Color { return g.fill }
func (g *Graphics) Font() Font       { return g.res.Font(g.font) }

func (g *Graphics) toScreen(x, y int) (int, int) {
	return x + g.screen.Left, y + g.screen.Top
}

// Clear fills the whole local area with the fill color.
func (g *Graphics) Clear() {
	g.FillRect(geom.R(0, 0, g.screen.Width, g.screen.Height))
}

func (g *Graphics) FillRect(rc geom.Rect) {
	x, y := g.toScreen(rc.Left, rc.Top)
	g.s.FillRect(x, y, rc.Width, rc.Height, uint16(g.fill))
}

func (g *Graphics) DrawRect(rc geom.Rect) {
	x, y := g.toScreen(rc.Left, rc.Top)
	g.s.DrawRect(x, y, rc.Width, rc.Height, uint16(g.stroke))
}

func (g *Graphics) DrawHLine(x, y, length int) {
	x, y = g.toScreen(x, y)
	g.s.DrawFastHLine(x, y, length, uint16(g.stroke))
}

func (g *Graphics) DrawVLine(x, y, length int) {
	x, y = g.toScreen(x, y)
	g.s.DrawFastVLine(x, y, length, uint16(g.stroke))
}

// DrawText draws s with (x, y) as the anchor point picked by align.
func (g *Graphics) DrawText(x, y int, s string, align Align) {
	f := g.Font()
	x, y = g.toScreen(x, y)
	w := TextWidth(f, s)
	switch align & hzMask {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	switch align & vtMask {
	case AlignMiddle:
		y -= f.Height() / 2
	case AlignBottom:
		y -= f.Height()
	}
	DrawString(f, g.s, x, y, s, g.text, g.fill)
}

// DrawTextRect aligns s inside rc. Text is not clipped to rc.
func (g *Graphics) DrawTextRect(rc geom.Rect, s string, align Align) {
	f := g.Font()
	rc = rc.Offset(g.screen.Left, g.screen.Top)
	w := TextWidth(f, s)
	x, y := rc.Left, rc.Top
	switch align & hzMask {
	case AlignCenter:
		x = rc.Center().X - w/2
	case AlignRight:
		x = rc.BottomRight().X - w
	}
	switch align & vtMask {
	case AlignMiddle:
		y = rc.Center().Y - f.Height()/2
	case AlignBottom:
		y = rc.BottomRight().Y - f.Height()
	}
	DrawString(f, g.s, x, y, s, g.text, g.fill)
}

// DrawIcon blends fg over bg through the coverage of ic.
func (g *Graphics) DrawIcon(x, y int, ic *Icon, fg, bg Color) {
	if ic == nil {
		return
	}
	x, y = g.toScreen(x, y)
	g.res.buf = ic.Blend(g.res.buf, fg, bg)
	g.s.DrawImage(x, y, ic.W, ic.H, g.res.buf)
}

func (g *Graphics) DrawBitmap(x, y int, b *Bitmap) {
	if b == nil {
		return
	}
	g.DrawImage(x, y, b.W, b.H, b.Pix)
}

// DrawImage pushes a row-major w×h block of RGB565 pixels.
func (g *Graphics) DrawImage(x, y, w, h int, pix []uint16) {
	x, y = g.toScreen(x, y)
	g.s.DrawImage(x, y, w, h, pix)
}
