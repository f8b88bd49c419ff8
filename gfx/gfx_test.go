package gfx

import (
	"image/color"
	"reflect"
	"testing"

	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"hxpanel/geom"
	"hxpanel/hal"
	"hxpanel/hx8357"
)

type call struct {
	op         string
	x, y, w, h int
	c          uint16
}

// recorder is a Surface that keeps every call.
type recorder struct {
	calls []call
}

func (r *recorder) FillRect(x, y, w, h int, c uint16) {
	r.calls = append(r.calls, call{"fill", x, y, w, h, c})
}
func (r *recorder) DrawRect(x, y, w, h int, c uint16) {
	r.calls = append(r.calls, call{"rect", x, y, w, h, c})
}
func (r *recorder) DrawFastHLine(x, y, l int, c uint16) {
	r.calls = append(r.calls, call{"hline", x, y, l, 1, c})
}
func (r *recorder) DrawFastVLine(x, y, l int, c uint16) {
	r.calls = append(r.calls, call{"vline", x, y, 1, l, c})
}
func (r *recorder) DrawImage(x, y, w, h int, pix []uint16) {
	r.calls = append(r.calls, call{"image", x, y, w, h, pix[0]})
}
func (r *recorder) DrawGlyphColumns(x, y, h int, cols []uint32, fg, bg uint16) {
	r.calls = append(r.calls, call{"glyph", x, y, len(cols), h, fg})
}

// monoFont is an 8×10 font that only records where cells land.
type monoFont struct {
	cells []geom.Point
	fg    Color
	bg    Color
}

func (m *monoFont) Height() int        { return 10 }
func (m *monoFont) Advance(r rune) int { return 8 }
func (m *monoFont) DrawRune(s Surface, x, y int, r rune, fg, bg Color) int {
	m.cells = append(m.cells, geom.Pt(x, y))
	m.fg, m.bg = fg, bg
	return 8
}

func TestRGB(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    Color
	}{
		{0xFF, 0xFF, 0xFF, White},
		{0, 0, 0, Black},
		{0xFF, 0, 0, Red},
		{0, 0xFF, 0, Lime},
		{0x0A, 0x03, 0x25, 0x0804},
	}
	for _, tt := range tests {
		if got := RGB(tt.r, tt.g, tt.b); got != tt.want {
			t.Fatalf("RGB(%#x, %#x, %#x) = %#x, want %#x", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestAlphaBlend(t *testing.T) {
	tests := []struct {
		fg, bg Color
		a      uint8
		want   Color
	}{
		{White, Black, 255, White},
		{White, Black, 0, Black},
		{OrangeRed, DarkBlue, 0, DarkBlue},
		{OrangeRed, DarkBlue, 255, OrangeRed},
		{White, Black, 128, Gray},
		{Silver, Silver, 77, Silver},
	}
	for _, tt := range tests {
		if got := AlphaBlend(tt.fg, tt.bg, tt.a); got != tt.want {
			t.Fatalf("AlphaBlend(%#x, %#x, %d) = %#x, want %#x", tt.fg, tt.bg, tt.a, got, tt.want)
		}
	}
}

func TestColorRGBA(t *testing.T) {
	if got := Red.ToRGBA(); got != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Fatalf("Red.ToRGBA() = %v", got)
	}
	if got := hal.RGB565From(DarkGray.ToRGBA()); got != uint16(DarkGray) {
		t.Fatalf("round trip = %#x, want %#x", got, DarkGray)
	}
}

func newMono() (*Graphics, *monoFont, *recorder) {
	f := &monoFont{}
	rec := &recorder{}
	g := NewGraphics(rec, geom.R(100, 50, 200, 40), &Resources{Fonts: []Font{f}})
	return g, f, rec
}

func TestDrawTextAnchor(t *testing.T) {
	tests := []struct {
		align Align
		want  geom.Point
	}{
		{AlignLeft | AlignTop, geom.Pt(120, 60)},
		{AlignCenter | AlignTop, geom.Pt(112, 60)},
		{AlignRight | AlignBottom, geom.Pt(104, 50)},
		{AlignLeft | AlignMiddle, geom.Pt(120, 55)},
	}
	for _, tt := range tests {
		g, f, _ := newMono()
		g.DrawText(20, 10, "ab", tt.align)
		if f.cells[0] != tt.want || f.cells[1] != tt.want.Offset(8, 0) {
			t.Fatalf("DrawText(align %#x) cells = %v, want start %v", tt.align, f.cells, tt.want)
		}
	}
}

func TestDrawTextRectAnchor(t *testing.T) {
	tests := []struct {
		align Align
		want  geom.Point
	}{
		{AlignLeft | AlignTop, geom.Pt(100, 50)},
		{AlignCenter | AlignMiddle, geom.Pt(192, 65)},
		{AlignRight | AlignBottom, geom.Pt(283, 79)},
		{AlignRight | AlignMiddle, geom.Pt(283, 65)},
	}
	for _, tt := range tests {
		g, f, _ := newMono()
		g.SetFontColor(Gold)
		g.SetFillColor(Navy)
		g.DrawTextRect(geom.R(0, 0, 200, 40), "ab", tt.align)
		if f.cells[0] != tt.want {
			t.Fatalf("DrawTextRect(align %#x) start = %v, want %v", tt.align, f.cells[0], tt.want)
		}
		if f.fg != Gold || f.bg != Navy {
			t.Fatalf("text colors = %#x on %#x, want %#x on %#x", f.fg, f.bg, Gold, Navy)
		}
	}
}

func TestGraphicsOffset(t *testing.T) {
	g, _, rec := newMono()
	g.SetFillColor(DimGray)
	g.SetStrokeColor(Silver)
	g.Clear()
	g.FillRect(geom.R(1, 2, 3, 4))
	g.DrawRect(geom.R(0, 0, 5, 5))
	g.DrawHLine(1, 1, 7)
	g.DrawVLine(2, 2, 9)
	g.DrawImage(3, 4, 1, 1, []uint16{0xABCD})
	want := []call{
		{"fill", 100, 50, 200, 40, uint16(DimGray)},
		{"fill", 101, 52, 3, 4, uint16(DimGray)},
		{"rect", 100, 50, 5, 5, uint16(Silver)},
		{"hline", 101, 51, 7, 1, uint16(Silver)},
		{"vline", 102, 52, 1, 9, uint16(Silver)},
		{"image", 103, 54, 1, 1, 0xABCD},
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
}

func newPanel(t *testing.T) (*hx8357.Dev, *hal.PanelSim) {
	t.Helper()
	sim := hal.NewPanelSim()
	d, err := hx8357.New(sim, &hal.ManualClock{}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.Initialize()
	return d, sim
}

func TestDrawIcon(t *testing.T) {
	d, sim := newPanel(t)
	g := NewGraphics(d, geom.R(10, 10, 50, 50), &Resources{Fonts: []Font{&monoFont{}}})
	g.DrawIcon(1, 1, &Icon{W: 2, H: 1, Alpha: []uint8{0, 255}}, White, DarkBlue)
	if got := sim.Pixel(11, 11); got != uint16(DarkBlue) {
		t.Fatalf("Pixel(11,11) = %#x, want %#x", got, DarkBlue)
	}
	if got := sim.Pixel(12, 11); got != uint16(White) {
		t.Fatalf("Pixel(12,11) = %#x, want %#x", got, White)
	}
}

// boxFont is a tinyfont.Fonter with a 3×4 'A', an empty space and nothing
// else.
type boxFont struct{ g boxGlyph }

type boxGlyph struct{ r rune }

var boxA = [4]uint8{0b010, 0b101, 0b111, 0b101}

func (g *boxGlyph) Draw(d drivers.Displayer, x, y int16, c color.RGBA) {
	if g.r != 'A' {
		return
	}
	for row, bits := range boxA {
		for col := 0; col < 3; col++ {
			if bits&(0b100>>col) != 0 {
				d.SetPixel(x+int16(col), y-4+int16(row), c)
			}
		}
	}
}

func (g *boxGlyph) Info() tinyfont.GlyphInfo {
	switch g.r {
	case 'A':
		return tinyfont.GlyphInfo{Rune: 'A', Width: 3, Height: 4, XAdvance: 4, YOffset: -4}
	case ' ':
		return tinyfont.GlyphInfo{Rune: ' ', XAdvance: 2}
	}
	return tinyfont.GlyphInfo{}
}

func (f *boxFont) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

func (f *boxFont) GetYAdvance() uint8 { return 6 }

func TestBitFont(t *testing.T) {
	bf, err := NewBitFont(&boxFont{})
	if err != nil {
		t.Fatalf("NewBitFont() error = %v", err)
	}
	if got := TextWidth(bf, "A A"); got != 10 {
		t.Fatalf("TextWidth() = %d, want 10", got)
	}
	if got := bf.Advance('Z'); got != 2 {
		t.Fatalf("Advance(missing) = %d, want 2", got)
	}

	d, sim := newPanel(t)
	end := DrawString(bf, d, 10, 20, "AZ", White, Navy)
	if end != 16 {
		t.Fatalf("DrawString() end = %d, want 16", end)
	}
	for row, bits := range boxA {
		for col := 0; col < 4; col++ {
			want := uint16(Navy)
			if col < 3 && bits&(0b100>>col) != 0 {
				want = uint16(White)
			}
			if got := sim.Pixel(10+col, 20+row); got != want {
				t.Fatalf("Pixel(%d,%d) = %#x, want %#x", 10+col, 20+row, got, want)
			}
		}
	}
	for y := 20; y < 26; y++ {
		for x := 14; x < 16; x++ {
			if got := sim.Pixel(x, y); got != uint16(Navy) {
				t.Fatalf("missing glyph Pixel(%d,%d) = %#x, want blank", x, y, got)
			}
		}
	}

	if _, err := NewBitFont(nil); err == nil {
		t.Fatalf("NewBitFont(nil) error = nil, want error")
	}
}

func TestAlphaFont(t *testing.T) {
	af := NewAlphaFont(basicfont.Face7x13, ASCII())
	if got := af.Height(); got != 13 {
		t.Fatalf("Height() = %d, want 13", got)
	}
	if got := TextWidth(af, "hello"); got != 35 {
		t.Fatalf("TextWidth() = %d, want 35", got)
	}
	if got := af.Advance('é'); got != 7 {
		t.Fatalf("Advance(missing) = %d, want space width 7", got)
	}

	rec := &recorder{}
	af.DrawRune(rec, 5, 6, 'é', White, DarkBlue)
	af.DrawRune(rec, 12, 6, 'x', White, DarkBlue)
	if rec.calls[0] != (call{"fill", 5, 6, 7, 13, uint16(DarkBlue)}) {
		t.Fatalf("missing glyph = %v, want blank fill", rec.calls[0])
	}
	if c := rec.calls[1]; c.op != "image" || c.w != 7 || c.h != 13 {
		t.Fatalf("glyph = %v, want 7x13 image", c)
	}
}
