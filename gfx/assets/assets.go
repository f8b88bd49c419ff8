// Package assets builds the shared fonts, icons and digit glyphs at startup.
// Icons are rasterized from outlines so no binary blobs ship with the repo.
package assets

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/vector"
	"tinygo.org/x/tinyfont/proggy"

	"hxpanel/gfx"
)

// Font sizes in pixels at 72 DPI.
const (
	SmallSize = 15
	LargeSize = 18
)

// Fonts returns the small and large alpha fonts and the tiny bit font,
// indexed by gfx.FontID.
func Fonts() (*gfx.Resources, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("assets: parse font: %w", err)
	}
	res := &gfx.Resources{}
	for _, size := range []float64{SmallSize, LargeSize} {
		face, err := opentype.NewFace(tt, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("assets: %gpx face: %w", size, err)
		}
		res.Fonts = append(res.Fonts, gfx.NewAlphaFont(face, gfx.ASCII()))
		face.Close()
	}
	tiny, err := gfx.NewBitFont(&proggy.TinySZ8pt7b)
	if err != nil {
		return nil, fmt.Errorf("assets: tiny font: %w", err)
	}
	res.Fonts = append(res.Fonts, tiny)
	return res, nil
}

// IconID names one outline.
type IconID int

const (
	Play IconID = iota
	Stop
	Pause
	Prev
	Next
	Up
	Down
	Close
	Song
	Album
	Artist
	NumIcons
)

var iconNames = [NumIcons]string{
	"play", "stop", "pause", "prev", "next", "up", "down", "close", "song", "album", "artist",
}

func (id IconID) String() string {
	if id < 0 || id >= NumIcons {
		return fmt.Sprintf("IconID(%d)", int(id))
	}
	return iconNames[id]
}

// poly is a closed outline of x, y pairs in a unit box. All outlines wind
// the same way so overlapping parts add up; a reversed one cuts a hole.
type poly []float32

func rect(x, y, w, h float32) poly {
	return poly{x, y, x + w, y, x + w, y + h, x, y + h}
}

func circle(cx, cy, r float32, hole bool) poly {
	const n = 32
	p := make(poly, 0, 2*n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / n
		if hole {
			a = -a
		}
		p = append(p, cx+r*float32(math.Cos(a)), cy+r*float32(math.Sin(a)))
	}
	return p
}

var outlines = [NumIcons][]poly{
	Play:  {{0.25, 0.15, 0.85, 0.5, 0.25, 0.85}},
	Stop:  {rect(0.2, 0.2, 0.6, 0.6)},
	Pause: {rect(0.22, 0.18, 0.2, 0.64), rect(0.58, 0.18, 0.2, 0.64)},
	Prev:  {rect(0.15, 0.2, 0.1, 0.6), {0.85, 0.2, 0.85, 0.8, 0.28, 0.5}},
	Next:  {rect(0.75, 0.2, 0.1, 0.6), {0.15, 0.2, 0.72, 0.5, 0.15, 0.8}},
	Up:    {{0.5, 0.2, 0.85, 0.75, 0.15, 0.75}},
	Down:  {{0.15, 0.25, 0.85, 0.25, 0.5, 0.8}},
	Close: {
		{0.2, 0.28, 0.28, 0.2, 0.8, 0.72, 0.72, 0.8},
		{0.72, 0.2, 0.8, 0.28, 0.28, 0.8, 0.2, 0.72},
	},
	Song: {
		circle(0.38, 0.72, 0.14, false),
		rect(0.45, 0.15, 0.07, 0.58),
		{0.52, 0.15, 0.8, 0.28, 0.8, 0.38, 0.52, 0.25},
	},
	Album:  {circle(0.5, 0.5, 0.38, false), circle(0.5, 0.5, 0.08, true)},
	Artist: {circle(0.5, 0.33, 0.17, false), {0.2, 0.85, 0.3, 0.58, 0.7, 0.58, 0.8, 0.85}},
}

// rasterize draws outlines scaled by (sx, sy) into a w×h coverage icon.
func rasterize(w, h int, sx, sy float32, polys []poly) *gfx.Icon {
	z := vector.NewRasterizer(w, h)
	for _, p := range polys {
		z.MoveTo(p[0]*sx, p[1]*sy)
		for i := 2; i+1 < len(p); i += 2 {
			z.LineTo(p[i]*sx, p[i+1]*sy)
		}
		z.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return &gfx.Icon{W: w, H: h, Alpha: dst.Pix}
}

// NewIcon rasterizes id as a size×size icon. Unknown ids give an empty
// icon.
func NewIcon(id IconID, size int) *gfx.Icon {
	var polys []poly
	if id >= 0 && id < NumIcons {
		polys = outlines[id]
	}
	s := float32(size)
	return rasterize(size, size, s, s, polys)
}

// Seven-segment digit cell.
const (
	DigitWidth  = 20
	DigitHeight = 30
)

func hseg(x0, x1, yc, t float32) poly {
	return poly{x0, yc, x0 + t/2, yc - t/2, x1 - t/2, yc - t/2, x1, yc, x1 - t/2, yc + t/2, x0 + t/2, yc + t/2}
}

func vseg(xc, y0, y1, t float32) poly {
	return poly{xc, y0, xc + t/2, y0 + t/2, xc + t/2, y1 - t/2, xc, y1, xc - t/2, y1 - t/2, xc - t/2, y0 + t/2}
}

// Segments a to g, clockwise from the top with g in the middle.
var segments = [7]poly{
	hseg(3, 17, 2.5, 3.4),
	vseg(17.5, 3, 15, 3.4),
	vseg(17.5, 15, 27, 3.4),
	hseg(3, 17, 27.5, 3.4),
	vseg(2.5, 15, 27, 3.4),
	vseg(2.5, 3, 15, 3.4),
	hseg(3, 17, 15, 3.4),
}

// Lit segments per digit, bit 0 is segment a.
var digitSegments = [10]uint8{
	0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F,
}

// Digits returns the glyphs for '0' to '9' followed by ':'.
func Digits() [11]*gfx.Icon {
	var out [11]*gfx.Icon
	for d, mask := range digitSegments {
		var polys []poly
		for i, seg := range segments {
			if mask&(1<<i) != 0 {
				polys = append(polys, seg)
			}
		}
		out[d] = rasterize(DigitWidth, DigitHeight, 1, 1, polys)
	}
	out[10] = rasterize(DigitWidth, DigitHeight, 1, 1, []poly{rect(8, 8, 4, 4), rect(8, 19, 4, 4)})
	return out
}

// Set is every shared asset of the panel UI.
type Set struct {
	Res    *gfx.Resources
	Tool   [NumIcons]*gfx.Icon
	Status [NumIcons]*gfx.Icon
	Digits [11]*gfx.Icon
}

// Tool and status icon sizes.
const (
	ToolSize   = 32
	StatusSize = 48
)

// Load builds the whole set.
func Load() (*Set, error) {
	res, err := Fonts()
	if err != nil {
		return nil, err
	}
	s := &Set{Res: res, Digits: Digits()}
	for id := IconID(0); id < NumIcons; id++ {
		s.Tool[id] = NewIcon(id, ToolSize)
	}
	for _, id := range []IconID{Play, Pause, Stop} {
		s.Status[id] = NewIcon(id, StatusSize)
	}
	return s, nil
}
