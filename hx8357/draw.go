package hx8357

import "image"

// clip returns r limited to the panel and whether anything is left.
func (d *Dev) clip(x, y, w, h int) (image.Rectangle, bool) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(d.Bounds())
	return r, !r.Empty()
}

// FillRect fills a w×h rectangle, clipped to the panel.
func (d *Dev) FillRect(x, y, w, h int, c uint16) {
	r, ok := d.clip(x, y, w, h)
	if !ok {
		return
	}
	d.SetAddressWindow(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1)
	d.FloodFill(c, r.Dx()*r.Dy())
}

// DrawFastHLine draws a horizontal run of length pixels.
func (d *Dev) DrawFastHLine(x, y, length int, c uint16) {
	d.FillRect(x, y, length, 1, c)
}

// DrawFastVLine draws a vertical run of length pixels.
func (d *Dev) DrawFastVLine(x, y, length int, c uint16) {
	d.FillRect(x, y, 1, length, c)
}

// DrawRect outlines the part of a w×h rectangle that is on the panel.
func (d *Dev) DrawRect(x, y, w, h int, c uint16) {
	r, ok := d.clip(x, y, w, h)
	if !ok {
		return
	}
	d.DrawFastHLine(r.Min.X, r.Min.Y, r.Dx(), c)
	d.DrawFastHLine(r.Min.X, r.Max.Y-1, r.Dx(), c)
	d.DrawFastVLine(r.Min.X, r.Min.Y, r.Dy(), c)
	d.DrawFastVLine(r.Max.X-1, r.Min.Y, r.Dy(), c)
}

// FillScreen floods the whole panel.
func (d *Dev) FillScreen(c uint16) {
	d.SetAddressWindow(0, 0, d.w-1, d.h-1)
	d.FloodFill(c, d.w*d.h)
}

// DrawPixel sets one pixel. Off-panel coordinates are ignored.
func (d *Dev) DrawPixel(x, y int, c uint16) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return
	}
	d.SetAddressWindow(x, y, d.w-1, d.h-1)
	d.bus.Command(RAMWR)
	d.write16(int(c))
}

// DrawImage pushes a w×h row-major pixel block at (x, y). Parts outside the
// panel are skipped.
func (d *Dev) DrawImage(x, y, w, h int, pix []uint16) {
	if len(pix) < w*h {
		return
	}
	r, ok := d.clip(x, y, w, h)
	if !ok {
		return
	}
	d.SetAddressWindow(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1)
	if r.Dx() == w && r.Dy() == h {
		d.PushPixels(pix[:w*h])
		return
	}
	d.bus.Command(RAMWR)
	for row := r.Min.Y; row < r.Max.Y; row++ {
		off := (row-y)*w + (r.Min.X - x)
		d.stream(pix[off : off+r.Dx()])
	}
}

// DrawGlyphColumns draws a 1bpp glyph stored as one word per column, bit j
// set meaning row j is foreground. h is at most 32. Rows and columns off the
// panel are skipped.
func (d *Dev) DrawGlyphColumns(x, y, h int, cols []uint32, fg, bg uint16) {
	if h <= 0 || h > 32 {
		return
	}
	r, ok := d.clip(x, y, len(cols), h)
	if !ok {
		return
	}
	top, bottom := r.Min.Y-y, r.Max.Y-y
	var buf [32]uint16
	for cx := r.Min.X; cx < r.Max.X; cx++ {
		col := cols[cx-x]
		for j := top; j < bottom; j++ {
			if col&(1<<j) != 0 {
				buf[j] = fg
			} else {
				buf[j] = bg
			}
		}
		d.SetAddressWindow(cx, r.Min.Y, cx, r.Max.Y-1)
		d.PushPixels(buf[top:bottom])
	}
}
