package widget

import (
	"fmt"

	"hxpanel/geom"
	"hxpanel/gfx"
)

// Digit cell geometry.
const (
	DigitWidth  = 20
	DigitHeight = 30
	DigitSpace  = 4
)

// DigitDisplay shows a fixed number of seven-segment cells and repaints
// only the cells whose character changed.
type DigitDisplay struct {
	Base
	glyphs *[11]*gfx.Icon
	value  []byte
	dirty  []bool
	format func(v int) string
}

// NewDigitDisplay places length cells at (x, y). glyphs holds '0' to '9'
// and ':'.
func NewDigitDisplay(parent Widget, id uint16, x, y, length int, glyphs *[11]*gfx.Icon) *DigitDisplay {
	d := &DigitDisplay{
		glyphs: glyphs,
		value:  make([]byte, length),
		dirty:  make([]bool, length),
	}
	for i := range d.value {
		d.value[i] = '0'
	}
	Init(&d.Base, d, parent, id, geom.R(x, y, length*(DigitWidth+DigitSpace), DigitHeight))
	return d
}

// SetFormat replaces the default zero-padded decimal formatting.
func (d *DigitDisplay) SetFormat(fn func(v int) string) { d.format = fn }

// Text is the string currently shown.
func (d *DigitDisplay) Text() string { return string(d.value) }

// SetValue formats v and repaints the cells that differ. Characters other
// than digits, ':' and space are ignored.
func (d *DigitDisplay) SetValue(v int) {
	var s string
	if d.format != nil {
		s = d.format(v)
	} else {
		s = fmt.Sprintf("%0*d", len(d.value), v)
	}
	changed := false
	for i := range d.value {
		if i >= len(s) || s[i] == d.value[i] {
			continue
		}
		if c := s[i]; c == ' ' || ('0' <= c && c <= ':') {
			d.value[i] = c
			d.dirty[i] = true
			changed = true
		}
	}
	if changed && d.IsVisible() {
		d.Draw(d.Graphics())
	}
}

// Draw paints dirty cells only.
func (d *DigitDisplay) Draw(g *gfx.Graphics) {
	g.SetFillColor(gfx.Black)
	x := 0
	for i, c := range d.value {
		if d.dirty[i] {
			if c == ' ' {
				g.FillRect(geom.R(x, 0, DigitWidth+DigitSpace, DigitHeight))
			} else {
				g.DrawIcon(x, 0, d.glyphs[c-'0'], gfx.Silver, gfx.Black)
				g.FillRect(geom.R(x+DigitWidth, 0, DigitSpace, DigitHeight))
			}
			d.dirty[i] = false
		}
		x += DigitWidth + DigitSpace
	}
}

// Refresh marks every cell dirty and repaints.
func (d *DigitDisplay) Refresh() {
	for i := range d.dirty {
		d.dirty[i] = true
	}
	d.Base.Refresh()
}
