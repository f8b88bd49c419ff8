package widget

import (
	"hxpanel/geom"
	"hxpanel/gfx"
)

// Label shows one line of text.
type Label struct {
	Base
	text    string
	padding int
	align   gfx.Align
	back    gfx.Color
}

func NewLabel(parent Widget, id uint16, rc geom.Rect) *Label {
	l := &Label{back: gfx.Black}
	Init(&l.Base, l, parent, id, rc)
	return l
}

// SetText does not repaint; call Refresh.
func (l *Label) SetText(s string)         { l.text = s }
func (l *Label) Text() string             { return l.text }
func (l *Label) SetPadding(p int)         { l.padding = p }
func (l *Label) SetTextAlign(a gfx.Align) { l.align = a }
func (l *Label) SetTextColor(c gfx.Color) { l.Graphics().SetFontColor(c) }
func (l *Label) SetBackColor(c gfx.Color) { l.back = c }
func (l *Label) SetFont(id gfx.FontID)    { l.Graphics().SetFont(id) }

func (l *Label) Draw(g *gfx.Graphics) {
	rc := l.ClientRect()
	g.SetFillColor(l.back)
	g.FillRect(rc)
	rc = rc.Inflate(-l.padding, -l.padding)
	g.DrawTextRect(rc, l.text, l.align)
}
