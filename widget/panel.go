package widget

import (
	"hxpanel/geom"
	"hxpanel/gfx"
)

// Panel is a plain container that clears to its fill color.
type Panel struct {
	Base
	back gfx.Color
}

func NewPanel(parent Widget, id uint16, rc geom.Rect) *Panel {
	p := &Panel{back: gfx.Black}
	Init(&p.Base, p, parent, id, rc)
	return p
}

// NewRootPanel makes a panel the root of t.
func NewRootPanel(t *Tree, id uint16, rc geom.Rect) *Panel {
	p := &Panel{back: gfx.Black}
	InitRoot(&p.Base, p, t, id, rc)
	return p
}

func (p *Panel) SetBackColor(c gfx.Color) { p.back = c }

func (p *Panel) Draw(g *gfx.Graphics) {
	g.SetFillColor(p.back)
	g.Clear()
}

// PaintBox clears to black and hands its context to a paint callback.
type PaintBox struct {
	Base
	paint func(g *gfx.Graphics)
}

func NewPaintBox(parent Widget, id uint16, rc geom.Rect) *PaintBox {
	p := &PaintBox{}
	Init(&p.Base, p, parent, id, rc)
	return p
}

func (p *PaintBox) SetPaint(fn func(g *gfx.Graphics)) { p.paint = fn }

func (p *PaintBox) Draw(g *gfx.Graphics) {
	g.SetFillColor(gfx.Black)
	g.Clear()
	if p.paint != nil {
		p.paint(g)
	}
}
