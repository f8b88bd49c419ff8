package widget

import (
	"hxpanel/geom"
	"hxpanel/gfx"
)

// ProgressBar draws value/max as an outlined horizontal bar.
type ProgressBar struct {
	Base
	max   int
	value int
}

func NewProgressBar(parent Widget, id uint16, rc geom.Rect) *ProgressBar {
	p := &ProgressBar{max: 100}
	Init(&p.Base, p, parent, id, rc)
	return p
}

func (p *ProgressBar) Max() int   { return p.max }
func (p *ProgressBar) Value() int { return p.value }

// SetMaximum ignores non-positive values and repaints on change.
func (p *ProgressBar) SetMaximum(v int) {
	if v <= 0 || v == p.max {
		return
	}
	p.max = v
	p.value = min(p.value, v)
	p.Redraw()
}

// SetValue clamps v to 0..max and repaints on change.
func (p *ProgressBar) SetValue(v int) {
	v = min(max(v, 0), p.max)
	if v == p.value {
		return
	}
	p.value = v
	p.Redraw()
}

func (p *ProgressBar) barWidth() int {
	return (p.ClientRect().Width - 2) * p.value / p.max
}

func (p *ProgressBar) Draw(g *gfx.Graphics) {
	rc := p.ClientRect()
	g.SetStrokeColor(gfx.Silver)
	g.DrawRect(rc)
	rc = rc.Inflate(-1, -1)
	bar := p.barWidth()
	if bar > 0 {
		g.SetFillColor(gfx.OrangeRed)
		g.FillRect(rc.ResizeWidth(bar))
	}
	if rest := rc.Width - bar; rest > 0 {
		g.SetFillColor(gfx.Black)
		g.FillRect(rc.Offset(bar, 0).ResizeWidth(rest))
	}
}
