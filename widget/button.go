package widget

import (
	"hxpanel/geom"
	"hxpanel/gfx"
)

// Button colors, idle and while held.
const (
	buttonFg        = gfx.DarkGray
	buttonBg        = gfx.Black
	buttonPressedFg = gfx.White
	buttonPressedBg = gfx.DarkBlue
)

// Button is an icon that fires a callback when released.
type Button struct {
	Base
	icon    *gfx.Icon
	onClick func(b *Button)
}

func NewButton(parent Widget, id uint16, rc geom.Rect, icon *gfx.Icon) *Button {
	b := &Button{icon: icon}
	Init(&b.Base, b, parent, id, rc)
	return b
}

// SetOnClick replaces the release callback.
func (b *Button) SetOnClick(fn func(b *Button)) { b.onClick = fn }

func (b *Button) SetIcon(ic *gfx.Icon) { b.icon = ic }

func (b *Button) Draw(g *gfx.Graphics) {
	fg, bg := buttonFg, buttonBg
	if b.Captured() {
		fg, bg = buttonPressedFg, buttonPressedBg
	}
	rc := b.ClientRect()
	g.SetFillColor(bg)
	g.FillRect(rc)
	if b.icon == nil {
		return
	}
	c := rc.Center()
	g.DrawIcon(c.X-b.icon.W/2, c.Y-b.icon.H/2, b.icon, fg, bg)
}

func (b *Button) OnTouched(geom.Point) { b.Refresh() }

// OnReleased repaints in the idle colors before the callback runs.
func (b *Button) OnReleased() {
	b.Refresh()
	if b.onClick != nil {
		b.onClick(b)
	}
}
