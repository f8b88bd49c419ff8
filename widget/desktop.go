package widget

import (
	"hxpanel/geom"
	"hxpanel/gfx"
)

// Ids reserved by the desktop and its overlay.
const (
	DesktopID         = 9999
	desktopProgressID = 9997
	desktopMessageID  = 9998
)

// Desktop is the root widget: a black screen with an optional splash
// line and a hidden progress overlay.
type Desktop struct {
	Base
	splash  string
	bar     *ProgressBar
	message *Label
}

// NewDesktop makes a w×h desktop the root of t.
func NewDesktop(t *Tree, w, h int) *Desktop {
	d := &Desktop{}
	InitRoot(&d.Base, d, t, DesktopID, geom.R(0, 0, w, h))

	d.bar = NewProgressBar(d, desktopProgressID, geom.R((w-202)/2, h-90, 202, 20))
	d.bar.Hide()
	d.message = NewLabel(d, desktopMessageID, geom.R(0, h-60, w, 20))
	d.message.SetTextColor(gfx.Silver)
	d.message.SetTextAlign(gfx.AlignCenter)
	d.message.SetFont(gfx.LargeFont)
	d.message.Hide()
	return d
}

// SetSplash sets a line drawn in the upper middle of the empty desktop.
func (d *Desktop) SetSplash(s string) { d.splash = s }

// Progress exposes the overlay bar.
func (d *Desktop) Progress() *ProgressBar { return d.bar }

// ShowProgress arms the overlay. Call Refresh to paint it.
func (d *Desktop) ShowProgress(max int, msg string) {
	d.bar.SetMaximum(max)
	d.message.SetText(msg)
	d.bar.Show()
	d.message.Show()
}

func (d *Desktop) UpdateProgress(v int) { d.bar.SetValue(v) }

func (d *Desktop) HideProgress() {
	d.bar.Hide()
	d.message.Hide()
}

func (d *Desktop) Draw(g *gfx.Graphics) {
	rc := d.ClientRect()
	g.SetFillColor(gfx.Black)
	g.FillRect(rc)
	if d.splash == "" {
		return
	}
	g.SetFont(gfx.LargeFont)
	g.SetFontColor(gfx.Silver)
	g.DrawText(rc.Width/2, rc.Height/3, d.splash, gfx.AlignCenter|gfx.AlignMiddle)
}
