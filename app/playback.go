package app

import (
	"fmt"

	"hxpanel/geom"
	"hxpanel/gfx"
	"hxpanel/gfx/assets"
	"hxpanel/player"
	"hxpanel/widget"
)

// View ids. Children take the ids right after their view.
const (
	PlaybackID   = 1000
	SongViewID   = 1100
	AlbumViewID  = 1200
	ArtistViewID = 1300
)

const (
	coverSize = 150
	coverBox  = coverSize + 2
)

// PlaybackView shows the status of the current track.
type PlaybackView struct {
	widget.Base
	p     player.Status
	icons *assets.Set

	status   *widget.PaintBox
	cover    *widget.PaintBox
	spectrum *widget.Spectrum
	title    *widget.Label
	album    *widget.Label
	artist   *widget.Label
	info     *widget.Label
	length   *widget.Label
	codec    *widget.Label
	track    *widget.DigitDisplay
	time     *widget.DigitDisplay
}

func newLabel(parent widget.Widget, id uint16, rc geom.Rect, font gfx.FontID) *widget.Label {
	l := widget.NewLabel(parent, id, rc)
	l.SetFont(font)
	l.SetTextColor(gfx.Silver)
	return l
}

func NewPlaybackView(parent widget.Widget, p player.Status, icons *assets.Set) *PlaybackView {
	v := &PlaybackView{p: p, icons: icons}
	widget.Init(&v.Base, v, parent, PlaybackID, geom.R(0, 0, ScreenWidth, ScreenHeight-toolBarHeight))
	v.Hide()

	v.status = widget.NewPaintBox(v, PlaybackID+1, geom.R(4, 4, assets.StatusSize, assets.StatusSize))
	v.status.SetPaint(v.drawStatus)
	v.cover = widget.NewPaintBox(v, PlaybackID+2, geom.R(4, 100, coverBox, coverBox))
	v.cover.SetPaint(v.drawCover)
	v.spectrum = widget.NewSpectrum(v, PlaybackID+3, 192, 200)

	v.title = newLabel(v, PlaybackID+4, geom.R(4, 72, 472, 20), gfx.LargeFont)
	v.album = newLabel(v, PlaybackID+5, geom.R(162, 110, 314, 16), gfx.SmallFont)
	v.artist = newLabel(v, PlaybackID+6, geom.R(162, 130, 314, 16), gfx.SmallFont)
	v.info = newLabel(v, PlaybackID+7, geom.R(162, 160, 314, 16), gfx.SmallFont)
	v.length = newLabel(v, PlaybackID+8, geom.R(300, 40, 176, 16), gfx.SmallFont)
	v.length.SetTextAlign(gfx.AlignRight)
	v.length.SetText("00:00")
	v.codec = newLabel(v, PlaybackID+9, geom.R(300, 23, 176, 16), gfx.SmallFont)
	v.codec.SetTextAlign(gfx.AlignRight)

	v.track = widget.NewDigitDisplay(v, PlaybackID+10, 70, 22, 2, &icons.Digits)
	v.time = widget.NewDigitDisplay(v, PlaybackID+11, 150, 22, 5, &icons.Digits)
	v.time.SetFormat(clock)

	p.Subscribe(v.onPlayerEvent)
	return v
}

// clock formats seconds as mm:ss.
func clock(sec int) string { return fmt.Sprintf("%02d:%02d", sec/60, sec%60) }

func (v *PlaybackView) Spectrum() *widget.Spectrum { return v.spectrum }

// onPlayerEvent updates from the changed part of the status down: a new
// album implies a status change, which implies a track change, which
// implies a time change.
func (v *PlaybackView) onPlayerEvent(e player.Event) {
	p := v.p
	if e == player.AlbumChanged {
		if al := p.Album(); al != nil {
			v.album.SetText(al.Title)
			name := ""
			if ar := al.Artist(); ar != nil {
				name = ar.Name
			}
			v.artist.SetText(name)
			total := al.TotalTime()
			v.info.SetText(fmt.Sprintf("%04d / %s", al.Year, clock(total)))
		}
		v.album.Refresh()
		v.artist.Refresh()
		v.info.Refresh()
		v.cover.Refresh()
	}
	if e == player.AlbumChanged || e == player.StatusChanged {
		v.status.Refresh()
	}
	if e != player.TimeChanged {
		v.track.SetValue(p.TrackNumber())
		v.title.SetText(p.TrackTitle())
		v.title.Refresh()
		if p.IsPlaying() {
			v.length.SetText(clock(p.TrackLength()))
			v.codec.SetText(fmt.Sprintf("%s %dHz %dkbps", p.Codec(), p.SampleRate(), p.BitRate()))
		} else {
			v.length.SetText("")
			v.codec.SetText("")
		}
		v.length.Refresh()
		v.codec.Refresh()
	}
	v.time.SetValue(p.Elapsed())
}

func (v *PlaybackView) drawStatus(g *gfx.Graphics) {
	id := assets.Stop
	if v.p.IsPlaying() {
		id = assets.Play
		if v.p.IsPaused() {
			id = assets.Pause
		}
	}
	g.DrawIcon(0, 0, v.icons.Status[id], gfx.Silver, gfx.Black)
}

func (v *PlaybackView) drawCover(g *gfx.Graphics) {
	g.SetStrokeColor(gfx.Silver)
	g.DrawRect(geom.R(0, 0, coverBox, coverBox))
	g.DrawBitmap(1, 1, v.p.Cover())
}

func (v *PlaybackView) Draw(g *gfx.Graphics) {
	g.SetFillColor(gfx.Black)
	g.Clear()
	g.SetFontColor(gfx.LightSlateGray)
	g.SetFont(gfx.SmallFont)
	g.DrawText(70, 2, "track", gfx.AlignLeft)
	g.DrawText(150, 2, "time", gfx.AlignLeft)
}

// UpdateSpectrum feeds one frame of levels, or clears the bars when the
// player is not producing sound.
func (v *PlaybackView) UpdateSpectrum(levels []int) {
	if v.p.IsPlaying() && !v.p.IsPaused() {
		v.spectrum.Update(levels)
		return
	}
	if v.spectrum.Levels() != [widget.SpectrumBands]int{} {
		v.spectrum.Clear()
	}
}
