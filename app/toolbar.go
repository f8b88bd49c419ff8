package app

import (
	"hxpanel/geom"
	"hxpanel/gfx"
	"hxpanel/gfx/assets"
	"hxpanel/widget"
)

// Toolbar and button ids.
const (
	ToolBarID = 200
	StopID    = 201
	PlayID    = 202
	PauseID   = 203
	PrevID    = 204
	NextID    = 205
	UpID      = 206
	DownID    = 207
	SongID    = 208
	AlbumID   = 209
	ArtistID  = 210
	CloseID   = 211
)

const (
	toolBarHeight = 60
	toolWidth     = 80
	toolHeight    = 56
)

// ToolBar is the bottom row of buttons. Several buttons share a slot and
// the views show whichever one applies.
type ToolBar struct {
	widget.Base
	buttons map[uint16]*widget.Button
}

func NewToolBar(parent widget.Widget, icons *assets.Set, onClick func(id uint16)) *ToolBar {
	tb := &ToolBar{buttons: make(map[uint16]*widget.Button)}
	widget.Init(&tb.Base, tb, parent, ToolBarID, geom.R(0, ScreenHeight-toolBarHeight, ScreenWidth, toolBarHeight))
	tb.Hide()

	layout := []struct {
		id   uint16
		slot int
		icon assets.IconID
	}{
		{PlayID, 0, assets.Play},
		{StopID, 0, assets.Stop},
		{PauseID, 1, assets.Pause},
		{PrevID, 2, assets.Prev},
		{UpID, 2, assets.Up},
		{NextID, 3, assets.Next},
		{DownID, 3, assets.Down},
		{CloseID, 4, assets.Close},
		{SongID, 5, assets.Song},
		{AlbumID, 5, assets.Album},
		{ArtistID, 5, assets.Artist},
	}
	for _, l := range layout {
		b := widget.NewButton(tb, l.id, geom.R(l.slot*toolWidth, 0, toolWidth, toolHeight), icons.Tool[l.icon])
		b.SetOnClick(func(b *widget.Button) { onClick(b.ID()) })
		tb.buttons[l.id] = b
	}
	return tb
}

// Button returns the button with id, or nil.
func (tb *ToolBar) Button(id uint16) *widget.Button { return tb.buttons[id] }

// SetVisible shows or hides each listed button. Nothing is repainted.
func (tb *ToolBar) SetVisible(visible bool, ids ...uint16) {
	for _, id := range ids {
		if b := tb.buttons[id]; b != nil {
			if visible {
				b.Show()
			} else {
				b.Hide()
			}
		}
	}
}

func (tb *ToolBar) Draw(g *gfx.Graphics) {
	g.SetFillColor(gfx.Black)
	g.Clear()
}
