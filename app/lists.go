package app

import (
	"fmt"

	"hxpanel/geom"
	"hxpanel/gfx"
	"hxpanel/listcache"
	"hxpanel/player"
	"hxpanel/widget"
)

// Row colors shared by every list.
var (
	rowBack    = gfx.RGB(0x0A, 0x03, 0x25)
	rowEven    = gfx.RGB(0x14, 0x09, 0x3F)
	rowTouched = gfx.RGB(0x32, 0x25, 0x68)
)

const listTop = 20

// listView is a full-screen page with a header line and one ListBox, paged
// by the toolbar's up and down buttons.
type listView struct {
	widget.Base
	tb     *ToolBar
	list   *widget.ListBox
	header func() string
}

func (v *listView) init(self, parent widget.Widget, id uint16, tb *ToolBar, hasImage bool, cache *listcache.Cache) {
	widget.Init(&v.Base, self, parent, id, geom.R(0, 0, ScreenWidth, ScreenHeight-toolBarHeight))
	v.Hide()
	v.tb = tb
	v.list = widget.NewListBox(self, id+1, 0, listTop, ScreenWidth, hasImage, cache)
}

func (v *listView) List() *widget.ListBox { return v.list }

// updateToolBar offers up and down only where there is a page to go to.
func (v *listView) updateToolBar() {
	v.tb.SetVisible(v.list.CanPrev(), UpID)
	v.tb.SetVisible(v.list.CanNext(), DownID)
	v.tb.Refresh()
}

func (v *listView) PageUp() {
	v.list.PrevPage()
	v.updateToolBar()
}

func (v *listView) PageDown() {
	v.list.NextPage()
	v.updateToolBar()
}

func (v *listView) Draw(g *gfx.Graphics) {
	g.SetFillColor(gfx.Black)
	g.SetFontColor(gfx.Silver)
	g.SetFont(gfx.SmallFont)
	g.Clear()
	if v.header != nil {
		g.DrawText(4, 0, v.header(), gfx.AlignLeft)
	}
}

// drawRow paints one list row: a large title on the left and tiny
// details in the bottom right corner.
func drawRow(it widget.DrawItem, indent int, title, detail string) {
	bg := rowBack
	if it.Touched {
		bg = rowTouched
	} else if it.Index%2 == 0 {
		bg = rowEven
	}
	fg := gfx.DarkGray
	if it.Selected {
		fg = gfx.White
	}
	g := it.G
	g.SetFillColor(bg)
	g.SetFontColor(fg)
	g.FillRect(it.Rect)

	g.SetFont(gfx.LargeFont)
	g.DrawText(it.Rect.Left+indent, it.Rect.Top+10, title, gfx.AlignLeft)
	g.SetFont(gfx.TinyFont)
	pt := it.Rect.BottomRight().Offset(-4, -4)
	g.DrawText(pt.X, pt.Y, detail, gfx.AlignRight|gfx.AlignBottom)
}

// SongView lists the tracks of the current album.
type SongView struct {
	listView
	p        player.Status
	onSelect func(index int)
}

func NewSongView(parent widget.Widget, p player.Status, tb *ToolBar) *SongView {
	v := &SongView{p: p}
	v.init(v, parent, SongViewID, tb, false, nil)
	v.header = v.title
	v.list.SetDrawItem(v.drawItem)
	v.list.SetOnSelect(func(i int) {
		if v.onSelect != nil {
			v.onSelect(i)
		}
	})
	p.Subscribe(v.onPlayerEvent)
	return v
}

func (v *SongView) SetOnSelect(fn func(index int)) { v.onSelect = fn }

func (v *SongView) title() string {
	al := v.p.Album()
	if al == nil {
		return ""
	}
	if ar := al.Artist(); ar != nil {
		return al.Title + " / " + ar.Name
	}
	return al.Title
}

// selection is the playing track's row, or -1.
func (v *SongView) selection() int { return v.p.TrackNumber() - 1 }

func (v *SongView) prepare() {
	count := 0
	if al := v.p.Album(); al != nil {
		count = len(al.Tracks)
	}
	v.list.SetItems(count, v.selection())
	v.tb.SetVisible(false, PrevID, NextID, SongID, ArtistID)
	v.tb.SetVisible(true, AlbumID, CloseID)
	v.updateToolBar()
}

func (v *SongView) onPlayerEvent(e player.Event) {
	if !v.IsVisible() {
		return
	}
	if e == player.StatusChanged || e == player.TrackChanged {
		v.list.SetSelection(v.selection())
		v.updateToolBar()
	}
}

func (v *SongView) drawItem(it widget.DrawItem) {
	al := v.p.Album()
	if al == nil || it.Index >= len(al.Tracks) {
		return
	}
	tr := al.Tracks[it.Index]
	drawRow(it, 4,
		fmt.Sprintf("%02d. %s", it.Index+1, tr.Title),
		fmt.Sprintf("%s (%s %dHz %dkbps)", clock(tr.Duration), al.Codec, tr.SampleRate, tr.BitRate))
}

// AlbumView lists the albums of one artist with their thumbnails.
type AlbumView struct {
	listView
	p        player.Status
	thumbs   *thumbStore
	artist   *player.Artist
	onSelect func(al *player.Album)
}

func NewAlbumView(parent widget.Widget, p player.Status, tb *ToolBar, thumbs *thumbStore, cache *listcache.Cache) *AlbumView {
	v := &AlbumView{p: p, thumbs: thumbs}
	v.init(v, parent, AlbumViewID, tb, true, cache)
	v.header = func() string {
		if v.artist == nil {
			return ""
		}
		return "Albums by " + v.artist.Name
	}
	v.list.SetDrawItem(v.drawItem)
	v.list.SetImageFetcher(func(i int, buf []uint16) {
		if v.artist != nil && i < len(v.artist.Albums) {
			copy(buf, v.thumbs.Album(v.artist.Albums[i]))
		}
	})
	v.list.SetOnSelect(func(i int) {
		if v.onSelect != nil && v.artist != nil && i < len(v.artist.Albums) {
			v.onSelect(v.artist.Albums[i])
		}
	})
	return v
}

func (v *AlbumView) SetOnSelect(fn func(al *player.Album)) { v.onSelect = fn }

func (v *AlbumView) Artist() *player.Artist { return v.artist }

// SetArtist loads ar's albums, selecting the playing one if it is among
// them.
func (v *AlbumView) SetArtist(ar *player.Artist) {
	v.artist = ar
	count, sel := 0, -1
	if ar != nil {
		count = len(ar.Albums)
		if al := v.p.Album(); al != nil && al.Artist() == ar {
			sel = ar.IndexOf(al)
		}
	}
	v.list.SetItems(count, sel)
}

func (v *AlbumView) prepare() {
	v.tb.SetVisible(false, PrevID, NextID, SongID, AlbumID)
	v.tb.SetVisible(true, ArtistID, CloseID)
	v.updateToolBar()
}

func (v *AlbumView) drawItem(it widget.DrawItem) {
	if v.artist == nil || it.Index >= len(v.artist.Albums) {
		return
	}
	al := v.artist.Albums[it.Index]
	drawRow(it, 10, al.Title,
		fmt.Sprintf("%s (%d Tracks / %d)", clock(al.TotalTime()), len(al.Tracks), al.Year))
}

// ArtistView lists every artist of the catalog.
type ArtistView struct {
	listView
	cat      *player.Catalog
	thumbs   *thumbStore
	onSelect func(ar *player.Artist)
}

func NewArtistView(parent widget.Widget, cat *player.Catalog, tb *ToolBar, thumbs *thumbStore, cache *listcache.Cache) *ArtistView {
	v := &ArtistView{cat: cat, thumbs: thumbs}
	v.init(v, parent, ArtistViewID, tb, true, cache)
	v.header = func() string { return fmt.Sprintf("Artists (%d)", len(cat.Artists)) }
	v.list.SetDrawItem(v.drawItem)
	v.list.SetImageFetcher(func(i int, buf []uint16) {
		if i < len(cat.Artists) {
			copy(buf, v.thumbs.Artist(cat.Artists[i]))
		}
	})
	v.list.SetOnSelect(func(i int) {
		if v.onSelect != nil && i < len(cat.Artists) {
			v.onSelect(cat.Artists[i])
		}
	})
	v.list.SetItems(len(cat.Artists), -1)
	return v
}

func (v *ArtistView) SetOnSelect(fn func(ar *player.Artist)) { v.onSelect = fn }

// SetArtist reloads the list with ar selected.
func (v *ArtistView) SetArtist(ar *player.Artist) {
	v.list.SetItems(len(v.cat.Artists), v.cat.IndexOf(ar))
}

func (v *ArtistView) prepare() {
	v.tb.SetVisible(false, PrevID, NextID, SongID, AlbumID, ArtistID)
	v.tb.SetVisible(true, CloseID)
	v.updateToolBar()
}

func (v *ArtistView) drawItem(it widget.DrawItem) {
	if it.Index >= len(v.cat.Artists) {
		return
	}
	ar := v.cat.Artists[it.Index]
	drawRow(it, 10, ar.Name, fmt.Sprintf("%d album(s)", len(ar.Albums)))
}
