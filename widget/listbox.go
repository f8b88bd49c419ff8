package widget

import (
	"hxpanel/geom"
	"hxpanel/gfx"
	"hxpanel/listcache"
)

// ItemHeight is the row height of a ListBox; a page fills
// listcache.PageSize rows.
const ItemHeight = listcache.ImageHeight

// DrawItem describes one row to the item painter. Rect is in list client
// coordinates and excludes the thumbnail column.
type DrawItem struct {
	G        *gfx.Graphics
	Index    int
	Rect     geom.Rect
	Selected bool
	Touched  bool
}

// ListBox is a paged list with an optional thumbnail column. Touch-down
// highlights a row, release selects it.
type ListBox struct {
	Base
	pager    *listcache.Pager
	cache    *listcache.Cache
	hasImage bool

	selected int
	touched  int

	drawItem func(it DrawItem)
	onSelect func(index int)
	fetch    listcache.ImageFetcher
}

// NewListBox places a list of width pixels at (x, y). Lists showing
// thumbnails share cache; a nil cache gets a private one.
func NewListBox(parent Widget, id uint16, x, y, width int, hasImage bool, cache *listcache.Cache) *ListBox {
	if cache == nil {
		cache = listcache.NewCache()
	}
	l := &ListBox{
		pager:    listcache.NewPager(listcache.PageSize),
		cache:    cache,
		hasImage: hasImage,
		selected: -1,
		touched:  -1,
	}
	Init(&l.Base, l, parent, id, geom.R(x, y, width, ItemHeight*listcache.PageSize))
	return l
}

func (l *ListBox) SetDrawItem(fn func(it DrawItem))          { l.drawItem = fn }
func (l *ListBox) SetOnSelect(fn func(index int))            { l.onSelect = fn }
func (l *ListBox) SetImageFetcher(fn listcache.ImageFetcher) { l.fetch = fn }

func (l *ListBox) Count() int     { return l.pager.Count() }
func (l *ListBox) Selection() int { return l.selected }
func (l *ListBox) Page() int      { return l.pager.Page() }
func (l *ListBox) PageCount() int { return l.pager.PageCount() }
func (l *ListBox) LastPage() int  { return l.pager.LastPage() }
func (l *ListBox) CanNext() bool  { return l.pager.CanNext() }
func (l *ListBox) CanPrev() bool  { return l.pager.CanPrev() }

// Cache returns the thumbnail cache the list draws from.
func (l *ListBox) Cache() *listcache.Cache { return l.cache }

// SetItems installs a new item set, moves to the page of sel and drops
// every cached thumbnail. It does not repaint.
func (l *ListBox) SetItems(count, sel int) {
	l.pager.Reset(count, sel)
	l.selected = sel
	l.touched = -1
	l.cache.Invalidate()
}

// SetSelection moves the selection. On the same page only the two rows
// involved are repainted; otherwise the list jumps to the new page and
// repaints fully.
func (l *ListBox) SetSelection(index int) {
	if index == l.selected {
		return
	}
	if page := l.pager.PageOf(index); page != l.pager.Page() {
		l.pager.SetPage(page)
		l.selected = index
		l.cache.Invalidate()
		l.Refresh()
		return
	}
	g := l.Graphics()
	if l.ItemVisible(l.selected) {
		l.drawRow(g, l.selected, false, false)
	}
	if l.ItemVisible(index) {
		l.drawRow(g, index, true, false)
	}
	l.selected = index
}

// ItemRect is the row rectangle of index, right of the thumbnail column.
func (l *ListBox) ItemRect(index int) geom.Rect {
	if index < 0 {
		index = 0
	}
	w := l.ClientRect().Width
	x := 0
	if l.hasImage {
		x = listcache.ImageWidth
		w -= listcache.ImageWidth
	}
	return geom.R(x, l.pager.Row(index)*ItemHeight, w, ItemHeight)
}

// ItemVisible reports whether index is on screen right now.
func (l *ListBox) ItemVisible(index int) bool {
	return l.IsVisible() && l.pager.Visible(index)
}

func (l *ListBox) NextPage() {
	if !l.pager.Next() {
		return
	}
	l.logf("listbox %d: page %d/%d", l.ID(), l.pager.Page()+1, l.pager.PageCount())
	l.Refresh()
}

func (l *ListBox) PrevPage() {
	if !l.pager.Prev() {
		return
	}
	l.logf("listbox %d: page %d/%d", l.ID(), l.pager.Page()+1, l.pager.PageCount())
	l.Refresh()
}

func (l *ListBox) Draw(g *gfx.Graphics) {
	top := l.pager.Top()
	for i := top; i < top+l.pager.Size(); i++ {
		l.drawRow(g, i, i == l.selected, i == l.touched)
	}
}

func (l *ListBox) drawRow(g *gfx.Graphics, index int, selected, touched bool) {
	rc := l.ItemRect(index)
	if index >= l.pager.Count() {
		g.SetFillColor(gfx.Black)
		g.FillRect(geom.R(0, rc.Top, l.ClientRect().Width, rc.Height))
		return
	}
	if l.hasImage {
		pix := l.cache.Image(index, l.fetch)
		g.DrawImage(0, rc.Top, listcache.ImageWidth, listcache.ImageHeight, pix)
	}
	if l.drawItem != nil {
		l.drawItem(DrawItem{G: g, Index: index, Rect: rc, Selected: selected, Touched: touched})
	}
}

func (l *ListBox) OnTouched(p geom.Point) {
	index := p.Y/ItemHeight + l.pager.Top()
	if index < 0 || index >= l.pager.Count() || index == l.selected {
		return
	}
	l.touched = index
	if l.ItemVisible(index) {
		l.drawRow(l.Graphics(), index, false, true)
	}
}

func (l *ListBox) OnReleased() {
	if l.touched < 0 {
		return
	}
	g := l.Graphics()
	if l.ItemVisible(l.selected) {
		l.drawRow(g, l.selected, false, false)
	}
	if l.ItemVisible(l.touched) {
		l.drawRow(g, l.touched, true, false)
	}
	l.selected, l.touched = l.touched, -1
	if l.onSelect != nil {
		l.onSelect(l.selected)
	}
}
