// Package widget implements the retained widget tree of the panel UI.
//
// Widgets live in an arena owned by a Tree and refer to each other by
// index, so parent links never form pointer cycles. Every widget embeds
// Base; optional behavior is picked up from the Drawer and Toucher
// interfaces, and a widget overrides Refresh by defining its own.
//
// Drawing is immediate: nothing is repainted unless someone calls Refresh
// or a widget repaints itself after a state change.
package widget

import (
	"fmt"

	"hxpanel/geom"
	"hxpanel/gfx"
	"hxpanel/hal"
)

// Refresher repaints a widget and its subtree.
type Refresher interface {
	Refresh()
}

// Widget is any value built around an embedded Base.
type Widget interface {
	Refresher
	ID() uint16
	base() *Base
}

// Drawer paints the widget's own client area.
type Drawer interface {
	Draw(g *gfx.Graphics)
}

// Toucher reacts to captured touches. p is in client coordinates.
type Toucher interface {
	OnTouched(p geom.Point)
	OnReleased()
}

type node struct {
	id       uint16
	parent   int
	children []int
	pos      geom.Point
	w, h     int
	visible  bool
	captured bool
	g        *gfx.Graphics
	view     Widget
}

// Tree owns every widget of one screen.
type Tree struct {
	surf  gfx.Surface
	res   *gfx.Resources
	log   hal.Logger
	nodes []*node
	ids   map[uint16]int
}

// NewTree returns an empty tree drawing on s. log can be nil.
func NewTree(s gfx.Surface, res *gfx.Resources, log hal.Logger) *Tree {
	if log == nil {
		log = hal.NopLogger{}
	}
	return &Tree{surf: s, res: res, log: log, ids: make(map[uint16]int)}
}

func (t *Tree) Resources() *gfx.Resources { return t.res }
func (t *Tree) Logger() hal.Logger        { return t.log }

// Len is the number of widgets.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the first widget added, or nil.
func (t *Tree) Root() Widget {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[0].view
}

// Lookup finds a widget by id.
func (t *Tree) Lookup(id uint16) (Widget, bool) {
	i, ok := t.ids[id]
	if !ok {
		return nil, false
	}
	return t.nodes[i].view, true
}

// Init attaches self to parent with the given id and parent-local rect.
// b must be the Base embedded in self. Ids must be unique within the tree;
// a duplicate is a construction bug and panics.
func Init(b *Base, self Widget, parent Widget, id uint16, rc geom.Rect) {
	pb := parent.base()
	*b = Base{t: pb.t, idx: pb.t.insert(pb.idx, self, id, rc)}
}

// InitRoot makes self the root of t. A tree has exactly one root.
func InitRoot(b *Base, self Widget, t *Tree, id uint16, rc geom.Rect) {
	if len(t.nodes) != 0 {
		panic("widget: tree already has a root")
	}
	*b = Base{t: t, idx: t.insert(-1, self, id, rc)}
}

func (t *Tree) insert(parent int, self Widget, id uint16, rc geom.Rect) int {
	if _, dup := t.ids[id]; dup {
		panic(fmt.Sprintf("widget: duplicate id %d", id))
	}
	n := &node{
		id:      id,
		parent:  parent,
		pos:     rc.TopLeft(),
		w:       rc.Width,
		h:       rc.Height,
		visible: true,
		view:    self,
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, n)
	t.ids[id] = idx
	if parent >= 0 {
		p := t.nodes[parent]
		p.children = append(p.children, idx)
	}
	n.g = gfx.NewGraphics(t.surf, t.toScreen(idx, geom.R(0, 0, n.w, n.h)), t.res)
	return idx
}

func (t *Tree) toScreen(idx int, rc geom.Rect) geom.Rect {
	for i := idx; i >= 0; i = t.nodes[i].parent {
		rc = rc.Offset(t.nodes[i].pos.X, t.nodes[i].pos.Y)
	}
	return rc
}

func (t *Tree) visible(idx int) bool {
	for i := idx; i >= 0; i = t.nodes[i].parent {
		if !t.nodes[i].visible {
			return false
		}
	}
	return true
}

// HandleTouch routes one touch transition from the root and reports
// whether a widget took it.
func (t *Tree) HandleTouch(touched bool, pos geom.Point) bool {
	if len(t.nodes) == 0 {
		return false
	}
	return t.dispatch(0, touched, pos)
}

// dispatch offers the event to children in insertion order before the
// widget itself. A release always goes to the captured widget, wherever
// the touch ended.
func (t *Tree) dispatch(idx int, touched bool, pos geom.Point) bool {
	n := t.nodes[idx]
	for _, c := range n.children {
		if t.dispatch(c, touched, pos) {
			return true
		}
	}
	if !t.visible(idx) {
		return false
	}
	th, _ := n.view.(Toucher)
	if touched {
		if !t.toScreen(idx, geom.R(0, 0, n.w, n.h)).Contains(pos) {
			return false
		}
		n.captured = true
		if th != nil {
			origin := t.toScreen(idx, geom.Rect{}).TopLeft()
			th.OnTouched(pos.Sub(origin))
		}
		return true
	}
	if !n.captured {
		return false
	}
	n.captured = false
	if th != nil {
		th.OnReleased()
	}
	return true
}

// repaint draws idx and refreshes its children, if idx is visible.
func (t *Tree) repaint(idx int) {
	if !t.visible(idx) {
		return
	}
	t.draw(idx)
	for _, c := range t.nodes[idx].children {
		t.nodes[c].view.Refresh()
	}
}

func (t *Tree) draw(idx int) {
	n := t.nodes[idx]
	if d, ok := n.view.(Drawer); ok {
		d.Draw(n.g)
		return
	}
	n.g.Clear()
}

// Base is the arena handle every widget embeds.
type Base struct {
	t   *Tree
	idx int
}

func (b *Base) base() *Base { return b }
func (b *Base) node() *node { return b.t.nodes[b.idx] }

func (b *Base) ID() uint16 { return b.node().id }

// Tree returns the owning tree.
func (b *Base) Tree() *Tree { return b.t }

// Parent is nil for the root.
func (b *Base) Parent() Widget {
	if p := b.node().parent; p >= 0 {
		return b.t.nodes[p].view
	}
	return nil
}

// Children returns the direct children in insertion order.
func (b *Base) Children() []Widget {
	n := b.node()
	out := make([]Widget, len(n.children))
	for i, c := range n.children {
		out[i] = b.t.nodes[c].view
	}
	return out
}

// ClientRect is the widget's own area with its origin at (0, 0).
func (b *Base) ClientRect() geom.Rect {
	n := b.node()
	return geom.R(0, 0, n.w, n.h)
}

// Position is the top-left corner in parent coordinates.
func (b *Base) Position() geom.Point { return b.node().pos }

func (b *Base) ClientToScreen(p geom.Point) geom.Point {
	return b.t.toScreen(b.idx, geom.Rect{Left: p.X, Top: p.Y}).TopLeft()
}

func (b *Base) ClientRectToScreen(rc geom.Rect) geom.Rect {
	return b.t.toScreen(b.idx, rc)
}

func (b *Base) ScreenToClient(p geom.Point) geom.Point {
	return p.Sub(b.ClientToScreen(geom.Point{}))
}

// Contains reports whether screen point p is inside a visible widget.
func (b *Base) Contains(p geom.Point) bool {
	if !b.IsVisible() {
		return false
	}
	return b.ClientRectToScreen(b.ClientRect()).Contains(p)
}

func (b *Base) Show() { b.node().visible = true }
func (b *Base) Hide() { b.node().visible = false }

// IsVisible is true when the widget and all its ancestors are shown.
func (b *Base) IsVisible() bool { return b.t.visible(b.idx) }

// Captured reports whether the widget holds the current touch.
func (b *Base) Captured() bool { return b.node().captured }

// Graphics is the widget's drawing context, bound to its screen rect.
func (b *Base) Graphics() *gfx.Graphics { return b.node().g }

// Refresh repaints the widget and then its children, depth first.
func (b *Base) Refresh() { b.t.repaint(b.idx) }

// Redraw paints only the widget itself, without children.
func (b *Base) Redraw() {
	if b.IsVisible() {
		b.t.draw(b.idx)
	}
}

func (b *Base) logf(format string, args ...any) {
	b.t.log.WriteLineString(fmt.Sprintf(format, args...))
}
