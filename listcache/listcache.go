// Package listcache holds the page arithmetic and the bounded thumbnail
// cache behind paged list views.
//
// The cache has exactly one slot per visible row. An item always lands in
// slot index%PageSize, so at most one page of thumbnails is resident no
// matter how long the list is.
package listcache

// Geometry of a list page and of one row thumbnail.
const (
	PageSize    = 4
	ImageWidth  = 60
	ImageHeight = 60
	ImagePixels = ImageWidth * ImageHeight
)

// Empty tags a slot that holds no item.
const Empty = -1

// ImageFetcher fills buf (ImagePixels long) with the thumbnail of item
// index. It is called synchronously from drawing code.
type ImageFetcher func(index int, buf []uint16)

// Pager tracks the current page of a list of count items.
type Pager struct {
	count int
	page  int
	size  int
}

// NewPager returns a pager for pages of size rows; size < 1 means PageSize.
func NewPager(size int) *Pager {
	if size < 1 {
		size = PageSize
	}
	return &Pager{size: size}
}

func (p *Pager) Count() int { return p.count }
func (p *Pager) Page() int  { return p.page }
func (p *Pager) Size() int  { return p.size }

// Reset installs a new item count and moves to the page of sel. A negative
// sel means no selection and page 0.
func (p *Pager) Reset(count, sel int) {
	if count < 0 {
		count = 0
	}
	p.count = count
	p.page = p.PageOf(sel)
}

// PageOf is the page holding item i.
func (p *Pager) PageOf(i int) int {
	if i < 0 {
		return 0
	}
	return i / p.size
}

// SetPage jumps to page n, clamped to the valid range.
func (p *Pager) SetPage(n int) {
	switch {
	case n < 0:
		n = 0
	case n > p.LastPage():
		n = p.LastPage()
	}
	p.page = n
}

// LastPage is the index of the final page, 0 for an empty list.
func (p *Pager) LastPage() int {
	if p.count <= 0 {
		return 0
	}
	return (p.count - 1) / p.size
}

// PageCount is 0 for an empty list.
func (p *Pager) PageCount() int {
	if p.count <= 0 {
		return 0
	}
	return p.LastPage() + 1
}

func (p *Pager) CanNext() bool { return p.page < p.LastPage() }
func (p *Pager) CanPrev() bool { return p.page > 0 }

// Next moves one page forward and reports whether it moved.
func (p *Pager) Next() bool {
	if !p.CanNext() {
		return false
	}
	p.page++
	return true
}

// Prev moves one page back and reports whether it moved.
func (p *Pager) Prev() bool {
	if !p.CanPrev() {
		return false
	}
	p.page--
	return true
}

// Top is the first item index of the current page.
func (p *Pager) Top() int { return p.page * p.size }

// Row is the on-screen row of item i.
func (p *Pager) Row(i int) int { return i % p.size }

// Visible reports whether item i exists and is on the current page.
func (p *Pager) Visible(i int) bool {
	return i >= 0 && i < p.count && p.PageOf(i) == p.page
}

type slot struct {
	tag int
	pix [ImagePixels]uint16
}

// Cache keeps one thumbnail per visible row.
type Cache struct {
	slots   [PageSize]slot
	fetches int
}

// NewCache returns a cache with every slot Empty.
func NewCache() *Cache {
	c := &Cache{}
	c.Invalidate()
	return c
}

// Invalidate marks every slot Empty. Pixel data is kept but never served.
func (c *Cache) Invalidate() {
	for i := range c.slots {
		c.slots[i].tag = Empty
	}
}

// Tag returns the item resident in slot, or Empty.
func (c *Cache) Tag(slot int) int {
	if slot < 0 || slot >= PageSize {
		return Empty
	}
	return c.slots[slot].tag
}

// Fetches counts fetch callbacks issued so far.
func (c *Cache) Fetches() int { return c.fetches }

// Image returns the thumbnail of item index, calling fetch only when the
// slot holds a different item. A nil fetch leaves the slot blank.
func (c *Cache) Image(index int, fetch ImageFetcher) []uint16 {
	if index < 0 {
		return nil
	}
	s := &c.slots[index%PageSize]
	if s.tag != index {
		if fetch != nil {
			c.fetches++
			fetch(index, s.pix[:])
		} else {
			s.pix = [ImagePixels]uint16{}
		}
		s.tag = index
	}
	return s.pix[:]
}
