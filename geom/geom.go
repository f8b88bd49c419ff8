// Package geom holds the integer point and rectangle types shared by the
// graphics and widget layers.
package geom

import (
	"fmt"
	"image"
)

// Point is a position in pixels.
type Point struct {
	X, Y int
}

func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Offset returns p moved by (dx, dy).
func (p Point) Offset(dx, dy int) Point { return Point{p.X + dx, p.Y + dy} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an origin plus a size. Width or height <= 0 means empty.
type Rect struct {
	Left, Top     int
	Width, Height int
}

func R(left, top, width, height int) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.Left, r.Top, r.Width, r.Height)
}

func (r Rect) TopLeft() Point { return Point{r.Left, r.Top} }

// BottomRight is the last pixel inside r, not one past it.
func (r Rect) BottomRight() Point { return Point{r.Left + r.Width - 1, r.Top + r.Height - 1} }

func (r Rect) Center() Point { return Point{r.Left + r.Width/2, r.Top + r.Height/2} }

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) Contains(p Point) bool {
	return r.Left <= p.X && p.X < r.Left+r.Width && r.Top <= p.Y && p.Y < r.Top+r.Height
}

// Offset moves r by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Move places the origin of r at p.
func (r Rect) Move(p Point) Rect {
	r.Left, r.Top = p.X, p.Y
	return r
}

// Inflate grows r by dx on the left and right and dy on the top and bottom.
// Negative values shrink it.
func (r Rect) Inflate(dx, dy int) Rect {
	return Rect{r.Left - dx, r.Top - dy, r.Width + 2*dx, r.Height + 2*dy}
}

func (r Rect) Resize(w, h int) Rect {
	r.Width, r.Height = w, h
	return r
}

func (r Rect) ResizeWidth(w int) Rect {
	r.Width = w
	return r
}

func (r Rect) ResizeHeight(h int) Rect {
	r.Height = h
	return r
}

// SetCenter keeps the size of r and centers it on p.
func (r Rect) SetCenter(p Point) Rect {
	r.Left = p.X - r.Width/2
	r.Top = p.Y - r.Height/2
	return r
}

// Intersect returns the overlap of r and s, or a zero Rect.
func (r Rect) Intersect(s Rect) Rect {
	i := r.Image().Intersect(s.Image())
	if i.Empty() {
		return Rect{}
	}
	return FromImage(i)
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

func FromImage(i image.Rectangle) Rect {
	return Rect{i.Min.X, i.Min.Y, i.Dx(), i.Dy()}
}
