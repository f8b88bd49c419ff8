package gfx

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Icon is a single-color image: one alpha byte per pixel, row-major.
type Icon struct {
	W, H  int
	Alpha []uint8
}

// Bitmap is a row-major RGB565 image.
type Bitmap struct {
	W, H int
	Pix  []uint16
}

func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{W: w, H: h, Pix: make([]uint16, w*h)}
}

// ReadFrom fills b from little-endian RGB565 words, the layout written by
// hximg.
func (b *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	if err := binary.Read(r, binary.LittleEndian, b.Pix); err != nil {
		return 0, fmt.Errorf("gfx: read %dx%d bitmap: %w", b.W, b.H, err)
	}
	return int64(2 * len(b.Pix)), nil
}

// WriteTo stores b as little-endian RGB565 words.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, b.Pix); err != nil {
		return 0, fmt.Errorf("gfx: write bitmap: %w", err)
	}
	return int64(2 * len(b.Pix)), nil
}

// Blend fills dst, grown as needed, with fg over bg at every alpha of ic.
func (ic *Icon) Blend(dst []uint16, fg, bg Color) []uint16 {
	n := ic.W * ic.H
	if cap(dst) < n {
		dst = make([]uint16, n)
	}
	dst = dst[:n]
	for i, a := range ic.Alpha[:n] {
		dst[i] = uint16(AlphaBlend(fg, bg, a))
	}
	return dst
}
