package widget

import (
	"hxpanel/geom"
	"hxpanel/gfx"
)

const (
	SpectrumBands = 16
	SpectrumMax   = 10

	spectrumWidth  = 288
	spectrumHeight = 50
	barWidth       = 14
	barPitch       = 18
	barStep        = spectrumHeight / SpectrumMax
)

var (
	spectrumBack = gfx.RGB(0x1D, 0x19, 0x59)
	spectrumBar  = gfx.RGB(0x82, 0x7F, 0xB2)
)

// Spectrum is a 16-band bar meter with peak hold: a band jumps up to a
// louder level and falls back one step per update.
type Spectrum struct {
	Base
	levels [SpectrumBands]int
}

func NewSpectrum(parent Widget, id uint16, x, y int) *Spectrum {
	s := &Spectrum{}
	Init(&s.Base, s, parent, id, geom.R(x, y, spectrumWidth, spectrumHeight))
	return s
}

// Levels returns the displayed level of every band.
func (s *Spectrum) Levels() [SpectrumBands]int { return s.levels }

// Update feeds one frame of levels, 0 to SpectrumMax; missing bands read
// as silence.
func (s *Spectrum) Update(levels []int) {
	for i := range s.levels {
		v := 0
		if i < len(levels) {
			v = min(max(levels[i], 0), SpectrumMax)
		}
		if v >= s.levels[i] {
			s.levels[i] = v
		} else if s.levels[i] > 0 {
			s.levels[i]--
		}
	}
	if s.IsVisible() {
		s.drawBars(s.Graphics())
	}
}

// Clear drops every band to zero.
func (s *Spectrum) Clear() {
	s.levels = [SpectrumBands]int{}
	if s.IsVisible() {
		s.drawBars(s.Graphics())
	}
}

func (s *Spectrum) drawBars(g *gfx.Graphics) {
	x := 0
	for _, v := range s.levels {
		y := spectrumHeight - v*barStep
		if v < SpectrumMax {
			g.SetFillColor(spectrumBack)
			g.FillRect(geom.R(x, 0, barWidth, y))
		}
		if v > 0 {
			g.SetFillColor(spectrumBar)
			g.FillRect(geom.R(x, y, barWidth, spectrumHeight-y))
		}
		x += barPitch
	}
}

func (s *Spectrum) Draw(g *gfx.Graphics) {
	g.SetFillColor(gfx.Black)
	g.Clear()
	s.drawBars(g)
}
