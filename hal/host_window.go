//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"hxpanel/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window showing the simulated panel. The left
// mouse button acts as the stylus. It blocks until the window closes.
func RunWindow(opts HostOptions, newApp func(HAL) func() error) error {
	h := newHost(opts)
	if h.sim == nil {
		return errors.New("window mode needs the simulated bus")
	}
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	w, ht := h.sim.Size()
	ebiten.SetWindowTitle("hxpanel (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*2, ht*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	x, y := ebiten.CursorPosition()
	g.h.touch.set(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	prev := g.img
	g.img = g.h.sim.Logical(g.img)
	if g.fbImg == nil || g.img != prev {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		b := g.img.Bounds()
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.sim.Size()
}
