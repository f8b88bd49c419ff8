// Package hx8357 drives an HX8357D TFT controller over an 8-bit 8080-style
// parallel bus.
//
// The controller is addressed by setting a column/page window and then
// streaming RGB565 pixels, high byte first, into it. All drawing here ends in
// that one primitive.
package hx8357

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"hxpanel/hal"

	"tinygo.org/x/drivers"
)

// Native panel size in portrait memory order.
const (
	Width  = 320
	Height = 480
)

// Controller opcodes.
const (
	SWRESET  = 0x01
	SLPOUT   = 0x11
	DISPON   = 0x29
	CASET    = 0x2A
	PASET    = 0x2B
	RAMWR    = 0x2C
	MADCTL   = 0x36
	TEON     = 0x35
	TEARLINE = 0x44
	COLMOD   = 0x3A
	SETOSC   = 0xB0
	SETPWR1  = 0xB1
	SETRGB   = 0xB3
	SETCYC   = 0xB4
	SETCOM   = 0xB6
	SETC     = 0xB9
	SETSTBA  = 0xC0
	SETPANEL = 0xCC

	// Delay is not sent; in the init table it means "sleep N ms".
	Delay = 0xFF
)

// MADCTL bits.
const (
	MadctlMY  = 0x80
	MadctlMX  = 0x40
	MadctlMV  = 0x20
	MadctlML  = 0x10
	MadctlRGB = 0x00
	MadctlBGR = 0x08
	MadctlMH  = 0x04
)

// initCmds is a sequence of (opcode, count, params...) records.
var initCmds = []byte{
	SWRESET, 0,
	SETC, 3, 0xFF, 0x83, 0x57,
	Delay, 250,
	SETRGB, 4, 0x00, 0x00, 0x06, 0x06,
	SETCOM, 1, 0x25, // -1.52V
	SETOSC, 1, 0x68, // normal mode 70Hz, idle mode 55Hz
	SETPANEL, 1, 0x05, // BGR, gate direction swapped
	SETPWR1, 6, 0x00, 0x15, 0x1C, 0x1C, 0x83, 0xAA,
	SETSTBA, 6, 0x50, 0x50, 0x01, 0x3C, 0x1E, 0x08,
	SETCYC, 7, 0x02, 0x40, 0x00, 0x2A, 0x2A, 0x0D, 0x78,
	COLMOD, 1, 0x55, // 16 bit
	MADCTL, 1, 0xC0,
	TEON, 1, 0x00,
	TEARLINE, 2, 0x00, 0x02,
	SLPOUT, 0,
	Delay, 150,
	DISPON, 0,
	Delay, 50,
}

// Orientation selects one of the four panel rotations.
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
	PortraitFlipped
	LandscapeFlipped
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case PortraitFlipped:
		return "portrait-flipped"
	case LandscapeFlipped:
		return "landscape-flipped"
	}
	return fmt.Sprintf("Orientation(%d)", uint8(o))
}

// madctl returns the access control byte and logical size for o.
func (o Orientation) madctl() (b byte, w, h int) {
	switch o {
	case Landscape:
		return MadctlMV | MadctlBGR, Height, Width
	case PortraitFlipped:
		return MadctlRGB, Width, Height
	case LandscapeFlipped:
		return MadctlMX | MadctlMV | MadctlRGB, Height, Width
	}
	return MadctlMX | MadctlMY | MadctlRGB, Width, Height
}

// Opts is the configuration for the controller.
type Opts struct {
	// Orientation applied at the end of Initialize.
	Orientation Orientation
	// Log receives init progress. Optional.
	Log hal.Logger
}

// Dev is the handle for one panel.
type Dev struct {
	bus hal.Bus
	clk hal.Clock
	log hal.Logger

	orient Orientation
	w, h   int
}

// New validates opts and returns an uninitialized device. opts can be nil.
func New(bus hal.Bus, clk hal.Clock, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{Orientation: Landscape}
	}
	if bus == nil {
		return nil, errors.New("hx8357: nil bus")
	}
	if clk == nil {
		return nil, errors.New("hx8357: nil clock")
	}
	if opts.Orientation > LandscapeFlipped {
		return nil, fmt.Errorf("hx8357: invalid orientation %d", opts.Orientation)
	}
	log := opts.Log
	if log == nil {
		log = hal.NopLogger{}
	}
	_, w, h := opts.Orientation.madctl()
	return &Dev{bus: bus, clk: clk, log: log, orient: opts.Orientation, w: w, h: h}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("hx8357.Dev{%dx%d %s}", d.w, d.h, d.orient)
}

// Bounds returns the logical panel rectangle for the current orientation.
func (d *Dev) Bounds() image.Rectangle { return image.Rect(0, 0, d.w, d.h) }

// Initialize resets the controller, replays the init table and applies the
// configured orientation. It blocks for roughly 650ms.
func (d *Dev) Initialize() {
	d.reset()
	d.clk.Sleep(200 * time.Millisecond)

	d.bus.Select(true)
	for i := 0; i < len(initCmds); {
		op, n := initCmds[i], int(initCmds[i+1])
		i += 2
		if op == Delay {
			d.clk.Sleep(time.Duration(n) * time.Millisecond)
			continue
		}
		d.bus.Command(op)
		for _, b := range initCmds[i : i+n] {
			d.bus.Write(b)
		}
		i += n
	}
	d.SetOrientation(d.orient)
	d.log.WriteLineString("hx8357: ready " + d.String())
}

// reset pulses RST and resynchronizes the bus with a NOP and three bare
// write strobes.
func (d *Dev) reset() {
	d.bus.Select(false)
	d.bus.Reset(true)
	d.clk.Sleep(2 * time.Millisecond)
	d.bus.Reset(false)

	d.bus.Select(true)
	d.bus.Command(0x00)
	for i := 0; i < 3; i++ {
		d.bus.Strobe()
	}
}

// SetAddressWindow sets the inclusive window that following pixel writes
// fill. Bounds are not checked.
func (d *Dev) SetAddressWindow(x1, y1, x2, y2 int) {
	d.bus.Command(CASET)
	d.write16(x1)
	d.write16(x2)
	d.bus.Command(PASET)
	d.write16(y1)
	d.write16(y2)
}

func (d *Dev) write16(v int) {
	d.bus.Write(byte(v >> 8))
	d.bus.Write(byte(v))
}

// FloodFill writes count pixels of c into the current window. When both
// bytes of c are equal only WR is pulsed after the first pixel.
func (d *Dev) FloodFill(c uint16, count int) {
	if count < 1 {
		return
	}
	hi, lo := byte(c>>8), byte(c)
	d.bus.Command(RAMWR)
	d.bus.Write(hi)
	d.bus.Write(lo)
	count--
	if hi == lo {
		for ; count > 0; count-- {
			d.bus.Strobe()
			d.bus.Strobe()
		}
		return
	}
	for ; count > 0; count-- {
		d.bus.Write(hi)
		d.bus.Write(lo)
	}
}

// PushPixels streams pix into the current window.
func (d *Dev) PushPixels(pix []uint16) {
	if len(pix) == 0 {
		return
	}
	d.bus.Command(RAMWR)
	d.stream(pix)
}

func (d *Dev) stream(pix []uint16) {
	for _, c := range pix {
		d.bus.Write(byte(c >> 8))
		d.bus.Write(byte(c))
	}
}

// SetOrientation writes MADCTL and resets the window to the whole panel.
func (d *Dev) SetOrientation(o Orientation) {
	o &= 3
	b, w, h := o.madctl()
	d.orient, d.w, d.h = o, w, h
	d.bus.Command(MADCTL)
	d.bus.Write(b)
	d.SetAddressWindow(0, 0, w-1, h-1)
}

// Orientation returns the current rotation.
func (d *Dev) Orientation() Orientation { return d.orient }

// Rotation reports the orientation as a drivers.Rotation.
func (d *Dev) Rotation() drivers.Rotation {
	return drivers.Rotation(d.orient)
}

// SetRotation accepts the four unmirrored drivers rotations.
func (d *Dev) SetRotation(r drivers.Rotation) error {
	if r > drivers.Rotation270 {
		return errors.New("hx8357: mirrored rotations are not supported")
	}
	d.SetOrientation(Orientation(r))
	return nil
}

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) { return int16(d.w), int16(d.h) }

// SetPixel implements drivers.Displayer.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	d.DrawPixel(int(x), int(y), hal.RGB565From(c))
}

// Display implements drivers.Displayer. Writes go straight to the panel so
// there is nothing to flush.
func (d *Dev) Display() error { return nil }

var _ drivers.Displayer = (*Dev)(nil)
