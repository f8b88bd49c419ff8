package hx8357

import (
	"image/color"
	"reflect"
	"testing"
	"time"

	"hxpanel/hal"
)

func newTestDev(t *testing.T, o Orientation) (*Dev, *hal.PanelSim, *hal.ManualClock) {
	t.Helper()
	sim := hal.NewPanelSim()
	clk := &hal.ManualClock{}
	d, err := New(sim, clk, &Opts{Orientation: o})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.Initialize()
	return d, sim, clk
}

func TestNewValidation(t *testing.T) {
	sim := hal.NewPanelSim()
	clk := &hal.ManualClock{}
	tests := []struct {
		name    string
		bus     hal.Bus
		clk     hal.Clock
		opts    *Opts
		wantErr bool
	}{
		{"nil options", sim, clk, nil, false},
		{"portrait", sim, clk, &Opts{Orientation: Portrait}, false},
		{"landscape flipped", sim, clk, &Opts{Orientation: LandscapeFlipped}, false},
		{"bad orientation", sim, clk, &Opts{Orientation: 4}, true},
		{"nil bus", nil, clk, nil, true},
		{"nil clock", sim, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.bus, tt.clk, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitializeSequence(t *testing.T) {
	sim := hal.NewPanelSim()
	sim.EnableTrace()
	clk := &hal.ManualClock{}
	d, err := New(sim, clk, &Opts{Orientation: Landscape})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.Initialize()

	wantSleeps := []time.Duration{
		2 * time.Millisecond,
		200 * time.Millisecond,
		250 * time.Millisecond,
		150 * time.Millisecond,
		50 * time.Millisecond,
	}
	if !reflect.DeepEqual(clk.Sleeps, wantSleeps) {
		t.Fatalf("Sleeps = %v, want %v", clk.Sleeps, wantSleeps)
	}

	var cmds []byte
	for _, tr := range sim.Trace() {
		cmds = append(cmds, tr.Cmd)
	}
	want := []byte{0x00, SWRESET, SETC, SETRGB, SETCOM, SETOSC, SETPANEL, SETPWR1,
		SETSTBA, SETCYC, COLMOD, MADCTL, TEON, TEARLINE, SLPOUT, DISPON,
		MADCTL, CASET, PASET}
	if !reflect.DeepEqual(cmds, want) {
		t.Fatalf("commands = % x, want % x", cmds, want)
	}
	if tr := sim.Trace()[0]; tr.Strobes != 3 {
		t.Fatalf("sync strobes = %d, want 3", tr.Strobes)
	}
	if tr := sim.Trace()[2]; !reflect.DeepEqual(tr.Params, []byte{0xFF, 0x83, 0x57}) {
		t.Fatalf("SETC params = % x", tr.Params)
	}
	if tr := sim.Trace()[9]; len(tr.Params) != 7 || tr.Params[6] != 0x78 {
		t.Fatalf("SETCYC params = % x", tr.Params)
	}
	if got := sim.MADCTL(); got != MadctlMV|MadctlBGR {
		t.Fatalf("MADCTL = %#x, want %#x", got, MadctlMV|MadctlBGR)
	}
}

func TestSetOrientation(t *testing.T) {
	tests := []struct {
		o      Orientation
		madctl byte
		w, h   int
	}{
		{Portrait, MadctlMX | MadctlMY, 320, 480},
		{Landscape, MadctlMV | MadctlBGR, 480, 320},
		{PortraitFlipped, 0, 320, 480},
		{LandscapeFlipped, MadctlMX | MadctlMV, 480, 320},
	}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			d, sim, _ := newTestDev(t, Portrait)
			d.SetOrientation(tt.o)
			if got := sim.MADCTL(); got != tt.madctl {
				t.Fatalf("MADCTL = %#x, want %#x", got, tt.madctl)
			}
			w, h := d.Size()
			if int(w) != tt.w || int(h) != tt.h {
				t.Fatalf("Size() = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
			if got := sim.Window(); got != d.Bounds() {
				t.Fatalf("Window() = %v, want %v", got, d.Bounds())
			}
			if got := d.Rotation(); int(got) != int(tt.o) {
				t.Fatalf("Rotation() = %d, want %d", got, tt.o)
			}
		})
	}
}

func TestFloodMatchesPush(t *testing.T) {
	for _, c := range []uint16{0x0000, 0xFFFF, 0x1818, 0xF800, 0x07E0} {
		for _, count := range []int{1, 2, 37, 100} {
			a, simA, _ := newTestDev(t, Landscape)
			b, simB, _ := newTestDev(t, Landscape)

			a.SetAddressWindow(10, 20, 29, 24)
			a.FloodFill(c, count)

			pix := make([]uint16, count)
			for i := range pix {
				pix[i] = c
			}
			b.SetAddressWindow(10, 20, 29, 24)
			b.PushPixels(pix)

			if !reflect.DeepEqual(simA.Memory(), simB.Memory()) {
				t.Fatalf("FloodFill(%#x, %d) memory differs from PushPixels", c, count)
			}
			last := count - 1
			x, y := 10+last%20, 20+last/20
			if got := simA.Pixel(x, y); got != c {
				t.Fatalf("FloodFill(%#x, %d): Pixel(%d,%d) = %#x", c, count, x, y, got)
			}
		}
	}
}

func TestFloodStrobesWhenBytesMatch(t *testing.T) {
	d, sim, _ := newTestDev(t, Landscape)
	d.SetAddressWindow(0, 0, 9, 9)
	sim.ResetCounters()
	d.FloodFill(0x2121, 100)
	if sim.Writes != 2 || sim.Strobes != 198 {
		t.Fatalf("Writes, Strobes = %d, %d, want 2, 198", sim.Writes, sim.Strobes)
	}
	sim.ResetCounters()
	d.FloodFill(0x2122, 100)
	if sim.Writes != 200 || sim.Strobes != 0 {
		t.Fatalf("Writes, Strobes = %d, %d, want 200, 0", sim.Writes, sim.Strobes)
	}
	sim.ResetCounters()
	d.FloodFill(0x2122, 0)
	d.PushPixels(nil)
	if sim.Writes != 0 {
		t.Fatalf("Writes after empty fills = %d, want 0", sim.Writes)
	}
}

func TestFillRectClipping(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
		wantPixels int
	}{
		{"inside", 10, 10, 5, 4, 20},
		{"left edge", -3, 0, 5, 2, 4},
		{"bottom right", 478, 318, 10, 10, 4},
		{"fully off", 480, 0, 10, 10, 0},
		{"negative size", 10, 10, -1, 5, 0},
		{"zero height", 10, 10, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, sim, _ := newTestDev(t, Landscape)
			sim.EnableTrace()
			d.FillRect(tt.x, tt.y, tt.w, tt.h, 0x1234)
			got := 0
			for _, tr := range sim.Trace() {
				got += tr.Pixels
			}
			if got != tt.wantPixels {
				t.Fatalf("pixels written = %d, want %d", got, tt.wantPixels)
			}
			if tt.wantPixels == 0 && len(sim.Trace()) != 0 {
				t.Fatalf("FillRect issued %d commands, want none", len(sim.Trace()))
			}
		})
	}
}

func TestDrawRectOutline(t *testing.T) {
	d, sim, _ := newTestDev(t, Landscape)
	d.DrawRect(5, 5, 4, 3, 0xAAAA)
	for y := 5; y < 8; y++ {
		for x := 5; x < 9; x++ {
			edge := x == 5 || x == 8 || y == 5 || y == 7
			got := sim.Pixel(x, y)
			if edge && got != 0xAAAA || !edge && got != 0 {
				t.Fatalf("Pixel(%d,%d) = %#x, edge %v", x, y, got, edge)
			}
		}
	}
}

func TestDrawImageClipped(t *testing.T) {
	d, sim, _ := newTestDev(t, Landscape)
	pix := []uint16{
		1, 2, 3,
		4, 5, 6,
	}
	d.DrawImage(-1, 318, 3, 2, pix)
	if got := sim.Pixel(0, 318); got != 2 {
		t.Fatalf("Pixel(0,318) = %d, want 2", got)
	}
	if got := sim.Pixel(1, 319); got != 6 {
		t.Fatalf("Pixel(1,319) = %d, want 6", got)
	}
	d.DrawImage(100, 100, 3, 2, pix)
	if got := sim.Pixel(101, 101); got != 5 {
		t.Fatalf("Pixel(101,101) = %d, want 5", got)
	}
}

func TestDrawPixelAndDisplayer(t *testing.T) {
	d, sim, _ := newTestDev(t, Landscape)
	d.DrawPixel(479, 319, 0xBEEF)
	d.DrawPixel(480, 0, 0xFFFF)
	if got := sim.Pixel(479, 319); got != 0xBEEF {
		t.Fatalf("Pixel(479,319) = %#x, want 0xbeef", got)
	}
	d.SetPixel(3, 4, color.RGBA{R: 0xFF, A: 0xFF})
	if got := sim.Pixel(3, 4); got != 0xF800 {
		t.Fatalf("SetPixel red = %#x, want 0xf800", got)
	}
	if err := d.Display(); err != nil {
		t.Fatalf("Display() error = %v", err)
	}
}

func TestDrawGlyphColumns(t *testing.T) {
	d, sim, _ := newTestDev(t, Landscape)
	cols := []uint32{0b101, 0b010}
	d.DrawGlyphColumns(-1, 0, 3, append([]uint32{0xFFFF}, cols...), 0xFFFF, 0x0001)
	want := [][]uint16{
		{0xFFFF, 0x0001},
		{0x0001, 0xFFFF},
		{0xFFFF, 0x0001},
	}
	for y, row := range want {
		for x, c := range row {
			if got := sim.Pixel(x, y); got != c {
				t.Fatalf("Pixel(%d,%d) = %#x, want %#x", x, y, got, c)
			}
		}
	}
}

func TestDrawGlyphColumnsClipsRows(t *testing.T) {
	tests := []struct {
		name       string
		x, y, h    int
		cols       []uint32
		wantPixels int
		wantTop    int
	}{
		{"above top", 10, -4, 16, []uint32{0xFFFF}, 12, 0},
		{"past bottom", 10, 320 - 8, 16, []uint32{0xFFFF}, 8, 312},
		{"corner", 478, -2, 4, []uint32{0xF, 0xF, 0xF, 0xF}, 4, 0},
		{"fully above", 10, -16, 16, []uint32{0xFFFF}, 0, 0},
		{"fully below", 10, 320, 8, []uint32{0xFF}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, sim, _ := newTestDev(t, Landscape)
			sim.EnableTrace()
			d.DrawGlyphColumns(tt.x, tt.y, tt.h, tt.cols, 0xFFFF, 0x0001)
			pixels := 0
			for _, tr := range sim.Trace() {
				pixels += tr.Pixels
				if tr.Cmd != CASET && tr.Cmd != PASET {
					continue
				}
				lo := int(tr.Params[0])<<8 | int(tr.Params[1])
				hi := int(tr.Params[2])<<8 | int(tr.Params[3])
				limit := 320
				if tr.Cmd == CASET {
					limit = 480
				}
				if lo > hi || hi >= limit {
					t.Fatalf("command %#x window %d..%d outside 0..%d", tr.Cmd, lo, hi, limit-1)
				}
			}
			if pixels != tt.wantPixels {
				t.Fatalf("pixels written = %d, want %d", pixels, tt.wantPixels)
			}
			if tt.wantPixels > 0 {
				if got := sim.Pixel(tt.x, tt.wantTop); got != 0xFFFF {
					t.Fatalf("Pixel(%d,%d) = %#x, want 0xffff", tt.x, tt.wantTop, got)
				}
			}
		})
	}
}
