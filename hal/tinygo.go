//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/touch"
	"tinygo.org/x/drivers/touch/resistive"
)

type tinyGoHAL struct {
	logger *uartLogger
	bus    *pinBus
	clock  *tinyGoClock
	touch  touch.Pointer
}

// New returns an RP2040 HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Bus: D0..D7 on GP2..GP9, WR GP10, C/D GP11, CS GP12, RD GP13, RST GP14.
// Touch: Y+ ADC0, X- ADC1, Y- ADC2, X+ ADC3.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	machine.InitADC()
	res := &resistive.FourWire{}
	res.Configure(&resistive.FourWireConfig{
		YP:          machine.ADC0,
		XM:          machine.ADC1,
		YM:          machine.ADC2,
		XP:          machine.ADC3,
		ReadSamples: 4,
	})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		bus: newPinBus(
			[8]machine.Pin{machine.GP2, machine.GP3, machine.GP4, machine.GP5,
				machine.GP6, machine.GP7, machine.GP8, machine.GP9},
			machine.GP10, machine.GP11, machine.GP12, machine.GP13, machine.GP14),
		clock: &tinyGoClock{start: time.Now()},
		touch: tenBitTouch{res},
	}
}

func (h *tinyGoHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHAL) Bus() Bus             { return h.bus }
func (h *tinyGoHAL) Clock() Clock         { return h.clock }
func (h *tinyGoHAL) Touch() touch.Pointer { return h.touch }

// tenBitTouch rescales the driver's 16-bit samples to the 10-bit range the
// default calibration is written for.
type tenBitTouch struct {
	src touch.Pointer
}

func (t tenBitTouch) ReadTouchPoint() touch.Point {
	p := t.src.ReadTouchPoint()
	return touch.Point{X: p.X >> 6, Y: p.Y >> 6, Z: p.Z >> 6}
}

type pinBus struct {
	data                [8]machine.Pin
	wr, cd, cs, rd, rst machine.Pin
}

func newPinBus(data [8]machine.Pin, wr, cd, cs, rd, rst machine.Pin) *pinBus {
	b := &pinBus{data: data, wr: wr, cd: cd, cs: cs, rd: rd, rst: rst}
	for _, p := range append(data[:], wr, cd, cs, rd, rst) {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	b.cs.High()
	b.wr.High()
	b.rd.High()
	b.cd.High()
	b.rst.High()
	return b
}

func (b *pinBus) Select(active bool) { b.cs.Set(!active) }
func (b *pinBus) Reset(active bool)  { b.rst.Set(!active) }

func (b *pinBus) Command(c byte) {
	b.cd.Low()
	b.Write(c)
	b.cd.High()
}

func (b *pinBus) Write(v byte) {
	b.wr.Low()
	for i, p := range b.data {
		p.Set(v&(1<<i) != 0)
	}
	b.wr.High()
}

func (b *pinBus) Strobe() {
	b.wr.Low()
	b.wr.High()
}

type tinyGoClock struct {
	start time.Time
}

func (c *tinyGoClock) Millis() uint32 { return uint32(time.Since(c.start) / time.Millisecond) }

func (c *tinyGoClock) Sleep(d time.Duration) { time.Sleep(d) }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
