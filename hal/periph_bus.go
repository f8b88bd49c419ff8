//go:build !tinygo

package hal

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// PeriphBus bit-bangs the bus over periph.io GPIO pins.
//
// Bus methods have no error return; the first pin error is kept and
// reported by Err.
type PeriphBus struct {
	data [8]gpio.PinOut
	wr   gpio.PinOut
	cd   gpio.PinOut
	cs   gpio.PinOut
	rd   gpio.PinOut
	rst  gpio.PinOut

	port byte
	err  error
}

// NewPeriphBus looks up every pin by name. host.Init must have run.
func NewPeriphBus(pins PeriphPins) (*PeriphBus, error) {
	lookup := func(name string) (gpio.PinOut, error) {
		if name == "" {
			return nil, fmt.Errorf("hal: bus pin not configured")
		}
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("hal: unknown gpio %q", name)
		}
		return p, nil
	}

	var data [8]gpio.PinOut
	for i, n := range pins.Data {
		p, err := lookup(n)
		if err != nil {
			return nil, fmt.Errorf("data line %d: %w", i, err)
		}
		data[i] = p
	}
	var ctl [5]gpio.PinOut
	for i, n := range []string{pins.WR, pins.CD, pins.CS, pins.RD, pins.RST} {
		p, err := lookup(n)
		if err != nil {
			return nil, fmt.Errorf("control line %d: %w", i, err)
		}
		ctl[i] = p
	}
	return NewPeriphBusFromPins(data, ctl[0], ctl[1], ctl[2], ctl[3], ctl[4]), nil
}

// NewPeriphBusFromPins wires an already-opened set of pins and parks every
// control line inactive (high).
func NewPeriphBusFromPins(data [8]gpio.PinOut, wr, cd, cs, rd, rst gpio.PinOut) *PeriphBus {
	b := &PeriphBus{data: data, wr: wr, cd: cd, cs: cs, rd: rd, rst: rst}
	b.out(b.cs, gpio.High)
	b.out(b.wr, gpio.High)
	b.out(b.rd, gpio.High)
	b.out(b.cd, gpio.High)
	b.out(b.rst, gpio.High)
	for _, p := range b.data {
		b.out(p, gpio.Low)
	}
	return b
}

// Err returns the first pin error seen, if any.
func (b *PeriphBus) Err() error { return b.err }

func (b *PeriphBus) out(p gpio.PinOut, l gpio.Level) {
	if err := p.Out(l); err != nil && b.err == nil {
		b.err = fmt.Errorf("hal: %s: %w", p.Name(), err)
	}
}

func (b *PeriphBus) Select(active bool) { b.out(b.cs, gpio.Level(!active)) }

func (b *PeriphBus) Reset(active bool) { b.out(b.rst, gpio.Level(!active)) }

func (b *PeriphBus) Command(c byte) {
	b.out(b.cd, gpio.Low)
	b.Write(c)
	b.out(b.cd, gpio.High)
}

func (b *PeriphBus) Write(v byte) {
	b.out(b.wr, gpio.Low)
	changed := b.port ^ v
	for i, p := range b.data {
		if changed&(1<<i) != 0 {
			b.out(p, gpio.Level(v&(1<<i) != 0))
		}
	}
	b.port = v
	b.out(b.wr, gpio.High)
}

func (b *PeriphBus) Strobe() {
	b.out(b.wr, gpio.Low)
	b.out(b.wr, gpio.High)
}
