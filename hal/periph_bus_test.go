//go:build !tinygo

package hal

import (
	"fmt"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type testPins struct {
	data                [8]*gpiotest.Pin
	wr, cd, cs, rd, rst *gpiotest.Pin
}

func newTestPins(prefix string) *testPins {
	tp := &testPins{
		wr:  &gpiotest.Pin{N: prefix + "WR"},
		cd:  &gpiotest.Pin{N: prefix + "CD"},
		cs:  &gpiotest.Pin{N: prefix + "CS"},
		rd:  &gpiotest.Pin{N: prefix + "RD"},
		rst: &gpiotest.Pin{N: prefix + "RST"},
	}
	for i := range tp.data {
		tp.data[i] = &gpiotest.Pin{N: fmt.Sprintf("%sD%d", prefix, i), Num: i}
	}
	return tp
}

func (tp *testPins) bus() *PeriphBus {
	var data [8]gpio.PinOut
	for i, p := range tp.data {
		data[i] = p
	}
	return NewPeriphBusFromPins(data, tp.wr, tp.cd, tp.cs, tp.rd, tp.rst)
}

func (tp *testPins) port() byte {
	var v byte
	for i, p := range tp.data {
		if p.L == gpio.High {
			v |= 1 << i
		}
	}
	return v
}

func TestPeriphBusIdleLevels(t *testing.T) {
	tp := newTestPins("idle")
	tp.bus()
	for _, p := range []*gpiotest.Pin{tp.wr, tp.cd, tp.cs, tp.rd, tp.rst} {
		if p.L != gpio.High {
			t.Fatalf("%s = %v, want High", p.N, p.L)
		}
	}
}

func TestPeriphBusWrite(t *testing.T) {
	tp := newTestPins("w")
	b := tp.bus()
	b.Select(true)
	if tp.cs.L != gpio.Low {
		t.Fatalf("CS = %v, want Low", tp.cs.L)
	}
	for _, v := range []byte{0xA5, 0x5A, 0x00, 0xFF, 0x81} {
		b.Write(v)
		if got := tp.port(); got != v {
			t.Fatalf("port after Write(%#x) = %#x", v, got)
		}
		if tp.wr.L != gpio.High {
			t.Fatalf("WR after Write = %v, want High", tp.wr.L)
		}
	}
	b.Command(0x2C)
	if got := tp.port(); got != 0x2C {
		t.Fatalf("port after Command = %#x, want 0x2c", got)
	}
	if tp.cd.L != gpio.High {
		t.Fatalf("CD after Command = %v, want High", tp.cd.L)
	}
	b.Strobe()
	if got := tp.port(); got != 0x2C {
		t.Fatalf("port after Strobe = %#x, want 0x2c", got)
	}
	b.Reset(true)
	if tp.rst.L != gpio.Low {
		t.Fatalf("RST = %v, want Low", tp.rst.L)
	}
	if err := b.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
}

func TestNewPeriphBusLookup(t *testing.T) {
	tp := newTestPins("reg")
	all := append(tp.data[:], tp.wr, tp.cd, tp.cs, tp.rd, tp.rst)
	for _, p := range all {
		if err := gpioreg.Register(p); err != nil {
			t.Fatalf("Register(%s): %v", p.N, err)
		}
	}
	defer func() {
		for _, p := range all {
			gpioreg.Unregister(p.N)
		}
	}()

	pins := PeriphPins{WR: "regWR", CD: "regCD", CS: "regCS", RD: "regRD", RST: "regRST"}
	for i := range pins.Data {
		pins.Data[i] = fmt.Sprintf("regD%d", i)
	}
	b, err := NewPeriphBus(pins)
	if err != nil {
		t.Fatalf("NewPeriphBus() error = %v", err)
	}
	b.Select(true)
	b.Write(0x3C)
	if got := tp.port(); got != 0x3C {
		t.Fatalf("port = %#x, want 0x3c", got)
	}

	pins.RST = "nope"
	if _, err := NewPeriphBus(pins); err == nil {
		t.Fatalf("NewPeriphBus(unknown pin) error = nil, want error")
	}
}
