package hal

import (
	"errors"
	"time"

	"tinygo.org/x/drivers/touch"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Bus is an 8080-style write-only parallel bus: eight data lines plus the
// CS, C/D, WR, RD and RST control lines.
//
// The data lines keep the last latched byte, so Strobe repeats it.
type Bus interface {
	// Select drives CS low when active is true.
	Select(active bool)
	// Reset drives RST low when active is true.
	Reset(active bool)
	// Command writes c with C/D low and returns C/D to data.
	Command(c byte)
	// Write latches b on the data lines and pulses WR.
	Write(b byte)
	// Strobe pulses WR without touching the data lines.
	Strobe()
}

// Clock is a millisecond tick source with a blocking delay.
type Clock interface {
	Millis() uint32
	Sleep(d time.Duration)
}

// TouchMapper turns a pointer position in panel pixels into the raw sample
// the touch sensor would report there. Hosts without a real sensor use it to
// feed the same calibration path as hardware.
type TouchMapper interface {
	RawSample(x, y int, pressed bool) touch.Point
}

// HAL provides the only contact point between the panel stack and the board.
type HAL interface {
	Logger() Logger
	Bus() Bus
	Clock() Clock
	Touch() touch.Pointer
}

// NopLogger drops every line.
type NopLogger struct{}

func (NopLogger) WriteLineString(string) {}
func (NopLogger) WriteLineBytes([]byte)  {}
