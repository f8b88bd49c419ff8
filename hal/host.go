//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"tinygo.org/x/drivers/touch"
)

// HostOptions selects what the host HAL is wired to.
type HostOptions struct {
	// Bus overrides the simulated panel, e.g. with a PeriphBus.
	Bus Bus
	// Mapper turns pointer positions into raw touch samples.
	Mapper TouchMapper
}

type hostHAL struct {
	logger *hostLogger
	bus    Bus
	sim    *PanelSim
	clock  *hostClock
	touch  *hostTouch
}

// New returns a host HAL implementation. Without a bus override it drives a
// PanelSim.
func New(opts HostOptions) HAL {
	return newHost(opts)
}

func newHost(opts HostOptions) *hostHAL {
	h := &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		bus:    opts.Bus,
		clock:  &hostClock{start: time.Now()},
		touch:  &hostTouch{mapper: opts.Mapper},
	}
	if h.bus == nil {
		h.sim = NewPanelSim()
		h.bus = h.sim
	}
	return h
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) Bus() Bus             { return h.bus }
func (h *hostHAL) Clock() Clock         { return h.clock }
func (h *hostHAL) Touch() touch.Pointer { return h.touch }

// Panel returns the simulated panel, or nil when a real bus is attached.
func Panel(h HAL) *PanelSim {
	if hh, ok := h.(*hostHAL); ok {
		return hh.sim
	}
	return nil
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostClock struct {
	start time.Time
}

func (c *hostClock) Millis() uint32 { return uint32(time.Since(c.start) / time.Millisecond) }

func (c *hostClock) Sleep(d time.Duration) { time.Sleep(d) }

// hostTouch reports the pointer position last seen by the window.
type hostTouch struct {
	mapper  TouchMapper
	x, y    int
	pressed bool
}

func (t *hostTouch) set(x, y int, pressed bool) {
	t.x, t.y, t.pressed = x, y, pressed
}

func (t *hostTouch) ReadTouchPoint() touch.Point {
	if t.mapper == nil {
		return touch.Point{}
	}
	return t.mapper.RawSample(t.x, t.y, t.pressed)
}
