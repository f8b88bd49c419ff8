// Package input turns raw resistive touch samples into debounced
// press/release events for the widget tree.
package input

import (
	"errors"
	"fmt"

	"hxpanel/geom"
	"hxpanel/hal"

	"tinygo.org/x/drivers/touch"
)

// Suppression windows after each transition, in milliseconds.
const (
	TouchHold   = 200
	ReleaseHold = 1000
)

// Calibration maps the raw sensor range onto the panel. The sensor is
// mounted rotated: raw axis a (touch.Point.X) runs along the panel height
// and raw axis b (touch.Point.Y) along its width.
type Calibration struct {
	AMin     int `toml:"a_min"`
	AMax     int `toml:"a_max"`
	BMin     int `toml:"b_min"`
	BMax     int `toml:"b_max"`
	Pressure int `toml:"pressure"`
	Width    int `toml:"width"`
	Height   int `toml:"height"`
}

// DefaultCalibration fits the 3.5" breakout in landscape.
func DefaultCalibration() Calibration {
	return Calibration{
		AMin: 100, AMax: 920,
		BMin: 130, BMax: 900,
		Pressure: 10,
		Width:    480, Height: 320,
	}
}

func (c Calibration) Validate() error {
	switch {
	case c.AMin >= c.AMax:
		return fmt.Errorf("input: a range %d..%d is empty", c.AMin, c.AMax)
	case c.BMin >= c.BMax:
		return fmt.Errorf("input: b range %d..%d is empty", c.BMin, c.BMax)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("input: bad panel size %dx%d", c.Width, c.Height)
	case c.Pressure < 0:
		return errors.New("input: negative pressure threshold")
	}
	return nil
}

// Map converts a raw sample to panel coordinates. Samples outside the
// calibrated range are rejected.
func (c Calibration) Map(p touch.Point) (geom.Point, bool) {
	if p.X < c.AMin || p.X > c.AMax || p.Y < c.BMin || p.Y > c.BMax {
		return geom.Point{}, false
	}
	return geom.Point{
		X: c.Width * (p.Y - c.BMin) / (c.BMax - c.BMin),
		Y: c.Height * (p.X - c.AMin) / (c.AMax - c.AMin),
	}, true
}

// RawSample is the inverse of Map, rounded so that Map gives back (x, y)
// whenever the raw range is at least as wide as the panel.
func (c Calibration) RawSample(x, y int, pressed bool) touch.Point {
	ar, br := c.AMax-c.AMin, c.BMax-c.BMin
	p := touch.Point{
		X: c.AMin + (y*ar+c.Height-1)/c.Height,
		Y: c.BMin + (x*br+c.Width-1)/c.Width,
	}
	if pressed {
		p.Z = c.Pressure + 1
	}
	return p
}

var _ hal.TouchMapper = Calibration{}

// State of the contact as last reported.
type State uint8

const (
	Released State = iota
	Touched
)

func (s State) String() string {
	if s == Touched {
		return "touched"
	}
	return "released"
}

// Event is one debounced transition. A release carries the position of
// the touch it ends.
type Event struct {
	Touched bool
	Pos     geom.Point
}

// Listener receives events; *widget.Tree is one.
type Listener interface {
	HandleTouch(touched bool, pos geom.Point) bool
}

// TouchManager polls a touch.Pointer and reports transitions, ignoring the
// sensor for a while after each one.
type TouchManager struct {
	src touch.Pointer
	clk hal.Clock
	cal Calibration
	log hal.Logger

	state   State
	last    geom.Point
	until   uint32
	holding bool
}

func NewTouchManager(src touch.Pointer, clk hal.Clock, cal Calibration, log hal.Logger) (*TouchManager, error) {
	if src == nil {
		return nil, errors.New("input: nil touch source")
	}
	if clk == nil {
		return nil, errors.New("input: nil clock")
	}
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = hal.NopLogger{}
	}
	return &TouchManager{src: src, clk: clk, cal: cal, log: log}, nil
}

func (m *TouchManager) State() State             { return m.state }
func (m *TouchManager) Calibration() Calibration { return m.cal }

// Poll reads at most one sample and, on a transition, hands the event to l
// (which may be nil). It reports the event and whether there was one.
func (m *TouchManager) Poll(l Listener) (Event, bool) {
	now := m.clk.Millis()
	if m.holding {
		if int32(now-m.until) < 0 {
			return Event{}, false
		}
		m.holding = false
	}

	p := m.src.ReadTouchPoint()
	var e Event
	if p.Z > m.cal.Pressure {
		pos, ok := m.cal.Map(p)
		if !ok || m.state == Touched {
			return Event{}, false
		}
		m.state, m.last = Touched, pos
		e = Event{Touched: true, Pos: pos}
		m.log.WriteLineString(fmt.Sprintf("touched %v", pos))
		m.hold(now, TouchHold)
	} else {
		if m.state == Released {
			return Event{}, false
		}
		m.state = Released
		e = Event{Pos: m.last}
		m.log.WriteLineString("released")
		m.hold(now, ReleaseHold)
	}
	if l != nil {
		l.HandleTouch(e.Touched, e.Pos)
	}
	return e, true
}

func (m *TouchManager) hold(now, ms uint32) {
	m.until = now + ms
	m.holding = true
}
