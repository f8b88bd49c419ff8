package hal

import "time"

// ManualClock is a Clock that only moves when told to. Sleep advances it.
type ManualClock struct {
	ms     uint32
	Sleeps []time.Duration
}

func (c *ManualClock) Millis() uint32 { return c.ms }

func (c *ManualClock) Sleep(d time.Duration) {
	c.Sleeps = append(c.Sleeps, d)
	c.ms += uint32(d / time.Millisecond)
}

// Advance moves the clock forward by ms milliseconds.
func (c *ManualClock) Advance(ms uint32) { c.ms += ms }

// Set jumps the clock to ms, wrapping included.
func (c *ManualClock) Set(ms uint32) { c.ms = ms }
