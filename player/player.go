// Package player is the boundary between the panel UI and whatever plays
// audio: a read-only status view, a synchronous event fan-out and the
// catalog the UI browses.
package player

import (
	"fmt"

	"hxpanel/gfx"
)

// Event says which part of the status changed.
type Event uint8

const (
	AlbumChanged Event = iota
	TrackChanged
	StatusChanged
	TimeChanged
)

func (e Event) String() string {
	switch e {
	case AlbumChanged:
		return "album"
	case TrackChanged:
		return "track"
	case StatusChanged:
		return "status"
	case TimeChanged:
		return "time"
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

// Status is what the UI reads back from the player. Every value is zero
// while stopped.
type Status interface {
	IsPlaying() bool
	IsPaused() bool
	// TrackNumber is 1-based.
	TrackNumber() int
	TrackTitle() string
	// Elapsed and TrackLength are in seconds.
	Elapsed() int
	TrackLength() int
	// BitRate is in kbps, SampleRate in Hz.
	BitRate() int
	SampleRate() int
	Codec() Codec
	Album() *Album
	Cover() *gfx.Bitmap
	Subscribe(fn func(e Event))
}

// Control is the transport side the toolbar drives.
type Control interface {
	SetAlbum(a *Album)
	Play(index int)
	Stop()
	Pause()
	Prev()
	Next()
}

// Player is both halves.
type Player interface {
	Status
	Control
}

// Notifier fans events out to subscribers in subscription order.
type Notifier struct {
	subs []func(e Event)
}

func (n *Notifier) Subscribe(fn func(e Event)) {
	if fn != nil {
		n.subs = append(n.subs, fn)
	}
}

func (n *Notifier) Notify(e Event) {
	for _, fn := range n.subs {
		fn(e)
	}
}
