package player

import (
	"fmt"
	"math/rand/v2"
	"time"

	"hxpanel/gfx"
	"hxpanel/hal"
)

// PlayDelay is how long a play transition blocks: the output is muted,
// the decoder restarted and the output opened again.
const PlayDelay = 200 * time.Millisecond

// timer counts playing time in milliseconds and survives pauses.
type timer struct {
	clk    hal.Clock
	start  uint32
	stop   uint32
	active bool
}

func (t *timer) seconds() int {
	if !t.active {
		return int((t.stop - t.start) / 1000)
	}
	return int((t.clk.Millis() - t.start) / 1000)
}

func (t *timer) run() {
	t.start = t.clk.Millis() - (t.stop - t.start)
	t.active = true
}

func (t *timer) halt() {
	t.stop = t.clk.Millis()
	t.active = false
}

func (t *timer) reset() { t.start, t.stop, t.active = 0, 0, false }

// Sim is an in-memory player. Tracks "end" when their duration has
// elapsed on the clock.
type Sim struct {
	Notifier
	clk hal.Clock
	log hal.Logger

	album   *Album
	cover   *gfx.Bitmap
	covers  func(a *Album) *gfx.Bitmap
	index   int
	playing bool
	paused  bool
	timer   timer
	shown   int

	rnd *rand.Rand
}

// NewSim returns a stopped player with no album. log can be nil.
func NewSim(clk hal.Clock, log hal.Logger) *Sim {
	if log == nil {
		log = hal.NopLogger{}
	}
	return &Sim{
		clk:   clk,
		log:   log,
		timer: timer{clk: clk},
		rnd:   rand.New(rand.NewPCG(1, 2)),
	}
}

// SetCoverSource installs the loader SetAlbum uses for album art.
func (s *Sim) SetCoverSource(fn func(a *Album) *gfx.Bitmap) { s.covers = fn }

func (s *Sim) SetAlbum(a *Album) {
	s.playing, s.paused = false, false
	s.timer.reset()
	s.index = 0
	s.album = a
	s.cover = nil
	if a != nil && s.covers != nil {
		s.cover = s.covers(a)
	}
	s.Notify(AlbumChanged)
}

// Play starts track index, clamped to the album. It blocks for PlayDelay.
func (s *Sim) Play(index int) {
	if s.album == nil || len(s.album.Tracks) == 0 {
		return
	}
	s.clk.Sleep(PlayDelay)
	s.paused = false
	index = min(max(index, 0), len(s.album.Tracks)-1)
	s.index = index
	s.playing = true
	s.Notify(StatusChanged)
	s.timer.reset()
	s.timer.run()
	s.log.WriteLineString(fmt.Sprintf("player: play %d %q", index+1, s.album.Tracks[index].Title))
}

func (s *Sim) Stop() {
	s.timer.reset()
	s.index = 0
	s.playing, s.paused = false, false
	s.Notify(StatusChanged)
	s.log.WriteLineString("player: stop")
}

// Pause toggles the pause state of a playing track.
func (s *Sim) Pause() {
	if s.paused {
		s.paused = false
		s.timer.run()
	} else if s.playing {
		s.paused = true
		s.timer.halt()
	}
	s.Notify(StatusChanged)
}

// Prev restarts the first track rather than stopping.
func (s *Sim) Prev() {
	if !s.playing {
		return
	}
	s.Play(max(s.index-1, 0))
	s.Notify(TrackChanged)
}

func (s *Sim) Next() {
	if !s.playing {
		return
	}
	s.Play(s.index + 1)
	s.Notify(TrackChanged)
}

// Control runs one step of the play loop: it reports a new elapsed second
// and moves to the next track, or stops, when the current one is over.
func (s *Sim) Control() {
	if t := s.Elapsed(); t != s.shown {
		s.shown = t
		s.Notify(TimeChanged)
	}
	if !s.playing || s.paused {
		return
	}
	if s.timer.seconds() < s.album.Tracks[s.index].Duration {
		return
	}
	s.log.WriteLineString("player: track ended")
	if s.index+1 < len(s.album.Tracks) {
		s.Play(s.index + 1)
		s.Notify(TrackChanged)
		return
	}
	s.Stop()
}

// Levels fills dst with synthetic 0..peak spectrum levels while playing
// and zeros otherwise.
func (s *Sim) Levels(dst []int, peak int) {
	if !s.playing || s.paused {
		clear(dst)
		return
	}
	for i := range dst {
		// louder in the low bands
		top := peak - i*peak/(2*len(dst))
		dst[i] = s.rnd.IntN(top + 1)
	}
}

func (s *Sim) track() *Track {
	if !s.playing {
		return nil
	}
	return &s.album.Tracks[s.index]
}

func (s *Sim) IsPlaying() bool    { return s.playing }
func (s *Sim) IsPaused() bool     { return s.paused }
func (s *Sim) Album() *Album      { return s.album }
func (s *Sim) Cover() *gfx.Bitmap { return s.cover }

func (s *Sim) TrackNumber() int {
	if !s.playing {
		return 0
	}
	return s.index + 1
}

func (s *Sim) TrackTitle() string {
	if tr := s.track(); tr != nil {
		return tr.Title
	}
	return ""
}

func (s *Sim) Elapsed() int {
	if !s.playing {
		return 0
	}
	return s.timer.seconds()
}

func (s *Sim) TrackLength() int {
	if tr := s.track(); tr != nil {
		return tr.Duration
	}
	return 0
}

func (s *Sim) BitRate() int {
	if tr := s.track(); tr != nil {
		return tr.BitRate
	}
	return 0
}

func (s *Sim) SampleRate() int {
	if tr := s.track(); tr != nil {
		return tr.SampleRate
	}
	return 0
}

func (s *Sim) Codec() Codec {
	if s.album == nil {
		return MP3
	}
	return s.album.Codec
}

var _ Player = (*Sim)(nil)
