package app

import (
	"strings"
	"testing"

	"hxpanel/gfx"
	"hxpanel/hal"
	"hxpanel/hx8357"
	"hxpanel/input"

	"tinygo.org/x/drivers/touch"
)

// pen is a stylus in panel coordinates, read through the calibration like
// the real sensor.
type pen struct {
	cal     input.Calibration
	x, y    int
	pressed bool
}

func (p *pen) ReadTouchPoint() touch.Point { return p.cal.RawSample(p.x, p.y, p.pressed) }

type testHAL struct {
	sim *hal.PanelSim
	clk *hal.ManualClock
	pen *pen
}

func (h *testHAL) Logger() hal.Logger   { return hal.NopLogger{} }
func (h *testHAL) Bus() hal.Bus         { return h.sim }
func (h *testHAL) Clock() hal.Clock     { return h.clk }
func (h *testHAL) Touch() touch.Pointer { return h.pen }

type env struct {
	t *testing.T
	h *testHAL
	a *App
}

func newEnv(t *testing.T) *env {
	t.Helper()
	cfg := DefaultConfig()
	h := &testHAL{sim: hal.NewPanelSim(), clk: &hal.ManualClock{}, pen: &pen{cal: cfg.Touch}}
	a, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e := &env{t: t, h: h, a: a}
	for i := 0; i < 1000 && !a.Running(); i++ {
		e.step(20)
	}
	if !a.Running() {
		t.Fatalf("app did not finish starting")
	}
	return e
}

func (e *env) step(ms uint32) {
	e.t.Helper()
	e.h.clk.Advance(ms)
	if err := e.a.Step(); err != nil {
		e.t.Fatalf("Step() error = %v", err)
	}
}

// tap presses and releases at (x, y), waiting out both touch holds.
func (e *env) tap(x, y int) {
	e.t.Helper()
	p := e.h.pen
	p.x, p.y, p.pressed = x, y, true
	e.step(0)
	p.pressed = false
	e.step(input.TouchHold + 10)
	e.step(input.ReleaseHold + 10)
}

// tapSlot taps the toolbar slot n.
func (e *env) tapSlot(n int) { e.tap(n*toolWidth+toolWidth/2, ScreenHeight-toolBarHeight+toolHeight/2) }

// tapRow taps row n of the visible list.
func (e *env) tapRow(n int) { e.tap(ScreenWidth/2, listTop+n*60+30) }

func (e *env) visible(id uint16) bool { return e.a.ToolBar().Button(id).IsVisible() }

func (e *env) wantButtons(t *testing.T, shown, hidden []uint16) {
	t.Helper()
	for _, id := range shown {
		if !e.visible(id) {
			t.Fatalf("button %d hidden, want shown", id)
		}
	}
	for _, id := range hidden {
		if e.visible(id) {
			t.Fatalf("button %d shown, want hidden", id)
		}
	}
}

func TestStartup(t *testing.T) {
	e := newEnv(t)
	a := e.a
	if got := a.Active(); got != PlaybackID {
		t.Fatalf("Active() = %d, want %d", got, PlaybackID)
	}
	if got, want := a.Player().Album(), a.cfg.Artists[0].Albums[0]; got != want {
		t.Fatalf("Album() = %q, want %q", got.Title, want.Title)
	}
	if a.Desktop().Progress().IsVisible() {
		t.Fatalf("progress bar still visible after startup")
	}
	if got, want := a.thumbs.Loaded(), a.thumbs.Total(); got != want {
		t.Fatalf("thumbnails loaded = %d, want %d", got, want)
	}
	e.wantButtons(t,
		[]uint16{PlayID, PauseID, PrevID, NextID, SongID},
		[]uint16{StopID, UpID, DownID, CloseID, AlbumID, ArtistID})
	if got := e.h.sim.Pixel(0, 0); got != 0 {
		t.Fatalf("Pixel(0,0) = %#x, want black", got)
	}
}

func TestPlayStopToggle(t *testing.T) {
	e := newEnv(t)
	p := e.a.Player()

	e.tapSlot(0)
	if !p.IsPlaying() || p.TrackNumber() != 1 {
		t.Fatalf("after play: IsPlaying() = %v, TrackNumber() = %d", p.IsPlaying(), p.TrackNumber())
	}
	e.wantButtons(t, []uint16{StopID}, []uint16{PlayID})

	e.tapSlot(3)
	if got := p.TrackNumber(); got != 2 {
		t.Fatalf("after next: TrackNumber() = %d, want 2", got)
	}
	e.tapSlot(0)
	if p.IsPlaying() {
		t.Fatalf("after stop: IsPlaying() = true")
	}
	e.wantButtons(t, []uint16{PlayID}, []uint16{StopID})
}

func TestSongView(t *testing.T) {
	e := newEnv(t)
	a := e.a
	tracks := len(a.Player().Album().Tracks)

	e.tapSlot(5)
	if got := a.Active(); got != SongViewID {
		t.Fatalf("Active() = %d, want %d", got, SongViewID)
	}
	e.wantButtons(t, []uint16{AlbumID, CloseID}, []uint16{SongID, PrevID, NextID, ArtistID, UpID})
	if got := e.visible(DownID); got != (tracks > 4) {
		t.Fatalf("down visible = %v with %d tracks", got, tracks)
	}
	if got := a.Songs().List().Selection(); got != -1 {
		t.Fatalf("Selection() = %d, want -1 while stopped", got)
	}

	e.tapRow(1)
	if got := a.Active(); got != PlaybackID {
		t.Fatalf("Active() after select = %d, want %d", got, PlaybackID)
	}
	if p := a.Player(); !p.IsPlaying() || p.TrackNumber() != 2 {
		t.Fatalf("IsPlaying() = %v, TrackNumber() = %d, want true, 2", p.IsPlaying(), p.TrackNumber())
	}

	e.tapSlot(5)
	if got := a.Songs().List().Selection(); got != 1 {
		t.Fatalf("Selection() = %d, want 1", got)
	}
	e.tapSlot(4)
	if got := a.Active(); got != PlaybackID {
		t.Fatalf("Active() after close = %d, want %d", got, PlaybackID)
	}
}

func TestSongRowDetailInTinyFont(t *testing.T) {
	e := newEnv(t)
	tiny := e.a.Tree().Resources().Font(gfx.TinyFont).Height()
	e.h.sim.EnableTrace()
	e.tapSlot(5)

	columns := 0
	var x1, x2 int
	for _, tr := range e.h.sim.Trace() {
		if len(tr.Params) != 4 {
			continue
		}
		lo := int(tr.Params[0])<<8 | int(tr.Params[1])
		hi := int(tr.Params[2])<<8 | int(tr.Params[3])
		switch tr.Cmd {
		case hx8357.CASET:
			x1, x2 = lo, hi
		case hx8357.PASET:
			if x1 == x2 && x1 >= ScreenWidth/2 && hi-lo+1 == tiny && lo >= listTop && hi < listTop+60 {
				columns++
			}
		}
	}
	if columns < 20 {
		t.Fatalf("tiny glyph columns in first row = %d, want at least 20", columns)
	}
}

func TestSongViewPaging(t *testing.T) {
	e := newEnv(t)
	a := e.a
	if len(a.Player().Album().Tracks) <= 4 {
		t.Skip("start album fits on one page")
	}
	e.tapSlot(5)
	e.tapSlot(3)
	if got := a.Songs().List().Page(); got != 1 {
		t.Fatalf("Page() after down = %d, want 1", got)
	}
	if !e.visible(UpID) {
		t.Fatalf("up hidden on page 2")
	}
	e.tapSlot(2)
	if got := a.Songs().List().Page(); got != 0 {
		t.Fatalf("Page() after up = %d, want 0", got)
	}
	if e.visible(UpID) {
		t.Fatalf("up shown on the first page")
	}
}

func TestBrowseToAlbum(t *testing.T) {
	e := newEnv(t)
	a := e.a
	cat := a.cfg.Catalog

	e.tapSlot(5)
	e.tapSlot(5)
	if got := a.Active(); got != AlbumViewID {
		t.Fatalf("Active() = %d, want %d", got, AlbumViewID)
	}
	if got := a.Albums().Artist(); got != cat.Artists[0] {
		t.Fatalf("album view artist = %v, want %q", got, cat.Artists[0].Name)
	}
	if got := a.Albums().List().Selection(); got != 0 {
		t.Fatalf("album Selection() = %d, want 0", got)
	}
	e.wantButtons(t, []uint16{ArtistID, CloseID}, []uint16{AlbumID, SongID, PrevID, NextID})

	e.tapSlot(5)
	if got := a.Active(); got != ArtistViewID {
		t.Fatalf("Active() = %d, want %d", got, ArtistViewID)
	}
	if got := a.Artists().List().Selection(); got != 0 {
		t.Fatalf("artist Selection() = %d, want 0", got)
	}
	e.wantButtons(t, []uint16{CloseID, DownID}, []uint16{ArtistID, AlbumID, SongID})

	e.tapRow(2)
	if got := a.Active(); got != AlbumViewID {
		t.Fatalf("Active() after artist = %d, want %d", got, AlbumViewID)
	}
	if got := a.Albums().Artist(); got != cat.Artists[2] {
		t.Fatalf("album view artist = %q, want %q", got.Name, cat.Artists[2].Name)
	}
	if got := a.Albums().List().Selection(); got != -1 {
		t.Fatalf("album Selection() = %d, want -1", got)
	}

	e.tapRow(1)
	want := cat.Artists[2].Albums[1]
	if got := a.Player().Album(); got != want {
		t.Fatalf("Album() = %q, want %q", got.Title, want.Title)
	}
	if got := a.Active(); got != PlaybackID {
		t.Fatalf("Active() after album = %d, want %d", got, PlaybackID)
	}
	if a.cfg.Start != (Start{Artist: 2, Album: 1}) {
		t.Fatalf("Start = %+v, want {2 1}", a.cfg.Start)
	}
}

func TestPlayerEventsFollowStatus(t *testing.T) {
	e := newEnv(t)
	a := e.a
	a.Player().Play(0)
	e.wantButtons(t, []uint16{StopID}, []uint16{PlayID})
	a.Player().SetAlbum(a.cfg.Artists[1].Albums[0])
	e.wantButtons(t, []uint16{PlayID}, []uint16{StopID})
	if got := a.Playback().album.Text(); got != a.cfg.Artists[1].Albums[0].Title {
		t.Fatalf("album label = %q", got)
	}
}

func TestStepAfterPanic(t *testing.T) {
	e := newEnv(t)
	a := e.a
	a.touch = nil
	err := a.Step()
	if err == nil || !strings.Contains(err.Error(), "panic") {
		t.Fatalf("Step() error = %v, want panic", err)
	}
	if again := a.Step(); again != err {
		t.Fatalf("second Step() error = %v, want %v", again, err)
	}
	if a.Running() {
		t.Fatalf("Running() = true after panic")
	}
	if got := e.h.sim.Pixel(ScreenWidth-1, 0); got != 0xFFFF {
		t.Fatalf("panic screen Pixel(479,0) = %#x, want white", got)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orientation = hx8357.Portrait.String()
	h := &testHAL{sim: hal.NewPanelSim(), clk: &hal.ManualClock{}, pen: &pen{cal: cfg.Touch}}
	if _, err := New(h, cfg); err == nil {
		t.Fatalf("New(portrait) error = nil, want error")
	}
	step := NewWithConfig(h, cfg)
	if err := step(); err == nil {
		t.Fatalf("step() error = nil, want the New error")
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		s          string
		n          int16
		head, tail string
	}{
		{"abcdef", 4, "abcd", "ef"},
		{"abc", 4, "abc", ""},
		{"äöüß", 2, "äö", "üß"},
		{"x", 0, "", "x"},
	}
	for _, tt := range tests {
		head, tail := takeRunes(tt.s, tt.n)
		if head != tt.head || tail != tt.tail {
			t.Fatalf("takeRunes(%q, %d) = %q, %q, want %q, %q", tt.s, tt.n, head, tail, tt.head, tt.tail)
		}
	}
}

func TestArtworkFallback(t *testing.T) {
	cat := DefaultConfig().Catalog
	if err := cat.Link(); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	s := newThumbStore(&cat, t.TempDir(), hal.NopLogger{})
	al := cat.Artists[0].Albums[0]
	al.Cover = "missing.raw"
	bm := s.Cover(al)
	if bm.W != coverSize || bm.H != coverSize || len(bm.Pix) != coverSize*coverSize {
		t.Fatalf("Cover() = %dx%d with %d pixels", bm.W, bm.H, len(bm.Pix))
	}
	for s.loadNext() {
	}
	if got := s.Loaded(); got != s.Total() {
		t.Fatalf("Loaded() = %d, want %d", got, s.Total())
	}
}
