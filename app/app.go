// Package app is the music player demo built on the panel stack: a
// playback screen, three list screens and a shared toolbar.
package app

import (
	"fmt"
	"runtime/debug"

	"hxpanel/gfx/assets"
	"hxpanel/hal"
	"hxpanel/hx8357"
	"hxpanel/input"
	"hxpanel/internal/buildinfo"
	"hxpanel/listcache"
	"hxpanel/player"
	"hxpanel/widget"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Logical screen size in landscape.
const (
	ScreenWidth  = 480
	ScreenHeight = 320
)

const (
	splashTime     = 2000 // ms the splash stays up at least
	progressTime   = 0.25 // s for the bar to catch up with the loader
	spectrumPeriod = 50   // ms between spectrum frames
)

type stage uint8

const (
	stageLoading stage = iota
	stageRunning
	stageFailed
)

// view is one full-screen page. Only one is visible at a time.
type view interface {
	widget.Widget
	Show()
	Hide()
}

type preparer interface{ prepare() }

type pager interface {
	PageUp()
	PageDown()
}

// App wires the player, the panel and the touch sensor together.
type App struct {
	cfg Config
	log hal.Logger
	clk hal.Clock

	dev     *hx8357.Dev
	icons   *assets.Set
	tree    *widget.Tree
	desktop *widget.Desktop
	toolbar *ToolBar

	playback *PlaybackView
	songs    *SongView
	albums   *AlbumView
	artists  *ArtistView
	views    []view
	active   view

	player *player.Sim
	touch  *input.TouchManager
	thumbs *thumbStore

	stage        stage
	started      uint32
	lastFrame    uint32
	lastSpectrum uint32
	progress     *gween.Tween
	shown        float32
	levels       []int
	err          error
}

// New initializes the panel, shows the splash screen and queues the
// thumbnail preload. The UI comes up over the following calls to Step.
func New(h hal.HAL, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	o, _ := ParseOrientation(cfg.Orientation)
	log := h.Logger()
	if log == nil {
		log = hal.NopLogger{}
	}
	log.WriteLineString("hxpanel " + buildinfo.String())

	dev, err := hx8357.New(h.Bus(), h.Clock(), &hx8357.Opts{Orientation: o, Log: log})
	if err != nil {
		return nil, err
	}
	dev.Initialize()

	icons, err := assets.Load()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	touch, err := input.NewTouchManager(h.Touch(), h.Clock(), cfg.Touch, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		clk:    h.Clock(),
		dev:    dev,
		icons:  icons,
		touch:  touch,
		levels: make([]int, widget.SpectrumBands),
	}
	a.tree = widget.NewTree(dev, icons.Res, log)
	a.desktop = widget.NewDesktop(a.tree, ScreenWidth, ScreenHeight)
	a.desktop.SetSplash(cfg.Splash + " " + buildinfo.Short())
	a.desktop.Refresh()

	a.thumbs = newThumbStore(&a.cfg.Catalog, cfg.Dir, log)
	a.player = player.NewSim(a.clk, log)
	a.player.SetCoverSource(a.thumbs.Cover)
	a.build()

	if n := a.thumbs.Total(); n > 0 {
		a.desktop.ShowProgress(n, "Loading thumbnails")
		a.desktop.Refresh()
	}
	a.started = a.clk.Millis()
	a.lastFrame = a.started
	return a, nil
}

// build creates the toolbar and the views, all hidden.
func (a *App) build() {
	a.toolbar = NewToolBar(a.desktop, a.icons, a.onToolbar)
	a.playback = NewPlaybackView(a.desktop, a.player, a.icons)

	a.songs = NewSongView(a.desktop, a.player, a.toolbar)
	a.songs.SetOnSelect(func(i int) {
		a.player.Play(i)
		a.showPlayback()
	})

	thumbs := listcache.NewCache()
	a.albums = NewAlbumView(a.desktop, a.player, a.toolbar, a.thumbs, thumbs)
	a.albums.SetOnSelect(a.onAlbumSelected)
	a.artists = NewArtistView(a.desktop, &a.cfg.Catalog, a.toolbar, a.thumbs, thumbs)
	a.artists.SetOnSelect(a.selectAlbum)

	a.views = []view{a.playback, a.songs, a.albums, a.artists}
	a.player.Subscribe(a.onPlayerEvent)
}

// NewWithConfig adapts New to the host runners. A failed start is
// reported by the first step.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	a, err := New(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(err.Error())
		}
		return func() error { return err }
	}
	return a.Step
}

func (a *App) Tree() *widget.Tree       { return a.tree }
func (a *App) Desktop() *widget.Desktop { return a.desktop }
func (a *App) ToolBar() *ToolBar        { return a.toolbar }
func (a *App) Player() *player.Sim      { return a.player }
func (a *App) Playback() *PlaybackView  { return a.playback }
func (a *App) Songs() *SongView         { return a.songs }
func (a *App) Albums() *AlbumView       { return a.albums }
func (a *App) Artists() *ArtistView     { return a.artists }

// Running reports whether startup has finished.
func (a *App) Running() bool { return a.stage == stageRunning }

// Active returns the id of the visible view, or 0 during startup.
func (a *App) Active() uint16 {
	if a.active == nil {
		return 0
	}
	return a.active.ID()
}

// Step runs one iteration of the main loop. A panic stops the app, paints
// the panic screen and is returned as an error from then on.
func (a *App) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = a.fail(r, debug.Stack())
		}
	}()
	switch a.stage {
	case stageLoading:
		a.load()
	case stageRunning:
		a.run()
	case stageFailed:
		return a.err
	}
	return nil
}

// load advances the splash screen: one thumbnail per step, the progress
// bar easing toward the loaded count.
func (a *App) load() {
	now := a.clk.Millis()
	dt := float32(now-a.lastFrame) / 1000
	a.lastFrame = now

	total := a.thumbs.Total()
	if a.thumbs.Loaded() < total {
		a.thumbs.loadNext()
		a.progress = gween.New(a.shown, float32(a.thumbs.Loaded()), progressTime, ease.OutQuad)
	}
	if a.progress != nil {
		v, done := a.progress.Update(dt)
		a.shown = v
		a.desktop.UpdateProgress(int(v + 0.5))
		if done {
			a.progress = nil
		}
	}
	if a.thumbs.Loaded() < total || a.progress != nil || now-a.started < splashTime {
		return
	}
	if total > 0 {
		a.desktop.UpdateProgress(total)
		a.desktop.HideProgress()
		a.desktop.SetSplash("")
		a.desktop.Refresh()
	}
	a.start()
}

func (a *App) start() {
	a.player.SetAlbum(a.cfg.startAlbum())
	a.toolbar.Show()
	a.toolbar.Refresh()
	a.showPlayback()
	a.stage = stageRunning
	a.log.WriteLineString("app: running")
}

func (a *App) run() {
	a.player.Control()
	if now := a.clk.Millis(); a.active == a.playback && now-a.lastSpectrum >= spectrumPeriod {
		a.lastSpectrum = now
		a.player.Levels(a.levels, widget.SpectrumMax)
		a.playback.UpdateSpectrum(a.levels)
	}
	a.touch.Poll(a.tree)
}

// switchView hides every other view, then shows and paints v.
func (a *App) switchView(v view) {
	for _, o := range a.views {
		if o != v {
			o.Hide()
		}
	}
	a.active = v
	if p, ok := v.(preparer); ok {
		p.prepare()
	}
	v.Show()
	v.Refresh()
}

func (a *App) showPlayback() {
	a.switchView(a.playback)
	tb := a.toolbar
	tb.SetVisible(false, ArtistID, AlbumID, UpID, DownID, CloseID)
	tb.SetVisible(true, SongID, PrevID, NextID, PauseID)
	a.updatePlayStop()
	tb.Refresh()
}

func (a *App) updatePlayStop() {
	playing := a.player.IsPlaying()
	a.toolbar.SetVisible(playing, StopID)
	a.toolbar.SetVisible(!playing, PlayID)
}

func (a *App) selectSong() {
	if a.active == view(a.playback) {
		a.switchView(a.songs)
	}
}

// selectAlbum lists ar's albums; nil means the artist of the current
// album.
func (a *App) selectAlbum(ar *player.Artist) {
	if ar == nil {
		if al := a.player.Album(); al != nil {
			ar = al.Artist()
		}
	}
	a.albums.SetArtist(ar)
	a.switchView(a.albums)
}

func (a *App) selectArtist() {
	a.artists.SetArtist(a.albums.Artist())
	a.switchView(a.artists)
}

// onAlbumSelected loads al and remembers it as the start album for the
// rest of the session.
func (a *App) onAlbumSelected(al *player.Album) {
	if ar := al.Artist(); ar != nil {
		a.cfg.Start = Start{Artist: a.cfg.Catalog.IndexOf(ar), Album: ar.IndexOf(al)}
	}
	a.player.SetAlbum(al)
	a.showPlayback()
}

func (a *App) onToolbar(id uint16) {
	a.log.WriteLineString(fmt.Sprintf("app: button %d", id))
	switch id {
	case PrevID:
		a.player.Prev()
	case NextID:
		a.player.Next()
	case PlayID:
		a.player.Play(0)
	case StopID:
		a.player.Stop()
	case PauseID:
		a.player.Pause()
	case SongID:
		a.selectSong()
	case AlbumID:
		a.selectAlbum(nil)
	case ArtistID:
		a.selectArtist()
	case CloseID:
		a.showPlayback()
	case UpID:
		if p, ok := a.active.(pager); ok {
			p.PageUp()
		}
	case DownID:
		if p, ok := a.active.(pager); ok {
			p.PageDown()
		}
	}
}

func (a *App) onPlayerEvent(e player.Event) {
	if e == player.StatusChanged || e == player.AlbumChanged {
		a.updatePlayStop()
		a.toolbar.Refresh()
	}
}
