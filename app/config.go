package app

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"hxpanel/hal"
	"hxpanel/hx8357"
	"hxpanel/input"
	"hxpanel/player"

	"github.com/BurntSushi/toml"
)

//go:embed demo.toml
var demoCatalog string

// Start picks the album loaded at boot.
type Start struct {
	Artist int `toml:"artist"`
	Album  int `toml:"album"`
}

// Config is everything the demo reads from its TOML file.
type Config struct {
	Orientation string            `toml:"orientation"`
	Splash      string            `toml:"splash"`
	Touch       input.Calibration `toml:"touch"`
	Pins        hal.PeriphPins    `toml:"pins"`
	Start       Start             `toml:"start"`
	// Dir is where relative cover and thumbnail paths are resolved.
	Dir string `toml:"dir"`

	player.Catalog
}

// DefaultConfig is the landscape panel with the built-in demo catalog.
func DefaultConfig() Config {
	cfg := Config{
		Orientation: hx8357.Landscape.String(),
		Splash:      "hxpanel",
		Touch:       input.DefaultCalibration(),
	}
	if _, err := toml.Decode(demoCatalog, &cfg.Catalog); err != nil {
		panic(fmt.Sprintf("app: demo catalog: %v", err))
	}
	return cfg
}

// LoadConfig overlays the file at path on DefaultConfig. A file that names
// no artists keeps the demo catalog.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	demo := cfg.Artists
	cfg.Artists = nil
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("app: load config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("app: %s: unknown key %q", path, keys[0].String())
	}
	if len(cfg.Artists) == 0 {
		cfg.Artists = demo
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("app: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseOrientation accepts the names printed by hx8357.Orientation.
func ParseOrientation(s string) (hx8357.Orientation, error) {
	for o := hx8357.Portrait; o <= hx8357.LandscapeFlipped; o++ {
		if strings.EqualFold(s, o.String()) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Validate checks the fields the UI depends on and links the catalog.
func (c *Config) Validate() error {
	o, err := ParseOrientation(c.Orientation)
	if err != nil {
		return err
	}
	if o != hx8357.Landscape && o != hx8357.LandscapeFlipped {
		return fmt.Errorf("orientation %s: the UI is laid out for landscape", o)
	}
	if err := c.Touch.Validate(); err != nil {
		return err
	}
	if c.Touch.Width != ScreenWidth || c.Touch.Height != ScreenHeight {
		return fmt.Errorf("touch area %dx%d does not match the %dx%d screen",
			c.Touch.Width, c.Touch.Height, ScreenWidth, ScreenHeight)
	}
	if len(c.Artists) == 0 {
		return errors.New("catalog has no artists")
	}
	if err := c.Catalog.Link(); err != nil {
		return err
	}
	for _, ar := range c.Artists {
		if len(ar.Albums) == 0 {
			return fmt.Errorf("artist %q has no albums", ar.Name)
		}
	}
	return nil
}

// startAlbum resolves Start, falling back to the first album like a reset
// board does.
func (c *Config) startAlbum() *player.Album {
	ai := c.Start.Artist
	if ai < 0 || ai >= len(c.Artists) {
		ai = 0
	}
	ar := c.Artists[ai]
	bi := c.Start.Album
	if bi < 0 || bi >= len(ar.Albums) {
		bi = 0
	}
	return ar.Albums[bi]
}
