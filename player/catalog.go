package player

import (
	"errors"
	"fmt"
	"strings"
)

// Codec of an album's files.
type Codec uint8

const (
	MP3 Codec = iota
	AAC
)

func (c Codec) String() string {
	if c == AAC {
		return "AAC"
	}
	return "MP3"
}

func (c Codec) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Codec) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "MP3", "":
		*c = MP3
	case "AAC":
		*c = AAC
	default:
		return fmt.Errorf("player: unknown codec %q", b)
	}
	return nil
}

// Track limits carried over from the SD card layout.
const (
	MaxTracks  = 20
	MaxAlbums  = 10
	MaxArtists = 100
)

type Track struct {
	Title      string `toml:"title"`
	File       string `toml:"file"`
	Duration   int    `toml:"duration"`
	BitRate    int    `toml:"bitrate"`
	SampleRate int    `toml:"samplerate"`
}

type Album struct {
	Title  string  `toml:"title"`
	Folder string  `toml:"folder"`
	Year   int     `toml:"year"`
	Codec  Codec   `toml:"codec"`
	Cover  string  `toml:"cover"`
	Thumb  string  `toml:"thumb"`
	Tracks []Track `toml:"tracks"`

	artist *Artist
}

// Artist returns the owner set by Catalog.Link.
func (a *Album) Artist() *Artist { return a.artist }

// TotalTime sums the track durations, in seconds.
func (a *Album) TotalTime() int {
	t := 0
	for _, tr := range a.Tracks {
		t += tr.Duration
	}
	return t
}

type Artist struct {
	Name   string   `toml:"name"`
	Folder string   `toml:"folder"`
	Albums []*Album `toml:"albums"`
}

// IndexOf returns the position of al among a's albums, or -1.
func (a *Artist) IndexOf(al *Album) int {
	for i, x := range a.Albums {
		if x == al {
			return i
		}
	}
	return -1
}

type Catalog struct {
	Artists []*Artist `toml:"artists"`
}

// Link sets every album's owner and enforces the size limits.
func (c *Catalog) Link() error {
	if len(c.Artists) > MaxArtists {
		return fmt.Errorf("player: %d artists, max %d", len(c.Artists), MaxArtists)
	}
	for _, ar := range c.Artists {
		if ar == nil {
			return errors.New("player: empty artist entry")
		}
		if len(ar.Albums) > MaxAlbums {
			return fmt.Errorf("player: artist %q has %d albums, max %d", ar.Name, len(ar.Albums), MaxAlbums)
		}
		for _, al := range ar.Albums {
			if al == nil {
				return fmt.Errorf("player: artist %q: empty album entry", ar.Name)
			}
			if len(al.Tracks) > MaxTracks {
				return fmt.Errorf("player: album %q has %d tracks, max %d", al.Title, len(al.Tracks), MaxTracks)
			}
			al.artist = ar
		}
	}
	return nil
}

// IndexOf returns the position of ar, or -1.
func (c *Catalog) IndexOf(ar *Artist) int {
	for i, x := range c.Artists {
		if x == ar {
			return i
		}
	}
	return -1
}

// Albums lists every album in artist order.
func (c *Catalog) Albums() []*Album {
	var out []*Album
	for _, ar := range c.Artists {
		out = append(out, ar.Albums...)
	}
	return out
}
