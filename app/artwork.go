package app

import (
	"fmt"
	"os"
	"path/filepath"

	"hxpanel/gfx"
	"hxpanel/hal"
	"hxpanel/listcache"
	"hxpanel/player"
)

var artPalette = []gfx.Color{
	gfx.Navy, gfx.OrangeRed, gfx.MidnightBlue, gfx.Gold,
	gfx.DodgerBlue, gfx.DimGray, gfx.DarkBlue, gfx.LightSlateGray,
}

// thumbStore holds list thumbnails and loads album covers. Thumbnails are
// read once, one per call to loadNext, while the splash screen is up.
type thumbStore struct {
	dir string
	log hal.Logger

	albums  map[*player.Album][]uint16
	artists map[*player.Artist][]uint16
	queue   []func()
	total   int
}

func newThumbStore(cat *player.Catalog, dir string, log hal.Logger) *thumbStore {
	s := &thumbStore{
		dir:     dir,
		log:     log,
		albums:  make(map[*player.Album][]uint16),
		artists: make(map[*player.Artist][]uint16),
	}
	for ai, ar := range cat.Artists {
		ai, ar := ai, ar
		for _, al := range ar.Albums {
			al := al
			s.queue = append(s.queue, func() {
				s.albums[al] = s.load(al.Thumb, listcache.ImageWidth, listcache.ImageHeight, ai+len(s.albums)).Pix
			})
		}
		s.queue = append(s.queue, func() {
			s.artists[ar] = s.artistThumb(ar, ai)
		})
	}
	s.total = len(s.queue)
	return s
}

// Total is the number of thumbnails loaded at startup.
func (s *thumbStore) Total() int { return s.total }

// Loaded is how many of them are done.
func (s *thumbStore) Loaded() int { return s.total - len(s.queue) }

// loadNext loads one pending thumbnail and reports whether any remain.
func (s *thumbStore) loadNext() bool {
	if len(s.queue) == 0 {
		return false
	}
	s.queue[0]()
	s.queue = s.queue[1:]
	return len(s.queue) > 0
}

func (s *thumbStore) Album(al *player.Album) []uint16 {
	if pix, ok := s.albums[al]; ok {
		return pix
	}
	return s.load(al.Thumb, listcache.ImageWidth, listcache.ImageHeight, len(al.Title)).Pix
}

func (s *thumbStore) Artist(ar *player.Artist) []uint16 {
	if pix, ok := s.artists[ar]; ok {
		return pix
	}
	return s.artistThumb(ar, len(ar.Name))
}

// artistThumb reuses the first album's thumbnail.
func (s *thumbStore) artistThumb(ar *player.Artist, seed int) []uint16 {
	if len(ar.Albums) > 0 {
		if pix, ok := s.albums[ar.Albums[0]]; ok {
			return pix
		}
	}
	return gradient(listcache.ImageWidth, listcache.ImageHeight, seed).Pix
}

// Cover is the player's cover source.
func (s *thumbStore) Cover(al *player.Album) *gfx.Bitmap {
	seed := 0
	if ar := al.Artist(); ar != nil {
		seed = ar.IndexOf(al) + len(ar.Name)
	}
	return s.load(al.Cover, coverSize, coverSize, seed)
}

// load reads a raw w×h RGB565 file, falling back to a generated gradient
// when there is no file or it cannot be read.
func (s *thumbStore) load(name string, w, h, seed int) *gfx.Bitmap {
	if name == "" {
		return gradient(w, h, seed)
	}
	path := name
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	bm, err := readBitmap(path, w, h)
	if err != nil {
		s.log.WriteLineString(fmt.Sprintf("app: %v", err))
		return gradient(w, h, seed)
	}
	return bm
}

func readBitmap(path string, w, h int) (*gfx.Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	bm := gfx.NewBitmap(w, h)
	if _, err := bm.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bm, nil
}

// gradient is the stand-in artwork: a diagonal blend of two palette colors.
func gradient(w, h, seed int) *gfx.Bitmap {
	if seed < 0 {
		seed = -seed
	}
	from := artPalette[seed%len(artPalette)]
	to := artPalette[(seed+3)%len(artPalette)]
	bm := gfx.NewBitmap(w, h)
	span := w + h - 2
	if span < 1 {
		span = 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8((x + y) * 255 / span)
			bm.Pix[y*w+x] = uint16(gfx.AlphaBlend(to, from, a))
		}
	}
	return bm
}
