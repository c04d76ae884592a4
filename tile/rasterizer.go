package tile

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"

	"github.com/bodgit/ttyframe/palette"
	"golang.org/x/text/encoding/charmap"
)

var errTooSmall = errors.New("tile: backend patch smaller than tile")

// Rasterizer turns characters into tiles, memoizing the result. It is safe
// for concurrent use.
type Rasterizer struct {
	// Accessed atomically, kept first for alignment
	hits   uint64
	misses uint64

	backend Backend
	charmap *charmap.Charmap

	mu    sync.RWMutex
	tiles map[Key]*image.RGBA
}

// NewRasterizer returns a Rasterizer drawing with b. Character codes are
// decoded with cm, if nil then ISO 8859-1 is used which maps each code to
// the code point of the same value. The backend is checked once to make sure
// it produces patches covering a whole tile.
func NewRasterizer(b Backend, cm *charmap.Charmap) (*Rasterizer, error) {
	if cm == nil {
		cm = charmap.ISO8859_1
	}

	m, err := b.Draw('M', palette.Foreground[7], palette.Foreground[0])
	if err != nil {
		return nil, err
	}
	if r := m.Bounds(); r.Dx() < Width || r.Dy() < Height {
		return nil, fmt.Errorf("%w: %dx%d, want at least %dx%d", errTooSmall, r.Dy(), r.Dx(), Height, Width)
	}

	return &Rasterizer{
		backend: b,
		charmap: cm,
		tiles:   make(map[Key]*image.RGBA),
	}, nil
}

func (r *Rasterizer) lookup(k Key) (*image.RGBA, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.tiles[k]
	if ok {
		atomic.AddUint64(&r.hits, 1)
	}
	return m, ok
}

// Tile returns the tile for character c drawn in fg over bg. The returned
// image is shared and must not be modified.
func (r *Rasterizer) Tile(c byte, fg, bg palette.RGB) (*image.RGBA, error) {
	k := Key{Char: c, FG: fg, BG: bg}
	if m, ok := r.lookup(k); ok {
		return m, nil
	}

	patch, err := r.backend.Draw(r.charmap.DecodeByte(c), fg, bg)
	if err != nil {
		return nil, err
	}

	// Top-left aligned; anything beyond the tile is discarded and any
	// shortfall is left as background
	m := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(m, m.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(m, m.Bounds(), patch, patch.Bounds().Min, draw.Src)

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have got here first, keep theirs
	if existing, ok := r.tiles[k]; ok {
		atomic.AddUint64(&r.hits, 1)
		return existing, nil
	}
	r.tiles[k] = m
	atomic.AddUint64(&r.misses, 1)

	return m, nil
}

// Stats returns the number of cache hits and misses so far
func (r *Rasterizer) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&r.hits), atomic.LoadUint64(&r.misses)
}

// Len returns the number of cached tiles
func (r *Rasterizer) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tiles)
}

// Close closes the backend
func (r *Rasterizer) Close() error {
	return r.backend.Close()
}
