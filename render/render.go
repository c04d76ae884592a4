/*
Package render draws a terminal observation as a single RGB image.

Every one of the 24 by 80 cells becomes a 16 by 8 pixel tile so the result is
always 640 pixels wide and 384 pixels high.
*/
package render

import (
	"image"
	"image/draw"

	"github.com/bodgit/ttyframe/frame"
	"github.com/bodgit/ttyframe/palette"
	"github.com/bodgit/ttyframe/tile"
	"golang.org/x/text/encoding/charmap"
)

// Image dimensions in pixels
const (
	Width  = frame.Cols * tile.Width
	Height = frame.Rows * tile.Height
)

// Renderer draws observations. The tile cache persists for the lifetime of
// the Renderer. It is safe for concurrent use.
type Renderer struct {
	resolver   *palette.Resolver
	rasterizer *tile.Rasterizer
	charmap    *charmap.Charmap
}

// Option configures a Renderer
type Option func(*Renderer)

// WithCharmap sets how character codes map to code points, the default is
// ISO 8859-1
func WithCharmap(cm *charmap.Charmap) Option {
	return func(r *Renderer) {
		r.charmap = cm
	}
}

// New returns a Renderer drawing glyphs with b. The Renderer takes ownership
// of b and closes it in Close.
func New(b tile.Backend, options ...Option) (*Renderer, error) {
	r := &Renderer{
		resolver: palette.NewResolver(),
		charmap:  charmap.ISO8859_1,
	}
	for _, o := range options {
		o(r)
	}

	var err error
	if r.rasterizer, err = tile.NewRasterizer(b, r.charmap); err != nil {
		return nil, err
	}

	return r, nil
}

// Render draws o. fg and bg, if not nil, override the colors derived from
// the observation and must be 24x80.
func (r *Renderer) Render(o *frame.Observation, fg, bg Colors) (*image.RGBA, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := checkOverride("foreground_colors", fg); err != nil {
		return nil, err
	}
	if err := checkOverride("background_colors", bg); err != nil {
		return nil, err
	}

	if fg == nil {
		fg = r.foreground(o)
	}
	if bg == nil {
		bg = r.background(o)
	}

	m := image.NewRGBA(image.Rect(0, 0, Width, Height))

	for y := 0; y < frame.Rows; y++ {
		for x := 0; x < frame.Cols; x++ {
			c := tile.Represent(byte(clamp(o.Chars[y][x], 0, 0xff)))

			t, err := r.rasterizer.Tile(c, fg[y][x], bg[y][x])
			if err != nil {
				return nil, err
			}

			dx, dy := x*tile.Width, y*tile.Height
			draw.Draw(m, image.Rect(dx, dy, dx+tile.Width, dy+tile.Height), t, image.Point{}, draw.Src)
		}
	}

	return m, nil
}

// Stats returns the tile cache hits and misses and the number of cached tiles
func (r *Renderer) Stats() (hits, misses uint64, tiles int) {
	hits, misses = r.rasterizer.Stats()
	return hits, misses, r.rasterizer.Len()
}

// Close releases the glyph backend
func (r *Renderer) Close() error {
	return r.rasterizer.Close()
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
