package tile

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// Backend draws a single character. Implementations must be safe for
// concurrent use.
type Backend interface {
	// Draw returns a patch with r drawn in fg over bg. The patch may be
	// any size, it is cropped or padded to a tile
	Draw(r rune, fg, bg color.Color) (image.Image, error)
	Close() error
}

// FaceBackend draws characters using a font.Face. A font.Face is not safe
// for concurrent use so drawing is serialized.
type FaceBackend struct {
	mu   sync.Mutex
	face font.Face
	size image.Point
}

// NewFace returns a Backend drawing with face. Patches are sized from the
// face metrics, but are never smaller than a tile.
func NewFace(face font.Face) *FaceBackend {
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	if hh := m.Height.Ceil(); hh > h {
		h = hh
	}
	w := 0
	if adv, ok := face.GlyphAdvance('M'); ok {
		w = adv.Ceil()
	}
	if w < Width {
		w = Width
	}
	if h < Height {
		h = Height
	}
	return &FaceBackend{
		face: face,
		size: image.Pt(w, h),
	}
}

// Inconsolata returns a Backend using the bold Inconsolata 8x16 bitmap face
func Inconsolata() *FaceBackend {
	return NewFace(inconsolata.Bold8x16)
}

// LoadTrueType returns a Backend using the TrueType font ttf at the given
// point size
func LoadTrueType(ttf []byte, size float64) (*FaceBackend, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return NewFace(truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})), nil
}

// GoMonoBold returns a Backend using the Go Mono Bold font at the given
// point size
func GoMonoBold(size float64) (*FaceBackend, error) {
	return LoadTrueType(gomonobold.TTF, size)
}

// Draw implements Backend
func (b *FaceBackend) Draw(r rune, fg, bg color.Color) (image.Image, error) {
	m := image.NewRGBA(image.Rectangle{Max: b.size})
	draw.Draw(m, m.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	b.mu.Lock()
	defer b.mu.Unlock()

	(&font.Drawer{
		Dst:  m,
		Src:  image.NewUniform(fg),
		Face: b.face,
		Dot:  fixed.Point26_6{X: 0, Y: b.face.Metrics().Ascent},
	}).DrawString(string(r))

	return m, nil
}

// Close releases the face
func (b *FaceBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.face.Close()
}
