package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxColors = 256

// GIF collects frames into an animated GIF
type GIF struct {
	delay int
	size  image.Point
	g     gif.GIF
}

// NewGIF returns an empty animation. delay is the time each frame is shown
// in 100ths of a second.
func NewGIF(delay int) *GIF {
	return &GIF{
		delay: delay,
	}
}

func countColors(m image.Image, r image.Rectangle) map[color.Color]int {
	colors := make(map[color.Color]int)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			colors[color.RGBAModel.Convert(m.At(x, y))]++
			// Stop counting once it's clear the image needs quantizing
			if len(colors) > maxColors {
				return colors
			}
		}
	}
	return colors
}

func uniqueColors(m image.Image, r image.Rectangle) color.Palette {
	h := countColors(m, r)
	p := make(color.Palette, 0, len(h))
	for c := range h {
		p = append(p, c)
	}
	return p
}

func paletted(m image.Image) *image.Paletted {
	b := m.Bounds()

	p := uniqueColors(m, b)
	if len(p) > maxColors {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, maxColors), m)
	}

	pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), p)
	draw.Draw(pm, pm.Bounds(), m, b.Min, draw.Src)

	return pm
}

// Add appends a frame. All frames must be the same size as the first.
func (g *GIF) Add(m image.Image) error {
	b := m.Bounds()
	if len(g.g.Image) == 0 {
		g.size = b.Size()
		g.g.Config = image.Config{Width: b.Dx(), Height: b.Dy()}
	} else if b.Size() != g.size {
		return errWrongSize
	}

	g.g.Image = append(g.g.Image, paletted(m))
	g.g.Delay = append(g.g.Delay, g.delay)
	g.g.Disposal = append(g.g.Disposal, gif.DisposalNone)

	return nil
}

// Len returns the number of frames added
func (g *GIF) Len() int {
	return len(g.g.Image)
}

// Encode writes the animation to w
func (g *GIF) Encode(w io.Writer) error {
	if len(g.g.Image) == 0 {
		return errNoFrames
	}
	return gif.EncodeAll(w, &g.g)
}
