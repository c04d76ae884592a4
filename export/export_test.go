package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(m, m.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return m
}

// gradient has w*h distinct colors
func gradient(w, h int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m.SetRGBA(x, y, color.RGBA{uint8(i), uint8(i >> 8), uint8(x * 7), 0xff})
		}
	}
	return m
}

func TestWritePNG(t *testing.T) {
	m := solid(16, 8, color.RGBA{1, 2, 3, 255})

	b := new(bytes.Buffer)
	require.NoError(t, WritePNG(b, m))

	got, err := png.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, m.Bounds(), got.Bounds())
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, color.RGBAModel.Convert(got.At(15, 7)))
}

func TestRGB24(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 2, 2))
	m.SetRGBA(0, 0, color.RGBA{1, 2, 3, 255})
	m.SetRGBA(1, 0, color.RGBA{4, 5, 6, 255})
	m.SetRGBA(0, 1, color.RGBA{7, 8, 9, 255})
	m.SetRGBA(1, 1, color.RGBA{10, 11, 12, 255})

	b := new(bytes.Buffer)
	w := NewRGB24(b, 2, 2)
	require.NoError(t, w.WriteFrame(m))
	require.NoError(t, w.WriteFrame(m))

	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	assert.Equal(t, append(want, want...), b.Bytes())

	assert.Equal(t, errWrongSize, w.WriteFrame(solid(3, 2, color.Black)))
}

func TestRGB24SubImage(t *testing.T) {
	m := solid(4, 4, color.RGBA{9, 9, 9, 255})
	m.SetRGBA(2, 2, color.RGBA{1, 2, 3, 255})

	b := new(bytes.Buffer)
	w := NewRGB24(b, 2, 2)
	require.NoError(t, w.WriteFrame(m.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)))
	assert.Equal(t, []byte{1, 2, 3, 9, 9, 9, 9, 9, 9, 9, 9, 9}, b.Bytes())
}

func TestGIFExactPalette(t *testing.T) {
	g := NewGIF(5)

	m := solid(8, 16, color.RGBA{0x77, 0, 0, 255})
	m.SetRGBA(3, 3, color.RGBA{0xaa, 0x77, 0, 255})
	require.NoError(t, g.Add(m))
	require.NoError(t, g.Add(solid(8, 16, color.Black)))
	assert.Equal(t, 2, g.Len())

	assert.Equal(t, errWrongSize, g.Add(solid(8, 8, color.Black)))

	b := new(bytes.Buffer)
	require.NoError(t, g.Encode(b))

	got, err := gif.DecodeAll(b)
	require.NoError(t, err)
	require.Len(t, got.Image, 2)
	assert.Equal(t, []int{5, 5}, got.Delay)

	// Few enough colors that nothing is lost
	assert.Equal(t, color.RGBA{0xaa, 0x77, 0, 255}, color.RGBAModel.Convert(got.Image[0].At(3, 3)))
	assert.Equal(t, color.RGBA{0x77, 0, 0, 255}, color.RGBAModel.Convert(got.Image[0].At(0, 0)))
}

func TestGIFQuantized(t *testing.T) {
	g := NewGIF(10)
	require.NoError(t, g.Add(gradient(32, 32)))

	pm := g.g.Image[0]
	assert.LessOrEqual(t, len(pm.Palette), maxColors)
	assert.Equal(t, image.Rect(0, 0, 32, 32), pm.Bounds())

	b := new(bytes.Buffer)
	require.NoError(t, g.Encode(b))
}

func TestGIFEmpty(t *testing.T) {
	assert.Equal(t, errNoFrames, NewGIF(1).Encode(new(bytes.Buffer)))
}
