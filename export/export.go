/*
Package export writes rendered frames in formats suitable for viewing or for
feeding into a video encoder.

Frames can be written as individual PNG images, collected into an animated
GIF, or streamed as raw packed 24-bit RGB which external encoders accept
as "rgb24" raw video.
*/
package export

import (
	"bufio"
	"errors"
	"image"
	"image/png"
	"io"
)

var (
	errWrongSize = errors.New("export: frame is wrong size")
	errNoFrames  = errors.New("export: no frames")
)

// WritePNG encodes m to w as a PNG
func WritePNG(w io.Writer, m image.Image) error {
	bw := bufio.NewWriter(w)
	if err := png.Encode(bw, m); err != nil {
		return err
	}
	return bw.Flush()
}

// RGB24 writes frames as packed RGB triples without any header or alpha
type RGB24 struct {
	w    io.Writer
	size image.Point
	buf  []byte
}

// NewRGB24 returns an RGB24 writer. Every frame written must be width by
// height pixels.
func NewRGB24(w io.Writer, width, height int) *RGB24 {
	return &RGB24{
		w:    w,
		size: image.Pt(width, height),
		buf:  make([]byte, width*height*3),
	}
}

// WriteFrame writes a single frame
func (r *RGB24) WriteFrame(m *image.RGBA) error {
	b := m.Bounds()
	if b.Size() != r.size {
		return errWrongSize
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[m.PixOffset(b.Min.X, y):]
		for x := 0; x < r.size.X; x++ {
			copy(r.buf[i:i+3], row[x*4:x*4+3])
			i += 3
		}
	}

	_, err := r.w.Write(r.buf)
	return err
}
