/*
Package ttyframe is a library for rendering recorded NetHack terminal
sessions as images.

Sessions are stored as sequences of observations in a small database and can
be rendered one step at a time or exported as a PNG sequence, an animated GIF
or a raw RGB24 stream for a video encoder.
*/
package ttyframe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/bodgit/ttyframe/export"
	"github.com/bodgit/ttyframe/frame"
	"github.com/bodgit/ttyframe/render"
)

var errNoSteps = errors.New("no steps")

// TTYFrame ties a session database to a renderer
type TTYFrame struct {
	db       *FrameDB
	renderer *render.Renderer
	logger   *log.Logger
}

// New opens the database in file. The renderer is owned by the returned
// TTYFrame and closed with it.
func New(file string, r *render.Renderer, logger *log.Logger) (*TTYFrame, error) {
	db, err := NewFrameDB(file)
	if err != nil {
		return nil, err
	}
	return &TTYFrame{
		db:       db,
		renderer: r,
		logger:   logger,
	}, nil
}

// Close closes the database and the renderer
func (t *TTYFrame) Close() error {
	err := t.db.Close()
	if rerr := t.renderer.Close(); err == nil {
		err = rerr
	}
	return err
}

// Import stores the observations in dir as session name
func (t *TTYFrame) Import(name, dir string) error {
	n, err := t.db.Import(name, dir)
	if err != nil {
		return err
	}
	if n == 0 {
		t.logger.Printf("No \"*%s\" files found in \"%s\"\n", FrameExt, dir)
	} else {
		t.logger.Printf("Imported %d steps as \"%s\"\n", n, name)
	}
	return nil
}

// Games lists the stored sessions
func (t *TTYFrame) Games() ([]Game, error) {
	return t.db.Games()
}

func (t *TTYFrame) render(o *frame.Observation) (*image.RGBA, error) {
	return t.renderer.Render(o, nil, nil)
}

func (t *TTYFrame) logStats() {
	hits, misses, tiles := t.renderer.Stats()
	t.logger.Printf("Tile cache: %d hits, %d misses, %d tiles\n", hits, misses, tiles)
}

// RenderStep renders a single step of session name to w as a PNG
func (t *TTYFrame) RenderStep(name string, step int, w io.Writer) error {
	o, err := t.db.FindFrame(name, step)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("no step %d in \"%s\"", step, name)
	}

	m, err := t.render(o)
	if err != nil {
		return err
	}

	return export.WritePNG(w, m)
}

// ExportGIF renders every step of session name into an animated GIF written
// to w. delay is in 100ths of a second.
func (t *TTYFrame) ExportGIF(name string, w io.Writer, delay int) error {
	g := export.NewGIF(delay)
	if err := t.db.eachFrame(context.Background(), name, func(step int, o *frame.Observation) error {
		m, err := t.render(o)
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		return g.Add(m)
	}); err != nil {
		return err
	}
	if g.Len() == 0 {
		return fmt.Errorf("\"%s\": %w", name, errNoSteps)
	}
	defer t.logStats()
	return g.Encode(w)
}

// ExportRGB24 renders every step of session name to w as raw 640x384 RGB24
// video frames
func (t *TTYFrame) ExportRGB24(name string, w io.Writer) error {
	rw := export.NewRGB24(w, render.Width, render.Height)
	n := 0
	if err := t.db.eachFrame(context.Background(), name, func(step int, o *frame.Observation) error {
		m, err := t.render(o)
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		n++
		return rw.WriteFrame(m)
	}); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("\"%s\": %w", name, errNoSteps)
	}
	t.logStats()
	return nil
}
