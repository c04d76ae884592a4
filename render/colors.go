package render

import (
	"fmt"

	"github.com/bodgit/ttyframe/frame"
	"github.com/bodgit/ttyframe/palette"
)

// Colors is a grid of per-cell colors
type Colors [][]palette.RGB

// NewColors returns a full size grid filled with c
func NewColors(c palette.RGB) Colors {
	cs := make(Colors, frame.Rows)
	for y := range cs {
		cs[y] = make([]palette.RGB, frame.Cols)
		for x := range cs[y] {
			cs[y][x] = c
		}
	}
	return cs
}

func (cs Colors) check(name string) error {
	if len(cs) != frame.Rows {
		cols := 0
		if len(cs) > 0 {
			cols = len(cs[0])
		}
		return &frame.ShapeError{Name: name, Rows: len(cs), Cols: cols, WantRows: frame.Rows, WantCols: frame.Cols, Row: -1}
	}
	for y, row := range cs {
		if len(row) != frame.Cols {
			return &frame.ShapeError{Name: name, Rows: frame.Rows, Cols: len(row), WantRows: frame.Rows, WantCols: frame.Cols, Row: y}
		}
	}
	return nil
}

// Without tty_colors every cell uses palette index 0
func (r *Renderer) foreground(o *frame.Observation) Colors {
	if o.Colors == nil {
		return NewColors(r.resolver.Foreground(0))
	}
	cs := make(Colors, frame.Rows)
	for y := range cs {
		cs[y] = make([]palette.RGB, frame.Cols)
		for x := range cs[y] {
			cs[y][x] = r.resolver.Foreground(o.Colors[y][x])
		}
	}
	return cs
}

// Specials are padded with one row above, two rows below and one column to
// the right; padding resolves as a zero bitfield
func paddedSpecial(g frame.Grid, y, x int) int {
	y--
	if y < 0 || y >= len(g) || x >= len(g[y]) {
		return 0
	}
	return g[y][x]
}

func (r *Renderer) background(o *frame.Observation) Colors {
	var cs Colors
	switch {
	case o.Specials != nil:
		cs = make(Colors, frame.Rows)
		for y := range cs {
			cs[y] = make([]palette.RGB, frame.Cols)
			for x := range cs[y] {
				cs[y][x] = r.resolver.Special(paddedSpecial(o.Specials, y, x))
			}
		}
	case o.Background != nil:
		cs = make(Colors, frame.Rows)
		for y := range cs {
			cs[y] = make([]palette.RGB, frame.Cols)
			for x := range cs[y] {
				cs[y][x] = r.resolver.Background(o.Background[y][x])
			}
		}
	default:
		cs = NewColors(palette.RGB{})
	}

	if c := o.Cursor; c != nil {
		cs[c.Y][c.X] = r.resolver.Situation(palette.Cursor)
	}

	return cs
}

// Foreground returns the foreground color of every cell of o, derived from
// its tty_colors grid
func (r *Renderer) Foreground(o *frame.Observation) (Colors, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return r.foreground(o), nil
}

// Background returns the background color of every cell of o. Specials take
// precedence over tty_background, with neither the background is black. The
// cursor cell, if any, is always drawn with the cursor color.
func (r *Renderer) Background(o *frame.Observation) (Colors, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return r.background(o), nil
}

func checkOverride(name string, cs Colors) error {
	if cs == nil {
		return nil
	}
	if err := cs.check(name); err != nil {
		return fmt.Errorf("render: override: %w", err)
	}
	return nil
}
