/*
Package frame implements the terminal observation rendered as one image.

An observation is a 24 by 80 grid of character codes with optional per-cell
foreground color indices, either a grid of glyph flag bitfields or a grid of
background color indices, and an optional cursor position. The flag bitfield
grid excludes the top message line, the two bottom status lines and the last
column, so it is 21 by 79.
*/
package frame

import (
	"errors"
	"fmt"
)

// Grid dimensions
const (
	Rows = 24
	Cols = 80

	SpecialRows = Rows - 3
	SpecialCols = Cols - 1
)

var (
	// ErrMissingChars is returned when an observation has no character grid
	ErrMissingChars = errors.New("frame: missing tty_chars")
	errBadCursor    = errors.New("frame: cursor out of range")
)

// Grid is a row-major grid of small integer values
type Grid [][]int

// NewGrid returns a zeroed grid of the given shape
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]int, cols)
	}
	return g
}

// Shape returns the number of rows and the length of the first row
func (g Grid) Shape() (int, int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// Cursor is a cell position; X is the column and Y the row
type Cursor struct {
	X, Y int
}

// Observation is a single terminal snapshot
type Observation struct {
	Chars      Grid    // tty_chars, required
	Colors     Grid    // tty_colors
	Specials   Grid    // specials, 21x79
	Background Grid    // tty_background
	Cursor     *Cursor // tty_cursor
}

// ShapeError describes a grid that does not have the expected shape
type ShapeError struct {
	Name               string
	Rows, Cols         int
	WantRows, WantCols int
	// Row is the first row with the wrong length, or -1
	Row int
}

func (e *ShapeError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("frame: %s row %d has %d columns, want %d", e.Name, e.Row, e.Cols, e.WantCols)
	}
	return fmt.Sprintf("frame: %s has shape %dx%d, want %dx%d", e.Name, e.Rows, e.Cols, e.WantRows, e.WantCols)
}

func checkShape(name string, g Grid, rows, cols int) error {
	if len(g) != rows {
		r, c := g.Shape()
		return &ShapeError{Name: name, Rows: r, Cols: c, WantRows: rows, WantCols: cols, Row: -1}
	}
	for i, row := range g {
		if len(row) != cols {
			if i == 0 {
				return &ShapeError{Name: name, Rows: rows, Cols: len(row), WantRows: rows, WantCols: cols, Row: -1}
			}
			return &ShapeError{Name: name, Rows: rows, Cols: len(row), WantRows: rows, WantCols: cols, Row: i}
		}
	}
	return nil
}

// Validate checks that the character grid is present and that every grid
// present has its documented shape
func (o *Observation) Validate() error {
	if o.Chars == nil {
		return ErrMissingChars
	}
	if err := checkShape("tty_chars", o.Chars, Rows, Cols); err != nil {
		return err
	}

	if o.Colors != nil {
		if err := checkShape("tty_colors", o.Colors, Rows, Cols); err != nil {
			return err
		}
	}

	if o.Specials != nil {
		if err := checkShape("specials", o.Specials, SpecialRows, SpecialCols); err != nil {
			return err
		}
	}

	if o.Background != nil {
		if err := checkShape("tty_background", o.Background, Rows, Cols); err != nil {
			return err
		}
	}

	if c := o.Cursor; c != nil {
		if c.X < 0 || c.X >= Cols || c.Y < 0 || c.Y >= Rows {
			return fmt.Errorf("%w: (%d, %d)", errBadCursor, c.X, c.Y)
		}
	}

	return nil
}
