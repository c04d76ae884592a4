package frame

import (
	"bytes"
	"errors"
	"io"
)

const (
	magic   = "TTYF"
	version = 1

	hasColors     = 1 << 0
	hasSpecials   = 1 << 1
	hasBackground = 1 << 2
	hasCursor     = 1 << 3
	knownFlags    = hasColors | hasSpecials | hasBackground | hasCursor
)

var (
	errNotEnough  = errors.New("frame: not enough data")
	errTooMuch    = errors.New("frame: too much data")
	errBadMagic   = errors.New("frame: bad magic")
	errBadVersion = errors.New("frame: unsupported version")
	errBadFlags   = errors.New("frame: unknown flags")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	obs Observation

	// Enough to hold the largest grid
	tmp [Rows * Cols]byte
}

func (d *decoder) readHeader() (byte, error) {
	var hdr [len(magic) + 2]byte
	if err := readFull(d.r, hdr[:]); err != nil {
		return 0, err
	}
	if string(hdr[:len(magic)]) != magic {
		return 0, errBadMagic
	}
	if hdr[len(magic)] != version {
		return 0, errBadVersion
	}
	flags := hdr[len(magic)+1]
	if flags&^knownFlags != 0 {
		return 0, errBadFlags
	}
	return flags, nil
}

func (d *decoder) readGrid(rows, cols int) (Grid, error) {
	b := d.tmp[:rows*cols]
	if err := readFull(d.r, b); err != nil {
		return nil, err
	}
	g := NewGrid(rows, cols)
	for y := range g {
		for x := range g[y] {
			g[y][x] = int(b[y*cols+x])
		}
	}
	return g, nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r

	flags, err := d.readHeader()
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}

	steps := []struct {
		flag       byte
		grid       *Grid
		rows, cols int
	}{
		{0, &d.obs.Chars, Rows, Cols},
		{hasColors, &d.obs.Colors, Rows, Cols},
		{hasSpecials, &d.obs.Specials, SpecialRows, SpecialCols},
		{hasBackground, &d.obs.Background, Rows, Cols},
	}

	for _, s := range steps {
		if s.flag != 0 && flags&s.flag == 0 {
			continue
		}
		if *s.grid, err = d.readGrid(s.rows, s.cols); err != nil {
			if err == io.ErrUnexpectedEOF {
				return errNotEnough
			}
			return err
		}
	}

	if flags&hasCursor != 0 {
		if err := readFull(d.r, d.tmp[:2]); err != nil {
			if err == io.ErrUnexpectedEOF {
				return errNotEnough
			}
			return err
		}
		d.obs.Cursor = &Cursor{X: int(d.tmp[0]), Y: int(d.tmp[1])}
	}

	// io.ReadFull retries reads that return neither data nor an error
	switch _, err := io.ReadFull(r, d.tmp[:1]); err {
	case io.EOF:
	case nil:
		return errTooMuch
	default:
		return err
	}

	return d.obs.Validate()
}

// Decode reads a single observation from r. r must contain exactly one
// encoded observation.
func Decode(r io.Reader) (*Observation, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return &d.obs, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (o *Observation) UnmarshalBinary(b []byte) error {
	var d decoder
	if err := d.decode(bytes.NewReader(b)); err != nil {
		return err
	}
	*o = d.obs
	return nil
}
