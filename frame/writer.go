package frame

import (
	"bytes"
	"io"
)

type encoder struct {
	w io.Writer
}

func clampByte(v int) byte {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	default:
		return byte(v)
	}
}

// Values are clamped into a byte; every consumer clamps to a narrower range
// anyway so this doesn't change how the observation renders
func (e *encoder) writeGrid(g Grid) error {
	for _, row := range g {
		b := make([]byte, len(row))
		for x, v := range row {
			b[x] = clampByte(v)
		}
		if _, err := e.w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encode(o *Observation) error {
	var flags byte
	if o.Colors != nil {
		flags |= hasColors
	}
	if o.Specials != nil {
		flags |= hasSpecials
	}
	if o.Background != nil {
		flags |= hasBackground
	}
	if o.Cursor != nil {
		flags |= hasCursor
	}

	if _, err := io.WriteString(e.w, magic); err != nil {
		return err
	}
	if _, err := e.w.Write([]byte{version, flags}); err != nil {
		return err
	}

	for _, g := range []Grid{o.Chars, o.Colors, o.Specials, o.Background} {
		if g == nil {
			continue
		}
		if err := e.writeGrid(g); err != nil {
			return err
		}
	}

	if o.Cursor != nil {
		if _, err := e.w.Write([]byte{byte(o.Cursor.X), byte(o.Cursor.Y)}); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the observation o to w
func Encode(w io.Writer, o *Observation) error {
	if err := o.Validate(); err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(o)
}

// MarshalBinary implements encoding.BinaryMarshaler
func (o *Observation) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, o); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
