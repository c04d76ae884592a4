/*
Package palette implements the colour tables used to turn the small integer
encodings found in a NetHack terminal observation into RGB.

Foreground colours come from a fixed 16 entry terminal palette. Backgrounds
are either taken from the same palette or chosen from a small set of named
situations selected by the per-cell glyph flags bitfield.
*/
package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
)

// NumColors is the number of entries in the terminal palette
const NumColors = 16

var errBadHex = errors.New("palette: invalid hex color")

// RGB is a single opaque color. It implements the color.Color interface.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xffff
	return
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex converts a "#rrggbb" string to an RGB value
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, errBadHex
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, errBadHex
	}

	// Packed little-endian the bytes come out as B, G, R and an unused top byte
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))

	return RGB{R: b[2], G: b[1], B: b[0]}, nil
}

// MustParseHex is like ParseHex but panics if s is not a valid color. It is
// intended for initializing fixed tables.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(fmt.Sprintf("%v: %q", err, s))
	}
	return c
}

// Foreground is the terminal palette. Entries 0-7 are the dark variants and
// 8-15 the bright ones; white appears at both 7 and 15.
var Foreground = [NumColors]RGB{
	// Dark
	MustParseHex("#000000"),
	MustParseHex("#770000"),
	MustParseHex("#007700"),
	MustParseHex("#aa7700"),
	MustParseHex("#000077"),
	MustParseHex("#aa00aa"),
	MustParseHex("#00aaaa"),
	MustParseHex("#ffffff"),

	// Bright
	MustParseHex("#888888"),
	MustParseHex("#ff0000"),
	MustParseHex("#00ff00"),
	MustParseHex("#ffff00"),
	MustParseHex("#0000ff"),
	MustParseHex("#ff00ff"),
	MustParseHex("#00ffff"),
	MustParseHex("#ffffff"),
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
