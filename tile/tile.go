/*
Package tile implements the fixed size glyph tiles a terminal frame is built
from.

Each tile is exactly 16 pixels high and 8 pixels wide and shows a single
character drawn in a foreground color over a solid background. Drawing is
delegated to a Backend; tiles are memoized by character and colors since the
set of distinct combinations in a session is small.
*/
package tile

import "github.com/bodgit/ttyframe/palette"

// Tile dimensions in pixels
const (
	Width  = 8
	Height = 16
)

// Represent remaps character codes before they are drawn. Code 0 marks an
// unset cell and is drawn as a space, boulders ('`') are drawn as '0'.
func Represent(c byte) byte {
	switch c {
	case 0:
		return ' '
	case '`':
		return '0'
	default:
		return c
	}
}

// Key identifies a tile
type Key struct {
	Char   byte
	FG, BG palette.RGB
}
