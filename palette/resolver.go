package palette

// Resolver maps clamped color indices and flag bitfields to RGB. The
// bitfield lookup is computed once when the Resolver is created and never
// changes afterwards, so a Resolver is safe for concurrent use.
type Resolver struct {
	colors   [NumColors]RGB
	bgcolors [numSituations]RGB
	specials [256]RGB
}

// NewResolver returns a Resolver using the Foreground and Backgrounds tables
func NewResolver() *Resolver {
	r := &Resolver{
		colors:   Foreground,
		bgcolors: Backgrounds,
	}

	// Every possible value of the uint8 bitfield gets an entry
	for s := range r.specials {
		r.specials[s] = r.bgcolors[Special(uint8(s))]
	}

	return r
}

// Foreground returns the palette color for index, clamped to [0, 15]
func (r *Resolver) Foreground(index int) RGB {
	return r.colors[clamp(index, 0, NumColors-1)]
}

// Background returns the palette color for a tty_background index. It uses
// the same table and clamping as Foreground.
func (r *Resolver) Background(index int) RGB {
	return r.Foreground(index)
}

// Special returns the background color for a flags bitfield, clamped to
// [0, 255]
func (r *Resolver) Special(bitfield int) RGB {
	return r.specials[clamp(bitfield, 0, len(r.specials)-1)]
}

// Situation returns the background color of a named situation
func (r *Resolver) Situation(s Situation) RGB {
	if s < 0 || s >= numSituations {
		return r.bgcolors[Default]
	}
	return r.bgcolors[s]
}
