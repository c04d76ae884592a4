package palette

// Situation names a background coloring case
type Situation int

// Default must stay the zero value
const (
	Default Situation = iota
	Cursor
	Corpse
	Invisible
	Detected
	Pet
	Ridden
	Statue
	ObjectPile
	BWLava
	numSituations
)

var situationNames = [numSituations]string{
	Default:    "default",
	Cursor:     "cursor",
	Corpse:     "corpse",
	Invisible:  "invis",
	Detected:   "detect",
	Pet:        "pet",
	Ridden:     "ridden",
	Statue:     "statue",
	ObjectPile: "objpile",
	BWLava:     "bwlava",
}

func (s Situation) String() string {
	if s < 0 || s >= numSituations {
		return "unknown"
	}
	return situationNames[s]
}

// Backgrounds holds the color used for each situation
var Backgrounds = [numSituations]RGB{
	Default:    MustParseHex("#000000"), // Black
	Cursor:     MustParseHex("#555555"), // Gray
	Corpse:     MustParseHex("#0000aa"), // Blue
	Invisible:  MustParseHex("#333333"),
	Detected:   MustParseHex("#333333"),
	Pet:        MustParseHex("#ffffff"), // White
	Ridden:     MustParseHex("#333333"),
	Statue:     MustParseHex("#333333"),
	ObjectPile: MustParseHex("#333333"),
	BWLava:     MustParseHex("#330000"), // Red
}

// Flag is a bit in the NetHack glyph "special" bitfield
type Flag uint8

// Values match the MG_* constants in NetHack's display code
const (
	FlagCorpse  Flag = 0x01
	FlagInvis   Flag = 0x02
	FlagDetect  Flag = 0x04
	FlagPet     Flag = 0x08
	FlagRidden  Flag = 0x10
	FlagStatue  Flag = 0x20
	FlagObjPile Flag = 0x40
	FlagBWLava  Flag = 0x80
)

// priority is evaluated top to bottom, the first flag set wins
var priority = [...]struct {
	mask      Flag
	situation Situation
}{
	{FlagCorpse, Corpse},
	{FlagInvis, Invisible},
	{FlagDetect, Detected},
	{FlagPet, Pet},
	{FlagRidden, Ridden},
	{FlagStatue, Statue},
	{FlagObjPile, ObjectPile},
	{FlagBWLava, BWLava},
}

// Special returns the situation selected by a glyph flags bitfield
func Special(bitfield uint8) Situation {
	for _, p := range priority {
		if Flag(bitfield)&p.mask != 0 {
			return p.situation
		}
	}
	return Default
}
