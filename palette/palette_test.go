package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tables := []struct {
		name string
		in   string
		want RGB
		err  bool
	}{
		{"black", "#000000", RGB{0, 0, 0}, false},
		{"magenta", "#ff00ff", RGB{255, 0, 255}, false},
		{"brown", "#aa7700", RGB{170, 119, 0}, false},
		{"upper case", "#AA7700", RGB{170, 119, 0}, false},
		{"no hash", "aa7700", RGB{}, true},
		{"short", "#a70", RGB{}, true},
		{"not hex", "#gg0000", RGB{}, true},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			c, err := ParseHex(table.in)
			if table.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, table.want, c)
		})
	}
}

func TestMustParseHexPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseHex("#12") })
}

func TestRGBColor(t *testing.T) {
	c := color.RGBAModel.Convert(RGB{170, 119, 0}).(color.RGBA)
	assert.Equal(t, color.RGBA{170, 119, 0, 255}, c)
	assert.Equal(t, "#aa7700", RGB{170, 119, 0}.String())
}

func TestForegroundPalette(t *testing.T) {
	assert.Equal(t, RGB{0, 0, 0}, Foreground[0])
	assert.Equal(t, RGB{255, 255, 255}, Foreground[7])
	assert.Equal(t, Foreground[7], Foreground[15])
	assert.Equal(t, RGB{136, 136, 136}, Foreground[8])
}

func TestSpecialPriority(t *testing.T) {
	tables := []struct {
		bitfield uint8
		want     Situation
	}{
		{0x00, Default},
		{0x01, Corpse},
		{0x02, Invisible},
		{0x04, Detected},
		{0x08, Pet},
		{0x10, Ridden},
		{0x20, Statue},
		{0x40, ObjectPile},
		{0x80, BWLava},
		{uint8(FlagCorpse | FlagPet), Corpse},
		{uint8(FlagPet | FlagObjPile), Pet},
		{uint8(FlagStatue | FlagBWLava), Statue},
		{0xff, Corpse},
		{0xfe, Invisible},
	}

	for _, table := range tables {
		t.Run(table.want.String(), func(t *testing.T) {
			assert.Equal(t, table.want, Special(table.bitfield))
		})
	}
}

func TestSpecialEarliestMatch(t *testing.T) {
	for v := 0; v < 256; v++ {
		want := Default
		for _, p := range priority {
			if uint8(v)&uint8(p.mask) != 0 {
				want = p.situation
				break
			}
		}
		assert.Equal(t, want, Special(uint8(v)), "bitfield %#02x", v)
		// Lowest set bit always decides
		if v != 0 {
			assert.Equal(t, Special(uint8(v&-v)), Special(uint8(v)))
		}
	}
}

func TestSituationString(t *testing.T) {
	assert.Equal(t, "cursor", Cursor.String())
	assert.Equal(t, "bwlava", BWLava.String())
	assert.Equal(t, "default", Default.String())
	assert.Equal(t, "unknown", Situation(-1).String())
}

func TestResolverClamps(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, Foreground[0], r.Foreground(-5))
	assert.Equal(t, Foreground[15], r.Foreground(16))
	assert.Equal(t, Foreground[15], r.Foreground(1000))
	assert.Equal(t, Foreground[3], r.Background(3))
	assert.Equal(t, Foreground[0], r.Background(-1))

	assert.Equal(t, r.Special(0), r.Special(-1))
	assert.Equal(t, r.Special(255), r.Special(256))
	assert.Equal(t, Backgrounds[Corpse], r.Special(255))
}

func TestResolverSpecialTable(t *testing.T) {
	r := NewResolver()
	for v := 0; v < 256; v++ {
		assert.Equal(t, Backgrounds[Special(uint8(v))], r.Special(v))
	}
	assert.Equal(t, Backgrounds[Default], r.Special(0))
	assert.Equal(t, RGB{0, 0, 0xaa}, r.Special(int(FlagCorpse|FlagPet)))
	assert.Equal(t, RGB{0xff, 0xff, 0xff}, r.Special(int(FlagPet)))
	assert.Equal(t, RGB{0x55, 0x55, 0x55}, r.Situation(Cursor))
	assert.Equal(t, Backgrounds[Default], r.Situation(Situation(42)))
}
