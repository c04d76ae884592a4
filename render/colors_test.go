package render

import (
	"testing"

	"github.com/bodgit/ttyframe/frame"
	"github.com/bodgit/ttyframe/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForeground(t *testing.T) {
	r, _ := newRenderer(t)

	o := blank()
	o.Colors = frame.NewGrid(frame.Rows, frame.Cols)
	o.Colors[0][0] = 3
	o.Colors[0][1] = -1
	o.Colors[0][2] = 99

	fg, err := r.Foreground(o)
	require.NoError(t, err)
	assert.Equal(t, palette.Foreground[3], fg[0][0])
	assert.Equal(t, palette.Foreground[0], fg[0][1])
	assert.Equal(t, palette.Foreground[15], fg[0][2])

	// Missing tty_colors is palette index 0
	fg, err = r.Foreground(blank())
	require.NoError(t, err)
	assert.Equal(t, NewColors(palette.Foreground[0]), fg)
}

func TestBackgroundDefault(t *testing.T) {
	r, _ := newRenderer(t)

	bg, err := r.Background(blank())
	require.NoError(t, err)
	assert.Equal(t, NewColors(palette.RGB{}), bg)
}

func TestBackgroundCursor(t *testing.T) {
	r, _ := newRenderer(t)

	o := blank()
	o.Cursor = &frame.Cursor{X: 5, Y: 3}

	bg, err := r.Background(o)
	require.NoError(t, err)

	cursor := palette.Backgrounds[palette.Cursor]
	for y := range bg {
		for x := range bg[y] {
			if x == 5 && y == 3 {
				assert.Equal(t, cursor, bg[y][x])
			} else {
				assert.Equal(t, palette.RGB{}, bg[y][x], "cell (%d, %d)", x, y)
			}
		}
	}
}

func TestBackgroundTTY(t *testing.T) {
	r, _ := newRenderer(t)

	o := blank()
	o.Background = frame.NewGrid(frame.Rows, frame.Cols)
	o.Background[10][10] = 4
	o.Background[10][11] = 20
	o.Cursor = &frame.Cursor{X: 10, Y: 10}

	bg, err := r.Background(o)
	require.NoError(t, err)
	assert.Equal(t, palette.Backgrounds[palette.Cursor], bg[10][10])
	assert.Equal(t, palette.Foreground[15], bg[10][11])
	assert.Equal(t, palette.Foreground[0], bg[0][0])
}

func TestBackgroundSpecialsPadding(t *testing.T) {
	r, _ := newRenderer(t)

	o := blank()
	o.Specials = frame.NewGrid(frame.SpecialRows, frame.SpecialCols)
	for y := range o.Specials {
		for x := range o.Specials[y] {
			o.Specials[y][x] = int(palette.FlagPet)
		}
	}
	// Top-left of the specials grid is row 1, column 0 of the screen
	o.Specials[0][0] = int(palette.FlagCorpse | palette.FlagPet)
	o.Specials[1][1] = 1000

	bg, err := r.Background(o)
	require.NoError(t, err)

	def := palette.Backgrounds[palette.Default]
	pet := palette.Backgrounds[palette.Pet]

	for y := 0; y < frame.Rows; y++ {
		for x := 0; x < frame.Cols; x++ {
			switch {
			case y == 0, y >= frame.Rows-2, x == frame.Cols-1:
				assert.Equal(t, def, bg[y][x], "cell (%d, %d)", x, y)
			case y == 1 && x == 0:
				assert.Equal(t, palette.Backgrounds[palette.Corpse], bg[y][x])
			case y == 2 && x == 1:
				// 1000 clamps to 255, corpse bit set
				assert.Equal(t, palette.Backgrounds[palette.Corpse], bg[y][x])
			default:
				assert.Equal(t, pet, bg[y][x], "cell (%d, %d)", x, y)
			}
		}
	}
}

func TestBackgroundSpecialsWin(t *testing.T) {
	r, _ := newRenderer(t)

	o := blank()
	o.Specials = frame.NewGrid(frame.SpecialRows, frame.SpecialCols)
	o.Specials[4][4] = int(palette.FlagBWLava)
	o.Background = frame.NewGrid(frame.Rows, frame.Cols)
	o.Background[5][4] = 12

	bg, err := r.Background(o)
	require.NoError(t, err)
	assert.Equal(t, palette.Backgrounds[palette.BWLava], bg[5][4])
}

func TestBackgroundShapeError(t *testing.T) {
	r, _ := newRenderer(t)

	o := blank()
	o.Specials = frame.NewGrid(frame.Rows, frame.Cols)
	_, err := r.Background(o)
	assert.Error(t, err)
}
