package cave

import (
	"bufio"
	"image/color"
	"io"
)

var cavePalette = [numStates]color.RGBA{
	Rock:      {R: 128, G: 128, B: 128, A: 255},
	Free:      {R: 255, G: 255, B: 255, A: 255},
	TreeStump: {R: 77, G: 26, B: 0, A: 255},
	TreeMid:   {R: 153, G: 51, B: 0, A: 255},
	TreeTop:   {R: 0, G: 102, B: 0, A: 255},
	NoTree:    {R: 255, G: 255, B: 255, A: 255},
}

var caveRunes = [numStates]rune{
	Rock:      '#',
	Free:      ' ',
	TreeStump: '|',
	TreeMid:   '!',
	TreeTop:   '^',
	NoTree:    '.',
}

// Palette returns the colour of each state, indexed by State. Barren spots
// share the colour of open space.
func Palette() []color.RGBA {
	p := cavePalette
	return p[:]
}

// Rune returns the character used for s in text dumps.
func (s State) Rune() rune {
	if !s.Valid() {
		return '?'
	}
	return caveRunes[s]
}

// WriteText writes the grid as text, one line per row from top to bottom.
func (g *Grid) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if _, err := bw.WriteRune(g.at(x, y).Rune()); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
