package cave

import (
	"strings"
	"testing"
)

// gridFromRows builds a grid from text rows, top row first, using the runes
// of WriteText.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		t.Fatal(err)
	}
	for y, row := range rows {
		for x, r := range row {
			s, ok := stateForRune(r)
			if !ok {
				t.Fatalf("unknown rune %q at (%d,%d)", r, x, y)
			}
			if err := g.Set(x, y, s); err != nil {
				t.Fatal(err)
			}
		}
	}
	return g
}

func stateForRune(r rune) (State, bool) {
	for s := State(0); s < numStates; s++ {
		if s.Rune() == r {
			return s, true
		}
	}
	return 0, false
}

func gridText(t *testing.T, g *Grid) string {
	t.Helper()
	var sb strings.Builder
	if err := g.WriteText(&sb); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}

func borderOf(g *Grid) map[[2]int]State {
	out := map[[2]int]State{}
	g.Each(func(x, y int, s State) {
		if x == 0 || y == 0 || x == g.Width()-1 || y == g.Height()-1 {
			out[[2]int{x, y}] = s
		}
	})
	return out
}

func sameBorder(a, b map[[2]int]State) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
