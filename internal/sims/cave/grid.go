package cave

import (
	"errors"
	"fmt"

	"cave-ca/internal/core"
)

// ErrInvalidState is returned when a value outside the six tags is written.
var ErrInvalidState = errors.New("invalid cell state")

// Grid is a fixed-size width x height field of cell states addressed by (x, y).
type Grid struct {
	b *core.ByteGrid
	w int
	h int
}

// NewGrid allocates a grid with every cell set to Rock.
func NewGrid(w, h int) (*Grid, error) {
	b, err := core.NewByteGrid(w, h)
	if err != nil {
		return nil, err
	}
	return &Grid{b: b, w: w, h: h}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return g.b.Size() }

// At returns the state stored at (x, y).
func (g *Grid) At(x, y int) (State, error) {
	v, err := g.b.Get(x, y)
	if err != nil {
		return 0, err
	}
	return State(v), nil
}

// Set writes s at (x, y).
func (g *Grid) Set(x, y int, s State) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidState, uint8(s))
	}
	return g.b.Set(x, y, uint8(s))
}

// Each visits every cell, x outer and y inner.
func (g *Grid) Each(fn func(x, y int, s State)) {
	for x := 0; x < g.w; x++ {
		for y := 0; y < g.h; y++ {
			fn(x, y, g.at(x, y))
		}
	}
}

// Cells exposes the row-major backing buffer.
func (g *Grid) Cells() []uint8 { return g.b.Cells() }

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{b: g.b.Clone(), w: g.w, h: g.h}
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	a, b := g.b.Cells(), o.b.Cells()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Count returns how many cells hold s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, v := range g.b.Cells() {
		if State(v) == s {
			n++
		}
	}
	return n
}

func (g *Grid) at(x, y int) State { return State(g.b.Cells()[g.b.Index(x, y)]) }

func (g *Grid) set(x, y int, s State) { g.b.Cells()[g.b.Index(x, y)] = uint8(s) }
