package core

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a coordinate falls outside the grid.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// ErrInvalidSize is returned when a grid is requested with a non-positive dimension.
var ErrInvalidSize = errors.New("grid dimensions must be positive")

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// The dimensions are fixed at construction.
type ByteGrid struct {
	w, h int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) (*ByteGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &ByteGrid{w: w, h: h, data: make([]uint8, w*h)}, nil
}

// Size returns the grid dimensions.
func (g *ByteGrid) Size() Size { return Size{W: g.w, H: g.h} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.w + x }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Get returns the value stored at (x, y).
func (g *ByteGrid) Get(x, y int) (uint8, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.w, g.h)
	}
	return g.data[g.Index(x, y)], nil
}

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.w, g.h)
	}
	g.data[g.Index(x, y)] = v
	return nil
}

// Clone returns an independent copy of the grid.
func (g *ByteGrid) Clone() *ByteGrid {
	return &ByteGrid{w: g.w, h: g.h, data: append([]uint8(nil), g.data...)}
}
