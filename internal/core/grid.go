package core

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds reports a coordinate or linear index outside the grid.
var ErrOutOfBounds = errors.New("core: coordinate out of bounds")

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether p lies inside the grid.
func (g *ByteGrid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// At returns the cell value at p.
func (g *ByteGrid) At(p Point) (uint8, error) {
	if !g.InBounds(p) {
		return 0, fmt.Errorf("at (%d,%d): %w", p.X, p.Y, ErrOutOfBounds)
	}
	return g.data[g.Index(p.X, p.Y)], nil
}

// Set stores v at p.
func (g *ByteGrid) Set(p Point, v uint8) error {
	if !g.InBounds(p) {
		return fmt.Errorf("set (%d,%d): %w", p.X, p.Y, ErrOutOfBounds)
	}
	g.data[g.Index(p.X, p.Y)] = v
	return nil
}

// Occupied reports whether the cell at p holds a non-zero value. Coordinates
// outside the grid are never occupied.
func (g *ByteGrid) Occupied(p Point) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.data[g.Index(p.X, p.Y)] != 0
}

// Count returns the number of cells equal to v.
func (g *ByteGrid) Count(v uint8) int {
	n := 0
	for _, c := range g.data {
		if c == v {
			n++
		}
	}
	return n
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
