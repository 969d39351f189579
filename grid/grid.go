// Package grid provides cell addressing, Moore-neighbourhood offsets and the
// double-buffered state pair shared by every simulation level.
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a grid is constructed with a non-positive dimension.
var ErrInvalidSize = errors.New("grid: invalid size")

// Grid holds the fixed dimensions of a simulation and the addressing rules
// derived from them. It is a value object: copy it freely.
type Grid struct {
	W, H int
}

// New returns a grid of w columns and h rows.
func New(w, h int) (Grid, error) {
	if w <= 0 || h <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return Grid{W: w, H: h}, nil
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int { return g.W * g.H }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Index returns the flat index for (x, y), wrapping both axes.
func (g Grid) Index(x, y int) int {
	x, y = g.Wrap(x, y)
	return y*g.W + x
}

// InBounds reports whether (x, y) lies inside the grid without wrapping.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// XY returns the coordinates of flat index i.
func (g Grid) XY(i int) (int, int) {
	return i % g.W, i / g.W
}

// Neighbor returns the wrapped flat index of the cell at Moore slot k from i.
func (g Grid) Neighbor(i, k int) int {
	x, y := g.XY(i)
	o := Offset(k)
	return g.Index(x+o.DX, y+o.DY)
}

// NeighborInBounds returns the flat index of the cell at Moore slot k from
// (x, y), and false when that cell lies outside the grid.
func (g Grid) NeighborInBounds(x, y, k int) (int, bool) {
	o := Offset(k)
	nx, ny := x+o.DX, y+o.DY
	if !g.InBounds(nx, ny) {
		return 0, false
	}
	return ny*g.W + nx, true
}
