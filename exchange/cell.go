package exchange

import "github.com/pthm-cable/kindling/grid"

// Cell is the read-only view a policy gets of one cell during a pass.
// Each worker reuses one Cell, so policies must not retain it.
type Cell[S, I, F any] struct {
	Grid  grid.Grid
	X, Y  int
	Index int
	Frame *F

	e *Engine[S, I, F]
}

func (c *Cell[S, I, F]) moveTo(i int) {
	c.Index = i
	c.X, c.Y = c.Grid.XY(i)
}

// State returns the cell's current state.
func (c *Cell[S, I, F]) State() S {
	return c.e.state.Current()[c.Index]
}

// Neighbor returns the current state of the neighbour in slot k without
// wrapping. ok is false, and the state zero, outside the grid.
func (c *Cell[S, I, F]) Neighbor(k int) (s S, ok bool) {
	j, ok := c.Grid.NeighborInBounds(c.X, c.Y, k)
	if !ok {
		return s, false
	}
	return c.e.state.Current()[j], true
}

// Wrapped returns the current state of the neighbour in slot k on the torus.
func (c *Cell[S, I, F]) Wrapped(k int) S {
	o := grid.Offset(k)
	return c.e.state.Current()[c.Grid.Index(c.X+o.DX, c.Y+o.DY)]
}

// NeighborMaintained returns the maintain block of the wrapped neighbour in
// slot k. Only meaningful during update, when the maintain buffer is frozen.
func (c *Cell[S, I, F]) NeighborMaintained(k int) []I {
	o := grid.Offset(k)
	j := c.Grid.Index(c.X+o.DX, c.Y+o.DY)
	return c.e.maintain[j*grid.Slots : (j+1)*grid.Slots]
}
