package levels

import (
	"math/rand/v2"

	"github.com/pthm-cable/kindling/exchange"
	"github.com/pthm-cable/kindling/grid"
)

var lifeColour = rgba{0.55, 0.85, 0.95, 1}

type lifeCell = exchange.Cell[bool, uint8, Frame]

// life is Conway's Game of Life on the torus. A live cell announces itself
// to all eight neighbours; a cell's maintain block is then its live
// neighbour count. Sources paint live cells.
type life struct {
	seedRand uint64
}

func newLife(info Info, g grid.Grid, p *Params, opts Options) (Level, error) {
	return newEngineLevel[bool, uint8](info, g, life{seedRand: opts.Seed}, p, opts.Workers)
}

func (life) Push(c *lifeCell, out []uint8) {
	if !c.State() {
		return
	}
	for k := range out {
		if k != grid.Center {
			out[k] = 1
		}
	}
}

func (life) Pull(_ *lifeCell, in []uint8, out []uint8) {
	copy(out, in)
}

func (life) Update(c *lifeCell, maintain []uint8) bool {
	var n int
	for _, m := range maintain {
		n += int(m)
	}
	alive := n == 3 || (n == 2 && c.State())
	if !alive {
		for _, src := range c.Frame.Sources {
			if src.Covers(c.X, c.Y) {
				return true
			}
		}
	}
	return alive
}

// seed brings each cell to life with probability Density.
func (v life) seed(g grid.Grid, p *Params) []bool {
	cells := make([]bool, g.Cells())
	rng := rand.New(rand.NewPCG(v.seedRand, v.seedRand^0x9e3779b97f4a7c15))
	for i := range cells {
		cells[i] = rng.Float32() < p.Life.Density
	}
	return cells
}

func (life) colour(s bool, _ *Params) rgba {
	if s {
		return lifeColour
	}
	return rgba{}
}

func (life) quantity(s bool) float64 {
	if s {
		return 1
	}
	return 0
}

func (life) intentQuantity(i uint8) float64   { return float64(i) }
func (life) acceptedQuantity(i uint8) float64 { return float64(i) }
