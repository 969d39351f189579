package levels

import (
	"math"

	"github.com/pthm-cable/kindling/exchange"
	"github.com/pthm-cable/kindling/grid"
	"github.com/pthm-cable/kindling/numeric"
	"github.com/pthm-cable/kindling/sources"
)

// Grain is the state of one sand cell.
type Grain struct {
	Filled bool
	Colour rgba
}

// grainMove is a grain in transit. Returned marks, in a receiver's maintain
// block, a grain it refused; the sender reads the mark and keeps its grain.
type grainMove struct {
	Filled   bool
	Returned bool
	Colour   rgba
}

type sandCell = exchange.Cell[Grain, grainMove, Frame]

// fallOrder is the slot priority of a falling grain: straight down, then
// down-left, then down-right. Row 0 is the floor.
var fallOrder = [...]int{
	grid.OffsetIndex(0, -1),
	grid.OffsetIndex(-1, -1),
	grid.OffsetIndex(1, -1),
}

type sand struct{}

func newSand(info Info, g grid.Grid, p *Params, opts Options) (Level, error) {
	return newEngineLevel[Grain, grainMove](info, g, sand{}, p, opts.Workers)
}

// Push moves a grain to the first empty in-bounds cell below it, or claims
// its own cell. Outside the grid counts as solid.
func (sand) Push(c *sandCell, out []grainMove) {
	s := c.State()
	if !s.Filled {
		return
	}
	for _, k := range fallOrder {
		if n, ok := c.Neighbor(k); ok && !n.Filled {
			out[k] = grainMove{Filled: true, Colour: s.Colour}
			return
		}
	}
	out[grid.Center] = grainMove{Filled: true, Colour: s.Colour}
}

// Pull accepts at most one incoming grain, preferring the sender whose own
// first choice this cell was. Every other arrival is marked returned.
func (sand) Pull(c *sandCell, in []grainMove, out []grainMove) {
	if in[grid.Center].Filled {
		out[grid.Center] = in[grid.Center]
	}
	accepted := in[grid.Center].Filled
	for _, d := range fallOrder {
		k := grid.Opposite(d)
		if !in[k].Filled {
			continue
		}
		if accepted {
			out[k] = grainMove{Returned: true}
			continue
		}
		out[k] = in[k]
		accepted = true
	}
}

// Update settles the accepted grain, reclaims a grain the receiver returned
// and lets the brush fill empty cells.
func (sand) Update(c *sandCell, maintain []grainMove) Grain {
	var g Grain
	for k := range maintain {
		if m := maintain[k]; m.Filled {
			g = Grain{Filled: true, Colour: m.Colour}
		}
	}

	if s := c.State(); s.Filled && !maintain[grid.Center].Filled {
		for _, d := range fallOrder {
			if c.NeighborMaintained(d)[grid.Opposite(d)].Returned {
				g = s
				break
			}
		}
	}

	if !g.Filled {
		f := c.Frame
		for _, src := range f.Sources {
			if src.Kind == sources.KindPointer {
				src.Radius = f.Params.Sand.BrushRadius
			}
			if src.Covers(c.X, c.Y) {
				g = Grain{Filled: true, Colour: sandColour(f.Time)}
				break
			}
		}
	}
	return g
}

// seed drops a square pile of grains centred under the top edge.
func (sand) seed(g grid.Grid, p *Params) []Grain {
	cells := make([]Grain, g.Cells())
	side := min(p.Sand.SeedPile, g.W, g.H)
	x0 := (g.W - side) / 2
	for y := g.H - side; y < g.H; y++ {
		for x := x0; x < x0+side; x++ {
			i := g.Index(x, y)
			cells[i] = Grain{Filled: true, Colour: sandColour(float32(i) * 97)}
		}
	}
	return cells
}

func (sand) colour(s Grain, _ *Params) rgba {
	if !s.Filled {
		return rgba{}
	}
	return s.Colour
}

func (sand) quantity(s Grain) float64 {
	if s.Filled {
		return 1
	}
	return 0
}

func (sand) intentQuantity(m grainMove) float64 {
	if m.Filled {
		return 1
	}
	return 0
}

func (sand) acceptedQuantity(m grainMove) float64 {
	if m.Filled {
		return 1
	}
	return 0
}

// sandColour cycles slowly through warm tones with time, so each brush
// stroke leaves a visible band.
func sandColour(t float32) rgba {
	tt := float64(t)
	return rgba{
		numeric.Clamp(0.76+float32(math.Sin(tt*0.0011))*0.2, 0, 1),
		numeric.Clamp(0.6+float32(math.Cos(tt*0.0007))*0.15, 0, 1),
		numeric.Clamp(0.36+float32(math.Sin(tt*0.0003))*0.1, 0, 1),
		1,
	}
}
