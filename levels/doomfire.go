package levels

import (
	"math/rand/v2"

	"github.com/pthm-cable/kindling/exchange"
	"github.com/pthm-cable/kindling/grid"
	"github.com/pthm-cable/kindling/numeric"
)

var (
	slotUp      = grid.OffsetIndex(0, 1)
	slotUpLeft  = grid.OffsetIndex(-1, 1)
	slotUpRight = grid.OffsetIndex(1, 1)
)

type doomCell = exchange.Cell[float32, float32, Frame]

// doomFire is the classic rising fire: every cell hands its heat, minus a
// random cooling of 0 or 1, to the cell above. Row 0 burns at the emission
// value and heat leaving the top row is lost.
type doomFire struct{}

func newDoomFire(info Info, g grid.Grid, p *Params, opts Options) (Level, error) {
	return newEngineLevel[float32, float32](info, g, doomFire{}, p, opts.Workers)
}

// cooling returns 0 or 1 from the cell's random draw.
func cooling(f *Frame, i int) float32 {
	return float32(uint32(numeric.Round(f.cellRand(i)*2)) & 1)
}

func (doomFire) Push(c *doomCell, out []float32) {
	s := c.State()
	if s == 0 {
		return
	}
	if c.Y+1 >= c.Grid.H {
		return
	}
	out[slotUp] = numeric.Round(numeric.NonNegative(s - cooling(c.Frame, c.Index)))
}

func (doomFire) Pull(_ *doomCell, in []float32, out []float32) {
	copy(out, in)
}

func (doomFire) Update(c *doomCell, maintain []float32) float32 {
	var fire float32
	for _, m := range maintain {
		fire += m
	}
	return doomEmit(c.Frame, c.X, c.Y, fire)
}

// doomEmit applies the burning floor and any sources to a doom-fire cell.
func doomEmit(f *Frame, x, y int, fire float32) float32 {
	if y == 0 {
		return f.Params.Doom.Emission
	}
	for _, src := range f.Sources {
		if src.Covers(x, y) {
			fire = max(fire, f.Params.Doom.Emission)
		}
	}
	return fire
}

func (doomFire) seed(g grid.Grid, p *Params) []float32 {
	cells := make([]float32, g.Cells())
	for x := 0; x < g.W; x++ {
		cells[g.Index(x, 0)] = p.Doom.Emission
	}
	return cells
}

func (doomFire) colour(s float32, p *Params) rgba   { return paletteColour(p.Palette, s) }
func (doomFire) quantity(s float32) float64         { return float64(s) }
func (doomFire) intentQuantity(i float32) float64   { return float64(i) }
func (doomFire) acceptedQuantity(i float32) float64 { return float64(i) }

// Ember is the state of a doom-fire-wood cell.
type Ember struct {
	Fire float32
	Wood bool
}

type emberCell = exchange.Cell[Ember, float32, Frame]

// doomFireWood lets heat drift mostly up and to the left, and flares up as
// it passes over wood, burning it away.
type doomFireWood struct {
	seedRand uint64 // plank layout
}

func newDoomFireWood(info Info, g grid.Grid, p *Params, opts Options) (Level, error) {
	v := doomFireWood{seedRand: opts.Seed}
	return newEngineLevel[Ember, float32](info, g, v, p, opts.Workers)
}

func (v doomFireWood) Push(c *emberCell, out []float32) {
	s := c.State()
	f := c.Frame
	// The floor pushes its full emission; every other row cools first.
	fire := f.Params.Doom.Emission
	if c.Y > 0 {
		fire = numeric.Round(numeric.NonNegative(s.Fire - cooling(f, c.Index)))
	}
	if numeric.NearZero(fire) {
		return
	}
	if s.Wood {
		fire += f.Params.Doom.WoodBoost
	}
	if c.Y+1 >= c.Grid.H {
		return
	}

	i, t := float32(c.Index), f.Time
	up := numeric.Rand11(i * t * t)
	left := numeric.Rand11((i-t)*t*t) * 4
	right := numeric.Rand11((i+t)*t*t) * 0.25
	sum := up + left + right
	if sum == 0 {
		out[slotUp] = fire
		return
	}
	out[slotUp] = fire * up / sum
	out[slotUpLeft] = fire * left / sum
	out[slotUpRight] = fire * right / sum
}

func (doomFireWood) Pull(_ *emberCell, in []float32, out []float32) {
	copy(out, in)
}

func (doomFireWood) Update(c *emberCell, maintain []float32) Ember {
	s := c.State()
	var fire float32
	for _, m := range maintain {
		fire += m
	}
	if s.Wood && !numeric.NearZero(s.Fire) {
		s.Wood = false
	}
	return Ember{Fire: doomEmit(c.Frame, c.X, c.Y, fire), Wood: s.Wood}
}

// seed lights row 0 and scatters horizontal planks over the upper rows.
func (v doomFireWood) seed(g grid.Grid, p *Params) []Ember {
	cells := make([]Ember, g.Cells())
	for x := 0; x < g.W; x++ {
		cells[g.Index(x, 0)].Fire = p.Doom.Emission
	}
	if g.H < 4 {
		return cells
	}
	rng := rand.New(rand.NewPCG(v.seedRand, v.seedRand^0x9e3779b97f4a7c15))
	for range p.Doom.WoodPlanks {
		y := g.H/4 + rng.IntN(g.H-g.H/4)
		x0 := rng.IntN(g.W)
		for dx := range p.Doom.PlankLength {
			cells[g.Index(x0+dx, y)].Wood = true
		}
	}
	return cells
}

func (doomFireWood) colour(s Ember, p *Params) rgba {
	c := paletteColour(p.Palette, s.Fire)
	if s.Wood {
		return overlay(c, woodColour)
	}
	return c
}

func (doomFireWood) quantity(s Ember) float64           { return float64(s.Fire) }
func (doomFireWood) intentQuantity(i float32) float64   { return float64(i) }
func (doomFireWood) acceptedQuantity(i float32) float64 { return float64(i) }
