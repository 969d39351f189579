package levels

import (
	"github.com/pthm-cable/kindling/exchange"
	"github.com/pthm-cable/kindling/grid"
	"github.com/pthm-cable/kindling/numeric"
)

// Pixel is the state of one directional-fire cell.
type Pixel struct {
	Fire float32
	Wood float32
	Dir  numeric.Vec2 // direction the fire is travelling
}

// flame is fire in transit, carrying the sender's direction.
type flame struct {
	Fire float32
	Dir  numeric.Vec2
}

type fireCell = exchange.Cell[Pixel, flame, Frame]

var (
	groundDir = numeric.Vec2{X: -1, Y: 1}
	upDir     = numeric.Vec2{X: 0, Y: 1}
)

// fire spreads along its direction of travel with noisy angular falloff,
// feeds on wood and is fed from the ground row and from sources. Rows wrap
// horizontally; fire leaving the top or bottom row is lost.
type fire struct{}

func newFire(info Info, g grid.Grid, p *Params, opts Options) (Level, error) {
	return newEngineLevel[Pixel, flame](info, g, fire{}, p, opts.Workers)
}

func (fire) Push(c *fireCell, out []flame) {
	s := c.State()
	if numeric.NearZero(s.Fire) {
		return
	}
	p := &c.Frame.Params.Fire
	switch {
	case numeric.NearZero(s.Wood):
		spreadFire(c, s, p, out)
	case s.Wood < p.WoodDepleted:
		// Running out of fuel: share equally with every neighbour that
		// still has wood, this cell included.
		var targets [grid.Slots]bool
		var n float32
		for k := 0; k < grid.Slots; k++ {
			if ny := c.Y + grid.Offset(k).DY; ny < 0 || ny >= c.Grid.H {
				continue
			}
			if !numeric.NearZero(c.Wrapped(k).Wood) {
				targets[k] = true
				n++
			}
		}
		for k, ok := range targets {
			if ok {
				out[k] = flame{Fire: s.Fire / n, Dir: s.Dir}
			}
		}
	default:
		out[grid.Center] = flame{Fire: s.Fire, Dir: s.Dir}
	}
}

// spreadFire splits free-burning fire over the neighbours within the spread
// angle of its direction, weighted by exp(-focusA * (angle+noise)^focusB).
// With no neighbour in range the fire stays put.
func spreadFire(c *fireCell, s Pixel, p *FireParams, out []flame) {
	var weights [grid.Slots]float32
	var sum float32
	t := c.Frame.Time
	for k := 0; k < grid.Slots; k++ {
		if k == grid.Center {
			continue
		}
		o := grid.Offset(k)
		if ny := c.Y + o.DY; ny < 0 || ny >= c.Grid.H {
			continue
		}
		angle := numeric.AngleBetween(s.Dir, numeric.Vec2{X: float32(o.DX), Y: float32(o.DY)})
		if angle > p.Spread {
			continue
		}
		fluct := numeric.Noise1(float32(grid.MooreIndex(c.Index, k))*t) * p.NoiseA
		w := numeric.Exp(-p.FocusA * numeric.Pow(angle+fluct, p.FocusB))
		weights[k] = w
		sum += w
	}
	if sum == 0 {
		if !sinks(c, s, p) {
			out[grid.Center] = flame{Fire: s.Fire, Dir: s.Dir}
		}
		return
	}
	for k, w := range weights {
		if w > 0 {
			out[k] = flame{Fire: s.Fire * w / sum, Dir: s.Dir}
		}
	}
}

// sinks reports whether fire pointing out of the grid through the top or
// bottom row escapes instead of piling up at the edge.
func sinks(c *fireCell, s Pixel, p *FireParams) bool {
	for _, dy := range [...]int{-1, 1} {
		ny := c.Y + dy
		if ny >= 0 && ny < c.Grid.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if numeric.AngleBetween(s.Dir, numeric.Vec2{X: float32(dx), Y: float32(dy)}) <= p.Spread {
				return true
			}
		}
	}
	return false
}

func (fire) Pull(_ *fireCell, in []flame, out []flame) {
	copy(out, in)
}

func (fire) Update(c *fireCell, maintain []flame) Pixel {
	s := c.State()
	f := c.Frame
	p := &f.Params.Fire

	var heat, weight float32
	var dir numeric.Vec2
	for _, m := range maintain {
		dir = numeric.InterpWeights(dir, m.Dir, weight, m.Fire)
		weight += m.Fire
		heat += m.Fire
	}
	if heat == 0 {
		dir = s.Dir
	}

	heat = numeric.NonNegative(heat - p.NoiseB*f.cellRand(c.Index))

	if c.Y == 0 {
		dir = numeric.InterpWeights(dir, groundDir, heat, p.GroundPower)
		heat += p.GroundPower
	}
	if !numeric.NearZero(heat) {
		dir = numeric.InterpWeights(dir, upDir, heat, p.DriftUp)
	}

	for _, src := range f.Sources {
		if !src.Covers(c.X, c.Y) {
			continue
		}
		power := src.Power * f.Flicker.Factor(float32(c.X), float32(c.Y), f.Time)
		dir = numeric.InterpWeights(dir, upDir, heat, power)
		heat += power
	}

	wood := s.Wood
	if burnt := numeric.Clamp(heat, 0, wood); !numeric.NearZero(burnt) {
		wood -= burnt
		heat = numeric.NonNegative(heat + numeric.Log(burnt))
		if numeric.NearZero(wood) {
			wood = 0
		}
	}

	return Pixel{Fire: heat, Wood: wood, Dir: dir}
}

// seed lights row 0 and lays a band of wood at three quarters height.
func (fire) seed(g grid.Grid, p *Params) []Pixel {
	cells := make([]Pixel, g.Cells())
	for x := 0; x < g.W; x++ {
		cells[g.Index(x, 0)] = Pixel{Fire: p.Fire.TorchPower, Dir: upDir}
	}
	band := max(min(p.Fire.WoodBand, g.H-1), 0)
	y0 := max(min(g.H*3/4-band/2, g.H-band), 1)
	for y := y0; y < y0+band; y++ {
		for x := 0; x < g.W; x++ {
			cells[g.Index(x, y)].Wood = p.Fire.WoodAmount
		}
	}
	return cells
}

func (fire) colour(s Pixel, p *Params) rgba {
	c := paletteColour(p.Palette, s.Fire)
	if s.Wood > 0 {
		wood := woodColour
		wood[3] = numeric.Clamp(s.Wood/max(p.Fire.WoodAmount, 1), 0.2, 1)
		return overlay(c, wood)
	}
	return c
}

func (fire) quantity(s Pixel) float64         { return float64(s.Fire) }
func (fire) intentQuantity(m flame) float64   { return float64(m.Fire) }
func (fire) acceptedQuantity(m flame) float64 { return float64(m.Fire) }
