// Package levels holds the cellular-automaton variants that run on the
// exchange engine: falling sand, two doom-fire variants and directional fire
// spreading through wood.
package levels

import (
	"github.com/pthm-cable/kindling/exchange"
	"github.com/pthm-cable/kindling/grid"
	"github.com/pthm-cable/kindling/visuals"
)

// PhaseVisuals is reported to the phase timer while colours are accumulated.
const PhaseVisuals = "visuals"

// Level is one runnable simulation variant.
type Level interface {
	Info() Info
	Grid() grid.Grid
	// Reset reseeds the level's initial pattern.
	Reset(p *Params) error
	// Step runs one push/pull/update exchange and blends the committed state
	// into the frame's visuals.
	Step(f *Frame)
	// StepAudited is Step with transfer totals captured between passes.
	StepAudited(f *Frame) exchange.Audit
	// BeginFrame starts a new displayed frame of visual accumulation.
	BeginFrame()
	// Visuals returns the accumulated RGBA buffer, four floats per cell.
	Visuals() []float32
	// Quantities writes each cell's transported quantity into dst, growing it
	// as needed, and returns it.
	Quantities(dst []float64) []float64
	SetPhaseTimer(t exchange.PhaseTimer)
	Close()
}

// variant is a transfer policy plus the per-level hooks the shared driver
// needs around it.
type variant[S any, I comparable] interface {
	exchange.Policy[S, I, Frame]

	seed(g grid.Grid, p *Params) []S
	colour(s S, p *Params) [visuals.Channels]float32
	quantity(s S) float64
	intentQuantity(i I) float64
	acceptedQuantity(i I) float64
}

// engineLevel drives one variant on an exchange engine.
type engineLevel[S any, I comparable] struct {
	info    Info
	variant variant[S, I]
	engine  *exchange.Engine[S, I, Frame]
	acc     *visuals.Accumulator
	timer   exchange.PhaseTimer
}

func newEngineLevel[S any, I comparable](info Info, g grid.Grid, v variant[S, I], p *Params, workers int) (*engineLevel[S, I], error) {
	e, err := exchange.New[S, I, Frame](g, v, workers)
	if err != nil {
		return nil, err
	}
	l := &engineLevel[S, I]{
		info:    info,
		variant: v,
		engine:  e,
		acc:     visuals.New(g.Cells()),
	}
	if err := l.Reset(p); err != nil {
		e.Close()
		return nil, err
	}
	return l, nil
}

func (l *engineLevel[S, I]) Info() Info      { return l.info }
func (l *engineLevel[S, I]) Grid() grid.Grid { return l.engine.Grid() }

func (l *engineLevel[S, I]) Reset(p *Params) error {
	return l.load(l.variant.seed(l.engine.Grid(), p))
}

func (l *engineLevel[S, I]) load(cells []S) error {
	return l.engine.Seed(cells)
}

func (l *engineLevel[S, I]) Step(f *Frame) {
	tag := l.engine.Tag()
	l.engine.Step(f)
	l.accumulate(tag, f)
}

func (l *engineLevel[S, I]) StepAudited(f *Frame) exchange.Audit {
	tag := l.engine.Tag()
	a := exchange.StepAudited(l.engine, f, l.variant.intentQuantity, l.variant.acceptedQuantity)
	l.accumulate(tag, f)
	return a
}

// accumulate colours the committed state and blends it into the visuals,
// using the tag the step was bound with.
func (l *engineLevel[S, I]) accumulate(tag uint8, f *Frame) {
	if l.timer != nil {
		l.timer.StartPhase(PhaseVisuals)
	}
	state := l.engine.Current()
	l.engine.Parallel(len(state), func(start, end int) {
		for i := start; i < end; i++ {
			l.acc.Set(i, l.variant.colour(state[i], f.Params))
		}
	})
	l.acc.Accumulate(tag)
}

func (l *engineLevel[S, I]) BeginFrame()        { l.acc.BeginFrame() }
func (l *engineLevel[S, I]) Visuals() []float32 { return l.acc.Visuals() }

func (l *engineLevel[S, I]) Quantities(dst []float64) []float64 {
	state := l.engine.Current()
	if cap(dst) < len(state) {
		dst = make([]float64, len(state))
	}
	dst = dst[:len(state)]
	for i, s := range state {
		dst[i] = l.variant.quantity(s)
	}
	return dst
}

func (l *engineLevel[S, I]) SetPhaseTimer(t exchange.PhaseTimer) {
	l.timer = t
	l.engine.SetPhaseTimer(t)
}

func (l *engineLevel[S, I]) Close() { l.engine.Close() }

// state exposes the current cells to tests in this package.
func (l *engineLevel[S, I]) state() []S { return l.engine.Current() }
