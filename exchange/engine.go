// Package exchange implements the push/pull/update neighbourhood-exchange
// protocol over a double-buffered grid.
//
// Each step runs three data-parallel passes separated by barriers:
//
//   - push: every cell writes its proposed transfers into its own 9-slot
//     block of the intent buffer.
//   - pull: every cell gathers the intents aimed at it (slot Opposite(k) of
//     the neighbour in slot k), zeroes each slot it read and records the
//     resolved transfers in its own block of the maintain buffer.
//   - update: every cell folds its maintain block into its next state.
//
// Every pass writes a disjoint range, so cells never need locks.
package exchange

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/kindling/grid"
)

// ErrNoPolicy is returned when an engine is built without a transfer policy.
var ErrNoPolicy = errors.New("exchange: nil policy")

// Phase names reported to a PhaseTimer.
const (
	PhasePush   = "push"
	PhasePull   = "pull"
	PhaseUpdate = "update"
)

// PhaseTimer receives pass boundaries. telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Policy decides transfers for one cell. S is the cell state, I the intent
// record carried between cells and F the per-tick frame (parameters, time,
// sources) the policy reads.
type Policy[S, I, F any] interface {
	// Push writes the cell's outbound intents into out, its own zeroed block.
	Push(c *Cell[S, I, F], out []I)
	// Pull receives in[k], the intent sent toward this cell by the neighbour
	// in slot k, and writes the accepted transfers into out, its own zeroed
	// maintain block.
	Pull(c *Cell[S, I, F], in []I, out []I)
	// Update returns the cell's next state from its maintain block.
	Update(c *Cell[S, I, F], maintain []I) S
}

// Engine owns the state pair and the scratch buffers for one grid.
type Engine[S, I, F any] struct {
	grid     grid.Grid
	policy   Policy[S, I, F]
	state    *grid.Pair[S]
	intent   []I
	maintain []I

	pool    *pool
	cells   []Cell[S, I, F] // per-worker cell cursor
	inbound [][grid.Slots]I // per-worker pull scratch
	timer   PhaseTimer
	steps   uint64
}

// New builds an engine for g. workers <= 0 uses GOMAXPROCS.
func New[S, I, F any](g grid.Grid, policy Policy[S, I, F], workers int) (*Engine[S, I, F], error) {
	if g.W <= 0 || g.H <= 0 {
		return nil, fmt.Errorf("exchange: %w: %dx%d", grid.ErrInvalidSize, g.W, g.H)
	}
	if policy == nil {
		return nil, ErrNoPolicy
	}

	n := g.Cells()
	p := newPool(workers)
	e := &Engine[S, I, F]{
		grid:     g,
		policy:   policy,
		state:    grid.NewPair[S](n),
		intent:   make([]I, n*grid.Slots),
		maintain: make([]I, n*grid.Slots),
		pool:     p,
		cells:    make([]Cell[S, I, F], p.numWorkers),
		inbound:  make([][grid.Slots]I, p.numWorkers),
	}
	for w := range e.cells {
		e.cells[w].e = e
		e.cells[w].Grid = g
	}
	return e, nil
}

// Seed copies an initial pattern into both halves of the state pair.
func (e *Engine[S, I, F]) Seed(initial []S) error {
	if len(initial) != e.grid.Cells() {
		return fmt.Errorf("exchange: seed has %d cells, grid has %d", len(initial), e.grid.Cells())
	}
	e.state.Fill(initial)
	return nil
}

// SetPhaseTimer attaches a timer notified at each pass boundary. nil detaches.
func (e *Engine[S, I, F]) SetPhaseTimer(t PhaseTimer) { e.timer = t }

// Step runs push, pull and update, then swaps the state pair.
func (e *Engine[S, I, F]) Step(f *F) {
	e.Push(f)
	e.Pull(f)
	e.Update(f)
	e.Swap()
}

// Push runs the intent broadcast pass.
func (e *Engine[S, I, F]) Push(f *F) {
	e.mark(PhasePush)
	e.pool.run(e.grid.Cells(), func(worker, start, end int) {
		c := e.cursor(worker, f)
		for i := start; i < end; i++ {
			c.moveTo(i)
			block := e.intent[i*grid.Slots : (i+1)*grid.Slots]
			clear(block)
			e.policy.Push(c, block)
		}
	})
}

// Pull runs the conflict resolution pass. Afterwards the intent buffer is all zero.
func (e *Engine[S, I, F]) Pull(f *F) {
	e.mark(PhasePull)
	var zero I
	e.pool.run(e.grid.Cells(), func(worker, start, end int) {
		c := e.cursor(worker, f)
		in := &e.inbound[worker]
		for i := start; i < end; i++ {
			c.moveTo(i)
			for k := 0; k < grid.Slots; k++ {
				o := grid.Offset(k)
				src := grid.MooreIndex(e.grid.Index(c.X+o.DX, c.Y+o.DY), grid.Opposite(k))
				in[k] = e.intent[src]
				e.intent[src] = zero
			}
			block := e.maintain[i*grid.Slots : (i+1)*grid.Slots]
			clear(block)
			e.policy.Pull(c, in[:], block)
		}
	})
}

// Update runs the commit pass into the next half of the state pair.
func (e *Engine[S, I, F]) Update(f *F) {
	e.mark(PhaseUpdate)
	next := e.state.Next()
	e.pool.run(e.grid.Cells(), func(worker, start, end int) {
		c := e.cursor(worker, f)
		for i := start; i < end; i++ {
			c.moveTo(i)
			next[i] = e.policy.Update(c, e.maintain[i*grid.Slots:(i+1)*grid.Slots])
		}
	})
}

// Swap makes the freshly written state current and counts the step.
func (e *Engine[S, I, F]) Swap() {
	e.state.Swap()
	e.steps++
}

// Parallel runs fn over [0, n) on the engine's workers and waits for it.
func (e *Engine[S, I, F]) Parallel(n int, fn func(start, end int)) {
	e.pool.run(n, func(_, start, end int) { fn(start, end) })
}

// Grid returns the engine's grid.
func (e *Engine[S, I, F]) Grid() grid.Grid { return e.grid }

// Current returns the current state. Callers must not modify it.
func (e *Engine[S, I, F]) Current() []S { return e.state.Current() }

// Tag returns the binding tag of the current state half.
func (e *Engine[S, I, F]) Tag() uint8 { return e.state.Tag() }

// Steps returns the number of completed steps.
func (e *Engine[S, I, F]) Steps() uint64 { return e.steps }

// Intents exposes the intent buffer for inspection.
func (e *Engine[S, I, F]) Intents() []I { return e.intent }

// Maintained exposes the maintain buffer for inspection.
func (e *Engine[S, I, F]) Maintained() []I { return e.maintain }

// Close stops the worker goroutines.
func (e *Engine[S, I, F]) Close() {
	e.pool.stop()
}

func (e *Engine[S, I, F]) mark(phase string) {
	if e.timer != nil {
		e.timer.StartPhase(phase)
	}
}

func (e *Engine[S, I, F]) cursor(worker int, f *F) *Cell[S, I, F] {
	c := &e.cells[worker]
	c.Frame = f
	return c
}
