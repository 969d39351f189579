// Package visuals accumulates per-cell colours across the sub-steps of one
// displayed frame, so several simulation steps blend into a single image.
package visuals

import (
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/kindling/grid"
)

// Channels per cell: RGBA.
const Channels = 4

// Accumulator keeps a running average of colours over the steps of a frame.
//
// The two updates-in-frame counters are indexed by the binding tag: a step
// with tag t reads counter t and writes counter t+1, so consecutive steps
// never read the slot they write.
type Accumulator struct {
	pair           *grid.Pair[float32]
	colours        []float32
	updatesInFrame [2]uint32
}

// New allocates an accumulator for the given number of cells.
func New(cells int) *Accumulator {
	return &Accumulator{
		pair:    grid.NewPair[float32](cells * Channels),
		colours: make([]float32, cells*Channels),
	}
}

// BeginFrame zeroes both updates-in-frame counters.
func (a *Accumulator) BeginFrame() {
	a.updatesInFrame = [2]uint32{}
}

// Colours returns the scratch buffer for this step's colours. Fill it, then
// call Accumulate.
func (a *Accumulator) Colours() []float32 { return a.colours }

// Set writes the colour of cell i into the scratch buffer.
func (a *Accumulator) Set(i int, c [Channels]float32) {
	copy(a.colours[i*Channels:(i+1)*Channels], c[:])
}

// Accumulate blends the scratch colours into the visuals:
// out = colour/(n+1) + in*n/(n+1), with n read from the counter for tag.
func (a *Accumulator) Accumulate(tag uint8) {
	n := a.updatesInFrame[tag%2]
	w := 1 / float32(n+1)

	size := len(a.colours)
	in := blas32.Vector{N: size, Inc: 1, Data: a.pair.Current()}
	out := blas32.Vector{N: size, Inc: 1, Data: a.pair.Next()}
	col := blas32.Vector{N: size, Inc: 1, Data: a.colours}

	blas32.Copy(in, out)
	blas32.Scal(float32(n)*w, out)
	blas32.Axpy(w, col, out)

	a.updatesInFrame[(tag+1)%2] = n + 1
	a.pair.Swap()
}

// Visuals returns the latest accumulated RGBA buffer, Channels per cell.
func (a *Accumulator) Visuals() []float32 { return a.pair.Current() }

// Updates returns the number of steps blended into the frame so far.
func (a *Accumulator) Updates() uint32 {
	return max(a.updatesInFrame[0], a.updatesInFrame[1])
}
