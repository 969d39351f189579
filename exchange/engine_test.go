package exchange

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/kindling/grid"
)

type noFrame struct{}

// diffuse spreads each cell's quantity evenly over its Moore block.
type diffuse struct{}

func (diffuse) Push(c *Cell[float64, float64, noFrame], out []float64) {
	q := c.State()
	for k := range out {
		out[k] = q / grid.Slots
	}
}

func (diffuse) Pull(_ *Cell[float64, float64, noFrame], in []float64, out []float64) {
	copy(out, in)
}

func (diffuse) Update(_ *Cell[float64, float64, noFrame], maintain []float64) float64 {
	var sum float64
	for _, v := range maintain {
		sum += v
	}
	return sum
}

// shiftRight moves every cell's value one column right on the torus.
type shiftRight struct{}

func (shiftRight) Push(c *Cell[int, int, noFrame], out []int) {
	out[grid.OffsetIndex(1, 0)] = c.State()
}

func (shiftRight) Pull(_ *Cell[int, int, noFrame], in []int, out []int) { copy(out, in) }

func (shiftRight) Update(_ *Cell[int, int, noFrame], maintain []int) int {
	return maintain[grid.OffsetIndex(-1, 0)]
}

func newDiffuse(t *testing.T, w, h, workers int) *Engine[float64, float64, noFrame] {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	e, err := New[float64, float64, noFrame](g, diffuse{}, workers)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func TestNewValidation(t *testing.T) {
	if _, err := New[float64, float64, noFrame](grid.Grid{}, diffuse{}, 1); !errors.Is(err, grid.ErrInvalidSize) {
		t.Errorf("zero grid error = %v, want ErrInvalidSize", err)
	}
	g, _ := grid.New(2, 2)
	var p Policy[float64, float64, noFrame]
	if _, err := New(g, p, 1); !errors.Is(err, ErrNoPolicy) {
		t.Errorf("nil policy error = %v, want ErrNoPolicy", err)
	}
	e, _ := New[float64, float64, noFrame](g, diffuse{}, 1)
	if err := e.Seed(make([]float64, 3)); err == nil {
		t.Error("Seed with wrong length should fail")
	}
}

func TestDiffuseConservesAndQuiesces(t *testing.T) {
	e := newDiffuse(t, 8, 8, 1)
	seed := make([]float64, 64)
	seed[10] = 90
	seed[40] = 9
	if err := e.Seed(seed); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	f := &noFrame{}
	id := func(v float64) float64 { return v }
	for step := 0; step < 20; step++ {
		a := StepAudited(e, f, id, id)
		if !a.Quiescent {
			t.Fatalf("step %d: intent buffer not zero after pull", step)
		}
		if a.Accepted > a.Broadcast+1e-9 {
			t.Fatalf("step %d: accepted %v exceeds broadcast %v", step, a.Accepted, a.Broadcast)
		}
		if got := sum(e.Current()); math.Abs(got-99) > 1e-9 {
			t.Fatalf("step %d: total = %v, want 99", step, got)
		}
	}
	if e.Steps() != 20 {
		t.Errorf("Steps() = %d, want 20", e.Steps())
	}
}

func TestTagAlternates(t *testing.T) {
	e := newDiffuse(t, 3, 3, 1)
	f := &noFrame{}
	for step := 0; step < 4; step++ {
		if want := uint8(step % 2); e.Tag() != want {
			t.Fatalf("step %d: tag = %d, want %d", step, e.Tag(), want)
		}
		e.Step(f)
	}
}

func TestShiftWraps(t *testing.T) {
	g, _ := grid.New(4, 2)
	e, err := New[int, int, noFrame](g, shiftRight{}, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()
	_ = e.Seed([]int{1, 2, 3, 4, 5, 6, 7, 8})
	e.Step(&noFrame{})
	want := []int{4, 1, 2, 3, 8, 5, 6, 7}
	for i, v := range e.Current() {
		if v != want[i] {
			t.Fatalf("after shift = %v, want %v", e.Current(), want)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	const w, h = 96, 96 // above parallelThreshold
	seed := make([]float64, w*h)
	for i := range seed {
		seed[i] = float64(i % 17)
	}

	serial := newDiffuse(t, w, h, 1)
	parallel := newDiffuse(t, w, h, 4)
	_ = serial.Seed(seed)
	_ = parallel.Seed(seed)

	f := &noFrame{}
	for step := 0; step < 5; step++ {
		serial.Step(f)
		parallel.Step(f)
	}
	a, b := serial.Current(), parallel.Current()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d: serial %v, parallel %v", i, a[i], b[i])
		}
	}
	if !Quiescent(parallel.Intents()) {
		t.Error("parallel intent buffer not quiescent")
	}
}

type phaseRecorder struct{ phases []string }

func (p *phaseRecorder) StartPhase(phase string) { p.phases = append(p.phases, phase) }

func TestPhaseOrder(t *testing.T) {
	e := newDiffuse(t, 2, 2, 1)
	rec := &phaseRecorder{}
	e.SetPhaseTimer(rec)
	e.Step(&noFrame{})
	want := []string{PhasePush, PhasePull, PhaseUpdate}
	if len(rec.phases) != len(want) {
		t.Fatalf("phases = %v, want %v", rec.phases, want)
	}
	for i := range want {
		if rec.phases[i] != want[i] {
			t.Errorf("phase %d = %s, want %s", i, rec.phases[i], want[i])
		}
	}
}
