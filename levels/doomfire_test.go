package levels

import (
	"math"
	"testing"
)

func TestSourceRowAfterOneTick(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 12, 10)

	// check asserts the floor value and that nothing above row `reach` is lit.
	check := func(t *testing.T, quantities []float64, want float32, reach int) {
		t.Helper()
		for i, q := range quantities {
			x, y := g.XY(i)
			switch {
			case y == 0 && math.Abs(q-float64(want)) > 1e-6:
				t.Fatalf("source cell (%d,0) = %v, want %v", x, q, want)
			case y > reach && q != 0:
				t.Fatalf("cell (%d,%d) = %v, want 0", x, y, q)
			}
		}
	}

	t.Run("doomfire", func(t *testing.T) {
		l, err := newEngineLevel[float32, float32](Info{ID: IDDoomFire}, g, doomFire{}, p, 1)
		if err != nil {
			t.Fatal(err)
		}
		defer l.Close()
		if err := l.load(make([]float32, g.Cells())); err != nil {
			t.Fatal(err)
		}
		l.Step(frameAt(p, 0))
		check(t, l.Quantities(nil), p.Doom.Emission, 0)
	})

	t.Run("doomfire-wood", func(t *testing.T) {
		l, err := newEngineLevel[Ember, float32](Info{ID: IDDoomFireWood}, g, doomFireWood{}, p, 1)
		if err != nil {
			t.Fatal(err)
		}
		defer l.Close()
		if err := l.load(make([]Ember, g.Cells())); err != nil {
			t.Fatal(err)
		}
		// The floor burns before it pushes, so row 1 is lit at once.
		l.Step(frameAt(p, 0))
		check(t, l.Quantities(nil), p.Doom.Emission, 1)
	})

	t.Run("fire", func(t *testing.T) {
		l, err := newEngineLevel[Pixel, flame](Info{ID: IDFire}, g, fire{}, p, 1)
		if err != nil {
			t.Fatal(err)
		}
		defer l.Close()
		if err := l.load(make([]Pixel, g.Cells())); err != nil {
			t.Fatal(err)
		}
		l.Step(frameAt(p, 0))
		check(t, l.Quantities(nil), p.Fire.GroundPower, 0)
	})
}

func TestDoomFireStaysBounded(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 24, 24)
	l, err := NewRegistry().New(IDDoomFire, g, p, Options{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	var q []float64
	for n := range 100 {
		l.Step(frameAt(p, n))
		q = l.Quantities(q)
		for i, v := range q {
			if v < 0 || v > float64(p.Doom.Emission) {
				t.Fatalf("step %d cell %d = %v outside [0, %v]", n, i, v, p.Doom.Emission)
			}
			if v != math.Round(v) {
				t.Fatalf("step %d cell %d = %v, doom fire holds whole values", n, i, v)
			}
		}
	}
	// Heat reaches well above the floor once the fire is established.
	var lit int
	for x := 0; x < g.W; x++ {
		if q[g.Index(x, 4)] > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("fire never rose to row 4")
	}
}

func TestDoomFireWoodBurnsPlank(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 12, 12)
	l, err := newEngineLevel[Ember, float32](Info{ID: IDDoomFireWood}, g, doomFireWood{}, p, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	cells := make([]Ember, g.Cells())
	src := g.Index(5, 5)
	cells[src] = Ember{Fire: 10, Wood: true}
	cells[g.Index(8, 8)] = Ember{Wood: true}
	if err := l.load(cells); err != nil {
		t.Fatal(err)
	}
	l.Step(frameAt(p, 0))
	state := l.state()

	if state[src].Wood {
		t.Error("burning plank cell kept its wood")
	}
	if !state[g.Index(8, 8)].Wood {
		t.Error("unlit plank cell lost its wood")
	}

	// The boosted heat lands in the three cells above.
	var above float32
	for dx := -1; dx <= 1; dx++ {
		above += state[g.Index(5+dx, 6)].Fire
	}
	lo, hi := 9+p.Doom.WoodBoost, 10+p.Doom.WoodBoost
	if above < lo-1e-3 || above > hi+1e-3 {
		t.Errorf("heat above plank = %v, want in [%v, %v]", above, lo, hi)
	}
}

func TestDoomFireWoodSeedIsDeterministic(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 40, 40)
	a := doomFireWood{seedRand: 11}.seed(g, p)
	b := doomFireWood{seedRand: 11}.seed(g, p)
	c := doomFireWood{seedRand: 12}.seed(g, p)

	var planks int
	same, differs := true, false
	for i := range a {
		if a[i].Wood {
			planks++
		}
		same = same && a[i] == b[i]
		differs = differs || a[i] != c[i]
	}
	if planks == 0 {
		t.Fatal("no wood seeded")
	}
	if !same {
		t.Error("same seed gave different planks")
	}
	if !differs {
		t.Error("different seeds gave identical planks")
	}
}

func TestDoomFireWoodFloorPushesFullEmission(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 16, 8)
	l, err := newEngineLevel[Ember, float32](Info{ID: IDDoomFireWood}, g, doomFireWood{}, p, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	// From an empty grid only the floor pushes. It sends the whole emission
	// upward whatever the cooling draw.
	want := float64(g.W) * float64(p.Doom.Emission)
	for n := range 4 {
		if err := l.load(make([]Ember, g.Cells())); err != nil {
			t.Fatal(err)
		}
		a := l.StepAudited(frameAt(p, n))
		if math.Abs(a.Broadcast-want) > 1e-3 {
			t.Errorf("step %d: floor broadcast %v, want %v", n, a.Broadcast, want)
		}
	}
}
