package levels

import (
	"testing"

	"github.com/pthm-cable/kindling/grid"
	"github.com/pthm-cable/kindling/sources"
)

func newLifeLevel(t *testing.T, g grid.Grid, p *Params, alive ...[2]int) *engineLevel[bool, uint8] {
	t.Helper()
	l, err := newEngineLevel[bool, uint8](Info{ID: IDLife}, g, life{}, p, 1)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(l.Close)
	cells := make([]bool, g.Cells())
	for _, xy := range alive {
		cells[g.Index(xy[0], xy[1])] = true
	}
	if err := l.load(cells); err != nil {
		t.Fatal(err)
	}
	return l
}

func liveCells(g grid.Grid, cells []bool) map[[2]int]bool {
	live := map[[2]int]bool{}
	for i, c := range cells {
		if c {
			x, y := g.XY(i)
			live[[2]int{x, y}] = true
		}
	}
	return live
}

func TestLifePatterns(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 8, 8)

	tests := []struct {
		name  string
		start [][2]int
		want  [][2]int // after one step
	}{
		{"block is still", [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}, [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}},
		{"blinker turns", [][2]int{{2, 3}, {3, 3}, {4, 3}}, [][2]int{{3, 2}, {3, 3}, {3, 4}}},
		{"lone cell dies", [][2]int{{4, 4}}, nil},
		{"blinker across the seam", [][2]int{{7, 3}, {0, 3}, {1, 3}}, [][2]int{{0, 2}, {0, 3}, {0, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLifeLevel(t, g, p, tt.start...)
			l.Step(frameAt(p, 0))
			got := liveCells(g, l.state())
			if len(got) != len(tt.want) {
				t.Fatalf("live cells = %v, want %v", got, tt.want)
			}
			for _, xy := range tt.want {
				if !got[xy] {
					t.Errorf("cell %v dead, want alive (live: %v)", xy, got)
				}
			}
		})
	}
}

func TestLifeSourcePaints(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 8, 8)
	l := newLifeLevel(t, g, p)

	f := frameAt(p, 0)
	f.Sources = []sources.Source{{X: 5, Y: 5, Radius: 0.5, Kind: sources.KindPointer}}
	l.Step(f)
	got := liveCells(g, l.state())
	if len(got) != 1 || !got[[2]int{5, 5}] {
		t.Errorf("live cells = %v, want only (5,5)", got)
	}
}

func TestLifeSeedDensity(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 64, 64)

	for _, density := range []float32{0, 0.4, 1} {
		p.Life.Density = density
		cells := life{seedRand: 5}.seed(g, p)
		var n int
		for _, c := range cells {
			if c {
				n++
			}
		}
		frac := float32(n) / float32(len(cells))
		if frac < density-0.05 || frac > density+0.05 {
			t.Errorf("density %v seeded %v alive", density, frac)
		}
	}

	p.Life.Density = 0.4
	a := life{seedRand: 9}.seed(g, p)
	b := life{seedRand: 9}.seed(g, p)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed gave different soups")
		}
	}
}
