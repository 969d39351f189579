package levels

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistryDefaults(t *testing.T) {
	reg := NewRegistry()
	want := []string{IDSand, IDDoomFire, IDDoomFireWood, IDFire, IDLife}
	if got := reg.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if got := reg.GetName(IDDoomFireWood); got != "Doom Fire + Wood" {
		t.Errorf("GetName = %q", got)
	}
	if got := reg.GetName("nope"); got != "nope" {
		t.Errorf("GetName fallback = %q, want the ID", got)
	}
	if got := len(reg.ByCategory("fire")); got != 3 {
		t.Errorf("fire category has %d levels, want 3", got)
	}
}

func TestRegistryUnknownLevel(t *testing.T) {
	p := testParams(t)
	g := mustGrid(t, 8, 8)
	if _, err := NewRegistry().New("lava", g, p, Options{}); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("New(lava) error = %v, want ErrUnknownLevel", err)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Info{ID: IDSand, Name: "Dust", Category: "sand"}, newSand)
	if got := reg.GetName(IDSand); got != "Dust" {
		t.Errorf("GetName = %q, want Dust", got)
	}
	if got := len(reg.All()); got != 4 {
		t.Errorf("All() has %d levels after replacing, want 4", got)
	}
}

func TestEveryLevelRunsOnTinyGrids(t *testing.T) {
	p := testParams(t)
	reg := NewRegistry()
	sizes := [][2]int{{1, 1}, {3, 2}, {5, 9}}

	for _, id := range reg.IDs() {
		for _, sz := range sizes {
			g := mustGrid(t, sz[0], sz[1])
			l, err := reg.New(id, g, p, Options{Workers: 2, Seed: 1})
			if err != nil {
				t.Fatalf("%s %v: %v", id, sz, err)
			}
			l.BeginFrame()
			for n := range 5 {
				l.Step(frameAt(p, n))
			}
			if got := len(l.Visuals()); got != g.Cells()*4 {
				t.Errorf("%s %v: visuals length %d", id, sz, got)
			}
			if err := l.Reset(p); err != nil {
				t.Errorf("%s %v: Reset: %v", id, sz, err)
			}
			l.Close()
		}
	}
}
