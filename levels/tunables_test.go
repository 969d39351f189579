package levels

import "testing"

func TestTunablesRoundTrip(t *testing.T) {
	base := testParams(t)
	seen := map[string]bool{}
	for _, tn := range Tunables() {
		if seen[tn.ID] {
			t.Errorf("duplicate tunable %q", tn.ID)
		}
		seen[tn.ID] = true
		if tn.Min >= tn.Max {
			t.Errorf("%s: empty range [%v, %v]", tn.ID, tn.Min, tn.Max)
		}

		orig := tn.Get(base)
		mid := (tn.Min + tn.Max) / 2
		p := tn.Apply(*base, mid)
		got := tn.Get(&p)
		want := mid
		if tn.Whole {
			want = float32(int(mid + 0.5))
		}
		if got != want {
			t.Errorf("%s: Apply(%v) then Get = %v, want %v", tn.ID, mid, got, want)
		}
		if tn.Get(base) != orig {
			t.Errorf("%s: Apply mutated the base snapshot", tn.ID)
		}
	}
}

func TestTunableApplyClamps(t *testing.T) {
	base := testParams(t)
	for _, tn := range Tunables() {
		lo := tn.Apply(*base, tn.Min-1000)
		hi := tn.Apply(*base, tn.Max+1000)
		if got := tn.Get(&lo); got != tn.Min {
			t.Errorf("%s: below range gave %v, want %v", tn.ID, got, tn.Min)
		}
		if got := tn.Get(&hi); got != tn.Max {
			t.Errorf("%s: above range gave %v, want %v", tn.ID, got, tn.Max)
		}
	}
}

func TestTunablesFor(t *testing.T) {
	tests := []struct {
		level   string
		want    string
		notWant string
	}{
		{IDFire, "spread", "emission"},
		{IDDoomFire, "emission", "wood_boost"},
		{IDDoomFireWood, "wood_boost", "brush_radius"},
		{IDSand, "brush_radius", "torch_power"},
		{IDLife, "density", "brush_radius"},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			ids := map[string]bool{}
			for _, tn := range TunablesFor(tt.level) {
				ids[tn.ID] = true
			}
			if !ids["updates_per_tick"] || !ids["target_fps"] {
				t.Error("tick tunables missing")
			}
			if !ids[tt.want] {
				t.Errorf("missing %s", tt.want)
			}
			if ids[tt.notWant] {
				t.Errorf("unexpected %s", tt.notWant)
			}
		})
	}
}

func TestTunableLimitsPassValidation(t *testing.T) {
	base := testParams(t)
	if err := base.Validate(); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	for _, tn := range Tunables() {
		for _, v := range []float32{tn.Min, tn.Max} {
			p := tn.Apply(*base, v)
			if err := p.Validate(); err != nil {
				t.Errorf("%s = %v: %v", tn.ID, v, err)
			}
		}
	}
}
