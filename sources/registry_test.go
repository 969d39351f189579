package sources

import "testing"

func TestPointerInactiveByDefault(t *testing.T) {
	r := NewRegistry()
	if got := len(r.Snapshot()); got != 0 {
		t.Errorf("Snapshot() has %d sources, want 0", got)
	}

	r.SetPointer(3, 4, true, 1, 36)
	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].Kind != KindPointer || snap[0].X != 3 || snap[0].Power != 36 {
		t.Fatalf("Snapshot() = %+v, want one pointer at (3,4)", snap)
	}

	r.SetPointer(3, 4, false, 1, 36)
	if got := len(r.Snapshot()); got != 0 {
		t.Errorf("released pointer still active: %d sources", got)
	}
}

func TestTorchLifecycle(t *testing.T) {
	r := NewRegistry()
	r.AddTorch(10, 10, 2, 20)
	r.AddTorch(11, 10, 2, 20)
	r.AddTorch(40, 40, 2, 20)
	if r.Torches() != 3 {
		t.Fatalf("Torches() = %d, want 3", r.Torches())
	}

	if n := r.RemoveTorchesNear(10, 10, 1.5); n != 2 {
		t.Errorf("RemoveTorchesNear removed %d, want 2", n)
	}
	if r.Torches() != 1 {
		t.Errorf("Torches() = %d, want 1", r.Torches())
	}

	r.SetPointer(0, 0, true, 1, 5)
	r.Clear()
	if r.Torches() != 0 || len(r.Snapshot()) != 0 {
		t.Error("Clear should remove torches and release the pointer")
	}
}

func TestCovers(t *testing.T) {
	s := Source{X: 5, Y: 5, Radius: 1}
	tests := []struct {
		x, y int
		want bool
	}{
		{5, 5, true},
		{6, 5, false},
		{4, 4, false},
	}
	for _, tt := range tests {
		if got := s.Covers(tt.x, tt.y); got != tt.want {
			t.Errorf("Covers(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	wide := Source{X: 5, Y: 5, Radius: 2}
	if !wide.Covers(6, 6) {
		t.Error("radius 2 should cover the diagonal neighbour")
	}
}
