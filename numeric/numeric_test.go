package numeric

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float32
		fallback float32
		want     float32
	}{
		{"zero over zero", 0, 0, 0, 0},
		{"ten over zero", 10, 0, 0, 0},
		{"fallback used", 10, 0, 7, 7},
		{"plain", 10, 5, 0, 2},
		{"fractional", 3245, 2345.1324, 0, 3245 / 2345.1324},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeDiv(tt.a, tt.b, tt.fallback); !approx(got, tt.want) {
				t.Errorf("SafeDiv(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestSafeDivVec(t *testing.T) {
	tests := []struct {
		a, b, want Vec2
	}{
		{Vec2{0, 0}, Vec2{0, 0}, Vec2{0, 0}},
		{Vec2{1, 0}, Vec2{1, 0}, Vec2{1, 0}},
		{Vec2{20, 90}, Vec2{134, 435}, Vec2{20.0 / 134, 90.0 / 435}},
	}
	for _, tt := range tests {
		got := SafeDivVec(tt.a, tt.b, Vec2{})
		if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
			t.Errorf("SafeDivVec(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestInterpWeights(t *testing.T) {
	tests := []struct {
		a, b   Vec2
		wa, wb float32
		want   Vec2
	}{
		{Vec2{1, 2}, Vec2{0, 0}, 1, 1, Vec2{0.5, 1}},
		{Vec2{0, 0}, Vec2{0, 0}, 0, 0, Vec2{0, 0}},
		{Vec2{1, 2}, Vec2{0, 0}, 1, 0, Vec2{1, 2}},
		{Vec2{1, 2}, Vec2{5, 5}, 0, 0, Vec2{0, 0}},
	}
	for _, tt := range tests {
		got := InterpWeights(tt.a, tt.b, tt.wa, tt.wb)
		if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
			t.Errorf("InterpWeights(%v, %v, %v, %v) = %v, want %v", tt.a, tt.b, tt.wa, tt.wb, got, tt.want)
		}
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want float32
	}{
		{"same", Vec2{0, 1}, Vec2{0, 2}, 0},
		{"right angle", Vec2{1, 0}, Vec2{0, 1}, math.Pi / 2},
		{"opposite", Vec2{1, 0}, Vec2{-1, 0}, math.Pi},
		{"diagonal", Vec2{0, 1}, Vec2{1, 1}, math.Pi / 4},
		{"zero vector", Vec2{}, Vec2{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleBetween(tt.a, tt.b); !approx(got, tt.want) {
				t.Errorf("AngleBetween(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNearZero(t *testing.T) {
	for _, v := range []float32{0, 0.05, -0.05, 0.01} {
		if !NearZero(v) {
			t.Errorf("NearZero(%v) = false", v)
		}
	}
	for _, v := range []float32{0.051, -1, 36} {
		if NearZero(v) {
			t.Errorf("NearZero(%v) = true", v)
		}
	}
}

func TestRand11Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		r := Rand11(float32(i) * 17.3)
		if r < 0 || r > 1 {
			t.Fatalf("Rand11 out of range: %v", r)
		}
	}
	if Rand11(42.5) != Rand11(42.5) {
		t.Error("Rand11 must be deterministic")
	}
}

func TestNoise1Continuity(t *testing.T) {
	if got, want := Noise1(3), Rand11(3); got != want {
		t.Errorf("Noise1 at lattice point = %v, want %v", got, want)
	}
	mid := Noise1(3.5)
	lo, hi := Rand11(3), Rand11(4)
	if lo > hi {
		lo, hi = hi, lo
	}
	if mid < lo || mid > hi {
		t.Errorf("Noise1(3.5) = %v not between %v and %v", mid, lo, hi)
	}
}

func TestFlickerBounds(t *testing.T) {
	f := NewFlicker(7, 0.25, 0.1, 0.5)
	for i := 0; i < 200; i++ {
		v := f.Factor(float32(i), float32(i%13), float32(i)*0.1)
		if v < 0.7 || v > 1.3 {
			t.Fatalf("Factor = %v outside amplitude band", v)
		}
	}
	var off *Flicker
	if off.Factor(1, 2, 3) != 1 {
		t.Error("nil flicker should be neutral")
	}
}
