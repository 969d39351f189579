package numeric

import "github.com/ojrac/opensimplex-go"

// Flicker modulates source power with smooth simplex noise over space and time,
// so torches breathe rather than emit a flat constant.
type Flicker struct {
	noise  opensimplex.Noise
	Amount float32 // relative amplitude, 0 disables
	Scale  float32 // spatial frequency
	Speed  float32 // temporal frequency
}

// NewFlicker creates a flicker field seeded with seed.
func NewFlicker(seed int64, amount, scale, speed float32) *Flicker {
	return &Flicker{
		noise:  opensimplex.New(seed),
		Amount: amount,
		Scale:  scale,
		Speed:  speed,
	}
}

// Factor returns the power multiplier at (x, y) and time t. It stays within
// [1-Amount, 1+Amount] and never goes negative.
func (f *Flicker) Factor(x, y, t float32) float32 {
	if f == nil || f.Amount == 0 {
		return 1
	}
	n := f.noise.Eval3(float64(x*f.Scale), float64(y*f.Scale), float64(t*f.Speed))
	return NonNegative(1 + f.Amount*float32(n))
}
