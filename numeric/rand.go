package numeric

import "math"

// PCG is a stateless permuted congruential hash of a 32-bit value.
func PCG(n uint32) uint32 {
	h := n*747796405 + 2891336453
	h = ((h >> ((h >> 28) + 4)) ^ h) * 277803737
	return (h >> 22) ^ h
}

// Rand11 hashes the bit pattern of f to a pseudo-random value in [0, 1].
// Equal inputs always give equal outputs, so a cell seeded by its index and
// the tick time draws the same number no matter which worker runs it.
func Rand11(f float32) float32 {
	return float32(PCG(math.Float32bits(f))) / float32(math.MaxUint32)
}

// Noise1 is 1D value noise: a linear blend of hashed lattice values.
func Noise1(p float32) float32 {
	fl := float32(math.Floor(float64(p)))
	t := p - fl
	a, b := Rand11(fl), Rand11(fl+1)
	return a + (b-a)*t
}
