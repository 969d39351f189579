// Package numeric holds the small float helpers shared by the exchange
// policies: guarded division, weighted interpolation, angles and hashing noise.
package numeric

import "math"

// Epsilon is the threshold below which a quantity is treated as zero.
const Epsilon = 0.05

// NearZero reports whether |f| <= Epsilon.
func NearZero(f float32) bool {
	return f <= Epsilon && f >= -Epsilon
}

// SafeDiv returns a/b, or fallback when b is zero.
func SafeDiv(a, b, fallback float32) float32 {
	if b == 0 {
		return fallback
	}
	return a / b
}

// Clamp clamps v between lo and hi.
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative clamps v to [0, inf).
func NonNegative(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}

// Round rounds half away from zero.
func Round(v float32) float32 {
	return float32(math.Round(float64(v)))
}

// Exp is float32 exp.
func Exp(v float32) float32 {
	return float32(math.Exp(float64(v)))
}

// Pow is float32 pow.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Log is float32 natural log.
func Log(v float32) float32 {
	return float32(math.Log(float64(v)))
}
