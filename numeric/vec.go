package numeric

import "math"

// Vec2 is a 2D float vector, used for fire direction.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// SafeDivVec divides component-wise, using the matching fallback component
// wherever the divisor component is zero.
func SafeDivVec(a, b, fallback Vec2) Vec2 {
	return Vec2{SafeDiv(a.X, b.X, fallback.X), SafeDiv(a.Y, b.Y, fallback.Y)}
}

// InterpWeights blends a and b by their weights. Zero total weight yields the
// zero vector.
func InterpWeights(a, b Vec2, wa, wb float32) Vec2 {
	total := wa + wb
	return a.Scale(SafeDiv(wa, total, 0)).Add(b.Scale(SafeDiv(wb, total, 0)))
}

// AngleBetween returns the unsigned angle in radians between a and b.
// A zero-length vector has no direction and is treated as aligned.
func AngleBetween(a, b Vec2) float32 {
	cos := SafeDiv(a.Dot(b), a.Len()*b.Len(), 1)
	return float32(math.Acos(float64(Clamp(cos, -1, 1))))
}
