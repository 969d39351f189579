// Package sources tracks the interactive emitters that inject quantity into a
// level: placed torches and the pointer. Emitters are ECS entities.
package sources

// Kind distinguishes emitter behaviour.
type Kind uint8

const (
	KindTorch   Kind = iota // placed, persistent
	KindPointer             // follows the mouse, active while the button is held
)

func (k Kind) String() string {
	switch k {
	case KindTorch:
		return "torch"
	case KindPointer:
		return "pointer"
	}
	return "unknown"
}

// Position is an emitter's location in grid cells.
type Position struct {
	X, Y float32
}

// Emitter holds what a source injects and how far it reaches.
type Emitter struct {
	Kind   Kind
	Radius float32 // cells within this distance are affected
	Power  float32 // quantity added per step
	Active bool
}

// Source is the immutable per-tick view of one active emitter.
type Source struct {
	X, Y   float32
	Radius float32
	Power  float32
	Kind   Kind
}

// Covers reports whether cell (x, y) is within the source's radius.
func (s Source) Covers(x, y int) bool {
	dx := float32(x) - s.X
	dy := float32(y) - s.Y
	return dx*dx+dy*dy < s.Radius*s.Radius
}
