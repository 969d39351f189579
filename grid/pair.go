package grid

// Pair is a ping-pong double buffer. One half is read as the current state
// while the other is written as the next; Swap exchanges the roles by flipping
// the binding tag, never by copying.
type Pair[T any] struct {
	bufs [2][]T
	tag  uint8
}

// NewPair allocates two zeroed buffers of n elements.
func NewPair[T any](n int) *Pair[T] {
	return &Pair[T]{bufs: [2][]T{make([]T, n), make([]T, n)}}
}

// Current returns the buffer read this step.
func (p *Pair[T]) Current() []T { return p.bufs[p.tag] }

// Next returns the buffer written this step.
func (p *Pair[T]) Next() []T { return p.bufs[p.tag^1] }

// Swap makes Next the current buffer.
func (p *Pair[T]) Swap() { p.tag ^= 1 }

// Tag returns the binding tag: 0 or 1.
func (p *Pair[T]) Tag() uint8 { return p.tag }

// Fill copies src into both halves, used to seed an initial pattern.
func (p *Pair[T]) Fill(src []T) {
	copy(p.bufs[0], src)
	copy(p.bufs[1], src)
}

// Len returns the number of elements per buffer.
func (p *Pair[T]) Len() int { return len(p.bufs[0]) }
