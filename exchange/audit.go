package exchange

// Quiescent reports whether every slot of buf holds the zero value.
func Quiescent[I comparable](buf []I) bool {
	var zero I
	for _, v := range buf {
		if v != zero {
			return false
		}
	}
	return true
}

// Total sums measure over every slot of buf.
func Total[I any](buf []I, measure func(I) float64) float64 {
	var sum float64
	for _, v := range buf {
		sum += measure(v)
	}
	return sum
}

// Audit captures the transfer totals of one step, for tests and debug logs.
type Audit struct {
	Broadcast float64 // quantity written into intents by push
	Accepted  float64 // quantity recorded as accepted by pull
	Quiescent bool    // intent buffer all zero after pull
}

// StepAudited runs one step like Step, measuring the buffers between passes.
// intent measures an intent slot; accepted measures a maintain slot.
func StepAudited[S any, I comparable, F any](e *Engine[S, I, F], f *F, intent, accepted func(I) float64) Audit {
	e.Push(f)
	a := Audit{Broadcast: Total(e.intent, intent)}
	e.Pull(f)
	a.Accepted = Total(e.maintain, accepted)
	a.Quiescent = Quiescent(e.intent)
	e.Update(f)
	e.Swap()
	return a
}
