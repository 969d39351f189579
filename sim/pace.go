package sim

import "time"

// FixedStep paces ticks at a steady rate. Time not yet spent carries over,
// so a late frame is followed by an early one instead of drifting.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep returns a pacer targeting tps ticks per second. The first
// call to ShouldStep fires immediately.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{now: time.Now}
	f.SetTPS(tps)
	f.accumulator = f.step
	return f
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the tick interval.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether a tick is due, consuming one interval if so.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		// Never bank more than one extra tick after a stall.
		f.accumulator = min(f.accumulator, f.step)
		return true
	}
	return false
}

// Remaining returns how long until the next tick is due.
func (f *FixedStep) Remaining() time.Duration {
	return max(f.step-f.accumulator, 0)
}
