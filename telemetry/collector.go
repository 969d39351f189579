// Package telemetry provides grid statistics, performance timing and CSV run output.
package telemetry

// Collector accumulates per-tick events within windows of displayed ticks
// and produces GridStats.
type Collector struct {
	level       string
	windowTicks uint64

	// Current window tracking
	windowStartTick uint64
	sourceSteps     int

	scratch []float64
}

// NewCollector creates a stats collector for the named level.
// windowTicks: displayed ticks per window, at least 1.
func NewCollector(level string, windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		level:       level,
		windowTicks: uint64(windowTicks),
	}
}

// RecordSources records steps run with at least one active emitter.
func (c *Collector) RecordSources(steps int) {
	c.sourceSteps += steps
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a GridStats and resets counters for the next window.
// quantities holds the per-cell transported quantity at window end.
func (c *Collector) Flush(currentTick, steps uint64, simTimeSec float64, quantities []float64) GridStats {
	s := GridStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Steps:           steps,
		SimTimeSec:      simTimeSec,
		Level:           c.level,
		SourceSteps:     c.sourceSteps,
	}
	c.scratch = ComputeGridStats(&s, quantities, c.scratch)

	// Reset for next window
	c.windowStartTick = currentTick
	c.sourceSteps = 0

	return s
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() uint64 {
	return c.windowTicks
}
