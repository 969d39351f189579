package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/kindling/numeric"
)

// GridStats summarises the transported quantity over the grid at the end of
// a stats window.
type GridStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	Steps           uint64  `csv:"steps"`
	SimTimeSec      float64 `csv:"sim_time"`
	Level           string  `csv:"level"`

	// Quantity distribution
	Total float64 `csv:"total"`
	Mean  float64 `csv:"mean"`
	Std   float64 `csv:"std"`
	Max   float64 `csv:"max"`
	P10   float64 `csv:"p10"`
	P50   float64 `csv:"p50"`
	P90   float64 `csv:"p90"`

	// Cells holding more than the near-zero epsilon
	Active     int     `csv:"active"`
	ActiveFrac float64 `csv:"active_frac"`

	// Emitter activity during the window
	SourceSteps int `csv:"source_steps"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeGridStats fills the distribution fields of s from per-cell
// quantities. scratch is reused for sorting when large enough; the grown
// buffer is returned.
func ComputeGridStats(s *GridStats, quantities, scratch []float64) []float64 {
	n := len(quantities)
	if n == 0 {
		return scratch
	}

	s.Total = floats.Sum(quantities)
	s.Max = floats.Max(quantities)
	s.Mean, s.Std = stat.PopMeanStdDev(quantities, nil)

	if cap(scratch) < n {
		scratch = make([]float64, n)
	}
	sorted := scratch[:n]
	copy(sorted, quantities)
	sort.Float64s(sorted)
	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)

	// Sorted ascending: active cells are the tail above epsilon.
	first := sort.SearchFloat64s(sorted, numeric.Epsilon)
	for first < n && sorted[first] <= numeric.Epsilon {
		first++
	}
	s.Active = n - first
	s.ActiveFrac = float64(s.Active) / float64(n)
	return scratch
}

// LogValue implements slog.LogValuer for structured logging.
func (s GridStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Uint64("steps", s.Steps),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("level", s.Level),
		slog.Float64("total", s.Total),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("max", s.Max),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Int("active", s.Active),
		slog.Float64("active_frac", s.ActiveFrac),
		slog.Int("source_steps", s.SourceSteps),
	)
}

// LogStats logs the window stats using slog.
func (s GridStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"steps", s.Steps,
		"sim_time", s.SimTimeSec,
		"level", s.Level,
		"total", s.Total,
		"mean", s.Mean,
		"std", s.Std,
		"max", s.Max,
		"p50", s.P50,
		"p90", s.P90,
		"active", s.Active,
		"source_steps", s.SourceSteps,
	)
}
