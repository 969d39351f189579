package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one displayed tick. The first three match the exchange
// engine's pass names.
const (
	PhaseSources   = "sources"
	PhasePush      = "push"
	PhasePull      = "pull"
	PhaseUpdate    = "update"
	PhaseVisuals   = "visuals"
	PhaseTelemetry = "telemetry"
)

// phases lists every tracked phase in reporting order.
var phases = [...]string{PhaseSources, PhasePush, PhasePull, PhaseUpdate, PhaseVisuals, PhaseTelemetry}

const numPhases = len(phases)

func phaseIndex(name string) int {
	for i, p := range phases {
		if p == name {
			return i
		}
	}
	return -1
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Steps        int
	Phases       [numPhases]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
// StartPhase is called several times per step, so it does not allocate.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    PerfSample
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  int // -1 when no phase is open

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration

	now func() time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over (e.g., 30 for 1 second at 30fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		lastPhase:  -1,
		now:        time.Now,
	}
}

// StartTick begins timing a new displayed tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = PerfSample{}
	p.lastPhase = -1
}

// StartPhase closes the open phase and begins timing the named one.
// Unknown names close the open phase without starting a new one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.lastPhase = phaseIndex(phase)
	if phase == PhasePush {
		p.current.Steps++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.lastPhase >= 0 {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.lastPhase = -1
	p.current.TickDuration = now.Sub(p.tickStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations per tick)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64
	StepsPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return s
	}

	var total time.Duration
	var steps int
	var phaseSum [numPhases]time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		total += sample.TickDuration
		steps += sample.Steps
		if i == 0 || sample.TickDuration < s.MinTickDuration {
			s.MinTickDuration = sample.TickDuration
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.TickDuration)
		for j, d := range sample.Phases {
			phaseSum[j] += d
		}
	}

	n := time.Duration(p.sampleCount)
	s.AvgTickDuration = total / n
	for j, sum := range phaseSum {
		if sum == 0 {
			continue
		}
		avg := sum / n
		s.PhaseAvg[phases[j]] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[phases[j]] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	if total > 0 {
		s.TicksPerSecond = float64(p.sampleCount) * float64(time.Second) / float64(total)
		s.StepsPerSecond = float64(steps) * float64(time.Second) / float64(total)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"steps_per_sec", int(s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	FPS          float64 `csv:"fps"`
	SourcesPct   float64 `csv:"sources_pct"`
	PushPct      float64 `csv:"push_pct"`
	PullPct      float64 `csv:"pull_pct"`
	UpdatePct    float64 `csv:"update_pct"`
	VisualsPct   float64 `csv:"visuals_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		StepsPerSec:  s.StepsPerSecond,
		FPS:          s.FPS,
		SourcesPct:   s.PhasePct[PhaseSources],
		PushPct:      s.PhasePct[PhasePush],
		PullPct:      s.PhasePct[PhasePull],
		UpdatePct:    s.PhasePct[PhaseUpdate],
		VisualsPct:   s.PhasePct[PhaseVisuals],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
