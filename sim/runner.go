// Package sim drives a level tick by tick: it publishes parameter snapshots,
// collects emitters, paces the loop and feeds telemetry.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/kindling/config"
	"github.com/pthm-cable/kindling/grid"
	"github.com/pthm-cable/kindling/levels"
	"github.com/pthm-cable/kindling/numeric"
	"github.com/pthm-cable/kindling/sources"
	"github.com/pthm-cable/kindling/telemetry"
)

// Options holds runner settings that come from the command line.
type Options struct {
	Level          string // overrides cfg.Level when set
	Seed           int64
	MaxTicks       int  // 0 = unlimited
	StepsPerUpdate int  // ticks per loop iteration; > 1 runs unpaced
	Paced          bool // hold Run to the target fps
	LogStats       bool
	StatsWindow    int // ticks per stats record, 0 = use config
	OutputDir      string

	// StatsCallback, if set, receives every grid stats record.
	StatsCallback func(telemetry.GridStats)
}

// Runner owns a level and everything fed into it each tick. All methods
// except SetParams and Params must be called from one goroutine.
type Runner struct {
	cfg      *config.Config
	opts     Options
	registry *levels.Registry
	level    levels.Level
	params   atomic.Pointer[levels.Params]
	sources  *sources.Registry
	flicker  *numeric.Flicker

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	statLog   *telemetry.StatLogger
	output    *telemetry.OutputManager
	pacer     *FixedStep

	frame      levels.Frame
	tick       uint64
	timeOffset float32
	lastTick   time.Time
	quantities []float64
}

// New builds a runner for the configured level.
func New(cfg *config.Config, opts Options) (*Runner, error) {
	g, err := grid.New(cfg.Derived.GridW, cfg.Derived.GridH)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	if opts.Level == "" {
		opts.Level = cfg.Level
	}
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}

	r := &Runner{
		cfg:        cfg,
		opts:       opts,
		registry:   levels.NewRegistry(),
		sources:    sources.NewRegistry(),
		flicker:    numeric.NewFlicker(opts.Seed, float32(cfg.Fire.Flicker.Amount), float32(cfg.Fire.Flicker.Scale), float32(cfg.Fire.Flicker.Speed)),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:  telemetry.NewCollector(opts.Level, statsWindow),
		statLog:    telemetry.NewStatLogger(cfg.Telemetry.StatLogEvery),
		pacer:      NewFixedStep(cfg.Sim.TargetFPS),
		timeOffset: seedOffset(opts.Seed),
	}
	p := levels.ParamsFromConfig(cfg)
	r.params.Store(&p)

	for _, t := range cfg.Sources.Torches {
		radius, power := t.Radius, t.Power
		if radius == 0 {
			radius = cfg.Sources.TorchRadius
		}
		if power == 0 {
			power = cfg.Fire.TorchPower
		}
		r.sources.AddTorch(float32(t.X), float32(t.Y), float32(radius), float32(power))
	}

	r.level, err = r.registry.New(opts.Level, g, &p, r.levelOptions())
	if err != nil {
		return nil, err
	}
	r.level.SetPhaseTimer(r.perf)

	r.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		r.level.Close()
		return nil, err
	}
	if err := r.output.WriteConfig(cfg); err != nil {
		r.Close()
		return nil, err
	}

	slog.Info("level started",
		"level", opts.Level,
		"w", g.W,
		"h", g.H,
		"seed", opts.Seed,
		"updates_per_tick", p.UpdatesPerTick,
		"torches", r.sources.Torches(),
	)
	return r, nil
}

// seedOffset maps a seed to a starting simulated time, so different seeds
// draw different per-cell random streams.
func seedOffset(seed int64) float32 {
	return 1000 + float32(uint64(seed)%100_000)
}

func (r *Runner) levelOptions() levels.Options {
	return levels.Options{Workers: r.cfg.Sim.Workers, Seed: uint64(r.opts.Seed)}
}

// Tick runs one displayed frame: UpdatesPerTick exchange steps blended into
// the level's visuals.
func (r *Runner) Tick() {
	p := r.params.Load()
	r.perf.StartTick()
	start := time.Now()

	r.perf.StartPhase(telemetry.PhaseSources)
	r.frame.Params = p
	r.frame.Sources = r.sources.Snapshot()
	r.frame.Flicker = r.flicker
	r.frame.Tick = r.tick

	r.level.BeginFrame()
	n := p.UpdatesPerTick
	frameMS := 1000 / float32(p.TargetFPS)
	for sub := range n {
		r.frame.Time = r.timeOffset + float32(r.tick)*frameMS + float32(sub)*frameMS/float32(n)
		r.level.Step(&r.frame)
		r.frame.Step++
	}
	if len(r.frame.Sources) > 0 {
		r.collector.RecordSources(n)
	}
	r.tick++

	r.perf.StartPhase(telemetry.PhaseTelemetry)
	r.flushTelemetry()
	r.perf.EndTick()
	r.recordStat(start)
}

func (r *Runner) flushTelemetry() {
	if r.collector.ShouldFlush(r.tick) {
		r.quantities = r.level.Quantities(r.quantities)
		simTime := float64(r.tick) / float64(r.params.Load().TargetFPS)
		stats := r.collector.Flush(r.tick, r.frame.Step, simTime, r.quantities)
		if r.opts.LogStats {
			stats.LogStats()
		}
		if r.opts.StatsCallback != nil {
			r.opts.StatsCallback(stats)
		}
		if err := r.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
	}

	if window := uint64(max(r.cfg.Telemetry.PerfCollectorWindow, 1)); r.tick%window == 0 {
		perf := r.perf.Stats()
		if r.opts.LogStats {
			perf.LogStats()
		}
		if err := r.output.WritePerf(perf, r.tick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

func (r *Runner) recordStat(start time.Time) {
	if !r.opts.LogStats {
		return
	}
	now := time.Now()
	if !r.lastTick.IsZero() {
		if d := now.Sub(r.lastTick); d > 0 {
			r.statLog.Add("fps", float64(time.Second)/float64(d))
		}
	}
	r.lastTick = now
	r.statLog.Add("calc_time", float64(now.Sub(start).Microseconds())/1000)
	r.statLog.Commit()
}

// Run ticks until ctx is cancelled or MaxTicks is reached. A cancelled
// context returns ctx.Err(); reaching MaxTicks returns nil.
func (r *Runner) Run(ctx context.Context) error {
	paced := r.opts.Paced && r.opts.StepsPerUpdate <= 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.done() {
			slog.Info("max ticks reached", "tick", r.tick)
			return nil
		}

		if !paced {
			for i := 0; i < r.opts.StepsPerUpdate && !r.done(); i++ {
				r.Tick()
			}
			continue
		}

		r.pacer.SetTPS(r.params.Load().TargetFPS)
		if r.pacer.ShouldStep() {
			r.Tick()
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.pacer.Remaining()):
		}
	}
}

func (r *Runner) done() bool {
	return r.opts.MaxTicks > 0 && r.tick >= uint64(r.opts.MaxTicks)
}

// SetParams publishes a new parameter snapshot, used from the next tick on.
// It is safe to call from any goroutine.
func (r *Runner) SetParams(p levels.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.params.Store(&p)
	return nil
}

// Params returns the current snapshot. Callers must not modify it.
func (r *Runner) Params() *levels.Params { return r.params.Load() }

// SetPointer moves the pointer emitter; down activates it.
func (r *Runner) SetPointer(x, y float32, down bool) {
	p := r.params.Load()
	r.sources.SetPointer(x, y, down, float32(r.cfg.Sources.PointerRadius), p.Fire.TorchPower)
}

// ToggleTorch removes the torches near (x, y), or places one if there are none.
func (r *Runner) ToggleTorch(x, y float32) {
	radius := float32(r.cfg.Sources.TorchRadius)
	if r.sources.RemoveTorchesNear(x, y, radius) > 0 {
		return
	}
	r.sources.AddTorch(x, y, radius, r.params.Load().Fire.TorchPower)
}

// Reset reseeds the current level with the current parameters.
func (r *Runner) Reset() error {
	if err := r.level.Reset(r.params.Load()); err != nil {
		return fmt.Errorf("reset %s: %w", r.level.Info().ID, err)
	}
	slog.Info("level reset", "level", r.level.Info().ID, "tick", r.tick)
	return nil
}

// SwitchLevel replaces the running level. On error the old level keeps running.
func (r *Runner) SwitchLevel(id string) error {
	next, err := r.registry.New(id, r.level.Grid(), r.params.Load(), r.levelOptions())
	if err != nil {
		return err
	}
	r.level.Close()
	r.level = next
	r.level.SetPhaseTimer(r.perf)
	r.collector = telemetry.NewCollector(id, int(r.collector.WindowTicks()))
	slog.Info("level switched", "level", id, "tick", r.tick)
	return nil
}

// Level returns the running level.
func (r *Runner) Level() levels.Level { return r.level }

// Registry returns the level registry.
func (r *Runner) Registry() *levels.Registry { return r.registry }

// Sources returns the emitter registry.
func (r *Runner) Sources() *sources.Registry { return r.sources }

// Perf returns the performance collector.
func (r *Runner) Perf() *telemetry.PerfCollector { return r.perf }

// TickCount returns the number of completed ticks.
func (r *Runner) TickCount() uint64 { return r.tick }

// Steps returns the number of completed exchange steps.
func (r *Runner) Steps() uint64 { return r.frame.Step }

// Close stops the level's workers and closes the output files.
func (r *Runner) Close() error {
	r.level.Close()
	if err := r.output.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// IsCancel reports whether err only means the run was cancelled.
func IsCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
