// Package experiment runs headless batches of one level over several seeds
// and summarises their grid stats. The sweep and optimize tools build on it.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/kindling/config"
	"github.com/pthm-cable/kindling/sim"
	"github.com/pthm-cable/kindling/telemetry"
)

// ErrNoWindows is returned when a run ended before producing any stats record.
var ErrNoWindows = errors.New("run produced no stats windows")

// Spec describes one batch.
type Spec struct {
	Level       string  // empty = cfg.Level
	Ticks       int     // ticks per run
	Seeds       []int64 // one run per seed
	StatsWindow int     // ticks per stats record, 0 = config
	Settle      int     // leading records ignored as warm-up
	Parallel    int     // concurrent runs, 0 = GOMAXPROCS
}

// Result averages the post-warm-up stats records of every run, then across runs.
type Result struct {
	Runs       int
	Windows    int // records averaged per run
	Total      float64
	Mean       float64
	Std        float64
	Max        float64
	P90        float64
	ActiveFrac float64
	// Spread is the standard deviation of per-run ActiveFrac.
	Spread float64
}

type summary struct {
	total, mean, std, max, p90, active []float64
}

func (s *summary) add(g telemetry.GridStats) {
	s.total = append(s.total, g.Total)
	s.mean = append(s.mean, g.Mean)
	s.std = append(s.std, g.Std)
	s.max = append(s.max, g.Max)
	s.p90 = append(s.p90, g.P90)
	s.active = append(s.active, g.ActiveFrac)
}

// Run executes spec against cfg. cfg is only read, so callers may share it
// between concurrent batches.
func Run(ctx context.Context, cfg *config.Config, spec Spec) (Result, error) {
	if len(spec.Seeds) == 0 {
		return Result{}, fmt.Errorf("%w: no seeds", config.ErrInvalid)
	}
	if spec.Ticks < 1 {
		return Result{}, fmt.Errorf("%w: ticks %d < 1", config.ErrInvalid, spec.Ticks)
	}
	limit := spec.Parallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	runs := make([]summary, len(spec.Seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, seed := range spec.Seeds {
		g.Go(func() error {
			s, err := runOne(ctx, cfg, spec, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			runs[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return combine(runs), nil
}

func runOne(ctx context.Context, cfg *config.Config, spec Spec, seed int64) (summary, error) {
	var records []telemetry.GridStats
	r, err := sim.New(cfg, sim.Options{
		Level:         spec.Level,
		Seed:          seed,
		MaxTicks:      spec.Ticks,
		StatsWindow:   spec.StatsWindow,
		StatsCallback: func(s telemetry.GridStats) { records = append(records, s) },
	})
	if err != nil {
		return summary{}, err
	}
	defer r.Close()

	if err := r.Run(ctx); err != nil {
		return summary{}, err
	}
	if len(records) == 0 {
		return summary{}, ErrNoWindows
	}

	kept := records[min(spec.Settle, len(records)-1):]
	var s summary
	for _, rec := range kept {
		s.add(rec)
	}
	return s, nil
}

func combine(runs []summary) Result {
	res := Result{Runs: len(runs), Windows: len(runs[0].total)}
	perRun := make([]float64, len(runs))
	avg := func(pick func(summary) []float64) float64 {
		for i, s := range runs {
			perRun[i] = stat.Mean(pick(s), nil)
		}
		return stat.Mean(perRun, nil)
	}
	res.Total = avg(func(s summary) []float64 { return s.total })
	res.Mean = avg(func(s summary) []float64 { return s.mean })
	res.Std = avg(func(s summary) []float64 { return s.std })
	res.Max = avg(func(s summary) []float64 { return s.max })
	res.P90 = avg(func(s summary) []float64 { return s.p90 })
	res.ActiveFrac = avg(func(s summary) []float64 { return s.active })
	// perRun still holds each run's ActiveFrac.
	if len(runs) > 1 {
		res.Spread = stat.StdDev(perRun, nil)
	}
	return res
}
