// Sweep runs a grid of fire parameter sets headless and writes one CSV row
// per set.
//
// Usage: go run ./cmd/sweep -out sweep.csv
package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/kindling/config"
	"github.com/pthm-cable/kindling/experiment"
	"github.com/pthm-cable/kindling/levels"
)

type ParamSet struct {
	Spread  float64 `csv:"spread"`
	NoiseA  float64 `csv:"noise_a"`
	FocusB  float64 `csv:"focus_b"`
	DriftUp float64 `csv:"drift_up"`
}

func (p ParamSet) String() string {
	return fmt.Sprintf("spread=%.2f noiseA=%.2f focusB=%.2f driftUp=%.2f", p.Spread, p.NoiseA, p.FocusB, p.DriftUp)
}

func (p ParamSet) apply(base *config.Config) (*config.Config, error) {
	cfg := *base
	cfg.Fire.Spread = p.Spread
	cfg.Fire.NoiseA = p.NoiseA
	cfg.Fire.FocusB = p.FocusB
	cfg.Fire.DriftUp = p.DriftUp
	return &cfg, cfg.Finalize()
}

// row is one CSV record: the parameter set followed by its batch result.
type row struct {
	ParamSet
	Runs       int     `csv:"runs"`
	Total      float64 `csv:"total"`
	Mean       float64 `csv:"mean"`
	Std        float64 `csv:"std"`
	Max        float64 `csv:"max"`
	P90        float64 `csv:"p90"`
	ActiveFrac float64 `csv:"active_frac"`
	ActiveSD   float64 `csv:"active_sd"`
	Seconds    float64 `csv:"seconds"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	level := flag.String("level", levels.IDFire, "Level to sweep")
	gridSize := flag.Int("grid", 96, "Grid width and height for every run")
	ticks := flag.Int("ticks", 300, "Ticks per run")
	seeds := flag.Int("seeds", 3, "Seeds per parameter set")
	settle := flag.Int("settle", 2, "Leading stats windows ignored as warm-up")
	window := flag.Int("window", 30, "Ticks per stats window")
	parallel := flag.Int("parallel", 2, "Parameter sets run at once")
	outPath := flag.String("out", "sweep.csv", "Output CSV path")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	base, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	base.Grid.Width = *gridSize
	base.Grid.Height = *gridSize
	base.Sim.Workers = 1
	if err := base.Finalize(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid grid: %v\n", err)
		os.Exit(1)
	}

	var sets []ParamSet
	for _, spread := range []float64{0.6, 0.9, 1.2} {
		for _, noiseA := range []float64{0.6, 1.2, 2.0} {
			for _, focusB := range []float64{1, 2, 3} {
				for _, drift := range []float64{0, 0.1, 0.3} {
					sets = append(sets, ParamSet{Spread: spread, NoiseA: noiseA, FocusB: focusB, DriftUp: drift})
				}
			}
		}
	}

	seedList := make([]int64, *seeds)
	for i := range seedList {
		seedList[i] = int64(i*1000 + 42)
	}
	spec := experiment.Spec{
		Level:       *level,
		Ticks:       *ticks,
		Seeds:       seedList,
		StatsWindow: *window,
		Settle:      *settle,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %d parameter sets (%d at once, %d seeds, %d ticks)\n", len(sets), *parallel, *seeds, *ticks)
	start := time.Now()

	rows := make([]row, len(sets))
	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*parallel)
	for i, set := range sets {
		g.Go(func() error {
			cfg, err := set.apply(base)
			if err != nil {
				return fmt.Errorf("%s: %w", set, err)
			}
			t0 := time.Now()
			res, err := experiment.Run(ctx, cfg, spec)
			if err != nil {
				return fmt.Errorf("%s: %w", set, err)
			}
			rows[i] = row{
				ParamSet:   set,
				Runs:       res.Runs,
				Total:      res.Total,
				Mean:       res.Mean,
				Std:        res.Std,
				Max:        res.Max,
				P90:        res.P90,
				ActiveFrac: res.ActiveFrac,
				ActiveSD:   res.Spread,
				Seconds:    time.Since(t0).Seconds(),
			}

			mu.Lock()
			done++
			fmt.Printf("[%d/%d] %s active=%.3f p90=%.2f\n", done, len(sets), set, res.ActiveFrac, res.P90)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "sweep failed: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write csv: %v\n", err)
		os.Exit(1)
	}

	slices.SortFunc(rows, func(a, b row) int { return cmp.Compare(b.ActiveFrac, a.ActiveFrac) })
	fmt.Printf("\nTop 5 by active fraction (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(rows) && i < 5; i++ {
		r := rows[i]
		fmt.Printf("%2d) active=%.3f±%.3f mean=%.2f p90=%.2f max=%.2f %s\n",
			i+1, r.ActiveFrac, r.ActiveSD, r.Mean, r.P90, r.Max, r.ParamSet)
	}
	fmt.Printf("\nResults written to %s\n", *outPath)
}
