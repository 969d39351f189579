package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kindling/config"
	"github.com/pthm-cable/kindling/sim"
	"github.com/pthm-cable/kindling/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	level := flag.String("level", "", "Level to run: sand, doomfire, doomfire-wood, fire, life (empty = use config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Ticks per loop iteration in headless mode (> 1 runs unpaced)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Level:          *level,
		Seed:           rngSeed,
		MaxTicks:       *maxTicks,
		StepsPerUpdate: *stepsPerUpdate,
		Paced:          true,
		LogStats:       *logStats,
		StatsWindow:    *statsWindow,
		OutputDir:      *outputDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, *headless); err != nil && !sim.IsCancel(err) {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts sim.Options, headless bool) error {
	if headless {
		// Headless mode - pure CPU simulation, no raylib needed
		r, err := sim.New(cfg, opts)
		if err != nil {
			return err
		}
		defer closeRunner(r)

		slog.Info("starting headless simulation",
			"seed", opts.Seed,
			"max_ticks", opts.MaxTicks,
			"steps_per_update", opts.StepsPerUpdate,
		)
		return r.Run(ctx)
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Kindling")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Sim.TargetFPS))

	// The window paces ticks, so the runner does not.
	opts.Paced = false
	r, err := sim.New(cfg, opts)
	if err != nil {
		return err
	}
	defer closeRunner(r)

	v := viewer.New(cfg, r, opts.MaxTicks)
	defer v.Unload()
	return v.Run(ctx)
}

func closeRunner(r *sim.Runner) {
	if err := r.Close(); err != nil {
		slog.Error("failed to close runner", "error", err)
	}
}
