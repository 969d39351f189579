package main

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/kindling/config"
	"github.com/pthm-cable/kindling/experiment"
)

// failedFitness is returned for parameter sets whose runs could not complete.
const failedFitness = 1e9

// Target describes the flame the optimizer steers toward.
type Target struct {
	ActiveFrac float64 // fraction of burning cells
	P90        float64 // 90th percentile heat
	// SpreadWeight penalises disagreement between seeds.
	SpreadWeight float64
}

// FitnessEvaluator runs headless batches and scores them (lower = better).
type FitnessEvaluator struct {
	params *ParamVector
	spec   experiment.Spec
	base   *config.Config
	target Target

	mu   sync.Mutex
	last experiment.Result
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, spec experiment.Spec, base *config.Config, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, spec: spec, base: base, target: target}
}

// LastResult returns the batch result from the most recent evaluation.
func (fe *FitnessEvaluator) LastResult() experiment.Result {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a raw parameter vector.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) float64 {
	cfg := *fe.base
	fe.params.ApplyToConfig(&cfg, x)
	if err := cfg.Finalize(); err != nil {
		slog.Warn("parameters rejected", "error", err)
		return failedFitness
	}

	res, err := experiment.Run(ctx, &cfg, fe.spec)
	if err != nil {
		slog.Warn("evaluation failed", "error", err)
		return failedFitness
	}

	fe.mu.Lock()
	fe.last = res
	fe.mu.Unlock()
	return fe.target.score(res)
}

// score is the squared relative error against the target, plus the seed
// spread penalty.
func (t Target) score(r experiment.Result) float64 {
	rel := func(got, want float64) float64 {
		if want == 0 {
			return got * got
		}
		d := (got - want) / want
		return d * d
	}
	s := rel(r.ActiveFrac, t.ActiveFrac) + rel(r.P90, t.P90) + t.SpreadWeight*r.Spread
	if math.IsNaN(s) {
		return failedFitness
	}
	return s
}
