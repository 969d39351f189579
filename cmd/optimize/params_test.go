package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/kindling/config"
	"github.com/pthm-cable/kindling/experiment"
)

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	raw := pv.ExtractFromConfig(cfg)
	if len(raw) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(raw), pv.Dim())
	}

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: round trip %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVectorApplyClamps(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}

	high := make([]float64, pv.Dim())
	for i := range high {
		high[i] = 1e6
	}
	pv.ApplyToConfig(cfg, high)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Max {
			t.Errorf("%s = %v, want clamp to %v", spec.Name, got[i], spec.Max)
		}
	}
}

func TestTargetScore(t *testing.T) {
	target := Target{ActiveFrac: 0.25, P90: 10, SpreadWeight: 2}

	tests := []struct {
		name string
		res  experiment.Result
		want float64
	}{
		{"on target", experiment.Result{ActiveFrac: 0.25, P90: 10}, 0},
		{"double active", experiment.Result{ActiveFrac: 0.5, P90: 10}, 1},
		{"half p90", experiment.Result{ActiveFrac: 0.25, P90: 5}, 0.25},
		{"spread penalty", experiment.Result{ActiveFrac: 0.25, P90: 10, Spread: 0.1}, 0.2},
		{"nan", experiment.Result{ActiveFrac: math.NaN(), P90: 10}, failedFitness},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := target.score(tt.res); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}
