package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeGridStats(t *testing.T) {
	// Unsorted on purpose; ComputeGridStats must not reorder its input.
	values := []float64{0.9, 0, 0.3, 0.04, 0.5, 0.6, 0.7, 0.8, 0.2, 1.0}
	first := values[0]

	var s GridStats
	scratch := ComputeGridStats(&s, values, nil)

	if values[0] != first {
		t.Error("input was reordered")
	}
	if len(scratch) < len(values) {
		t.Errorf("scratch len %d, want >= %d", len(scratch), len(values))
	}
	if math.Abs(s.Total-5.04) > 1e-9 {
		t.Errorf("Total = %v, want 5.04", s.Total)
	}
	if math.Abs(s.Mean-0.504) > 1e-9 {
		t.Errorf("Mean = %v, want 0.504", s.Mean)
	}
	if s.Max != 1.0 {
		t.Errorf("Max = %v, want 1", s.Max)
	}
	if s.Std <= 0 {
		t.Errorf("Std = %v, want positive", s.Std)
	}
	// 0 and 0.04 are within the near-zero epsilon.
	if s.Active != 8 || math.Abs(s.ActiveFrac-0.8) > 1e-9 {
		t.Errorf("Active = %d (%v), want 8 (0.8)", s.Active, s.ActiveFrac)
	}
	if math.Abs(s.P50-0.55) > 1e-9 {
		t.Errorf("P50 = %v, want 0.55", s.P50)
	}
}

func TestComputeGridStatsUniform(t *testing.T) {
	values := []float64{2, 2, 2, 2}
	var s GridStats
	ComputeGridStats(&s, values, make([]float64, 16))
	if s.Std != 0 || s.Mean != 2 || s.P10 != 2 || s.P90 != 2 {
		t.Errorf("uniform stats = %+v", s)
	}
}

func TestComputeGridStatsEmpty(t *testing.T) {
	var s GridStats
	ComputeGridStats(&s, nil, nil)
	if s != (GridStats{}) {
		t.Errorf("empty input changed stats: %+v", s)
	}
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector("fire", 3)
	if c.ShouldFlush(2) {
		t.Error("flush before the window filled")
	}
	c.RecordSources(2)
	c.RecordSources(1)
	if !c.ShouldFlush(3) {
		t.Fatal("window of 3 ticks should flush at tick 3")
	}

	s := c.Flush(3, 6, 0.1, []float64{0, 36, 36})
	if s.WindowStartTick != 0 || s.WindowEndTick != 3 || s.Steps != 6 {
		t.Errorf("window = %+v", s)
	}
	if s.Level != "fire" || s.SourceSteps != 3 || s.Total != 72 {
		t.Errorf("stats = %+v", s)
	}

	if c.ShouldFlush(5) {
		t.Error("next window should start at tick 3")
	}
	if got := c.Flush(6, 12, 0.2, []float64{1}).SourceSteps; got != 0 {
		t.Errorf("source steps carried over: %d", got)
	}
}

func TestStatLoggerAverages(t *testing.T) {
	l := NewStatLogger(3)
	for i, v := range []float64{10, 20, 30} {
		l.Add("fps", v)
		l.Add("calc_time", 1)
		got := l.Commit()
		if i < 2 && got != nil {
			t.Fatalf("commit %d logged early: %v", i, got)
		}
		if i == 2 {
			if got["fps"] != 20 || got["calc_time"] != 1 {
				t.Errorf("averages = %v, want fps 20, calc_time 1", got)
			}
		}
	}
	// The next window starts from zero and averages only the samples given.
	l.Add("fps", 3)
	l.Commit()
	l.Commit()
	got := l.Commit()
	if got["fps"] != 3 {
		t.Errorf("second window fps = %v, want 3", got["fps"])
	}
	if _, ok := got["calc_time"]; ok {
		t.Errorf("calc_time reported with no samples: %v", got)
	}
}

func TestStatLoggerSkippedFirstSample(t *testing.T) {
	// The first tick has no previous tick to measure fps against.
	l := NewStatLogger(4)
	l.Add("calc_time", 2)
	l.Commit()
	var got map[string]float64
	for range 3 {
		l.Add("fps", 60)
		l.Add("calc_time", 2)
		got = l.Commit()
	}
	if got["fps"] != 60 || got["calc_time"] != 2 {
		t.Errorf("averages = %v, want fps 60, calc_time 2", got)
	}
}
