package telemetry

import "log/slog"

// StatLogger averages named samples and logs them every N commits.
type StatLogger struct {
	every int
	names []string
	sums  map[string]float64
	count map[string]int
	n     int
}

// NewStatLogger creates a logger that reports every `every` commits.
func NewStatLogger(every int) *StatLogger {
	if every < 1 {
		every = 1
	}
	return &StatLogger{every: every, sums: make(map[string]float64), count: make(map[string]int)}
}

// Add accumulates v under name for the current sample.
func (l *StatLogger) Add(name string, v float64) {
	if _, ok := l.sums[name]; !ok {
		l.names = append(l.names, name)
	}
	l.sums[name] += v
	l.count[name]++
}

// Commit closes the current sample. On every Nth commit it logs the averages,
// returns them and starts over; otherwise it returns nil. Each name is
// averaged over the samples that added it; names with none are left out.
func (l *StatLogger) Commit() map[string]float64 {
	l.n++
	if l.n < l.every {
		return nil
	}

	avg := make(map[string]float64, len(l.names))
	attrs := make([]any, 0, 2*len(l.names)+2)
	attrs = append(attrs, "samples", l.n)
	for _, name := range l.names {
		if n := l.count[name]; n > 0 {
			avg[name] = l.sums[name] / float64(n)
			attrs = append(attrs, name, avg[name])
		}
		l.sums[name] = 0
		l.count[name] = 0
	}
	l.n = 0
	slog.Info("stat", attrs...)
	return avg
}
