package runner

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Latency summarizes the dispatch durations of one run
type Latency struct {
	Count int64         `json:"count"`
	Min   time.Duration `json:"min"`
	Mean  time.Duration `json:"mean"`
	P50   time.Duration `json:"p50"`
	P95   time.Duration `json:"p95"`
	Max   time.Duration `json:"max"`
}

type latencyRecorder struct {
	// microseconds, 1us to 5m, 3 significant digits
	histogram *hdrhistogram.Histogram
}

func newLatencyRecorder() *latencyRecorder {
	return &latencyRecorder{
		histogram: hdrhistogram.New(1, 300_000_000, 3),
	}
}

func (l *latencyRecorder) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	// Durations past the tracked range are clamped to its ceiling, so every
	// dispatch is counted and RecordValue cannot fail.
	if ceiling := l.histogram.HighestTrackableValue(); us > ceiling {
		us = ceiling
	}
	_ = l.histogram.RecordValue(us)
}

func (l *latencyRecorder) Summary() Latency {
	if l.histogram.TotalCount() == 0 {
		return Latency{}
	}
	us := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }
	return Latency{
		Count: l.histogram.TotalCount(),
		Min:   us(l.histogram.Min()),
		Mean:  us(int64(l.histogram.Mean())),
		P50:   us(l.histogram.ValueAtQuantile(50)),
		P95:   us(l.histogram.ValueAtQuantile(95)),
		Max:   us(l.histogram.Max()),
	}
}
