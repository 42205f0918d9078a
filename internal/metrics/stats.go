package metrics

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// Snapshot is a point-in-time aggregate of latency samples.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
}

// Stats tracks operation latencies within a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *Stats) Record(d time.Duration) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, durationMs: ms})
}

func (s *Stats) SnapshotNow() Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return Snapshot{}
	}

	durations := make([]int64, len(s.samples))
	var sum int64
	min, max := s.samples[0].durationMs, s.samples[0].durationMs
	for i, sm := range s.samples {
		durations[i] = sm.durationMs
		sum += sm.durationMs
		if sm.durationMs < min {
			min = sm.durationMs
		}
		if sm.durationMs > max {
			max = sm.durationMs
		}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	return Snapshot{
		Count: len(durations),
		MinMs: min,
		MaxMs: max,
		AvgMs: float64(sum) / float64(len(durations)),
		P50Ms: percentile(durations, 0.50),
		P95Ms: percentile(durations, 0.95),
	}
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	keep := s.samples[:0]
	for _, sm := range s.samples {
		if sm.timestamp.After(cutoff) {
			keep = append(keep, sm)
		}
	}
	s.samples = keep
}

// percentile uses linear interpolation between the two nearest ranks.
func percentile(sorted []int64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}
