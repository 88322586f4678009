package pipeline

import "sync/atomic"

// Stats tracks the lifetime counters of one processor instance. Counters are
// updated atomically, so Snapshot is safe from any goroutine while the
// consumer loop keeps processing.
type Stats struct {
	consumed  atomic.Int64
	published atomic.Int64
	failed    atomic.Int64
}

// StatsSnapshot is a point-in-time view of the counters.
type StatsSnapshot struct {
	Consumed  int64 `json:"consumed"`
	Published int64 `json:"published"`
	Failed    int64 `json:"failed"`
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Consumed:  s.consumed.Load(),
		Published: s.published.Load(),
		Failed:    s.failed.Load(),
	}
}
