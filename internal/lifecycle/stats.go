package lifecycle

import (
	"sync/atomic"
	"time"
)

// Stats counts delivery outcomes since start or the last Reset.
type Stats struct {
	sent            atomic.Int64
	failed          atomic.Int64
	skipped         atomic.Int64
	dropped         atomic.Int64
	panics          atomic.Int64
	totalDurationNs atomic.Int64
	lastResetNs     atomic.Int64
}

func NewStats() *Stats {
	s := &Stats{}
	s.lastResetNs.Store(time.Now().UnixNano())
	return s
}

type StatsSnapshot struct {
	Sent          int64   `json:"sent"`
	Failed        int64   `json:"failed"`
	Skipped       int64   `json:"skipped"`
	Dropped       int64   `json:"dropped"`
	Panics        int64   `json:"panics"`
	AvgDurationMs int64   `json:"avg_duration_ms"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

func (s *Stats) recordSent(d time.Duration) {
	s.sent.Add(1)
	s.totalDurationNs.Add(int64(d))
}

func (s *Stats) recordFailed(d time.Duration) {
	s.failed.Add(1)
	s.totalDurationNs.Add(int64(d))
}

func (s *Stats) recordSkipped() { s.skipped.Add(1) }
func (s *Stats) recordDropped() { s.dropped.Add(1) }
func (s *Stats) recordPanic()   { s.panics.Add(1) }

func (s *Stats) Snapshot() StatsSnapshot {
	sent := s.sent.Load()
	failed := s.failed.Load()

	var avg time.Duration
	if n := sent + failed; n > 0 {
		avg = time.Duration(s.totalDurationNs.Load() / n)
	}

	return StatsSnapshot{
		Sent:          sent,
		Failed:        failed,
		Skipped:       s.skipped.Load(),
		Dropped:       s.dropped.Load(),
		Panics:        s.panics.Load(),
		AvgDurationMs: avg.Milliseconds(),
		UptimeSeconds: time.Since(time.Unix(0, s.lastResetNs.Load())).Seconds(),
	}
}

func (s *Stats) Reset() {
	s.sent.Store(0)
	s.failed.Store(0)
	s.skipped.Store(0)
	s.dropped.Store(0)
	s.panics.Store(0)
	s.totalDurationNs.Store(0)
	s.lastResetNs.Store(time.Now().UnixNano())
}
