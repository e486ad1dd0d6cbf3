// metrics.go
package cliffordtableaus

import (
	"sync"
	"time"
)

// RunMetrics tracks what a multi-shot run did.
type RunMetrics struct {
	mu sync.Mutex

	ShotsCompleted int
	ShotsFailed    int
	TotalShotTime  time.Duration
}

func NewRunMetrics() *RunMetrics {
	return &RunMetrics{}
}

func (m *RunMetrics) recordShot(start time.Time, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.ShotsCompleted++
	} else {
		m.ShotsFailed++
	}
	m.TotalShotTime += time.Since(start)
}

// RunStats is a point-in-time copy of the counters.
type RunStats struct {
	ShotsCompleted int
	ShotsFailed    int
	TotalShotTime  time.Duration
}

// Snapshot returns a copy safe to read while workers are still running.
func (m *RunMetrics) Snapshot() RunStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return RunStats{
		ShotsCompleted: m.ShotsCompleted,
		ShotsFailed:    m.ShotsFailed,
		TotalShotTime:  m.TotalShotTime,
	}
}
