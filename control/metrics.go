// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Typed pool telemetry. The registry keeps the latest counter sample
// per pool, with derived ratios, so collectors read consistent fields
// instead of a free-form metric map.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-buf/api"
)

// PoolSample is one observation of a pool's counters.
type PoolSample struct {
	Stats api.PoolStats
	When  time.Time
}

// ReuseRatio reports the fraction of takes served from the free list.
func (s PoolSample) ReuseRatio() float64 {
	if s.Stats.TotalTake == 0 {
		return 0
	}
	return float64(s.Stats.TotalTake-s.Stats.Fresh) / float64(s.Stats.TotalTake)
}

// DropRatio reports the fraction of recycles abandoned to the
// allocator, shared segments included.
func (s PoolSample) DropRatio() float64 {
	returned := s.Stats.TotalRecycle + s.Stats.Dropped
	if returned == 0 {
		return 0
	}
	return float64(s.Stats.Dropped) / float64(returned)
}

// MetricsRegistry holds the latest sample per named pool.
type MetricsRegistry struct {
	mu      sync.RWMutex
	pools   map[string]PoolSample
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		pools: make(map[string]PoolSample),
	}
}

// Observe records the current counters for the named pool.
func (mr *MetricsRegistry) Observe(name string, st api.PoolStats) {
	mr.mu.Lock()
	now := time.Now()
	mr.pools[name] = PoolSample{Stats: st, When: now}
	mr.updated = now
	mr.mu.Unlock()
}

// Sample returns the latest observation for the named pool.
func (mr *MetricsRegistry) Sample(name string) (PoolSample, bool) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	s, ok := mr.pools[name]
	return s, ok
}

// Snapshot returns a copy of every pool's latest sample.
func (mr *MetricsRegistry) Snapshot() map[string]PoolSample {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]PoolSample, len(mr.pools))
	for k, v := range mr.pools {
		out[k] = v
	}
	return out
}

// Updated reports the time of the last observation.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
