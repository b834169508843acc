// File: buffer/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Segment recycling over the two-level free list. take returns a
// cleared owner segment; recycle silently drops shared segments, whose
// blocks stay alive until the last alias releases them.

package buffer

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/control"
	"github.com/momentics/hioload-buf/pool"
)

// Pool capacity defaults. These bound idle memory only.
const (
	DefaultGlobalMaxBytes    = 64 * SegmentSize
	DefaultPerThreadMaxBytes = 8 * SegmentSize
)

// SegmentPoolConfig bounds a segment pool. Zero fields take defaults.
type SegmentPoolConfig struct {
	GlobalMaxBytes    int
	PerThreadMaxBytes int
	Shards            int

	// Probes, when set, receives this pool's live stats under
	// ProbeName ("segmentpool" if empty).
	Probes    *control.DebugProbes
	ProbeName string
}

// PoolConfigFromStore builds a SegmentPoolConfig from control tunables.
func PoolConfigFromStore(cs *control.ConfigStore) SegmentPoolConfig {
	return SegmentPoolConfig{
		GlobalMaxBytes:    cs.GetInt(control.KeyPoolGlobalMaxBytes, DefaultGlobalMaxBytes),
		PerThreadMaxBytes: cs.GetInt(control.KeyPoolPerThreadMaxBytes, DefaultPerThreadMaxBytes),
		Shards:            cs.GetInt(control.KeyPoolShards, 0),
	}
}

// SegmentPool is a bounded MPMC free list of segments. Safe for
// concurrent take and recycle from independent buffer owners.
type SegmentPool struct {
	free        *pool.TwoLevel[*segment]
	sharedDrops atomic.Int64
}

// NewSegmentPool creates a segment pool with the given bounds.
func NewSegmentPool(cfg SegmentPoolConfig) *SegmentPool {
	if cfg.GlobalMaxBytes <= 0 {
		cfg.GlobalMaxBytes = DefaultGlobalMaxBytes
	}
	if cfg.PerThreadMaxBytes == 0 {
		cfg.PerThreadMaxBytes = DefaultPerThreadMaxBytes
	}
	sp := &SegmentPool{
		free: pool.New(pool.Config{
			GlobalMaxBytes:    cfg.GlobalMaxBytes,
			PerThreadMaxBytes: cfg.PerThreadMaxBytes,
			ItemBytes:         SegmentSize,
			Shards:            cfg.Shards,
		}, newSegment),
	}
	if cfg.Probes != nil {
		name := cfg.ProbeName
		if name == "" {
			name = "segmentpool"
		}
		cfg.Probes.RegisterPool(name, sp)
	}
	return sp
}

// take returns a segment with cleared cursors, unset links, and the
// owner flag.
func (sp *SegmentPool) take() *segment {
	return sp.free.Take()
}

// recycle returns s to the free list. Shared segments are silently
// dropped: their blocks are aliased and must not be reused.
func (sp *SegmentPool) recycle(s *segment) {
	if s.shared {
		sp.sharedDrops.Add(1)
		return
	}
	s.pos, s.limit = 0, 0
	s.owner = true
	s.prev, s.next = nil, nil
	sp.free.Recycle(s)
}

// ByteCount reports the bytes currently held idle by the pool.
func (sp *SegmentPool) ByteCount() int64 { return sp.free.PooledBytes() }

// PooledBytes implements api.Pool.
func (sp *SegmentPool) PooledBytes() int64 { return sp.free.PooledBytes() }

// Stats implements api.Pool. Shared-segment drops count as Dropped.
func (sp *SegmentPool) Stats() api.PoolStats {
	st := sp.free.Stats()
	st.Dropped += sp.sharedDrops.Load()
	return st
}

var _ api.Pool = (*SegmentPool)(nil)

var (
	defaultOnce sync.Once
	defaultPool *SegmentPool
)

// DefaultPool returns the process-wide segment pool so independent
// buffers reuse the same free list instead of fragmenting allocations.
// Its stats publish to control.DefaultProbes under "segmentpool".
func DefaultPool() *SegmentPool {
	defaultOnce.Do(func() {
		defaultPool = NewSegmentPool(SegmentPoolConfig{
			Probes: control.DefaultProbes(),
		})
	})
	return defaultPool
}

// shellPool recycles Buffer shells; their segments are pooled
// separately.
var shellPool = pool.NewSyncPool(func() *Buffer { return new(Buffer) })
