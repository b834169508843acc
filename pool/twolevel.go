// File: pool/twolevel.go
// Package pool implements the two-level bounded free list.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Level one is a bounded lock-free MPMC queue shared by all threads.
// Level two is an array of per-thread magazines selected by thread id.
// Takes prefer the local magazine, then the global queue, then fresh
// allocation. Recycles prefer the local magazine, spill to the global
// queue, and drop to the allocator past both caps.

package pool

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-buf/api"
	"github.com/momentics/hioload-buf/internal/concurrency"
)

// Config bounds a TwoLevel free list. ItemBytes is the fixed accounting
// cost of one pooled item.
type Config struct {
	GlobalMaxBytes    int
	PerThreadMaxBytes int
	ItemBytes         int
	Shards            int // defaults to runtime.NumCPU()
}

// TwoLevel is a bounded MPMC free list for fixed-cost items.
type TwoLevel[T any] struct {
	cfg    Config
	alloc  func() T
	global *concurrency.MPMCQueue[T]
	shards []*magazine[T]

	globalBytes atomic.Int64
	pooledBytes atomic.Int64

	totalTake    atomic.Int64
	totalRecycle atomic.Int64
	fresh        atomic.Int64
	dropped      atomic.Int64
}

// New creates a TwoLevel free list. alloc produces a fresh item on pool
// miss and must never return an unusable value.
func New[T any](cfg Config, alloc func() T) *TwoLevel[T] {
	if cfg.ItemBytes <= 0 {
		panic("pool: ItemBytes must be positive")
	}
	if cfg.Shards <= 0 {
		cfg.Shards = runtime.NumCPU()
	}
	if cfg.GlobalMaxBytes < cfg.ItemBytes {
		cfg.GlobalMaxBytes = cfg.ItemBytes
	}
	p := &TwoLevel[T]{
		cfg:    cfg,
		alloc:  alloc,
		global: concurrency.NewMPMCQueue[T](cfg.GlobalMaxBytes / cfg.ItemBytes),
		shards: make([]*magazine[T], cfg.Shards),
	}
	for i := range p.shards {
		p.shards[i] = newMagazine[T]()
	}
	return p
}

func (p *TwoLevel[T]) shard() *magazine[T] {
	return p.shards[concurrency.ThreadID()%len(p.shards)]
}

// Take returns a pooled item or a fresh allocation. It never blocks.
func (p *TwoLevel[T]) Take() T {
	p.totalTake.Add(1)
	if val, ok := p.shard().pop(p.cfg.ItemBytes); ok {
		p.pooledBytes.Add(-int64(p.cfg.ItemBytes))
		return val
	}
	if val, ok := p.global.Dequeue(); ok {
		p.globalBytes.Add(-int64(p.cfg.ItemBytes))
		p.pooledBytes.Add(-int64(p.cfg.ItemBytes))
		return val
	}
	p.fresh.Add(1)
	return p.alloc()
}

// Recycle stores val for reuse, dropping it once both levels are at
// capacity. The caller must have reset val before recycling.
func (p *TwoLevel[T]) Recycle(val T) {
	itemBytes := int64(p.cfg.ItemBytes)
	if p.shard().push(val, p.cfg.ItemBytes, p.cfg.PerThreadMaxBytes) {
		p.pooledBytes.Add(itemBytes)
		p.totalRecycle.Add(1)
		return
	}
	for {
		n := p.globalBytes.Load()
		if n+itemBytes > int64(p.cfg.GlobalMaxBytes) {
			p.dropped.Add(1)
			return
		}
		if p.globalBytes.CompareAndSwap(n, n+itemBytes) {
			break
		}
	}
	if !p.global.Enqueue(val) {
		// Queue slots are sized from the byte cap, so a failed enqueue
		// means a racing recycle; give the reservation back and drop.
		p.globalBytes.Add(-itemBytes)
		p.dropped.Add(1)
		return
	}
	p.pooledBytes.Add(itemBytes)
	p.totalRecycle.Add(1)
}

// PooledBytes reports bytes currently held idle across both levels.
func (p *TwoLevel[T]) PooledBytes() int64 {
	return p.pooledBytes.Load()
}

// Stats exposes accounting counters.
func (p *TwoLevel[T]) Stats() api.PoolStats {
	return api.PoolStats{
		TotalTake:    p.totalTake.Load(),
		TotalRecycle: p.totalRecycle.Load(),
		Fresh:        p.fresh.Load(),
		Dropped:      p.dropped.Load(),
		PooledBytes:  p.pooledBytes.Load(),
	}
}

var _ api.Pool = (*TwoLevel[int])(nil)
