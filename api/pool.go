// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Pool accounting contracts: bounded free-list observability for
// segment recycling.

package api

// Pool exposes accounting for a bounded free list.
type Pool interface {
	// PooledBytes reports the bytes currently held idle by the pool.
	PooledBytes() int64

	// Stats exposes resource/accounting metrics for observability.
	Stats() PoolStats
}

// Probes exposes runtime introspection over pools. A pool publishes a
// named closure returning its current PoolStats; collectors dump every
// registered state for diagnostics or periodic logging.
type Probes interface {
	// RegisterProbe inserts a named state hook, replacing any previous
	// probe under the same name.
	RegisterProbe(name string, fn func() any)

	// DumpState returns the output of every registered probe.
	DumpState() map[string]any
}

// PoolStats aggregates allocation/reuse counters.
type PoolStats struct {
	// TotalTake counts items handed out, pooled or fresh.
	TotalTake int64
	// TotalRecycle counts items accepted back into the free list.
	TotalRecycle int64
	// Fresh counts pool misses satisfied by fresh allocation.
	Fresh int64
	// Dropped counts recycles abandoned to the allocator, whether for
	// capacity or because the item was shared.
	Dropped int64
	// PooledBytes is the current idle byte count across both levels.
	PooledBytes int64
}
