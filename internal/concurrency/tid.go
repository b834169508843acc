//go:build !linux

// File: internal/concurrency/tid.go
// Author: momentics <momentics@gmail.com>
//
// Platform-generic symbol for thread identity. Overridden by a matching
// platform file via build tag. On unsupported systems every caller maps
// to the same cache shard, which stays correct under the shard lock.

package concurrency

// ThreadID returns a stable identifier for the calling OS thread, used
// as a locality hint for per-thread cache shard selection. Goroutines
// may migrate between threads, so the hint carries no exclusivity.
func ThreadID() int { return 0 }
