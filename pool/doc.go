// Package pool
// Author: momentics <momentics@gmail.com>
//
// Two-level bounded free lists for fixed-cost items.
//
// TwoLevel combines a lock-free global queue with per-thread magazine
// shards so concurrent producers recycle and reuse without contending on
// a single list. Capacity bounds limit idle memory only; allocation
// correctness never depends on them.
// See twolevel.go, magazine.go, objpool.go for implementation details.
package pool
