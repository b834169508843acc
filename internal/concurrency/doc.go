// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency primitives backing the segment pool: a bounded lock-free
// MPMC queue for the global free list and cross-platform thread identity
// for per-thread cache shard selection.
//
// All implementations are cross-platform compatible (Linux and others)
// via build tags.
package concurrency
