// File: pool/magazine.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-thread second-level cache shard. Each magazine is a FIFO bounded
// by byte accounting, guarded by its own mutex: goroutines migrate
// between OS threads, so shard access cannot be lock-free. A shard is
// selected by thread id modulo the shard count, so it is contended when
// the scheduler moves a goroutine mid-operation or when several threads
// map to the same shard.

package pool

import (
	"sync"

	"github.com/eapache/queue"
)

type magazine[T any] struct {
	mu    sync.Mutex
	items *queue.Queue
	bytes int
	_     [cacheLinePad]byte
}

const cacheLinePad = 64

func newMagazine[T any]() *magazine[T] {
	return &magazine[T]{items: queue.New()}
}

// push stores val if the magazine stays within maxBytes. Returns false
// on overflow; the caller spills to the global level.
func (m *magazine[T]) push(val T, itemBytes, maxBytes int) bool {
	m.mu.Lock()
	if m.bytes+itemBytes > maxBytes {
		m.mu.Unlock()
		return false
	}
	m.items.Add(val)
	m.bytes += itemBytes
	m.mu.Unlock()
	return true
}

// pop removes the oldest item; ok is false if the magazine is empty.
func (m *magazine[T]) pop(itemBytes int) (val T, ok bool) {
	m.mu.Lock()
	if m.items.Length() == 0 {
		m.mu.Unlock()
		return val, false
	}
	val = m.items.Remove().(T)
	m.bytes -= itemBytes
	m.mu.Unlock()
	return val, true
}
