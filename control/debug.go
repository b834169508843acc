// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Probe registry for pool and buffer introspection. A probe is a named
// closure returning a state snapshot. Pools publish their stats here;
// the monitor drains the registry on an interval.

package control

import (
	"sync"

	"github.com/momentics/hioload-buf/api"
)

// DebugProbes holds probe functions keyed by component name.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates an empty probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named state hook, replacing any previous
// probe under the same name.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// RegisterPool publishes a pool's stats snapshot as a probe, so every
// DumpState reports the pool's live counters.
func (dp *DebugProbes) RegisterPool(name string, p api.Pool) {
	dp.RegisterProbe(name, func() any { return p.Stats() })
}

// Unregister removes a probe. Removing an unknown name is a no-op.
func (dp *DebugProbes) Unregister(name string) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	delete(dp.probes, name)
}

// DumpState invokes every probe and returns the collected states.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	fns := make(map[string]func() any, len(dp.probes))
	for k, fn := range dp.probes {
		fns[k] = fn
	}
	dp.mu.RUnlock()

	// Probes run outside the lock: a pool probe may take pool-internal
	// locks of its own.
	out := make(map[string]any, len(fns))
	for k, fn := range fns {
		out[k] = fn()
	}
	return out
}

var _ api.Probes = (*DebugProbes)(nil)

var (
	probesOnce    sync.Once
	defaultProbes *DebugProbes
)

// DefaultProbes returns the process-wide probe registry. The default
// segment pool publishes its stats here under "segmentpool".
func DefaultProbes() *DebugProbes {
	probesOnce.Do(func() {
		defaultProbes = NewDebugProbes()
	})
	return defaultProbes
}
