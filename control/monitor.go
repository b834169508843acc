// control/monitor.go
// Author: momentics <momentics@gmail.com>
//
// Periodic probe collector. Snapshots the probe registry on an
// interval, records pool samples into the metrics registry, and emits
// one structured record per probe through slogx.

package control

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pamburus/slogx"

	"github.com/momentics/hioload-buf/api"
)

// Monitor logs probe snapshots on a fixed interval.
type Monitor struct {
	log      *slogx.Logger
	probes   *DebugProbes
	metrics  *MetricsRegistry
	interval time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewMonitor creates a monitor over probes logging through log. A zero
// or negative interval defaults to one minute.
func NewMonitor(log *slogx.Logger, probes *DebugProbes, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Monitor{
		log:      log,
		probes:   probes,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// ObserveInto records pool-stats probes into mr on every tick. Must be
// called before Start.
func (m *Monitor) ObserveInto(mr *MetricsRegistry) *Monitor {
	m.metrics = mr
	return m
}

// Start launches the collection loop. Call Stop to end it.
func (m *Monitor) Start() {
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.emit()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop ends the loop and waits for it to exit. Idempotent.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done
}

func (m *Monitor) emit() {
	for name, state := range m.probes.DumpState() {
		st, ok := state.(api.PoolStats)
		if !ok {
			m.log.Info("probe snapshot",
				slog.String("probe", name),
				slog.Any("state", state),
			)
			continue
		}
		if m.metrics != nil {
			m.metrics.Observe(name, st)
		}
		m.log.Info("pool probe",
			slog.String("probe", name),
			slog.Int64("pooled_bytes", st.PooledBytes),
			slog.Int64("takes", st.TotalTake),
			slog.Int64("recycles", st.TotalRecycle),
			slog.Int64("fresh", st.Fresh),
			slog.Int64("dropped", st.Dropped),
		)
	}
}
