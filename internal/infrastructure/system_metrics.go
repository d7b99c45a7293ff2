package infrastructure

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeStats is a snapshot of the Go runtime of this process
type RuntimeStats struct {
	Goroutines  int64
	HeapAlloc   int64
	Sys         int64
	GCCount     uint32
	LastGCPause time.Duration
	CPUCount    int
	Uptime      time.Duration
}

// ReadRuntimeStats samples the runtime
func ReadRuntimeStats(startTime time.Time) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		Goroutines:  int64(runtime.NumGoroutine()),
		HeapAlloc:   int64(mem.HeapAlloc),
		Sys:         int64(mem.Sys),
		GCCount:     mem.NumGC,
		LastGCPause: time.Duration(mem.PauseNs[(mem.NumGC+255)%256]),
		CPUCount:    runtime.NumCPU(),
		Uptime:      time.Since(startTime),
	}
}

// Map renders the snapshot for the liveness endpoint
func (s RuntimeStats) Map() map[string]interface{} {
	return map[string]interface{}{
		"go_version":       runtime.Version(),
		"goroutines":       s.Goroutines,
		"heap_alloc_mb":    s.HeapAlloc / 1024 / 1024,
		"sys_mb":           s.Sys / 1024 / 1024,
		"gc_count":         s.GCCount,
		"last_gc_pause_ms": s.LastGCPause.Milliseconds(),
		"cpu_count":        s.CPUCount,
		"uptime":           s.Uptime.Seconds(),
	}
}

// RegisterRuntimeMetrics publishes runtime gauges that are sampled on every
// collection, so no background goroutine is needed.
func RegisterRuntimeMetrics(meter metric.Meter, startTime time.Time) (metric.Registration, error) {
	goroutines, err := meter.Int64ObservableGauge(
		"process_goroutines",
		metric.WithDescription("Number of active goroutines"),
	)
	if err != nil {
		return nil, err
	}

	heap, err := meter.Int64ObservableGauge(
		"process_heap_alloc_bytes",
		metric.WithDescription("Bytes of allocated heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	sys, err := meter.Int64ObservableGauge(
		"process_sys_bytes",
		metric.WithDescription("Bytes of memory obtained from the OS"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCount, err := meter.Int64ObservableCounter(
		"process_gc_total",
		metric.WithDescription("Completed GC cycles"),
	)
	if err != nil {
		return nil, err
	}

	uptime, err := meter.Float64ObservableGauge(
		"process_uptime_seconds",
		metric.WithDescription("Seconds since the process started"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := ReadRuntimeStats(startTime)
		o.ObserveInt64(goroutines, stats.Goroutines)
		o.ObserveInt64(heap, stats.HeapAlloc)
		o.ObserveInt64(sys, stats.Sys)
		o.ObserveInt64(gcCount, int64(stats.GCCount))
		o.ObserveFloat64(uptime, stats.Uptime.Seconds())
		return nil
	}, goroutines, heap, sys, gcCount, uptime)
	if err != nil {
		return nil, fmt.Errorf("failed to register runtime metrics: %w", err)
	}
	return reg, nil
}
