package dimred

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement it to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordFit is called after each fit operation.
	RecordFit(method string, duration time.Duration, err error)

	// RecordPredict is called after each predict operation.
	// rows is the number of rows mapped.
	RecordPredict(method string, rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(string, time.Duration, error)          {}
func (NoopMetricsCollector) RecordPredict(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection,
// useful for debugging without external dependencies.
type BasicMetricsCollector struct {
	FitCount        atomic.Int64
	FitErrors       atomic.Int64
	FitTotalNanos   atomic.Int64
	PredictCount    atomic.Int64
	PredictRows     atomic.Int64
	PredictErrors   atomic.Int64
	PredictTotalNan atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(_ string, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// RecordPredict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPredict(_ string, rows int, duration time.Duration, err error) {
	b.PredictCount.Add(1)
	b.PredictRows.Add(int64(rows))
	b.PredictTotalNan.Add(duration.Nanoseconds())
	if err != nil {
		b.PredictErrors.Add(1)
	}
}
