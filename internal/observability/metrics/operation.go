// Package metrics holds the Prometheus instruments shared by the application
// services.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records the lifecycle of a service operation.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

// Namespace prefixes every metric the process exports.
const Namespace = "three_under"

type operationMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewOperationMetrics registers operation counters and a duration histogram
// under the given subsystem.
func NewOperationMetrics(reg prometheus.Registerer, subsystem string) OperationMetrics {
	labels := []string{"operation", "service"}
	m := &operationMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "operation_successes_total",
			Help:      "Service operations that completed without an infrastructure error.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error or panicked.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
	}
	if reg != nil {
		reg.MustRegister(m.attempts, m.successes, m.failures, m.duration)
	}
	return m
}

func (m *operationMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *operationMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *operationMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *operationMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

type noopOperationMetrics struct{}

// NewNoop returns OperationMetrics that record nothing.
func NewNoop() OperationMetrics { return noopOperationMetrics{} }

func (noopOperationMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopOperationMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopOperationMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopOperationMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
