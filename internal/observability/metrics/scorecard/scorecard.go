// Package scorecardmetrics adds scorecard-specific instruments to the shared
// operation metrics.
package scorecardmetrics

import (
	"context"

	"github.com/Black-And-White-Club/three-under/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// ScorecardMetrics records scorecard service activity.
type ScorecardMetrics interface {
	metrics.OperationMetrics
	// RecordSaveFailure counts a failed write of a round to the save store.
	RecordSaveFailure(ctx context.Context, operation string)
	// RecordRoundStarted counts new rounds per course.
	RecordRoundStarted(ctx context.Context, courseID string)
	// RecordMalformedSave counts save records that had to be replaced by a default round.
	RecordMalformedSave(ctx context.Context)
}

type scorecardMetrics struct {
	metrics.OperationMetrics
	saveFailures  *prometheus.CounterVec
	roundsStarted *prometheus.CounterVec
	malformed     prometheus.Counter
}

// New registers the scorecard instruments on reg.
func New(reg prometheus.Registerer) ScorecardMetrics {
	m := &scorecardMetrics{
		OperationMetrics: metrics.NewOperationMetrics(reg, "scorecard"),
		saveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "scorecard",
			Name:      "save_failures_total",
			Help:      "Round writes to the save store that failed.",
		}, []string{"operation"}),
		roundsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "scorecard",
			Name:      "rounds_started_total",
			Help:      "Rounds created per course.",
		}, []string{"course_id"}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "scorecard",
			Name:      "malformed_saves_total",
			Help:      "Save records that could not be decoded.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.saveFailures, m.roundsStarted, m.malformed)
	}
	return m
}

func (m *scorecardMetrics) RecordSaveFailure(_ context.Context, operation string) {
	m.saveFailures.WithLabelValues(operation).Inc()
}

func (m *scorecardMetrics) RecordRoundStarted(_ context.Context, courseID string) {
	m.roundsStarted.WithLabelValues(courseID).Inc()
}

func (m *scorecardMetrics) RecordMalformedSave(context.Context) {
	m.malformed.Inc()
}

type noop struct {
	metrics.OperationMetrics
}

// NewNoop returns ScorecardMetrics that record nothing.
func NewNoop() ScorecardMetrics {
	return noop{OperationMetrics: metrics.NewNoop()}
}

func (noop) RecordSaveFailure(context.Context, string)  {}
func (noop) RecordRoundStarted(context.Context, string) {}
func (noop) RecordMalformedSave(context.Context)        {}
