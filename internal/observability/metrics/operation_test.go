package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOperationMetrics(reg, "test")
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "SetScore", "ScorecardService")
	m.RecordOperationAttempt(ctx, "SetScore", "ScorecardService")
	m.RecordOperationSuccess(ctx, "SetScore", "ScorecardService")
	m.RecordOperationFailure(ctx, "SetScore", "ScorecardService")
	m.RecordOperationDuration(ctx, "SetScore", "ScorecardService", 5*time.Millisecond)

	om := m.(*operationMetrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(om.attempts.WithLabelValues("SetScore", "ScorecardService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(om.successes.WithLabelValues("SetScore", "ScorecardService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(om.failures.WithLabelValues("SetScore", "ScorecardService")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["three_under_test_operation_duration_seconds"])
}

func TestNoop(t *testing.T) {
	m := NewNoop()
	assert.NotPanics(t, func() {
		m.RecordOperationAttempt(context.Background(), "op", "svc")
		m.RecordOperationDuration(context.Background(), "op", "svc", time.Second)
	})
}
