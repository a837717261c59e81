package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/rcpsp-inv/core/metrics"
)

func TestPromSinkRecordsEvaluations(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	recs := []coremetrics.EvaluationRecord{
		{Fitness: 42, Makespan: 42, Feasible: true, Duration: time.Millisecond},
		{Fitness: 1_000_042, Makespan: 42, Feasible: false, Duration: time.Millisecond},
	}
	require.NoError(t, sink.RecordEvaluation(recs))
	require.NoError(t, sink.RecordBatch(coremetrics.BatchEvent{}))

	feasible := testutil.ToFloat64(sink.evaluations.WithLabelValues("true"))
	infeasible := testutil.ToFloat64(sink.evaluations.WithLabelValues("false"))
	require.Equal(t, 1.0, feasible)
	require.Equal(t, 1.0, infeasible)
	require.Equal(t, 1.0, testutil.ToFloat64(sink.batches))
}

func TestPromSinkDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	_, err = NewPromSinkWithRegistry(reg)
	require.Error(t, err)
}
