// Package metrics defines the observability events emitted while scoring
// candidate schedules, and the sink interfaces that record them. Concrete
// sinks (Prometheus, InfluxDB) live in infra/metrics.
package metrics

import "time"

// EvaluationRecord captures one scored candidate.
type EvaluationRecord struct {
	RunID      string
	Instance   string
	Fitness    float64
	Makespan   int
	Precedence int
	Renewable  int
	Inventory  int
	Feasible   bool
	Duration   time.Duration
	Time       time.Time
}

// MetricsSink records evaluation results for observability purposes.
type MetricsSink interface {
	RecordEvaluation(recs []EvaluationRecord) error
}

// BatchEvent summarizes one bench batch of candidates.
type BatchEvent struct {
	RunID       string
	Instance    string
	Batch       int
	Samples     int
	BestFitness float64
	Feasible    int
	Time        time.Time
}

// BatchRecorder is implemented by sinks able to record bench batches.
type BatchRecorder interface {
	RecordBatch(ev BatchEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordEvaluation([]EvaluationRecord) error { return nil }

// Ensure NopSink implements BatchRecorder.
func (NopSink) RecordBatch(BatchEvent) error { return nil }
