// Package metrics provides concrete sinks recording evaluation results to
// Prometheus and InfluxDB.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/rcpsp-inv/core/metrics"
)

// PromSink records evaluation events in Prometheus metrics.
type PromSink struct {
	evaluations *prometheus.CounterVec
	fitness     prometheus.Histogram
	makespan    prometheus.Histogram
	duration    prometheus.Histogram
	batches     prometheus.Counter
}

// NewPromSink registers evaluation metrics on the default Prometheus
// registerer. Serving the metrics endpoint is the caller's concern.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rcpsp_evaluations_total",
			Help: "Total number of candidate schedules evaluated",
		}, []string{"feasible"}),
		fitness: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rcpsp_fitness",
			Help:    "Penalized fitness of evaluated candidates",
			Buckets: prometheus.ExponentialBuckets(1, 10, 10),
		}),
		makespan: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rcpsp_makespan",
			Help:    "Makespan of evaluated candidates",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rcpsp_evaluation_duration_seconds",
			Help:    "Wall time of a single evaluation",
			Buckets: prometheus.DefBuckets,
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rcpsp_bench_batches_total",
			Help: "Total number of bench batches completed",
		}),
	}
	for _, c := range []prometheus.Collector{s.evaluations, s.fitness, s.makespan, s.duration, s.batches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RecordEvaluation updates counters and histograms for each record.
func (s *PromSink) RecordEvaluation(recs []coremetrics.EvaluationRecord) error {
	for _, r := range recs {
		s.evaluations.WithLabelValues(strconv.FormatBool(r.Feasible)).Inc()
		s.fitness.Observe(r.Fitness)
		s.makespan.Observe(float64(r.Makespan))
		s.duration.Observe(r.Duration.Seconds())
	}
	return nil
}

// RecordBatch counts completed bench batches.
func (s *PromSink) RecordBatch(coremetrics.BatchEvent) error {
	s.batches.Inc()
	return nil
}
