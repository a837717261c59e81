// Package bench runs repeated optimizer passes over one instance and
// summarizes the fitness distribution, exporting records to CSV and to the
// configured metrics sinks.
package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	coremetrics "github.com/kilianp07/rcpsp-inv/core/metrics"
	"github.com/kilianp07/rcpsp-inv/core/rcpsp"
	"github.com/kilianp07/rcpsp-inv/core/solve"
	"github.com/kilianp07/rcpsp-inv/infra/logger"
	"github.com/kilianp07/rcpsp-inv/internal/eventbus"
)

// Config tunes a bench run.
type Config struct {
	// Runs is the number of independent optimizer passes.
	Runs int `json:"runs"`
	// Samples is the number of candidates each pass evaluates.
	Samples int `json:"samples"`
	// BaseSeed seeds the first pass; pass i uses BaseSeed+i.
	BaseSeed int64 `json:"base_seed"`
	// PerRunTimeoutSeconds bounds one pass; 0 means no limit.
	PerRunTimeoutSeconds int `json:"per_run_timeout_seconds"`
	// Out is the CSV output path.
	Out string `json:"out"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Runs == 0 {
		c.Runs = 30
	}
	if c.Samples == 0 {
		c.Samples = 1000
	}
	if c.BaseSeed == 0 {
		c.BaseSeed = 1000
	}
	if c.Out == "" {
		c.Out = "artifacts/bench.csv"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Runs < 0 || c.Samples < 0 || c.PerRunTimeoutSeconds < 0 {
		return fmt.Errorf("runs, samples and per_run_timeout_seconds must be >= 0")
	}
	return nil
}

// Algorithm names an optimizer and knows how to build a seeded instance of it.
type Algorithm struct {
	Name    string
	Factory func(seed int64) (solve.Optimizer, error)
}

// RandomAlgorithm is the uniform-sampling baseline.
func RandomAlgorithm(samples int) Algorithm {
	return Algorithm{
		Name: "random",
		Factory: func(seed int64) (solve.Optimizer, error) {
			return solve.NewRandomSampler(samples, rand.New(rand.NewSource(seed)))
		},
	}
}

// Record summarizes one bench case: the best-of-run fitness distribution
// over all passes.
type Record struct {
	RunID    string
	Instance string
	Algo     string
	Runs     int

	FitnessBest float64
	FitnessMean float64
	FitnessStd  float64

	MakespanBest int
	FeasibleRuns int
	Evaluations  int

	TimeMeanMs float64
	TimeStdMs  float64
}

// Runner executes bench cases.
type Runner struct {
	Cfg  Config
	Sink coremetrics.MetricsSink
	Bus  *eventbus.Bus[coremetrics.BatchEvent]
	Log  logger.Logger
}

// RunCase benches one algorithm against one instance. Each pass gets a fresh
// seeded optimizer; the best evaluation of every pass is recorded to the
// metrics sink and published on the bus.
func (r Runner) RunCase(ctx context.Context, instance string, eval *rcpsp.Evaluator, algo Algorithm) (Record, error) {
	log := r.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	sink := r.Sink
	if sink == nil {
		sink = coremetrics.NopSink{}
	}

	runID := uuid.NewString()
	fitnesses := make([]float64, 0, r.Cfg.Runs)
	timesMs := make([]float64, 0, r.Cfg.Runs)
	rec := Record{RunID: runID, Instance: instance, Algo: algo.Name, Runs: r.Cfg.Runs}

	for i := 0; i < r.Cfg.Runs; i++ {
		op, err := algo.Factory(r.Cfg.BaseSeed + int64(i))
		if err != nil {
			return Record{}, fmt.Errorf("run %d: build optimizer: %w", i, err)
		}

		runCtx := ctx
		cancel := func() {}
		if r.Cfg.PerRunTimeoutSeconds > 0 {
			runCtx, cancel = context.WithTimeout(ctx, time.Duration(r.Cfg.PerRunTimeoutSeconds)*time.Second)
		}
		res, err := op.Solve(runCtx, eval)
		cancel()
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve: %w", i, err)
		}

		ev := res.Evaluation
		fitnesses = append(fitnesses, ev.Fitness)
		timesMs = append(timesMs, float64(res.Duration.Microseconds())/1000.0)
		rec.Evaluations += res.Evaluations
		if i == 0 || ev.Fitness < rec.FitnessBest {
			rec.FitnessBest = ev.Fitness
			rec.MakespanBest = ev.Makespan
		}
		if ev.Feasible() {
			rec.FeasibleRuns++
		}

		now := time.Now()
		if err := sink.RecordEvaluation([]coremetrics.EvaluationRecord{{
			RunID:      runID,
			Instance:   instance,
			Fitness:    ev.Fitness,
			Makespan:   ev.Makespan,
			Precedence: ev.Violations.Precedence,
			Renewable:  ev.Violations.Renewable,
			Inventory:  ev.Violations.Inventory,
			Feasible:   ev.Feasible(),
			Duration:   res.Duration,
			Time:       now,
		}}); err != nil {
			log.Warnf("metrics sink: %v", err)
		}
		batch := coremetrics.BatchEvent{
			RunID:       runID,
			Instance:    instance,
			Batch:       i,
			Samples:     res.Evaluations,
			BestFitness: ev.Fitness,
			Time:        now,
		}
		if ev.Feasible() {
			batch.Feasible = 1
		}
		if br, ok := sink.(coremetrics.BatchRecorder); ok {
			if err := br.RecordBatch(batch); err != nil {
				log.Warnf("metrics sink: %v", err)
			}
		}
		if r.Bus != nil {
			r.Bus.Publish(batch)
		}
	}

	rec.FitnessMean = stat.Mean(fitnesses, nil)
	rec.FitnessStd = stdOrZero(fitnesses)
	rec.TimeMeanMs = stat.Mean(timesMs, nil)
	rec.TimeStdMs = stdOrZero(timesMs)
	return rec, nil
}

// stdOrZero returns the sample standard deviation, or 0 when fewer than two
// observations exist (stat.StdDev yields NaN there).
func stdOrZero(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
