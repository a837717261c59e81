package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	coremetrics "github.com/kilianp07/rcpsp-inv/core/metrics"
	"github.com/kilianp07/rcpsp-inv/core/rcpsp"
	"github.com/kilianp07/rcpsp-inv/infra/logger"
	_ "github.com/kilianp07/rcpsp-inv/infra/metrics"
	"github.com/kilianp07/rcpsp-inv/internal/bench"
	"github.com/kilianp07/rcpsp-inv/internal/eventbus"
)

var benchCmd = &cobra.Command{
	Use:   "bench <instance>...",
	Short: "Bench the random-sampling baseline against instances",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("bench")

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New[coremetrics.BatchEvent]()
	defer bus.Close()
	progress := bus.Subscribe()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range progress {
			logg.Debugw("batch done", map[string]any{
				"instance":     ev.Instance,
				"batch":        ev.Batch,
				"best_fitness": ev.BestFitness,
			})
		}
	}()

	runner := bench.Runner{Cfg: cfg.Bench, Sink: sink, Bus: bus, Log: logg}
	algo := bench.RandomAlgorithm(cfg.Bench.Samples)

	var records []bench.Record
	for _, path := range args {
		inst, err := rcpsp.LoadInstance(path)
		if err != nil {
			return fmt.Errorf("load instance %s: %w", path, err)
		}
		eval, err := rcpsp.NewEvaluator(inst, cfg.Evaluator)
		if err != nil {
			return err
		}

		logg.Infof("benching %s: %d tasks, %d runs x %d samples", path, inst.NumTasks(), cfg.Bench.Runs, cfg.Bench.Samples)
		rec, err := runner.RunCase(ctx, path, eval, algo)
		if err != nil {
			return err
		}
		records = append(records, rec)
		logg.Infof("  best=%.0f mean=%.2f std=%.2f feasible=%d/%d", rec.FitnessBest, rec.FitnessMean, rec.FitnessStd, rec.FeasibleRuns, rec.Runs)
	}

	bus.Close()
	wg.Wait()

	if err := bench.WriteCSV(cfg.Bench.Out, records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	logg.Infof("saved %s", cfg.Bench.Out)
	return nil
}
