package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	coremetrics "github.com/kilianp07/rcpsp-inv/core/metrics"
	"github.com/kilianp07/rcpsp-inv/core/rcpsp"
	"github.com/kilianp07/rcpsp-inv/infra/logger"
	_ "github.com/kilianp07/rcpsp-inv/infra/metrics"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <instance> <solution>",
	Short: "Score a candidate schedule against an instance",
	Args:  cobra.ExactArgs(2),
	RunE:  runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("evaluate")

	inst, err := rcpsp.LoadInstance(args[0])
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	starts, err := rcpsp.LoadSolution(args[1])
	if err != nil {
		return fmt.Errorf("load solution: %w", err)
	}
	eval, err := rcpsp.NewEvaluator(inst, cfg.Evaluator)
	if err != nil {
		return err
	}

	begin := time.Now()
	res, err := eval.Evaluate(starts)
	if err != nil {
		return err
	}
	elapsed := time.Since(begin)

	logg.Debugw("evaluated", map[string]any{
		"tasks":       inst.NumTasks(),
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	})

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	if err := sink.RecordEvaluation([]coremetrics.EvaluationRecord{{
		Instance:   args[0],
		Fitness:    res.Fitness,
		Makespan:   res.Makespan,
		Precedence: res.Violations.Precedence,
		Renewable:  res.Violations.Renewable,
		Inventory:  res.Violations.Inventory,
		Feasible:   res.Feasible(),
		Duration:   elapsed,
		Time:       time.Now(),
	}}); err != nil {
		logg.Warnf("metrics sink: %v", err)
	}

	fmt.Printf("fitness               %g\n", res.Fitness)
	fmt.Printf("makespan              %d\n", res.Makespan)
	fmt.Printf("feasible              %t\n", res.Feasible())
	fmt.Printf("precedence violation  %d\n", res.Violations.Precedence)
	fmt.Printf("renewable violation   %d\n", res.Violations.Renewable)
	fmt.Printf("inventory violation   %d\n", res.Violations.Inventory)
	return nil
}
