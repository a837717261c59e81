// Package solve defines the capability contract between the evaluator and
// external search strategies: propose a start-time vector, receive a scalar
// fitness. Genetic, annealing, tabu or RL searches all plug in through the
// same Optimizer interface without the evaluator knowing their internals.
package solve

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/kilianp07/rcpsp-inv/core/rcpsp"
)

// Optimizer produces a candidate schedule for the evaluator's instance.
type Optimizer interface {
	Solve(ctx context.Context, eval *rcpsp.Evaluator) (Result, error)
}

// Result is the best candidate an optimizer found.
type Result struct {
	Starts      []int
	Evaluation  rcpsp.Evaluation
	Evaluations int
	Duration    time.Duration
}

// RandomSampler evaluates uniformly sampled start-time vectors and keeps the
// best. It is the baseline the bench harness runs against, not a search
// strategy.
type RandomSampler struct {
	Samples int
	Rng     *rand.Rand
}

// NewRandomSampler returns a sampler drawing the given number of candidates.
func NewRandomSampler(samples int, rng *rand.Rand) (*RandomSampler, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("samples must be > 0 (got %d)", samples)
	}
	if rng == nil {
		return nil, fmt.Errorf("rng is nil")
	}
	return &RandomSampler{Samples: samples, Rng: rng}, nil
}

// Solve draws Samples candidates from the instance's horizon and returns the
// lowest-fitness one. The context is checked between evaluations.
func (s *RandomSampler) Solve(ctx context.Context, eval *rcpsp.Evaluator) (Result, error) {
	begin := time.Now()
	var best Result
	for n := 0; n < s.Samples; n++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		starts := eval.Instance().RandomSolution(s.Rng)
		ev, err := eval.Evaluate(starts)
		if err != nil {
			return Result{}, err
		}
		if n == 0 || ev.Fitness < best.Evaluation.Fitness {
			best.Starts = starts
			best.Evaluation = ev
		}
		best.Evaluations++
	}
	best.Duration = time.Since(begin)
	return best, nil
}
