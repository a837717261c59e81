package rcpsp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newEvaluator(t *testing.T, caps, levels []int, tasks []Task) *Evaluator {
	t.Helper()
	inst, err := NewInstance(caps, levels, tasks)
	require.NoError(t, err)
	eval, err := NewEvaluator(inst, Config{})
	require.NoError(t, err)
	return eval
}

func TestEvaluateFeasibleChain(t *testing.T) {
	eval := newEvaluator(t, []int{4}, []int{0}, validTasks())

	res, err := eval.Evaluate([]int{0, 2, 5})
	require.NoError(t, err)
	require.True(t, res.Feasible())
	require.Equal(t, 10, res.Makespan)
	require.Equal(t, 10.0, res.Fitness)
	require.Equal(t, Violations{}, res.Violations)
}

func TestPrecedenceViolationProportionalToOverlap(t *testing.T) {
	tasks := []Task{
		{Duration: 4, Successors: []int{1}},
		{Duration: 2},
	}
	eval := newEvaluator(t, nil, nil, tasks)

	// Successor starts 3 units before its predecessor finishes.
	res, err := eval.Evaluate([]int{0, 1})
	require.NoError(t, err)
	require.Equal(t, 3, res.Violations.Precedence)

	// One unit of overlap less.
	res, err = eval.Evaluate([]int{0, 2})
	require.NoError(t, err)
	require.Equal(t, 2, res.Violations.Precedence)

	// Exactly back to back is feasible.
	res, err = eval.Evaluate([]int{0, 4})
	require.NoError(t, err)
	require.Zero(t, res.Violations.Precedence)
}

func TestRenewableOveruseIntegratesOverTime(t *testing.T) {
	tasks := []Task{
		{Duration: 4, Demands: []int{3}},
		{Duration: 4, Demands: []int{3}},
	}
	eval := newEvaluator(t, []int{4}, nil, tasks)

	// Full overlap: usage 6 vs capacity 4 over 4 time units.
	res, err := eval.Evaluate([]int{0, 0})
	require.NoError(t, err)
	require.Equal(t, 8, res.Violations.Renewable)

	// Partial overlap on [2, 4): overuse 2 x length 2.
	res, err = eval.Evaluate([]int{0, 2})
	require.NoError(t, err)
	require.Equal(t, 4, res.Violations.Renewable)

	// Sequential execution fits the capacity.
	res, err = eval.Evaluate([]int{0, 4})
	require.NoError(t, err)
	require.Zero(t, res.Violations.Renewable)
	require.True(t, res.Feasible())
}

func TestInventoryShortfall(t *testing.T) {
	tasks := []Task{
		{Duration: 2, Consumption: []int{0}, Production: []int{5}, Demands: nil},
		{Duration: 3, Consumption: []int{5}, Production: []int{0}},
	}
	eval := newEvaluator(t, nil, []int{0}, tasks)

	// Consumer starts before the producer finishes: level dips to -5.
	res, err := eval.Evaluate([]int{0, 0})
	require.NoError(t, err)
	require.Equal(t, 5, res.Violations.Inventory)

	// Producer finishes first, stock covers the consumer.
	res, err = eval.Evaluate([]int{0, 2})
	require.NoError(t, err)
	require.Zero(t, res.Violations.Inventory)
	require.True(t, res.Feasible())
}

func TestInventoryProductionPostsBeforeConsumptionAtSameEvent(t *testing.T) {
	// Producer finishes exactly when the consumer starts. Production must
	// replenish before the shortfall check.
	tasks := []Task{
		{Duration: 2, Consumption: []int{0}, Production: []int{5}},
		{Duration: 1, Consumption: []int{5}, Production: []int{0}},
	}
	eval := newEvaluator(t, nil, []int{0}, tasks)

	res, err := eval.Evaluate([]int{0, 2})
	require.NoError(t, err)
	require.Zero(t, res.Violations.Inventory)
}

func TestInventoryShortfallAccumulatesPerEvent(t *testing.T) {
	// Two consumers with no producer: level -2 after the first start and -4
	// after the second, so the magnitudes sum to 6.
	tasks := []Task{
		{Duration: 1, Consumption: []int{2}, Production: []int{0}},
		{Duration: 1, Consumption: []int{2}, Production: []int{0}},
	}
	eval := newEvaluator(t, nil, []int{0}, tasks)

	res, err := eval.Evaluate([]int{0, 1})
	require.NoError(t, err)
	require.Equal(t, 6, res.Violations.Inventory)
}

func TestMakespanSingleTask(t *testing.T) {
	eval := newEvaluator(t, []int{10}, []int{3}, []Task{
		{Duration: 5, Demands: []int{2}, Consumption: []int{1}, Production: []int{1}},
	})
	res, err := eval.Evaluate([]int{0})
	require.NoError(t, err)
	require.Equal(t, 5, res.Makespan)
	require.Equal(t, 5.0, res.Fitness)
}

func TestPenaltyDominance(t *testing.T) {
	eval := newEvaluator(t, []int{4}, []int{0}, validTasks())

	feasible, err := eval.Evaluate([]int{0, 2, 5})
	require.NoError(t, err)
	require.True(t, feasible.Feasible())

	// Shorter makespan but infeasible: the penalty must dominate.
	infeasible, err := eval.Evaluate([]int{0, 1, 2})
	require.NoError(t, err)
	require.False(t, infeasible.Feasible())
	require.Greater(t, infeasible.Fitness, feasible.Fitness)
	require.GreaterOrEqual(t, infeasible.Fitness, float64(DefaultPenaltyWeight))
}

func TestEvaluateIdempotent(t *testing.T) {
	eval := newEvaluator(t, []int{4}, []int{0}, validTasks())
	starts := []int{0, 1, 3}

	first, err := eval.Evaluate(starts)
	require.NoError(t, err)
	second, err := eval.Evaluate(starts)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEvaluateConcurrent(t *testing.T) {
	eval := newEvaluator(t, []int{4}, []int{0}, validTasks())
	starts := []int{0, 1, 3}

	want, err := eval.Evaluate(starts)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Evaluation, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := eval.Evaluate(starts)
			if err != nil {
				t.Errorf("evaluate: %v", err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()
	for _, res := range results {
		require.Equal(t, want, res)
	}
}

func TestEvaluateShapeErrors(t *testing.T) {
	eval := newEvaluator(t, []int{4}, []int{0}, validTasks())

	_, err := eval.Evaluate([]int{0, 1})
	var serr *SolutionShapeError
	require.ErrorAs(t, err, &serr)

	_, err = eval.Evaluate([]int{0, -1, 3})
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 2, serr.TaskID)
}

func TestEvaluateNegativeStartsAllowedByConfig(t *testing.T) {
	inst, err := NewInstance([]int{4}, []int{0}, validTasks())
	require.NoError(t, err)
	eval, err := NewEvaluator(inst, Config{AllowNegativeStarts: true})
	require.NoError(t, err)

	res, err := eval.Evaluate([]int{-2, 0, 3})
	require.NoError(t, err)
	require.True(t, res.Feasible())
	require.Equal(t, 8, res.Makespan)
}

func TestConfigWeightsScaleViolations(t *testing.T) {
	inst, err := NewInstance(nil, nil, []Task{
		{Duration: 4, Successors: []int{1}},
		{Duration: 2},
	})
	require.NoError(t, err)
	eval, err := NewEvaluator(inst, Config{PenaltyWeight: 10, PrecedenceWeight: 2})
	require.NoError(t, err)

	res, err := eval.Evaluate([]int{0, 1})
	require.NoError(t, err)
	// Finish times are 4 and 3, so the makespan term is 4.
	require.Equal(t, 4, res.Makespan)
	require.Equal(t, 3, res.Violations.Precedence)
	require.Equal(t, 4.0+10*2*3, res.Fitness)
}

func TestNewEvaluatorRejectsBadConfig(t *testing.T) {
	inst, err := NewInstance(nil, nil, []Task{{Duration: 1}})
	require.NoError(t, err)
	_, err = NewEvaluator(inst, Config{PenaltyWeight: -1})
	require.Error(t, err)
	_, err = NewEvaluator(nil, Config{})
	require.Error(t, err)
}
