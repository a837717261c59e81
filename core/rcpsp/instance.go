package rcpsp

import "math/rand"

// Task describes a single activity of the project.
type Task struct {
	// ID is the 1-based task identifier used in instance files and
	// diagnostics.
	ID int
	// Duration in integer time units, >= 0.
	Duration int
	// Demands holds the renewable resource requirement while the task is
	// active, one entry per renewable resource.
	Demands []int
	// Consumption is the inventory amount withdrawn when the task starts,
	// one entry per inventory resource.
	Consumption []int
	// Production is the inventory amount deposited when the task finishes,
	// one entry per inventory resource.
	Production []int
	// Successors holds 0-based indices into the instance task list. Each
	// successor may start only after this task finishes.
	Successors []int
}

// Instance is the immutable problem definition: tasks, the precedence DAG,
// renewable capacities and initial inventory levels. Once built it is safe to
// share across concurrent evaluations.
type Instance struct {
	tasks      []Task
	capacities []int
	levels     []int
	horizon    int
}

// NewInstance validates the structural invariants and returns the immutable
// instance. Task vectors must match the capacity and level counts, successor
// indices must be in range with no duplicate edges, and the successor
// relation must be acyclic.
func NewInstance(capacities, initialLevels []int, tasks []Task) (*Instance, error) {
	if len(tasks) == 0 {
		return nil, formatErrorf(0, "tasks", "instance has no tasks")
	}
	for _, c := range capacities {
		if c < 0 {
			return nil, formatErrorf(0, "capacity", "must be >= 0 (got %d)", c)
		}
	}
	inst := &Instance{
		tasks:      make([]Task, len(tasks)),
		capacities: append([]int(nil), capacities...),
		levels:     append([]int(nil), initialLevels...),
	}
	copy(inst.tasks, tasks)
	for i := range inst.tasks {
		t := &inst.tasks[i]
		t.ID = i + 1
		t.Demands = append([]int(nil), t.Demands...)
		t.Consumption = append([]int(nil), t.Consumption...)
		t.Production = append([]int(nil), t.Production...)
		t.Successors = append([]int(nil), t.Successors...)
		if t.Duration < 0 {
			return nil, formatErrorf(0, "duration", "task %d: must be >= 0 (got %d)", t.ID, t.Duration)
		}
		if len(t.Demands) != len(capacities) {
			return nil, formatErrorf(0, "demands", "task %d: want %d values (got %d)", t.ID, len(capacities), len(t.Demands))
		}
		for _, d := range t.Demands {
			if d < 0 {
				return nil, formatErrorf(0, "demands", "task %d: must be >= 0 (got %d)", t.ID, d)
			}
		}
		if len(t.Consumption) != len(initialLevels) || len(t.Production) != len(initialLevels) {
			return nil, formatErrorf(0, "flows", "task %d: want %d (consumption, production) pairs", t.ID, len(initialLevels))
		}
		seen := make(map[int]bool, len(t.Successors))
		for _, s := range t.Successors {
			if s < 0 || s >= len(tasks) {
				return nil, formatErrorf(0, "successors", "task %d: successor %d out of range [1, %d]", t.ID, s+1, len(tasks))
			}
			if seen[s] {
				return nil, formatErrorf(0, "successors", "task %d: duplicate successor %d", t.ID, s+1)
			}
			seen[s] = true
		}
		inst.horizon += t.Duration
	}
	if cyc := inst.findCycle(); cyc > 0 {
		return nil, formatErrorf(0, "successors", "precedence cycle through task %d", cyc)
	}
	return inst, nil
}

// findCycle returns the 1-based id of a task on a precedence cycle, or 0 when
// the successor relation is acyclic. Iterative DFS with three colors.
func (inst *Instance) findCycle() int {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(inst.tasks))
	for root := range inst.tasks {
		if color[root] != white {
			continue
		}
		stack := []int{root}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			if color[v] == white {
				color[v] = gray
				for _, s := range inst.tasks[v].Successors {
					if color[s] == gray {
						return s + 1
					}
					if color[s] == white {
						stack = append(stack, s)
					}
				}
			} else {
				color[v] = black
				stack = stack[:len(stack)-1]
			}
		}
	}
	return 0
}

// NumTasks returns the number of tasks.
func (inst *Instance) NumTasks() int { return len(inst.tasks) }

// NumRenewable returns the number of renewable resources.
func (inst *Instance) NumRenewable() int { return len(inst.capacities) }

// NumInventory returns the number of inventory resources.
func (inst *Instance) NumInventory() int { return len(inst.levels) }

// Capacity returns the capacity of renewable resource r.
func (inst *Instance) Capacity(r int) int { return inst.capacities[r] }

// InitialLevel returns the initial stock of inventory resource k.
func (inst *Instance) InitialLevel(k int) int { return inst.levels[k] }

// Task returns the task at 0-based index i. The returned value is a copy of
// the scalar fields; the slices must be treated as read-only.
func (inst *Instance) Task(i int) Task { return inst.tasks[i] }

// Horizon is the sum of all durations, a trivial upper bound on any
// reasonable start time.
func (inst *Instance) Horizon() int { return inst.horizon }

// RandomSolution samples a start time uniformly in [0, horizon] for every
// task. It is a baseline sampler for smoke tests and benchmarking, not a
// search strategy.
func (inst *Instance) RandomSolution(rng *rand.Rand) []int {
	starts := make([]int, len(inst.tasks))
	for i := range starts {
		starts[i] = rng.Intn(inst.horizon + 1)
	}
	return starts
}
