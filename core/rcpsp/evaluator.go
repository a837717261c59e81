package rcpsp

import "fmt"

// DefaultPenaltyWeight multiplies the summed violation magnitudes when
// scoring an infeasible schedule. It is large enough to dominate any
// achievable makespan improvement, so search always prefers feasibility.
const DefaultPenaltyWeight = 1_000_000

// Config tunes the objective scorer.
type Config struct {
	// PenaltyWeight multiplies the weighted violation sum. Defaults to
	// DefaultPenaltyWeight.
	PenaltyWeight float64 `json:"penalty_weight"`
	// PrecedenceWeight, RenewableWeight and InventoryWeight scale the
	// individual violation families before the penalty is applied. Each
	// defaults to 1.
	PrecedenceWeight float64 `json:"precedence_weight"`
	RenewableWeight  float64 `json:"renewable_weight"`
	InventoryWeight  float64 `json:"inventory_weight"`
	// AllowNegativeStarts accepts schedules that begin before time zero.
	// Disabled by default: a negative start is treated as a caller error.
	AllowNegativeStarts bool `json:"allow_negative_starts"`
}

// SetDefaults applies the documented defaults to unset fields.
func (c *Config) SetDefaults() {
	if c.PenaltyWeight == 0 {
		c.PenaltyWeight = DefaultPenaltyWeight
	}
	if c.PrecedenceWeight == 0 {
		c.PrecedenceWeight = 1
	}
	if c.RenewableWeight == 0 {
		c.RenewableWeight = 1
	}
	if c.InventoryWeight == 0 {
		c.InventoryWeight = 1
	}
}

// Validate checks the weights.
func (c Config) Validate() error {
	if c.PenaltyWeight < 0 {
		return fmt.Errorf("penalty_weight must be >= 0 (got %g)", c.PenaltyWeight)
	}
	if c.PrecedenceWeight < 0 || c.RenewableWeight < 0 || c.InventoryWeight < 0 {
		return fmt.Errorf("violation weights must be >= 0")
	}
	return nil
}

// Violations carries the per-family violation magnitudes of one candidate.
// All magnitudes are >= 0; a zero value means the family is fully satisfied.
type Violations struct {
	// Precedence sums the overlap start[succ] falls short of each
	// predecessor's finish.
	Precedence int
	// Renewable integrates capacity overuse over the interval lengths, an
	// area-under-the-overuse-curve measure.
	Renewable int
	// Inventory sums the stock shortfall at every event where a running
	// level goes negative.
	Inventory int
}

// Zero reports whether all three families are satisfied.
func (v Violations) Zero() bool {
	return v.Precedence == 0 && v.Renewable == 0 && v.Inventory == 0
}

// Total is the unweighted sum of the three magnitudes.
func (v Violations) Total() int {
	return v.Precedence + v.Renewable + v.Inventory
}

// Evaluation is the scored result of one candidate schedule.
type Evaluation struct {
	// Fitness is the penalized objective, lower is better. It equals
	// Makespan exactly when Violations.Zero().
	Fitness    float64
	Makespan   int
	Violations Violations
}

// Feasible reports whether the candidate satisfies all constraint families.
func (e Evaluation) Feasible() bool { return e.Violations.Zero() }

// Evaluator scores candidate schedules against one instance. It holds no
// per-call state, so a single Evaluator may be shared by concurrent workers.
type Evaluator struct {
	inst *Instance
	cfg  Config
}

// NewEvaluator builds an evaluator for the instance. The zero Config gets
// the documented defaults.
func NewEvaluator(inst *Instance, cfg Config) (*Evaluator, error) {
	if inst == nil {
		return nil, fmt.Errorf("instance is nil")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, cfg: cfg}, nil
}

// Instance returns the instance this evaluator scores against.
func (e *Evaluator) Instance() *Instance { return e.inst }

// Evaluate scores one candidate. starts must hold exactly one start time per
// task, in task order; a wrong length or a disallowed negative start returns
// a *SolutionShapeError. Constraint violations never fail the call: they are
// quantified and folded into the fitness.
func (e *Evaluator) Evaluate(starts []int) (Evaluation, error) {
	if err := e.checkShape(starts); err != nil {
		return Evaluation{}, err
	}

	tl := BuildTimeline(e.inst, starts)
	v := Violations{
		Precedence: e.precedenceViolation(starts, tl),
		Renewable:  e.renewableViolation(starts, tl),
		Inventory:  e.inventoryViolation(starts, tl),
	}
	ms := tl.Makespan()

	fitness := float64(ms)
	if !v.Zero() {
		weighted := e.cfg.PrecedenceWeight*float64(v.Precedence) +
			e.cfg.RenewableWeight*float64(v.Renewable) +
			e.cfg.InventoryWeight*float64(v.Inventory)
		fitness += e.cfg.PenaltyWeight * weighted
	}
	return Evaluation{Fitness: fitness, Makespan: ms, Violations: v}, nil
}

func (e *Evaluator) checkShape(starts []int) error {
	if len(starts) != e.inst.NumTasks() {
		return &SolutionShapeError{Msg: fmt.Sprintf("want %d start times (got %d)", e.inst.NumTasks(), len(starts))}
	}
	if e.cfg.AllowNegativeStarts {
		return nil
	}
	for i, s := range starts {
		if s < 0 {
			return &SolutionShapeError{TaskID: i + 1, Msg: fmt.Sprintf("negative start time %d", s)}
		}
	}
	return nil
}

// precedenceViolation sums max(0, finish[i] - start[succ]) over all edges.
// This is the only check independent of the timeline discretization.
func (e *Evaluator) precedenceViolation(starts []int, tl Timeline) int {
	total := 0
	for i := 0; i < e.inst.NumTasks(); i++ {
		for _, succ := range e.inst.Task(i).Successors {
			if overlap := tl.Finish[i] - starts[succ]; overlap > 0 {
				total += overlap
			}
		}
	}
	return total
}

// renewableViolation integrates capacity overuse over every interval between
// consecutive event times. A task is active on [start, finish).
func (e *Evaluator) renewableViolation(starts []int, tl Timeline) int {
	numR := e.inst.NumRenewable()
	if numR == 0 {
		return 0
	}
	total := 0
	usage := make([]int, numR)
	for j := 0; j+1 < len(tl.Events); j++ {
		at := tl.Events[j]
		length := tl.Events[j+1] - at
		for r := range usage {
			usage[r] = 0
		}
		for i := 0; i < e.inst.NumTasks(); i++ {
			if starts[i] <= at && at < tl.Finish[i] {
				for r, d := range e.inst.Task(i).Demands {
					usage[r] += d
				}
			}
		}
		for r, u := range usage {
			if over := u - e.inst.Capacity(r); over > 0 {
				total += over * length
			}
		}
	}
	return total
}

// inventoryViolation replays stock movements in event order: production posts
// at task finish, consumption at task start. When both fall on the same
// event time, all productions post before any consumption is checked, so
// replenishment is instantaneous. The shortfall max(0, -level) accumulates
// at every event where the level ends up negative.
func (e *Evaluator) inventoryViolation(starts []int, tl Timeline) int {
	numK := e.inst.NumInventory()
	if numK == 0 {
		return 0
	}
	total := 0
	for k := 0; k < numK; k++ {
		level := e.inst.InitialLevel(k)
		for _, at := range tl.Events {
			moved := false
			for i := 0; i < e.inst.NumTasks(); i++ {
				t := e.inst.Task(i)
				if tl.Finish[i] == at && t.Production[k] != 0 {
					level += t.Production[k]
					moved = true
				}
			}
			for i := 0; i < e.inst.NumTasks(); i++ {
				t := e.inst.Task(i)
				if starts[i] == at && t.Consumption[k] != 0 {
					level -= t.Consumption[k]
					moved = true
				}
			}
			if moved && level < 0 {
				total += -level
			}
		}
	}
	return total
}
