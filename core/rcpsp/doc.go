// Package rcpsp evaluates candidate schedules for the resource-constrained
// project scheduling problem with inventory constraints (RCPSP-Inv).
//
// An Instance holds the immutable problem definition parsed from a
// Patterson-format file. An Evaluator scores a start-time vector against the
// three constraint families (precedence, renewable capacity, inventory
// non-negativity) and returns a penalized makespan fitness together with the
// per-family violation magnitudes. Evaluation is a pure function: the same
// instance and candidate always yield the same result, and one Evaluator may
// serve many concurrent optimizer workers.
package rcpsp
