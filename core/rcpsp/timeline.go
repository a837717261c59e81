package rcpsp

import "sort"

// Timeline holds the per-task finish times and the sorted distinct event
// times of a candidate schedule. An event time is any instant at which a task
// starts or finishes; time 0 is always included. Resource usage is constant
// between consecutive events.
type Timeline struct {
	Finish []int
	Events []int
}

// BuildTimeline derives the timeline for the given start times. The start
// vector must already have been shape-checked against the instance.
func BuildTimeline(inst *Instance, starts []int) Timeline {
	n := inst.NumTasks()
	finish := make([]int, n)
	seen := make(map[int]struct{}, 2*n+1)
	seen[0] = struct{}{}
	for i := 0; i < n; i++ {
		finish[i] = starts[i] + inst.Task(i).Duration
		seen[starts[i]] = struct{}{}
		seen[finish[i]] = struct{}{}
	}
	events := make([]int, 0, len(seen))
	for t := range seen {
		events = append(events, t)
	}
	sort.Ints(events)
	return Timeline{Finish: finish, Events: events}
}

// Makespan is the maximum finish time over all tasks.
func (tl Timeline) Makespan() int {
	ms := 0
	for i, f := range tl.Finish {
		if i == 0 || f > ms {
			ms = f
		}
	}
	return ms
}
