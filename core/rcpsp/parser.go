package rcpsp

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseInstance reads a Patterson-format instance:
//
//	line 1: numTasks numRenewable numInventory
//	line 2: numRenewable capacities, then numInventory initial levels
//	then one line per task: duration, numRenewable demands, numInventory
//	(consumption, production) pairs, successor count, 1-based successor ids.
//
// Blank lines are ignored. Any structural problem is reported as a
// *FormatError carrying the offending line.
func ParseInstance(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	next := func() ([]string, int, error) {
		for sc.Scan() {
			line++
			fields := strings.Fields(sc.Text())
			if len(fields) > 0 {
				return fields, line, nil
			}
		}
		if err := sc.Err(); err != nil {
			return nil, line, err
		}
		return nil, line, formatErrorf(line, "", "unexpected end of file")
	}

	header, ln, err := next()
	if err != nil {
		return nil, err
	}
	if len(header) != 3 {
		return nil, formatErrorf(ln, "header", "want 3 integers (got %d fields)", len(header))
	}
	numTasks, err := parseInt(header[0], ln, "numTasks")
	if err != nil {
		return nil, err
	}
	numRenewable, err := parseInt(header[1], ln, "numRenewable")
	if err != nil {
		return nil, err
	}
	numInventory, err := parseInt(header[2], ln, "numInventory")
	if err != nil {
		return nil, err
	}
	if numTasks <= 0 || numRenewable < 0 || numInventory < 0 {
		return nil, formatErrorf(ln, "header", "counts out of range: tasks=%d renewable=%d inventory=%d", numTasks, numRenewable, numInventory)
	}

	resLine, ln, err := next()
	if err != nil {
		return nil, err
	}
	if len(resLine) != numRenewable+numInventory {
		return nil, formatErrorf(ln, "resources", "want %d values (got %d)", numRenewable+numInventory, len(resLine))
	}
	capacities := make([]int, numRenewable)
	for r := range capacities {
		if capacities[r], err = parseInt(resLine[r], ln, "capacity"); err != nil {
			return nil, err
		}
	}
	levels := make([]int, numInventory)
	for k := range levels {
		if levels[k], err = parseInt(resLine[numRenewable+k], ln, "initialLevel"); err != nil {
			return nil, err
		}
	}

	tasks := make([]Task, numTasks)
	for i := 0; i < numTasks; i++ {
		fields, ln, err := next()
		if err != nil {
			return nil, err
		}
		t, err := parseTaskLine(fields, ln, i+1, numRenewable, numInventory, numTasks)
		if err != nil {
			return nil, err
		}
		tasks[i] = t
	}

	inst, err := NewInstance(capacities, levels, tasks)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// LoadInstance parses the instance file at path.
func LoadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseInstance(f)
}

func parseTaskLine(fields []string, line, id, numRenewable, numInventory, numTasks int) (Task, error) {
	// duration + demands + pairs + successor count is the fixed prefix.
	fixed := 1 + numRenewable + 2*numInventory + 1
	if len(fields) < fixed {
		return Task{}, formatErrorf(line, "task", "task %d: want at least %d values (got %d)", id, fixed, len(fields))
	}
	t := Task{ID: id}
	if numRenewable > 0 {
		t.Demands = make([]int, numRenewable)
	}
	if numInventory > 0 {
		t.Consumption = make([]int, numInventory)
		t.Production = make([]int, numInventory)
	}
	var err error
	if t.Duration, err = parseInt(fields[0], line, "duration"); err != nil {
		return Task{}, err
	}
	for r := 0; r < numRenewable; r++ {
		if t.Demands[r], err = parseInt(fields[1+r], line, "demand"); err != nil {
			return Task{}, err
		}
	}
	for k := 0; k < numInventory; k++ {
		if t.Consumption[k], err = parseInt(fields[1+numRenewable+2*k], line, "consumption"); err != nil {
			return Task{}, err
		}
		if t.Production[k], err = parseInt(fields[1+numRenewable+2*k+1], line, "production"); err != nil {
			return Task{}, err
		}
	}
	nSucc, err := parseInt(fields[fixed-1], line, "successorCount")
	if err != nil {
		return Task{}, err
	}
	if nSucc < 0 || len(fields) != fixed+nSucc {
		return Task{}, formatErrorf(line, "successors", "task %d: want %d successor ids (got %d values)", id, nSucc, len(fields)-fixed)
	}
	if nSucc == 0 {
		return t, nil
	}
	t.Successors = make([]int, nSucc)
	for s := 0; s < nSucc; s++ {
		succ, err := parseInt(fields[fixed+s], line, "successor")
		if err != nil {
			return Task{}, err
		}
		if succ < 1 || succ > numTasks {
			return Task{}, formatErrorf(line, "successors", "task %d: successor %d out of range [1, %d]", id, succ, numTasks)
		}
		t.Successors[s] = succ - 1
	}
	return t, nil
}

func parseInt(s string, line int, field string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, formatErrorf(line, field, "invalid integer %q", s)
	}
	return v, nil
}
