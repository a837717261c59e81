package rcpsp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInstanceChain(t *testing.T) {
	inst, err := LoadInstance("testdata/chain.rcp")
	require.NoError(t, err)

	require.Equal(t, 3, inst.NumTasks())
	require.Equal(t, 1, inst.NumRenewable())
	require.Equal(t, 1, inst.NumInventory())
	require.Equal(t, 4, inst.Capacity(0))
	require.Equal(t, 0, inst.InitialLevel(0))
	require.Equal(t, 10, inst.Horizon())

	t1 := inst.Task(0)
	require.Equal(t, 1, t1.ID)
	require.Equal(t, 2, t1.Duration)
	require.Equal(t, []int{3}, t1.Demands)
	require.Equal(t, []int{0}, t1.Consumption)
	require.Equal(t, []int{5}, t1.Production)
	require.Equal(t, []int{1}, t1.Successors)

	t3 := inst.Task(2)
	require.Empty(t, t3.Successors)
}

func TestParseInstanceCycle(t *testing.T) {
	_, err := LoadInstance("testdata/cycle.rcp")
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	require.Contains(t, ferr.Error(), "cycle")
}

func TestParseInstanceErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "unexpected end of file"},
		{"short header", "3 1\n", "header"},
		{"bad integer", "x 1 1\n", "invalid integer"},
		{"resource count mismatch", "1 2 1\n4 2\n", "want 3 values"},
		{"task values missing", "1 1 1\n4 0\n5 2 1\n", "at least"},
		{"successor out of range", "2 1 0\n4\n2 1 1 3\n2 1 0\n", "out of range"},
		{"successor count mismatch", "1 1 0\n4\n2 1 2 1\n", "successor ids"},
		{"missing task line", "2 1 0\n4\n2 1 0\n", "end of file"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseInstance(strings.NewReader(c.data))
			var ferr *FormatError
			require.ErrorAs(t, err, &ferr)
			require.Contains(t, err.Error(), c.want)
		})
	}
}

func TestParseInstanceReportsLine(t *testing.T) {
	// The malformed task is the second task line, i.e. file line 4.
	data := "2 1 0\n4\n2 1 0\n2 1 1 9\n"
	_, err := ParseInstance(strings.NewReader(data))
	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	require.Equal(t, 4, ferr.Line)
}

func TestParseInstanceSkipsBlankLines(t *testing.T) {
	data := "\n1 1 1\n\n10 3\n\n5 2 1 1 0\n\n"
	inst, err := ParseInstance(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, inst.NumTasks())
}

// serialize writes the instance back in the documented format.
func serialize(inst *Instance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %d\n", inst.NumTasks(), inst.NumRenewable(), inst.NumInventory())
	for r := 0; r < inst.NumRenewable(); r++ {
		fmt.Fprintf(&b, "%d ", inst.Capacity(r))
	}
	for k := 0; k < inst.NumInventory(); k++ {
		fmt.Fprintf(&b, "%d ", inst.InitialLevel(k))
	}
	b.WriteString("\n")
	for i := 0; i < inst.NumTasks(); i++ {
		t := inst.Task(i)
		fmt.Fprintf(&b, "%d", t.Duration)
		for _, d := range t.Demands {
			fmt.Fprintf(&b, " %d", d)
		}
		for k := range t.Consumption {
			fmt.Fprintf(&b, " %d %d", t.Consumption[k], t.Production[k])
		}
		fmt.Fprintf(&b, " %d", len(t.Successors))
		for _, s := range t.Successors {
			fmt.Fprintf(&b, " %d", s+1)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestParseRoundTrip(t *testing.T) {
	orig, err := NewInstance([]int{4, 7}, []int{2}, []Task{
		{Duration: 3, Demands: []int{1, 2}, Consumption: []int{1}, Production: []int{0}, Successors: []int{1, 2}},
		{Duration: 0, Demands: []int{0, 0}, Consumption: []int{0}, Production: []int{3}, Successors: []int{2}},
		{Duration: 4, Demands: []int{2, 2}, Consumption: []int{2}, Production: []int{0}},
	})
	require.NoError(t, err)

	reparsed, err := ParseInstance(strings.NewReader(serialize(orig)))
	require.NoError(t, err)

	require.Equal(t, orig.NumTasks(), reparsed.NumTasks())
	require.Equal(t, orig.Horizon(), reparsed.Horizon())
	for r := 0; r < orig.NumRenewable(); r++ {
		require.Equal(t, orig.Capacity(r), reparsed.Capacity(r))
	}
	for k := 0; k < orig.NumInventory(); k++ {
		require.Equal(t, orig.InitialLevel(k), reparsed.InitialLevel(k))
	}
	for i := 0; i < orig.NumTasks(); i++ {
		require.Equal(t, orig.Task(i), reparsed.Task(i), "task %d", i+1)
	}
}
