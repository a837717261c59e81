package rcpsp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSolution(t *testing.T) {
	starts, err := ParseSolution(strings.NewReader("0 2 5\n"))
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 5}, starts)
}

func TestParseSolutionMultiline(t *testing.T) {
	starts, err := ParseSolution(strings.NewReader("0\n2\n5"))
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 5}, starts)
}

func TestParseSolutionErrors(t *testing.T) {
	_, err := ParseSolution(strings.NewReader(""))
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)

	_, err = ParseSolution(strings.NewReader("0 two 5"))
	require.ErrorAs(t, err, &ferr)
	require.Contains(t, err.Error(), "two")
}
