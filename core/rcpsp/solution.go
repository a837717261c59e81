package rcpsp

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// ParseSolution reads a whitespace-separated list of integer start times.
// Shape validation against an instance happens at evaluation time.
func ParseSolution(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var starts []int
	for sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, formatErrorf(0, "solution", "invalid integer %q", sc.Text())
		}
		starts = append(starts, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(starts) == 0 {
		return nil, formatErrorf(0, "solution", "no start times found")
	}
	return starts, nil
}

// LoadSolution parses the solution file at path.
func LoadSolution(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSolution(f)
}
