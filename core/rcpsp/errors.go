package rcpsp

import "fmt"

// FormatError reports a malformed instance file. Line is 1-based; zero when
// the error is not tied to a specific line.
type FormatError struct {
	Line  int
	Field string
	Msg   string
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("instance format: line %d: %s: %s", e.Line, e.Field, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("instance format: line %d: %s", e.Line, e.Msg)
	case e.Field != "":
		return fmt.Sprintf("instance format: %s: %s", e.Field, e.Msg)
	default:
		return fmt.Sprintf("instance format: %s", e.Msg)
	}
}

func formatErrorf(line int, field, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// SolutionShapeError reports a candidate solution that violates the caller
// contract: wrong length or a disallowed start time. It is distinct from a
// constraint violation, which is quantified instead of rejected.
type SolutionShapeError struct {
	TaskID int // 1-based; zero when the error concerns the vector as a whole
	Msg    string
}

func (e *SolutionShapeError) Error() string {
	if e.TaskID > 0 {
		return fmt.Sprintf("solution shape: task %d: %s", e.TaskID, e.Msg)
	}
	return fmt.Sprintf("solution shape: %s", e.Msg)
}
