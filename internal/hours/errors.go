package hours

import (
	"errors"
	"fmt"
)

// Parse errors.
var (
	ErrUnknownDay = errors.New("unknown weekday")
	ErrFormat     = errors.New("malformed schedule")
)

// LineError reports a failure to parse one line, with the clause that caused it.
// Clause is empty when the failure is not tied to a single clause (e.g. a missing
// store id).
type LineError struct {
	Line   string
	Clause string
	Err    error
}

func (e *LineError) Error() string {
	if e.Clause == "" {
		return fmt.Sprintf("line %q: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %q: clause %q: %v", e.Line, e.Clause, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
