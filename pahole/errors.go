package pahole

import (
	"errors"
	"fmt"
	"strings"
)

// ErrToolUnavailable is returned when the layout extractor cannot be found
// or does not answer the availability probe.
var ErrToolUnavailable = errors.New("layout extractor unavailable")

// ErrExecutionFailed matches any *ExecError via errors.Is.
var ErrExecutionFailed = errors.New("layout extractor failed")

// ExecError is returned when the extractor ran but exited with a non-zero
// status.
type ExecError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s %s exited with status %d", e.Tool, strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Is reports whether target is ErrExecutionFailed.
func (e *ExecError) Is(target error) bool {
	return target == ErrExecutionFailed
}
