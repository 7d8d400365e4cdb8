package executor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutputLimitExceeded indicates a child produced more output than the configured cap.
	ErrOutputLimitExceeded = errors.New("command output exceeded limit")

	// ErrInteractiveTimeout indicates a pseudo-terminal session hit its hard time ceiling.
	ErrInteractiveTimeout = errors.New("interactive session timed out")

	// ErrEmptyCommand indicates a Command without an executable name.
	ErrEmptyCommand = errors.New("command name is empty")
)

// CommandFailedError reports a child process that could not be run or exited non-zero.
type CommandFailedError struct {
	// Command is the executable that was invoked.
	Command string
	// Args are the arguments it was invoked with.
	Args []string
	// Diagnostic is stderr if non-empty, else stdout, else the underlying error text.
	Diagnostic string
	// Output is the merged stdout and stderr captured before the failure.
	Output string
	// Err is the underlying error (exit status, start failure, limit, timeout).
	Err error
}

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	line := strings.TrimSpace(strings.Join(append([]string{e.Command}, e.Args...), " "))

	if e.Diagnostic == "" {
		return fmt.Sprintf("command %q failed", line)
	}

	return fmt.Sprintf("command %q failed: %s", line, e.Diagnostic)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandFailedError) Unwrap() error {
	return e.Err
}

// diagnostic picks the stream that best explains a failure.
func diagnostic(stdout, stderr string, err error) string {
	if text := strings.TrimSpace(stderr); text != "" {
		return text
	}

	if text := strings.TrimSpace(stdout); text != "" {
		return text
	}

	if err != nil {
		return err.Error()
	}

	return ""
}
