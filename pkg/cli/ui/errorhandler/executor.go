// Package errorhandler runs cobra commands and turns their failures into a single
// message suitable for printing once at the top level.
package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Normalizer cleans up the text cobra wrote to stderr before a failure.
type Normalizer interface {
	Normalize(raw string) string
}

// Option configures an Executor.
type Option func(*Executor)

// WithNormalizer replaces DefaultNormalizer.
func WithNormalizer(normalizer Normalizer) Option {
	return func(e *Executor) {
		e.normalizer = normalizer
	}
}

// Executor runs a command with its error stream captured.
type Executor struct {
	normalizer Normalizer
}

// NewExecutor constructs an Executor.
func NewExecutor(opts ...Option) *Executor {
	executor := &Executor{normalizer: DefaultNormalizer{}}
	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Execute runs cmd with ctx. It returns nil on success and a *CommandError otherwise;
// the error keeps the original cause for errors.Is and errors.As.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var captured bytes.Buffer

	previous := cmd.ErrOrStderr()

	cmd.SetErr(&captured)
	defer cmd.SetErr(previous)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(captured.String()),
		cause:   err,
	}
}

// CommandError is a command failure together with the normalized stderr text.
type CommandError struct {
	message string
	cause   error
}

// Error returns the stderr text, the cause, or both when the text does not already
// contain the cause.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap returns the cause.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer trims the text and drops cobra's "Error: " prefix. Usage hints on
// later lines are kept.
type DefaultNormalizer struct{}

// Normalize implements Normalizer.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	first, rest, found := strings.Cut(trimmed, "\n")
	first = strings.TrimPrefix(strings.TrimSpace(first), "Error: ")

	if !found {
		return first
	}

	return first + "\n" + rest
}
