package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// Command describes one external process invocation.
type Command struct {
	// Name is the executable.
	Name string
	// Args are passed to the executable verbatim.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds extra environment variables layered over the process environment.
	Env map[string]string
}

// String renders the command line; arguments containing whitespace are quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)

	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'") {
			parts = append(parts, fmt.Sprintf("%q", arg))

			continue
		}

		parts = append(parts, arg)
	}

	return strings.Join(parts, " ")
}

// environ returns the process environment with c.Env layered on top in key order.
func (c Command) environ() []string {
	if len(c.Env) == 0 {
		return nil
	}

	env := os.Environ()
	for _, key := range slices.Sorted(maps.Keys(c.Env)) {
		env = append(env, key+"="+c.Env[key])
	}

	return env
}

// Executor runs a command to completion and returns its merged output.
type Executor interface {
	Run(ctx context.Context, cmd Command) (string, error)
}

// CommandExecutor is the os/exec backed Executor.
type CommandExecutor struct {
	maxOutput int
	logger    *slog.Logger
}

// Option configures a CommandExecutor.
type Option func(*CommandExecutor)

// WithMaxOutputBytes caps the captured output. Values <= 0 select DefaultMaxOutputBytes.
func WithMaxOutputBytes(limit int) Option {
	return func(e *CommandExecutor) {
		e.maxOutput = limit
	}
}

// WithLogger sets the logger used for debug traces of each invocation.
func WithLogger(logger *slog.Logger) Option {
	return func(e *CommandExecutor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewCommandExecutor creates a CommandExecutor.
func NewCommandExecutor(opts ...Option) *CommandExecutor {
	executor := &CommandExecutor{
		maxOutput: DefaultMaxOutputBytes,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(executor)
	}

	if executor.maxOutput <= 0 {
		executor.maxOutput = DefaultMaxOutputBytes
	}

	return executor
}

// Run executes cmd and blocks until it exits.
//
// The returned string holds stdout and stderr interleaved in arrival order. On a
// non-zero exit, a start failure or an exceeded output cap the error is a
// *CommandFailedError.
func (e *CommandExecutor) Run(ctx context.Context, cmd Command) (string, error) {
	if cmd.Name == "" {
		return "", ErrEmptyCommand
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	combined := newCappedBuffer(e.maxOutput, cancel)
	stdout := newCappedBuffer(e.maxOutput, nil)
	stderr := newCappedBuffer(e.maxOutput, nil)

	process := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	process.Dir = cmd.Dir
	process.Env = cmd.environ()
	process.Stdout = io.MultiWriter(combined, stdout)
	process.Stderr = io.MultiWriter(combined, stderr)

	e.logger.Debug("running command", "command", cmd.String(), "dir", cmd.Dir)

	err := process.Run()

	if combined.Exceeded() {
		return combined.String(), &CommandFailedError{
			Command:    cmd.Name,
			Args:       cmd.Args,
			Diagnostic: fmt.Sprintf("%v (limit %d bytes)", ErrOutputLimitExceeded, e.maxOutput),
			Output:     combined.String(),
			Err:        ErrOutputLimitExceeded,
		}
	}

	if err != nil {
		e.logger.Debug("command failed", "command", cmd.String(), "error", err)

		return combined.String(), &CommandFailedError{
			Command:    cmd.Name,
			Args:       cmd.Args,
			Diagnostic: diagnostic(stdout.String(), stderr.String(), err),
			Output:     combined.String(),
			Err:        err,
		}
	}

	return combined.String(), nil
}
