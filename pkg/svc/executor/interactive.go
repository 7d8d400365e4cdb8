package executor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
)

const (
	// DefaultInteractiveTimeout is the hard ceiling of a pseudo-terminal session.
	DefaultInteractiveTimeout = 300 * time.Second

	// EnvCI and EnvTerm are set on the fallback path.
	EnvCI   = "CI"
	EnvTerm = "TERM"

	confirmAnswer = "y\n"
	promptWindow  = 512
	readChunk     = 4096
	drainTimeout  = 2 * time.Second
	ptyRows       = 40
	ptyCols       = 120
)

// Strategy records how an interactive command was run.
type Strategy int

const (
	// StrategyTerminal ran the command under a pseudo-terminal.
	StrategyTerminal Strategy = iota
	// StrategyEnvHints ran the command directly with CI/TERM hints.
	StrategyEnvHints
)

// String returns a short description of the strategy.
func (s Strategy) String() string {
	if s == StrategyTerminal {
		return "pseudo-terminal"
	}

	return "environment hints"
}

// InteractiveResult is the outcome of RunInteractive.
type InteractiveResult struct {
	// Output is the merged output of the command. Terminal line endings are normalised to "\n".
	Output string
	// Strategy is the strategy that was used.
	Strategy Strategy
	// Answered lists the prompt texts that were auto-confirmed, in order.
	Answered []string
}

// InteractiveRunner runs a command that needs a terminal.
type InteractiveRunner interface {
	RunInteractive(ctx context.Context, cmd Command) (InteractiveResult, error)
}

// TerminalAllocator attaches commands to pseudo-terminals.
type TerminalAllocator interface {
	// Available reports whether a pseudo-terminal can be allocated on this host.
	Available() bool
	// Start starts cmd with its stdio attached to a new pseudo-terminal and returns the
	// controlling side.
	Start(cmd *exec.Cmd) (io.ReadWriteCloser, error)
}

// PTYAllocator allocates pseudo-terminals through the operating system.
type PTYAllocator struct{}

// Available opens and immediately closes a pty pair.
func (PTYAllocator) Available() bool {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return false
	}

	_ = tty.Close()
	_ = ptmx.Close()

	return true
}

// Start starts cmd under a new pseudo-terminal.
func (PTYAllocator) Start(cmd *exec.Cmd) (io.ReadWriteCloser, error) {
	return pty.StartWithSize(cmd, &pty.Winsize{Rows: ptyRows, Cols: ptyCols})
}

// InteractiveExecutor runs terminal-bound commands, preferring a pseudo-terminal and
// falling back to environment hints.
type InteractiveExecutor struct {
	allocator TerminalAllocator
	fallback  Executor
	matcher   *ConfirmationMatcher
	timeout   time.Duration
	maxOutput int
	logger    *slog.Logger
}

// InteractiveOptions configures an InteractiveExecutor. Zero values select defaults.
type InteractiveOptions struct {
	Allocator      TerminalAllocator
	Fallback       Executor
	Matcher        *ConfirmationMatcher
	Timeout        time.Duration
	MaxOutputBytes int
	Logger         *slog.Logger
}

// NewInteractiveExecutor creates an InteractiveExecutor.
func NewInteractiveExecutor(opts InteractiveOptions) *InteractiveExecutor {
	executor := &InteractiveExecutor{
		allocator: opts.Allocator,
		fallback:  opts.Fallback,
		matcher:   opts.Matcher,
		timeout:   opts.Timeout,
		maxOutput: opts.MaxOutputBytes,
		logger:    opts.Logger,
	}

	if executor.allocator == nil {
		executor.allocator = PTYAllocator{}
	}

	if executor.fallback == nil {
		executor.fallback = NewCommandExecutor(WithMaxOutputBytes(opts.MaxOutputBytes))
	}

	if executor.matcher == nil {
		executor.matcher, _ = NewConfirmationMatcher(nil)
	}

	if executor.timeout <= 0 {
		executor.timeout = DefaultInteractiveTimeout
	}

	if executor.maxOutput <= 0 {
		executor.maxOutput = DefaultMaxOutputBytes
	}

	if executor.logger == nil {
		executor.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return executor
}

// RunInteractive runs cmd under a pseudo-terminal when one can be allocated, otherwise
// directly with CI=true and TERM=dumb.
func (e *InteractiveExecutor) RunInteractive(
	ctx context.Context,
	cmd Command,
) (InteractiveResult, error) {
	if cmd.Name == "" {
		return InteractiveResult{}, ErrEmptyCommand
	}

	if !e.allocator.Available() {
		return e.runWithHints(ctx, cmd)
	}

	return e.runInTerminal(ctx, cmd)
}

func (e *InteractiveExecutor) runWithHints(
	ctx context.Context,
	cmd Command,
) (InteractiveResult, error) {
	env := map[string]string{EnvCI: "true", EnvTerm: "dumb"}
	maps.Copy(env, cmd.Env)

	hinted := cmd
	hinted.Env = env

	e.logger.Info("no pseudo-terminal available, running with environment hints",
		"command", cmd.String())

	output, err := e.fallback.Run(ctx, hinted)

	return InteractiveResult{Output: output, Strategy: StrategyEnvHints}, err
}

func (e *InteractiveExecutor) runInTerminal(
	ctx context.Context,
	cmd Command,
) (InteractiveResult, error) {
	sessionCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	process := exec.CommandContext(sessionCtx, cmd.Name, cmd.Args...)
	process.Dir = cmd.Dir
	process.Env = cmd.environ()

	result := InteractiveResult{Strategy: StrategyTerminal}

	terminal, err := e.allocator.Start(process)
	if err != nil {
		return result, &CommandFailedError{
			Command:    cmd.Name,
			Args:       cmd.Args,
			Diagnostic: err.Error(),
			Err:        err,
		}
	}

	output := newCappedBuffer(e.maxOutput, cancel)
	answered := make(chan []string, 1)

	go func() {
		answered <- e.watch(cmd, terminal, output)
	}()

	waitErr := process.Wait()

	select {
	case result.Answered = <-answered:
	case <-time.After(drainTimeout):
	}

	_ = terminal.Close()

	result.Output = strings.ReplaceAll(output.String(), "\r\n", "\n")

	switch {
	case errors.Is(sessionCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		return result, &CommandFailedError{
			Command:    cmd.Name,
			Args:       cmd.Args,
			Diagnostic: ErrInteractiveTimeout.Error() + " after " + e.timeout.String(),
			Output:     result.Output,
			Err:        ErrInteractiveTimeout,
		}
	case output.Exceeded():
		return result, &CommandFailedError{
			Command:    cmd.Name,
			Args:       cmd.Args,
			Diagnostic: ErrOutputLimitExceeded.Error(),
			Output:     result.Output,
			Err:        ErrOutputLimitExceeded,
		}
	case waitErr != nil:
		return result, &CommandFailedError{
			Command:    cmd.Name,
			Args:       cmd.Args,
			Diagnostic: diagnostic(result.Output, "", waitErr),
			Output:     result.Output,
			Err:        waitErr,
		}
	}

	return result, nil
}

// watch copies terminal output into output and answers prompts until the terminal closes.
func (e *InteractiveExecutor) watch(
	cmd Command,
	terminal io.ReadWriter,
	output *cappedBuffer,
) []string {
	var answered []string

	scanned := 0
	chunk := make([]byte, readChunk)

	for {
		n, err := terminal.Read(chunk)
		if n > 0 {
			_, _ = output.Write(chunk[:n])

			start := max(scanned, output.Len()-promptWindow)
			window := output.Since(start)

			for _, loc := range e.matcher.FindAll(window) {
				prompt := string(window[loc[0]:loc[1]])

				_, writeErr := io.WriteString(terminal, confirmAnswer)
				if writeErr != nil {
					e.logger.Warn("failed to answer prompt", "command", cmd.String(), "error", writeErr)

					continue
				}

				e.logger.Info("auto-answered confirmation prompt",
					"command", cmd.String(), "prompt", prompt)

				answered = append(answered, prompt)
				scanned = start + loc[1]
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, syscall.EIO) {
				e.logger.Debug("terminal read ended", "command", cmd.String(), "error", err)
			}

			return answered
		}
	}
}
