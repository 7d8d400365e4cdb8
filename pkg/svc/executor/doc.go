// Package executor runs external processes for the provisioner.
//
// [CommandExecutor] runs a command to completion and returns its merged stdout and
// stderr. Output is capped; a run that exceeds the cap fails with
// [ErrOutputLimitExceeded] instead of returning truncated text. A non-zero exit is
// reported as a [*CommandFailedError] carrying the most useful diagnostic stream.
//
// [InteractiveExecutor] runs commands that insist on a real terminal. When a
// [TerminalAllocator] is available the command is attached to a pseudo-terminal and
// confirmation prompts are answered automatically; otherwise the command runs through
// the plain executor with CI=true and TERM=dumb so it can degrade on its own.
package executor
