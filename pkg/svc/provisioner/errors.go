package provisioner

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInvalidName indicates a project name that is not a lower-case snake_case identifier.
	ErrInvalidName = errors.New("invalid project name")

	// ErrInvalidOrg indicates an organisation that is not a reverse-domain identifier.
	ErrInvalidOrg = errors.New("invalid organisation")

	// ErrFlutterNotFound indicates neither the version-manager wrapper nor flutter is installed.
	ErrFlutterNotFound = errors.New("flutter toolchain not found")

	// ErrGitNotFound indicates git is not on PATH.
	ErrGitNotFound = errors.New("git not found")

	// ErrProjectExists indicates the target directory is already present.
	ErrProjectExists = errors.New("project directory already exists")

	// ErrManifestMissing indicates the template has no pubspec.yaml.
	ErrManifestMissing = errors.New("template has no pubspec.yaml")

	// ErrFlavorizrMissing indicates the template has no flavorizr.yaml.
	ErrFlavorizrMissing = errors.New("template has no flavorizr.yaml")

	// ErrBuildScriptMissing indicates the template has no android/app/build.gradle.kts.
	ErrBuildScriptMissing = errors.New("template has no android/app/build.gradle.kts")
)

// Kind classifies a provisioning failure.
type Kind int

const (
	// KindValidation is a malformed request, caught before any side effect.
	KindValidation Kind = iota
	// KindPreflight is a missing tool or an existing target directory.
	KindPreflight
	// KindStepExecution is a failed child process or file operation.
	KindStepExecution
	// KindStructuralTemplate is a file the template was expected to provide.
	KindStructuralTemplate
)

// String returns the human readable kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPreflight:
		return "preflight"
	case KindStepExecution:
		return "step execution"
	case KindStructuralTemplate:
		return "structural template"
	default:
		return "unknown"
	}
}

// Error is the failure of a provisioning run.
type Error struct {
	Kind Kind
	// Step is the 1-based step that failed, or 0 before the first step.
	Step int
	// Log holds the lines accumulated up to and including the failing step's start line.
	Log []string
	// Hint is an optional recovery instruction.
	Hint string
	Err  error
}

// Error renders the log followed by the cause.
func (e *Error) Error() string {
	var builder strings.Builder

	for _, line := range e.Log {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	builder.WriteString(e.Cause())

	if e.Hint != "" {
		builder.WriteByte('\n')
		builder.WriteString(e.Hint)
	}

	return builder.String()
}

// Cause renders only the failure line, without the log.
func (e *Error) Cause() string {
	cause := "unknown error"
	if e.Err != nil {
		cause = e.Err.Error()
	}

	if e.Step == 0 {
		return e.Kind.String() + " failed: " + cause
	}

	return "✗ step " + strconv.Itoa(e.Step) + " failed: " + cause
}

// Unwrap exposes the cause.
func (e *Error) Unwrap() error {
	return e.Err
}
