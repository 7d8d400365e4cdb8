package toolchain

import "slices"

// RunnerMode tells whether toolchain commands go through the version-manager wrapper.
type RunnerMode int

const (
	// RunnerDirect invokes "flutter" and "dart" as-is.
	RunnerDirect RunnerMode = iota
	// RunnerWrapped invokes them through the wrapper, e.g. "fvm flutter pub get".
	RunnerWrapped
)

// String returns the lower-case mode name.
func (m RunnerMode) String() string {
	if m == RunnerWrapped {
		return "wrapped"
	}

	return "direct"
}

// Runner rewrites logical toolchain commands for the detected mode.
// A Runner is an immutable value; detect a fresh one per provisioning run.
type Runner struct {
	Mode    RunnerMode
	Wrapper string
}

// DetectRunner probes for wrapper and returns the matching Runner.
// An empty wrapper selects DefaultWrapper.
func DetectRunner(prober Prober, wrapper string) Runner {
	if wrapper == "" {
		wrapper = DefaultWrapper
	}

	if prober != nil && prober.Exists(wrapper) {
		return Runner{Mode: RunnerWrapped, Wrapper: wrapper}
	}

	return Runner{Mode: RunnerDirect, Wrapper: wrapper}
}

// ResolveCommand returns the executable to run for logical.
func (r Runner) ResolveCommand(logical string) string {
	if r.Mode == RunnerWrapped {
		return r.Wrapper
	}

	return logical
}

// ResolveArgs returns the arguments to pass for logical with args.
// The input slice is never modified.
func (r Runner) ResolveArgs(logical string, args []string) []string {
	if r.Mode == RunnerWrapped {
		return append([]string{logical}, args...)
	}

	return slices.Clone(args)
}

// FlutterAvailable reports whether a usable Flutter toolchain exists,
// either through the wrapper or directly on PATH.
func (r Runner) FlutterAvailable(prober Prober) bool {
	if r.Mode == RunnerWrapped {
		return true
	}

	return prober != nil && prober.Exists(Flutter)
}
