// Package toolchain detects which external tools are available and decides how
// logical toolchain commands are spelled on this machine.
package toolchain

import "os/exec"

// Executable names probed by the provisioner.
const (
	// Flutter is the Flutter SDK CLI.
	Flutter = "flutter"
	// Dart is the Dart SDK CLI.
	Dart = "dart"
	// Git is the version control CLI.
	Git = "git"
	// DefaultWrapper is the optional Flutter version manager.
	DefaultWrapper = "fvm"
)

// Prober reports whether an executable can be found.
type Prober interface {
	Exists(name string) bool
}

// PathProber looks executables up on the search path.
type PathProber struct {
	lookPath func(string) (string, error)
}

// NewPathProber creates a prober backed by exec.LookPath.
func NewPathProber() *PathProber {
	return &PathProber{lookPath: exec.LookPath}
}

// Exists reports whether name resolves to an executable on PATH.
// Any lookup failure counts as "not found".
func (p *PathProber) Exists(name string) bool {
	if name == "" {
		return false
	}

	lookPath := p.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	_, err := lookPath(name)

	return err == nil
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(name string) bool

// Exists calls f(name).
func (f ProberFunc) Exists(name string) bool {
	return f(name)
}
