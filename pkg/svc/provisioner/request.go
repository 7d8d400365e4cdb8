package provisioner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/devantler-tech/flutterkit/pkg/fsutil"
)

// DefaultTemplateURL is the template cloned when a request names none.
const DefaultTemplateURL = "https://github.com/devantler-tech/flutter-template.git"

var (
	namePattern       = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	orgSegmentPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// Request describes the project to create.
type Request struct {
	// Name is the snake_case project name and the name of the created directory.
	Name string
	// Org is the reverse-domain organisation, e.g. "com.acme".
	Org string
	// TemplateURL is the git URL of the template. Empty selects the pipeline default.
	TemplateURL string
	// ParentDir is the directory the project is created in. Empty selects the working directory.
	ParentDir string
	// DryRun describes every step without running it.
	DryRun bool
}

// Validate checks the name and organisation.
func (r Request) Validate() error {
	if !namePattern.MatchString(r.Name) {
		return fmt.Errorf("%w %q: must match %s", ErrInvalidName, r.Name, namePattern)
	}

	segments := strings.Split(r.Org, ".")
	if len(segments) < 2 { //nolint:mnd // a reverse domain needs at least two labels
		return fmt.Errorf("%w %q: expected a reverse domain such as com.example", ErrInvalidOrg, r.Org)
	}

	for _, segment := range segments {
		if !orgSegmentPattern.MatchString(segment) {
			return fmt.Errorf("%w %q: segment %q must match %s", ErrInvalidOrg, r.Org, segment, orgSegmentPattern)
		}
	}

	return nil
}

// ProjectPath is the absolute directory the project is created in.
// It is only meaningful on a resolved request.
func (r Request) ProjectPath() string {
	return filepath.Join(r.ParentDir, r.Name)
}

// resolve validates the request and fills defaults.
func (r Request) resolve(defaultTemplate string) (Request, error) {
	err := r.Validate()
	if err != nil {
		return r, err
	}

	if r.TemplateURL == "" {
		r.TemplateURL = defaultTemplate
	}

	if r.TemplateURL == "" {
		r.TemplateURL = DefaultTemplateURL
	}

	parent := r.ParentDir
	if parent == "" {
		parent, err = os.Getwd()
		if err != nil {
			return r, fmt.Errorf("resolve working directory: %w", err)
		}
	}

	r.ParentDir, err = fsutil.ExpandHomePath(parent)
	if err != nil {
		return r, fmt.Errorf("resolve parent directory: %w", err)
	}

	return r, nil
}
