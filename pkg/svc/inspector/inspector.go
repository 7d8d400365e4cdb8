// Package inspector summarises an existing Flutter project.
package inspector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/devantler-tech/flutterkit/pkg/fsutil"
	"github.com/devantler-tech/flutterkit/pkg/svc/executor"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	manifestFile = "pubspec.yaml"
	pinFile      = ".fvmrc"
	configDir    = "config"

	// Unknown replaces a missing name or version.
	Unknown = "unknown"
	// NoValue replaces a missing description.
	NoValue = "—"
	// NotPinned is reported when the project has no .fvmrc.
	NotPinned = "not pinned"
	// BranchUnavailable is reported when git cannot name the current branch.
	BranchUnavailable = "could not read branch"
)

// ErrProjectNotFound is returned when the inspected path is missing or not a directory.
var ErrProjectNotFound = errors.New("project not found")

// VersionInfo is the semantic breakdown of the manifest version.
type VersionInfo struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
	Build      string
}

// Report describes one project.
type Report struct {
	Path        string
	Name        string
	Version     string
	Description string

	// SemVer is nil when Version is not a semantic version.
	SemVer      *VersionInfo
	FlutterPin  string
	ConfigFiles []string
	Branch      string
}

type manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Inspector reads project metadata. Executor runs the git query; Logger receives
// warnings about manifests that cannot be parsed.
type Inspector struct {
	Executor executor.Executor
	Logger   *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the Inspector's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		i.Logger = logger
	}
}

// New creates an Inspector; a nil executor selects executor.NewCommandExecutor.
func New(exec executor.Executor, opts ...Option) *Inspector {
	if exec == nil {
		exec = executor.NewCommandExecutor()
	}

	inspector := &Inspector{Executor: exec}
	for _, opt := range opts {
		opt(inspector)
	}

	if inspector.Logger == nil {
		inspector.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return inspector
}

// Describe builds the report for the project at path. Reading the manifest, the version
// pin, the config directory and the branch happen concurrently. A manifest that is not
// valid YAML leaves the name, version and description placeholders in place.
func (i *Inspector) Describe(ctx context.Context, path string) (Report, error) {
	root, err := fsutil.ExpandHomePath(path)
	if err != nil {
		return Report{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	if !fsutil.IsDir(root) {
		return Report{}, fmt.Errorf("%w: %s", ErrProjectNotFound, root)
	}

	report := Report{Path: root}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error { return i.readManifest(groupCtx, root, &report) })
	group.Go(func() error { return readPin(root, &report) })
	group.Go(func() error { return listConfigs(root, &report) })
	group.Go(func() error {
		report.Branch = i.branch(groupCtx, root)

		return nil
	})

	err = group.Wait()
	if err != nil {
		return Report{}, err
	}

	return report, nil
}

func (i *Inspector) readManifest(ctx context.Context, root string, report *Report) error {
	report.Name, report.Version, report.Description = Unknown, Unknown, NoValue

	data, ok, err := fsutil.ReadFileIfExists(filepath.Join(root, manifestFile))
	if err != nil {
		return fmt.Errorf("read %s: %w", manifestFile, err)
	}

	if !ok {
		return nil
	}

	var parsed manifest

	err = yaml.Unmarshal(data, &parsed)
	if err != nil {
		i.Logger.WarnContext(ctx, "manifest is not valid yaml",
			"path", filepath.Join(root, manifestFile), "error", err)

		return nil
	}

	if parsed.Name != "" {
		report.Name = parsed.Name
	}

	if parsed.Version != "" {
		report.Version = parsed.Version
		report.SemVer = breakdown(parsed.Version)
	}

	if description := strings.Join(strings.Fields(parsed.Description), " "); description != "" {
		report.Description = description
	}

	return nil
}

func breakdown(raw string) *VersionInfo {
	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil
	}

	return &VersionInfo{
		Major:      version.Major(),
		Minor:      version.Minor(),
		Patch:      version.Patch(),
		Prerelease: version.Prerelease(),
		Build:      version.Metadata(),
	}
}

func readPin(root string, report *Report) error {
	report.FlutterPin = NotPinned

	data, ok, err := fsutil.ReadFileIfExists(filepath.Join(root, pinFile))
	if err != nil {
		return fmt.Errorf("read %s: %w", pinFile, err)
	}

	if ok && strings.TrimSpace(string(data)) != "" {
		report.FlutterPin = strings.TrimSpace(string(data))
	}

	return nil
}

func listConfigs(root string, report *Report) error {
	entries, err := os.ReadDir(filepath.Join(root, configDir))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("read %s: %w", configDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			report.ConfigFiles = append(report.ConfigFiles, entry.Name())
		}
	}

	slices.Sort(report.ConfigFiles)

	return nil
}

func (i *Inspector) branch(ctx context.Context, root string) string {
	output, err := i.Executor.Run(ctx, executor.Command{
		Name: "git",
		Args: []string{"rev-parse", "--abbrev-ref", "HEAD"},
		Dir:  root,
	})

	branch := strings.TrimSpace(output)
	if err != nil || branch == "" {
		return BranchUnavailable
	}

	return branch
}
