package provisioner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/devantler-tech/flutterkit/pkg/fsutil"
	"github.com/devantler-tech/flutterkit/pkg/svc/executor"
	"github.com/devantler-tech/flutterkit/pkg/toolchain"
)

// action is one unit of work inside a step. A dry run only calls describe.
type action interface {
	describe(r *run) string
	apply(ctx context.Context, r *run) (string, error)
}

// command runs a tool. Flutter and Dart go through the detected runner; git is run as-is.
type command struct {
	tool string
	args func(r *run) []string
	// inParent runs the command in the parent directory instead of the project.
	inParent bool
	// onlyIfPresent and onlyIfAbsent are project-relative guards.
	onlyIfPresent string
	onlyIfAbsent  string
	interactive   bool
}

func (c command) resolve(r *run) executor.Command {
	dir := r.project
	if c.inParent {
		dir = r.req.ParentDir
	}

	args := c.args(r)

	if c.tool == toolchain.Git {
		return executor.Command{Name: c.tool, Args: args, Dir: dir}
	}

	return executor.Command{
		Name: r.runner.ResolveCommand(c.tool),
		Args: r.runner.ResolveArgs(c.tool, args),
		Dir:  dir,
	}
}

func (c command) describe(r *run) string {
	line := "would run: " + c.resolve(r).String()

	switch {
	case c.onlyIfPresent != "":
		line += " (if " + c.onlyIfPresent + " exists)"
	case c.onlyIfAbsent != "":
		line += " (if " + c.onlyIfAbsent + " is absent)"
	}

	return line
}

func (c command) apply(ctx context.Context, r *run) (string, error) {
	if c.onlyIfPresent != "" && !fsutil.Exists(r.path(c.onlyIfPresent)) {
		return "", nil
	}

	if c.onlyIfAbsent != "" && fsutil.Exists(r.path(c.onlyIfAbsent)) {
		return "skipped " + c.args(r)[0] + ": " + c.onlyIfAbsent + " already present", nil
	}

	cmd := c.resolve(r)
	r.logger.DebugContext(ctx, "running command", "command", cmd.String(), "dir", cmd.Dir)

	if c.interactive {
		result, err := r.interactive.RunInteractive(ctx, cmd)
		if err != nil {
			return "", err
		}

		r.logger.DebugContext(ctx, "command finished", "command", cmd.String(), "output", result.Output)

		note := "ran with " + result.Strategy.String()
		if n := len(result.Answered); n > 0 {
			note += ", answered " + strconv.Itoa(n) + " prompt(s)"
		}

		return note, nil
	}

	output, err := r.executor.Run(ctx, cmd)
	if err != nil {
		return "", err
	}

	r.logger.DebugContext(ctx, "command finished", "command", cmd.String(), "output", output)

	return "", nil
}

// writeFile replaces a project-relative file with generated content.
type writeFile struct {
	path    string
	content func(r *run) ([]byte, error)
}

func (w writeFile) describe(_ *run) string {
	return "would write: " + w.path
}

func (w writeFile) apply(_ context.Context, r *run) (string, error) {
	content, err := w.content(r)
	if err != nil {
		return "", err
	}

	err = fsutil.WriteFile(r.path(w.path), content)
	if err != nil {
		return "", fmt.Errorf("write %s: %w", w.path, err)
	}

	return "", nil
}

// editFile rewrites an existing project-relative file. A missing file fails with missing.
type editFile struct {
	path    string
	missing error
	edit    func(r *run, content string) (string, error)
}

func (e editFile) describe(_ *run) string {
	return "would write: " + e.path
}

func (e editFile) apply(_ context.Context, r *run) (string, error) {
	content, ok, err := fsutil.ReadFileIfExists(r.path(e.path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", e.path, err)
	}

	if !ok {
		return "", e.missing
	}

	updated, err := e.edit(r, string(content))
	if err != nil {
		return "", fmt.Errorf("%s: %w", e.path, err)
	}

	err = fsutil.WriteFile(r.path(e.path), []byte(updated))
	if err != nil {
		return "", fmt.Errorf("write %s: %w", e.path, err)
	}

	return "", nil
}

// removeAll deletes a project-relative path.
type removeAll struct {
	path string
}

func (rm removeAll) describe(_ *run) string {
	return "would remove: " + rm.path
}

func (rm removeAll) apply(_ context.Context, r *run) (string, error) {
	err := os.RemoveAll(r.path(rm.path))
	if err != nil {
		return "", fmt.Errorf("remove %s: %w", rm.path, err)
	}

	return "", nil
}

func (r *run) path(rel string) string {
	return filepath.Join(r.project, filepath.FromSlash(rel))
}

func fixedArgs(args ...string) func(*run) []string {
	return func(*run) []string { return args }
}

func joinPaths(paths ...string) string {
	return strings.Join(paths, " ")
}
