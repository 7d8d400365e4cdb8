package provisioner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/devantler-tech/flutterkit/pkg/fsutil"
	"github.com/devantler-tech/flutterkit/pkg/svc/executor"
	"github.com/devantler-tech/flutterkit/pkg/svc/patcher"
	"github.com/devantler-tech/flutterkit/pkg/toolchain"
)

// Result is the outcome of a run. On failure it still carries the log and the number of
// steps that completed.
type Result struct {
	Log            []string
	ProjectPath    string
	CompletedSteps int
	DryRun         bool
}

// Options configures a Pipeline. Nil collaborators select the real implementations.
type Options struct {
	Prober      toolchain.Prober
	Executor    executor.Executor
	Interactive executor.InteractiveRunner
	// Wrapper is the version-manager executable; empty selects toolchain.DefaultWrapper.
	Wrapper string
	// TemplateURL replaces DefaultTemplateURL for requests that name no template.
	TemplateURL string
	// Writer receives log lines as they are produced.
	Writer io.Writer
	Logger *slog.Logger
}

// Pipeline provisions projects. It holds no per-run state and is safe to reuse.
type Pipeline struct {
	prober      toolchain.Prober
	executor    executor.Executor
	interactive executor.InteractiveRunner
	wrapper     string
	template    string
	writer      io.Writer
	logger      *slog.Logger
	steps       []step
}

// RunOption adjusts a single run.
type RunOption func(*runSettings)

type runSettings struct {
	writer io.Writer
}

// WithProgress mirrors log lines of this run to w.
func WithProgress(w io.Writer) RunOption {
	return func(s *runSettings) {
		s.writer = w
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts Options) *Pipeline {
	pipeline := &Pipeline{
		prober:      opts.Prober,
		executor:    opts.Executor,
		interactive: opts.Interactive,
		wrapper:     opts.Wrapper,
		template:    opts.TemplateURL,
		writer:      opts.Writer,
		logger:      opts.Logger,
		steps:       provisioningSteps(),
	}

	if pipeline.prober == nil {
		pipeline.prober = toolchain.NewPathProber()
	}

	if pipeline.executor == nil {
		pipeline.executor = executor.NewCommandExecutor()
	}

	if pipeline.interactive == nil {
		pipeline.interactive = executor.NewInteractiveExecutor(executor.InteractiveOptions{
			Fallback: pipeline.executor,
			Logger:   opts.Logger,
		})
	}

	if pipeline.logger == nil {
		pipeline.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return pipeline
}

// run is the state of one Run call.
type run struct {
	req         Request
	project     string
	runner      toolchain.Runner
	log         *RunLog
	prober      toolchain.Prober
	executor    executor.Executor
	interactive executor.InteractiveRunner
	logger      *slog.Logger
}

// Run provisions the project described by req. Steps run strictly in order and the
// first failure stops the run. The returned error is always an *Error.
func (p *Pipeline) Run(ctx context.Context, req Request, opts ...RunOption) (Result, error) {
	settings := runSettings{writer: p.writer}
	for _, opt := range opts {
		opt(&settings)
	}

	resolved, err := req.resolve(p.template)
	if err != nil {
		return Result{DryRun: req.DryRun}, &Error{Kind: KindValidation, Err: err}
	}

	state := &run{
		req:         resolved,
		project:     resolved.ProjectPath(),
		runner:      toolchain.DetectRunner(p.prober, p.wrapper),
		log:         NewRunLog(settings.writer),
		prober:      p.prober,
		executor:    p.executor,
		interactive: p.interactive,
		logger:      p.logger,
	}

	result := Result{ProjectPath: state.project, DryRun: resolved.DryRun}

	if !resolved.DryRun {
		err = state.preflight()
		if err != nil {
			return result, &Error{Kind: KindPreflight, Err: err}
		}
	}

	p.logger.InfoContext(ctx, "provisioning project",
		"name", resolved.Name,
		"org", resolved.Org,
		"template", resolved.TemplateURL,
		"path", state.project,
		"runner", state.runner.Mode.String(),
		"dryRun", resolved.DryRun,
	)

	for index, current := range p.steps {
		err = state.execute(ctx, index+1, current)
		if err != nil {
			result.Log = state.log.Lines()

			failure := state.fail(index+1, err)
			p.logger.ErrorContext(ctx, "provisioning failed",
				"step", index+1, "kind", failure.Kind.String(), "error", err)

			return result, failure
		}

		result.CompletedSteps = index + 1
	}

	if resolved.DryRun {
		state.log.Addf("Dry run complete. No changes were made.")
	} else {
		state.log.Addf("Project ready at %s", state.project)
	}

	result.Log = state.log.Lines()

	return result, nil
}

func (r *run) preflight() error {
	if !r.runner.FlutterAvailable(r.prober) {
		return fmt.Errorf("%w: install %s or put %s on PATH", ErrFlutterNotFound, r.runner.Wrapper, toolchain.Flutter)
	}

	if !r.prober.Exists(toolchain.Git) {
		return fmt.Errorf("%w: install git and put it on PATH", ErrGitNotFound)
	}

	if fsutil.Exists(r.project) {
		return fmt.Errorf("%w: %s", ErrProjectExists, r.project)
	}

	return nil
}

func (r *run) execute(ctx context.Context, index int, current step) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("run canceled before step %d: %w", index, err)
	}

	if !r.req.DryRun && current.requires != "" && !fsutil.Exists(r.path(current.requires)) {
		return current.missing
	}

	r.log.Addf("[%d/%d] %s", index, StepCount, current.title)

	for _, act := range current.actions {
		if r.req.DryRun {
			r.log.Addf("  %s", act.describe(r))

			continue
		}

		note, err := act.apply(ctx, r)
		if err != nil {
			return err
		}

		if note != "" {
			r.log.Addf("  %s", note)
		}
	}

	if !r.req.DryRun {
		r.log.Addf("  ✔ %s", current.done)
	}

	return nil
}

func (r *run) fail(index int, err error) *Error {
	failure := &Error{
		Kind: classify(err),
		Step: index,
		Log:  r.log.Lines(),
		Err:  err,
	}

	if index >= 2 && !r.req.DryRun && fsutil.Exists(r.project) {
		failure.Hint = fmt.Sprintf(
			"remove %s before retrying; a partially provisioned project cannot be resumed", r.project,
		)
	}

	return failure
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrManifestMissing),
		errors.Is(err, ErrFlavorizrMissing),
		errors.Is(err, ErrBuildScriptMissing),
		errors.Is(err, patcher.ErrAnchorNotFound),
		errors.Is(err, patcher.ErrUnbalancedBlock):
		return KindStructuralTemplate
	default:
		return KindStepExecution
	}
}
