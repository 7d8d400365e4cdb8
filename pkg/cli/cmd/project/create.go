package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/flutterkit/pkg/di"
	"github.com/devantler-tech/flutterkit/pkg/svc/provisioner"
	"github.com/devantler-tech/flutterkit/pkg/utils/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names of the create command.
const (
	OrgFlag      = "org"
	TemplateFlag = "template"
	DirFlag      = "dir"
	DryRunFlag   = "dry-run"
)

const createLongDesc = `Create a Flutter project from a template repository.

The template is cloned and renamed, dev, uat and prod flavors are generated, one
config file per environment is written and the Android build is patched for core
library desugaring and release minification. flutter and dart run through fvm when
it is installed.

Examples:
  # Create ./telecom_app
  flutterkit create telecom_app --org com.acme

  # Show every command and file without touching the disk
  flutterkit create telecom_app --org com.acme --dry-run

  # Use another template and parent directory
  flutterkit create telecom_app --org com.acme --template https://example.com/t.git --dir ~/src`

// NewCreateCmd creates the create command.
func NewCreateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "create <name>",
		Short:        "Create a Flutter project",
		Long:         createLongDesc,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.String(OrgFlag, "", "reverse-domain organisation, e.g. com.acme")
	flags.String(TemplateFlag, "", "git URL of the template (default from template.url)")
	flags.String(DirFlag, "", "directory to create the project in (default: working directory)")
	flags.Bool(DryRunFlag, false, "describe every step without running anything")

	_ = cmd.MarkFlagRequired(OrgFlag)

	cmd.RunE = di.RunEWithArgs(runtimeContainer, handleCreateRunE)

	return cmd
}

func handleCreateRunE(cmd *cobra.Command, args []string, injector di.Injector) error {
	req, err := requestFromFlags(args[0], cmd.Flags())
	if err != nil {
		return err
	}

	pipeline, err := di.ResolvePipeline(injector)
	if err != nil {
		return err
	}

	tmr, err := di.ResolveTimer(injector)
	if err != nil {
		return err
	}

	tmr.Start()

	out := cmd.OutOrStdout()

	if req.DryRun {
		notify.Titlef(out, "🔍", "Simulate project creation...")
	} else {
		notify.Titlef(out, "🚀", "Create project...")
	}

	progress := notify.NewLineWriter(out)
	result, err := pipeline.Run(cmd.Context(), req, provisioner.WithProgress(progress))

	progress.Flush()

	if err != nil {
		var failure *provisioner.Error
		if errors.As(err, &failure) {
			return &reportedError{failure: failure}
		}

		return fmt.Errorf("create project: %w", err)
	}

	if result.DryRun {
		notify.SuccessWithTimerf(out, tmr, "%d steps simulated", result.CompletedSteps)
	} else {
		notify.SuccessWithTimerf(out, tmr, "project created")
	}

	return nil
}

func requestFromFlags(name string, flags *pflag.FlagSet) (provisioner.Request, error) {
	req := provisioner.Request{Name: name}

	var err error

	for flag, target := range map[string]*string{
		OrgFlag:      &req.Org,
		TemplateFlag: &req.TemplateURL,
		DirFlag:      &req.ParentDir,
	} {
		*target, err = flags.GetString(flag)
		if err != nil {
			return req, fmt.Errorf("read --%s: %w", flag, err)
		}
	}

	req.DryRun, err = flags.GetBool(DryRunFlag)
	if err != nil {
		return req, fmt.Errorf("read --%s: %w", DryRunFlag, err)
	}

	return req, nil
}

// reportedError is a pipeline failure whose log lines were already streamed to the user.
// Its message is the failure line and the recovery hint only.
type reportedError struct {
	failure *provisioner.Error
}

func (e *reportedError) Error() string {
	message := strings.TrimPrefix(e.failure.Cause(), "✗ ")
	if e.failure.Hint != "" {
		message += "\n" + e.failure.Hint
	}

	return message
}

func (e *reportedError) Unwrap() error {
	return e.failure
}
