package project

import (
	"fmt"

	"github.com/devantler-tech/flutterkit/pkg/di"
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command.
func NewInfoCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Show project details",
		Long: `Show the name, version, description, pinned Flutter version, environment
config files and current git branch of a Flutter project.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         di.RunEWithArgs(runtimeContainer, handleInfoRunE),
	}
}

func handleInfoRunE(cmd *cobra.Command, args []string, injector di.Injector) error {
	describer, err := di.ResolveInspector(injector)
	if err != nil {
		return err
	}

	report, err := describer.Describe(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("inspect project: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.String())

	return nil
}
