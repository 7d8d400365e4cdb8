package project

import (
	"fmt"

	"github.com/devantler-tech/flutterkit/pkg/di"
	"github.com/devantler-tech/flutterkit/pkg/svc/scanner"
	"github.com/devantler-tech/flutterkit/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List Flutter projects",
		Long: `List the direct subdirectories of dir that contain a pubspec.yaml.
dir defaults to the working directory.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         di.RunEWithArgs(runtimeContainer, handleListRunE),
	}
}

func handleListRunE(cmd *cobra.Command, args []string, injector di.Injector) error {
	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	projects, err := scanner.ListProjects(dir)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	logger.DebugContext(cmd.Context(), "scanned directory", "dir", dir, "projects", len(projects))

	out := cmd.OutOrStdout()

	if len(projects) == 0 {
		notify.Infof(out, "no Flutter projects found in %s", dir)

		return nil
	}

	notify.Titlef(out, "📂", "Projects in %s", dir)

	for _, name := range projects {
		_, _ = fmt.Fprintln(out, name)
	}

	return nil
}
