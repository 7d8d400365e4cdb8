package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/devantler-tech/flutterkit/pkg/cli/cmd/mcp"
	"github.com/devantler-tech/flutterkit/pkg/cli/cmd/project"
	"github.com/devantler-tech/flutterkit/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/flutterkit/pkg/config"
	"github.com/devantler-tech/flutterkit/pkg/di"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Global flag names.
const (
	ConfigFlag   = "config"
	LogLevelFlag = "log-level"
)

// NewRootCmd creates the root command with version info, global flags and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	v := config.NewViper("")

	return newRootCmd(v, di.NewRuntime(v, nil), version, commit, date)
}

// NewRootCmdWithRuntime is NewRootCmd with a caller-supplied runtime. Global flags are
// bound to v.
func NewRootCmdWithRuntime(v *viper.Viper, runtimeContainer *di.Runtime) *cobra.Command {
	return newRootCmd(v, runtimeContainer, "dev", "none", "unknown")
}

func newRootCmd(v *viper.Viper, runtimeContainer *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flutterkit",
		Short: "flutterkit provisions Flutter projects from a template",
		Long: `flutterkit provisions Flutter projects from a template repository and inspects
existing ones. It runs as a CLI or, with "flutterkit mcp", as an MCP server.`,
		RunE:         handleRootRunE,
		SilenceUsage: true,
		Annotations:  map[string]string{mcpcmd.VersionAnnotation: version},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyConfigFlag(cmd, v)
		},
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	flags := cmd.PersistentFlags()
	flags.String(ConfigFlag, "", "config file (default: ./flutterkit.yaml, then ~/.config/flutterkit/flutterkit.yaml)")
	flags.String(LogLevelFlag, "", "diagnostic log level: debug, info, warn or error")

	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup(LogLevelFlag))

	cmd.AddCommand(project.NewCreateCmd(runtimeContainer))
	cmd.AddCommand(project.NewListCmd(runtimeContainer))
	cmd.AddCommand(project.NewInfoCmd(runtimeContainer))
	cmd.AddCommand(mcpcmd.NewMCPCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors. SIGINT and SIGTERM cancel
// the command's context.
func Execute(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	executor := errorhandler.NewExecutor()

	err := executor.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

func applyConfigFlag(cmd *cobra.Command, v *viper.Viper) error {
	path, err := cmd.Flags().GetString(ConfigFlag)
	if err != nil {
		return fmt.Errorf("read --%s: %w", ConfigFlag, err)
	}

	if path != "" {
		v.SetConfigFile(path)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
