// Package mcp provides the command that serves flutterkit over the Model Context Protocol.
package mcp

import (
	"fmt"
	"os"

	"github.com/devantler-tech/flutterkit/pkg/di"
	mcpsvc "github.com/devantler-tech/flutterkit/pkg/svc/mcp"
	"github.com/spf13/cobra"
)

// VersionAnnotation is the root command annotation holding the plain version string.
const VersionAnnotation = "version"

// NewMCPCmd creates the mcp command.
func NewMCPCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server",
		Long: `Start an MCP server that exposes create_flutter_project, list_flutter_projects
and get_project_info as tools.

The server talks over stdio; stdout carries protocol messages only and diagnostics
go to stderr. Relative directories in tool calls resolve against the directory the
server was started in.

The server runs until the client disconnects or the process is terminated.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         di.RunEWithRuntime(runtimeContainer, handleMCPRunE),
	}
}

func handleMCPRunE(cmd *cobra.Command, injector di.Injector) error {
	pipeline, err := di.ResolvePipeline(injector)
	if err != nil {
		return err
	}

	describer, err := di.ResolveInspector(injector)
	if err != nil {
		return err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg := mcpsvc.DefaultConfig(version(cmd), pipeline, describer)
	cfg.Logger = logger
	cfg.WorkingDirectory = workDir

	err = mcpsvc.RunServer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("running MCP server: %w", err)
	}

	return nil
}

func version(cmd *cobra.Command) string {
	if v, ok := cmd.Root().Annotations[VersionAnnotation]; ok && v != "" {
		return v
	}

	return "dev"
}
