// Package mcp exposes project provisioning, listing and inspection as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/devantler-tech/flutterkit/pkg/svc/inspector"
	"github.com/devantler-tech/flutterkit/pkg/svc/provisioner"
	"github.com/devantler-tech/flutterkit/pkg/svc/scanner"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp" //nolint:depguard // MCP SDK is required for MCP server
)

// Server configuration constants.
const (
	serverKeepAlive = 30 * time.Second
	serverPageSize  = 100
)

// Provisioner creates projects.
type Provisioner interface {
	Run(ctx context.Context, req provisioner.Request, opts ...provisioner.RunOption) (provisioner.Result, error)
}

// Inspector describes projects.
type Inspector interface {
	Describe(ctx context.Context, path string) (inspector.Report, error)
}

// ProjectLister lists the projects in a directory.
type ProjectLister func(dir string) ([]string, error)

// ServerConfig contains configuration for the MCP server.
type ServerConfig struct {
	// Name is the server name.
	Name string
	// Version is the server version.
	Version string
	// Logger is the logger for the server (optional).
	Logger *slog.Logger
	// WorkingDirectory is the default directory for tools called without one.
	WorkingDirectory string

	Provisioner  Provisioner
	Inspector    Inspector
	ListProjects ProjectLister
}

// DefaultConfig returns a default server configuration.
func DefaultConfig(version string, pipeline Provisioner, describer Inspector) ServerConfig {
	return ServerConfig{
		Name:         "flutterkit-mcp",
		Version:      version,
		Logger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Provisioner:  pipeline,
		Inspector:    describer,
		ListProjects: scanner.ListProjects,
	}
}

// NewServer creates and configures a new MCP server with the flutterkit tools.
func NewServer(cfg ServerConfig) (*mcpsdk.Server, error) {
	if cfg.Provisioner == nil || cfg.Inspector == nil {
		return nil, ErrMissingService
	}

	if cfg.ListProjects == nil {
		cfg.ListProjects = scanner.ListProjects
	}

	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &mcpsdk.ServerOptions{
		Instructions: "flutterkit MCP server - creates Flutter projects from a template, " +
			"lists existing projects and reports project metadata",
		Logger:    cfg.Logger,
		KeepAlive: serverKeepAlive,
		PageSize:  serverPageSize,
	})

	tools := toolset{cfg: cfg}
	tools.register(server)

	return server, nil
}

// RunServer creates and runs an MCP server over stdio.
// It blocks until the client disconnects or ctx is canceled.
func RunServer(ctx context.Context, cfg ServerConfig) error {
	server, err := NewServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	err = server.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("running server: %w", err)
	}

	return nil
}
