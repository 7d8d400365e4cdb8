package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/flutterkit/pkg/svc/provisioner"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp" //nolint:depguard // MCP SDK is required for MCP server
)

// Tool names.
const (
	ToolCreateProject = "create_flutter_project"
	ToolListProjects  = "list_flutter_projects"
	ToolProjectInfo   = "get_project_info"
)

// ErrMissingService is returned when the server is configured without a provisioner or inspector.
var ErrMissingService = errors.New("mcp server needs a provisioner and an inspector")

// CreateProjectInput are the arguments of create_flutter_project.
type CreateProjectInput struct {
	Name     string `json:"name"               jsonschema:"snake_case project name such as telecom_app"`
	Org      string `json:"org"                jsonschema:"reverse-domain organisation such as com.acme"`
	Template string `json:"template,omitempty" jsonschema:"git URL of the template repository"`
	Dir      string `json:"dir,omitempty"      jsonschema:"directory to create the project in"`
	DryRun   bool   `json:"dry_run,omitempty"  jsonschema:"describe every step without running it"`
}

// ListProjectsInput are the arguments of list_flutter_projects.
type ListProjectsInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"directory to scan; defaults to the server working directory"`
}

// ProjectInfoInput are the arguments of get_project_info.
type ProjectInfoInput struct {
	Path string `json:"path" jsonschema:"path of the project directory"`
}

type toolset struct {
	cfg ServerConfig
}

// register adds the tools to server. mcp.AddTool panics on invalid definitions, which
// only happens on programming errors.
func (t toolset) register(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: ToolCreateProject,
		Description: "Create a Flutter project from a template: clone, rename, generate dev/uat/prod " +
			"flavors, write environment configs and patch the Android build. Set dry_run to preview.",
	}, t.createProject)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolListProjects,
		Description: "List the Flutter projects (directories containing pubspec.yaml) in a directory.",
	}, t.listProjects)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolProjectInfo,
		Description: "Report name, version, description, pinned Flutter version, config files and git branch of a project.",
	}, t.projectInfo)
}

func (t toolset) createProject(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input CreateProjectInput,
) (*mcpsdk.CallToolResult, any, error) {
	dir := input.Dir
	if dir == "" {
		dir = t.cfg.WorkingDirectory
	}

	result, err := t.cfg.Provisioner.Run(ctx, provisioner.Request{
		Name:        input.Name,
		Org:         input.Org,
		TemplateURL: input.Template,
		ParentDir:   dir,
		DryRun:      input.DryRun,
	})
	if err != nil {
		return failure(err.Error()), nil, nil
	}

	return success(strings.Join(result.Log, "\n")), nil, nil
}

func (t toolset) listProjects(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input ListProjectsInput,
) (*mcpsdk.CallToolResult, any, error) {
	dir := input.Dir
	if dir == "" {
		dir = t.cfg.WorkingDirectory
	}

	if dir == "" {
		dir = "."
	}

	projects, err := t.cfg.ListProjects(dir)
	if err != nil {
		return failure(err.Error()), nil, nil
	}

	if len(projects) == 0 {
		return success(fmt.Sprintf("No Flutter projects found in %s", dir)), nil, nil
	}

	return success(strings.Join(projects, "\n")), nil, nil
}

func (t toolset) projectInfo(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ProjectInfoInput,
) (*mcpsdk.CallToolResult, any, error) {
	report, err := t.cfg.Inspector.Describe(ctx, input.Path)
	if err != nil {
		return failure(err.Error()), nil, nil
	}

	return success(report.String()), nil, nil
}

func success(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}

func failure(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}
