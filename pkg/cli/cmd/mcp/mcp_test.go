package mcp_test

import (
	"testing"

	mcpcmd "github.com/devantler-tech/flutterkit/pkg/cli/cmd/mcp"
	"github.com/devantler-tech/flutterkit/pkg/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMCPCmd(t *testing.T) {
	t.Parallel()

	cmd := mcpcmd.NewMCPCmd(di.New())

	require.NotNil(t, cmd)
	assert.Equal(t, "mcp", cmd.Use)
	assert.Equal(t, "Start an MCP server", cmd.Short)
	assert.Contains(t, cmd.Long, "create_flutter_project")
	assert.NotNil(t, cmd.RunE)
}

func TestMCPCmd_MissingServices(t *testing.T) {
	t.Parallel()

	cmd := mcpcmd.NewMCPCmd(di.New())
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve pipeline dependency")
}

func TestMCPCmd_RejectsArguments(t *testing.T) {
	t.Parallel()

	cmd := mcpcmd.NewMCPCmd(di.New())
	cmd.SetArgs([]string{"extra"})

	require.Error(t, cmd.Execute())
}
