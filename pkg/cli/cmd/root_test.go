package cmd_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/flutterkit/pkg/cli/cmd"
	"github.com/devantler-tech/flutterkit/pkg/config"
	"github.com/devantler-tech/flutterkit/pkg/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_VersionFormatting(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")

	assert.Equal(t, "1.2.3 (Built on 2025-08-17 from Git SHA abc123)", root.Version)
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("", "", "")

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"create", "list", "info", "mcp"} {
		assert.Contains(t, names, want)
	}

	assert.NotNil(t, root.PersistentFlags().Lookup(cmd.ConfigFlag))
	assert.NotNil(t, root.PersistentFlags().Lookup(cmd.LogLevelFlag))
}

func TestExecute_ShowsHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)
	root.SetArgs([]string{})

	require.NoError(t, cmd.Execute(root))
	assert.Contains(t, out.String(), "flutterkit provisions Flutter projects")
	assert.Contains(t, out.String(), "create")
	assert.Contains(t, out.String(), "--log-level")
}

func TestExecute_UnknownCommand(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(io.Discard)
	root.SetArgs([]string{"destroy"})

	err := cmd.Execute(root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "command execution failed")
	assert.Contains(t, err.Error(), `unknown command "destroy" for "flutterkit"`)
}

func TestExecute_ConfigFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configFile := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: loud\n"), 0o600))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "explicit file is read",
			args: []string{"--config", configFile, "list", dir},
			want: "invalid log level",
		},
		{
			name: "missing explicit file",
			args: []string{"--config", filepath.Join(dir, "missing.yaml"), "list", dir},
			want: "failed to read config file",
		},
		{
			name: "log level flag overrides file",
			args: []string{"--config", configFile, "--log-level", "shout", "list", dir},
			want: `"shout"`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			v := config.NewViper("")
			root := cmd.NewRootCmdWithRuntime(v, di.NewRuntime(v, io.Discard))
			root.SetOut(io.Discard)
			root.SetArgs(testCase.args)

			err := cmd.Execute(root)

			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.want)
		})
	}
}

func TestExecute_LogLevelFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	dir := t.TempDir()
	v := config.NewViper("")
	root := cmd.NewRootCmdWithRuntime(v, di.NewRuntime(v, io.Discard))
	root.SetOut(&out)
	root.SetArgs([]string{"--log-level", "debug", "list", dir})

	require.NoError(t, cmd.Execute(root))
	assert.Equal(t, "debug", v.GetString(config.KeyLogLevel))
	assert.Contains(t, out.String(), "no Flutter projects found in "+dir)
}
