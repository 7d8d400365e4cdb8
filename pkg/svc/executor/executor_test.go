package executor_test

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devantler-tech/flutterkit/pkg/svc/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shell(script string) executor.Command {
	return executor.Command{Name: "sh", Args: []string{"-c", script}}
}

func TestCommandExecutor_Run_MergesStreams(t *testing.T) {
	t.Parallel()

	runner := executor.NewCommandExecutor()

	output, err := runner.Run(context.Background(), shell("echo out; echo err 1>&2"))

	require.NoError(t, err)
	assert.Contains(t, output, "out\n")
	assert.Contains(t, output, "err\n")
}

func TestCommandExecutor_Run_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		script         string
		wantDiagnostic string
	}{
		{name: "stderr preferred", script: "echo out; echo boom 1>&2; exit 3", wantDiagnostic: "boom"},
		{name: "stdout when stderr empty", script: "echo only-out; exit 1", wantDiagnostic: "only-out"},
		{name: "generic when silent", script: "exit 2", wantDiagnostic: "exit status 2"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := executor.NewCommandExecutor().Run(context.Background(), shell(testCase.script))

			require.Error(t, err)

			var failed *executor.CommandFailedError
			require.ErrorAs(t, err, &failed)
			assert.Equal(t, "sh", failed.Command)
			assert.Equal(t, []string{"-c", testCase.script}, failed.Args)
			assert.Equal(t, testCase.wantDiagnostic, failed.Diagnostic)
			assert.Contains(t, err.Error(), testCase.wantDiagnostic)

			var exitErr *exec.ExitError
			assert.ErrorAs(t, err, &exitErr)
		})
	}
}

func TestCommandExecutor_Run_MissingBinary(t *testing.T) {
	t.Parallel()

	_, err := executor.NewCommandExecutor().Run(
		context.Background(),
		executor.Command{Name: "definitely-not-a-real-binary-7f3a"},
	)

	var failed *executor.CommandFailedError
	require.ErrorAs(t, err, &failed)
	assert.NotEmpty(t, failed.Diagnostic)
}

func TestCommandExecutor_Run_OutputLimit(t *testing.T) {
	t.Parallel()

	runner := executor.NewCommandExecutor(executor.WithMaxOutputBytes(16))

	_, err := runner.Run(context.Background(), shell(`i=0; while [ $i -lt 100 ]; do echo line-$i; i=$((i+1)); done`))

	require.ErrorIs(t, err, executor.ErrOutputLimitExceeded)
	assert.Contains(t, err.Error(), "limit 16 bytes")
}

func TestCommandExecutor_Run_LargeOutputWithinDefaultLimit(t *testing.T) {
	t.Parallel()

	output, err := executor.NewCommandExecutor().Run(
		context.Background(),
		executor.Command{Name: "head", Args: []string{"-c", "5000000", "/dev/zero"}},
	)

	require.NoError(t, err)
	assert.Len(t, output, 5000000)
}

func TestCommandExecutor_Run_DirAndEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	cmd := shell(`echo "$FLUTTERKIT_VALUE"; pwd -P`)
	cmd.Dir = dir
	cmd.Env = map[string]string{"FLUTTERKIT_VALUE": "hello"}

	output, err := executor.NewCommandExecutor().Run(context.Background(), cmd)

	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "hello", lines[0])
	assert.Equal(t, resolved, lines[1])
}

func TestCommandExecutor_Run_EmptyCommand(t *testing.T) {
	t.Parallel()

	_, err := executor.NewCommandExecutor().Run(context.Background(), executor.Command{})

	require.ErrorIs(t, err, executor.ErrEmptyCommand)
}

func TestCommandExecutor_Run_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executor.NewCommandExecutor().Run(ctx, executor.Command{Name: "sleep", Args: []string{"5"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "killed"))
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	cmd := executor.Command{
		Name: "git",
		Args: []string{"commit", "--no-verify", "-m", "chore: snapshot before flavorizr", ""},
	}

	assert.Equal(t, `git commit --no-verify -m "chore: snapshot before flavorizr" ""`, cmd.String())
}
