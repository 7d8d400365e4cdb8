package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/flutterkit/pkg/config"
	"github.com/devantler-tech/flutterkit/pkg/svc/executor"
	"github.com/devantler-tech/flutterkit/pkg/svc/provisioner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Decode(config.NewViper(""))

	require.NoError(t, err)
	assert.Equal(t, "fvm", cfg.Runner.Wrapper)
	assert.Equal(t, provisioner.DefaultTemplateURL, cfg.Template.URL)
	assert.Equal(t, 300*time.Second, cfg.Interactive.Timeout)
	assert.Equal(t, executor.DefaultConfirmPatterns(), cfg.Interactive.ConfirmPatterns)
	assert.Equal(t, 10485760, cfg.Executor.MaxOutputBytes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("TEAM_WRAPPER", "puro")

	path := filepath.Join(t.TempDir(), "flutterkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`runner:
  wrapper: ${TEAM_WRAPPER}
template:
  url: ${TEAM_TEMPLATE:-https://example.com/team-template.git}
interactive:
  timeout: 45s
  confirm_patterns:
    - overwrite\?
    - continue
executor:
  max_output_bytes: 2048
log:
  level: debug
`), 0o600))

	cfg, err := config.Load(config.NewViper(path))

	require.NoError(t, err)
	assert.Equal(t, "puro", cfg.Runner.Wrapper)
	assert.Equal(t, "https://example.com/team-template.git", cfg.Template.URL)
	assert.Equal(t, 45*time.Second, cfg.Interactive.Timeout)
	assert.Equal(t, []string{`overwrite\?`, "continue"}, cfg.Interactive.ConfirmPatterns)
	assert.Equal(t, 2048, cfg.Executor.MaxOutputBytes)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("FLUTTERKIT_RUNNER_WRAPPER", "asdf")
	t.Setenv("FLUTTERKIT_INTERACTIVE_TIMEOUT", "10s")

	path := filepath.Join(t.TempDir(), "flutterkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runner:\n  wrapper: puro\n"), 0o600))

	cfg, err := config.Load(config.NewViper(path))

	require.NoError(t, err)
	assert.Equal(t, "asdf", cfg.Runner.Wrapper)
	assert.Equal(t, 10*time.Second, cfg.Interactive.Timeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.NewViper(filepath.Join(t.TempDir(), "absent.yaml")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{name: "zero timeout", key: config.KeyInteractiveTimeout, value: "0s", want: config.ErrInvalidTimeout},
		{name: "negative output cap", key: config.KeyExecutorMaxOutputBytes, value: -1, want: config.ErrInvalidOutputLimit},
		{name: "unknown level", key: config.KeyLogLevel, value: "loud", want: config.ErrInvalidLogLevel},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			v := config.NewViper("")
			v.Set(test.key, test.value)

			_, err := config.Decode(v)

			require.ErrorIs(t, err, test.want)
		})
	}
}

func TestDecode_InvalidPattern(t *testing.T) {
	t.Parallel()

	v := config.NewViper("")
	v.Set(config.KeyInteractivePatterns, []string{"("})

	_, err := config.Decode(v)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive.confirm_patterns")
}
