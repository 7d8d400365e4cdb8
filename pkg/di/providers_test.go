package di_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/flutterkit/pkg/config"
	"github.com/devantler-tech/flutterkit/pkg/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime_ResolvesServices(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	rt := di.NewRuntime(config.NewViper(""), &logs)

	err := rt.Invoke(func(injector di.Injector) error {
		cfg, err := di.ResolveConfig(injector)
		require.NoError(t, err)
		assert.Equal(t, "fvm", cfg.Runner.Wrapper)

		logger, err := di.ResolveLogger(injector)
		require.NoError(t, err)
		logger.Info("wired")

		_, err = di.ResolveTimer(injector)
		require.NoError(t, err)

		_, err = di.ResolveProber(injector)
		require.NoError(t, err)

		_, err = di.ResolveExecutor(injector)
		require.NoError(t, err)

		_, err = di.ResolveInteractiveRunner(injector)
		require.NoError(t, err)

		pipeline, err := di.ResolvePipeline(injector)
		require.NoError(t, err)
		assert.NotNil(t, pipeline)

		inspector, err := di.ResolveInspector(injector)
		require.NoError(t, err)
		assert.NotNil(t, inspector)

		return nil
	})

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "msg=wired")
}

func TestNewRuntime_LogLevelFromConfig(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	v := config.NewViper("")
	v.Set(config.KeyLogLevel, "warn")

	err := di.NewRuntime(v, &logs).Invoke(func(injector di.Injector) error {
		logger, err := di.ResolveLogger(injector)
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")

		return nil
	})

	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "hidden")
	assert.Contains(t, logs.String(), "shown")
}

func TestNewRuntime_ConfigError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flutterkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interactive:\n  timeout: 0s\n"), 0o600))

	err := di.NewRuntime(config.NewViper(path), nil).Invoke(func(injector di.Injector) error {
		_, err := di.ResolvePipeline(injector)

		return err
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve pipeline dependency")
}
