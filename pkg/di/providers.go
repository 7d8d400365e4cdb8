package di

import (
	"io"
	"log/slog"
	"os"

	"github.com/devantler-tech/flutterkit/pkg/config"
	"github.com/devantler-tech/flutterkit/pkg/svc/executor"
	"github.com/devantler-tech/flutterkit/pkg/svc/inspector"
	"github.com/devantler-tech/flutterkit/pkg/svc/provisioner"
	"github.com/devantler-tech/flutterkit/pkg/toolchain"
	"github.com/devantler-tech/flutterkit/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/viper"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root command and tests.
// Configuration is read from v lazily, the first time a handler resolves it, so flags
// bound to v after construction are honoured.
func NewRuntime(v *viper.Viper, logOutput io.Writer) *Runtime {
	if logOutput == nil {
		logOutput = os.Stderr
	}

	return New(
		provideConfig(v),
		provideLogger(logOutput),
		provideTimer,
		provideProber,
		provideExecutor,
		provideInteractiveRunner,
		providePipeline,
		provideInspector,
	)
}

func provideConfig(v *viper.Viper) func(Injector) error {
	return func(i Injector) error {
		do.Provide(i, func(Injector) (*config.Config, error) {
			return config.Load(v)
		})

		return nil
	}
}

func provideLogger(output io.Writer) func(Injector) error {
	return func(i Injector) error {
		do.Provide(i, func(i Injector) (*slog.Logger, error) {
			cfg, err := ResolveConfig(i)
			if err != nil {
				return nil, err
			}

			level, err := cfg.Log.SlogLevel()
			if err != nil {
				return nil, err
			}

			return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})), nil
		})

		return nil
	}
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

func provideProber(i Injector) error {
	do.Provide(i, func(Injector) (toolchain.Prober, error) {
		return toolchain.NewPathProber(), nil
	})

	return nil
}

func provideExecutor(i Injector) error {
	do.Provide(i, func(i Injector) (executor.Executor, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		return executor.NewCommandExecutor(
			executor.WithMaxOutputBytes(cfg.Executor.MaxOutputBytes),
			executor.WithLogger(logger),
		), nil
	})

	return nil
}

func provideInteractiveRunner(i Injector) error {
	do.Provide(i, func(i Injector) (executor.InteractiveRunner, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		fallback, err := ResolveExecutor(i)
		if err != nil {
			return nil, err
		}

		matcher, err := executor.NewConfirmationMatcher(cfg.Interactive.ConfirmPatterns)
		if err != nil {
			return nil, err //nolint:wrapcheck // already describes the bad pattern
		}

		return executor.NewInteractiveExecutor(executor.InteractiveOptions{
			Fallback:       fallback,
			Matcher:        matcher,
			Timeout:        cfg.Interactive.Timeout,
			MaxOutputBytes: cfg.Executor.MaxOutputBytes,
			Logger:         logger,
		}), nil
	})

	return nil
}

func providePipeline(i Injector) error {
	do.Provide(i, func(i Injector) (*provisioner.Pipeline, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		prober, err := ResolveProber(i)
		if err != nil {
			return nil, err
		}

		exec, err := ResolveExecutor(i)
		if err != nil {
			return nil, err
		}

		interactive, err := ResolveInteractiveRunner(i)
		if err != nil {
			return nil, err
		}

		return provisioner.NewPipeline(provisioner.Options{
			Prober:      prober,
			Executor:    exec,
			Interactive: interactive,
			Wrapper:     cfg.Runner.Wrapper,
			TemplateURL: cfg.Template.URL,
			Logger:      logger,
		}), nil
	})

	return nil
}

func provideInspector(i Injector) error {
	do.Provide(i, func(i Injector) (*inspector.Inspector, error) {
		exec, err := ResolveExecutor(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		return inspector.New(exec, inspector.WithLogger(logger)), nil
	})

	return nil
}
