package di

import (
	"fmt"
	"log/slog"

	"github.com/devantler-tech/flutterkit/pkg/config"
	"github.com/devantler-tech/flutterkit/pkg/svc/executor"
	"github.com/devantler-tech/flutterkit/pkg/svc/inspector"
	"github.com/devantler-tech/flutterkit/pkg/svc/provisioner"
	"github.com/devantler-tech/flutterkit/pkg/toolchain"
	"github.com/devantler-tech/flutterkit/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

func resolve[T any](injector Injector, name string) (T, error) {
	value, err := do.Invoke[T](injector)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("resolve %s dependency: %w", name, err)
	}

	return value, nil
}

// ResolveConfig retrieves the loaded configuration.
func ResolveConfig(injector Injector) (*config.Config, error) {
	return resolve[*config.Config](injector, "config")
}

// ResolveLogger retrieves the diagnostic logger.
func ResolveLogger(injector Injector) (*slog.Logger, error) {
	return resolve[*slog.Logger](injector, "logger")
}

// ResolveTimer retrieves the timer dependency from the injector with consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	return resolve[timer.Timer](injector, "timer")
}

// ResolveProber retrieves the tool availability prober.
func ResolveProber(injector Injector) (toolchain.Prober, error) {
	return resolve[toolchain.Prober](injector, "prober")
}

// ResolveExecutor retrieves the command executor.
func ResolveExecutor(injector Injector) (executor.Executor, error) {
	return resolve[executor.Executor](injector, "executor")
}

// ResolveInteractiveRunner retrieves the interactive command executor.
func ResolveInteractiveRunner(injector Injector) (executor.InteractiveRunner, error) {
	return resolve[executor.InteractiveRunner](injector, "interactive executor")
}

// ResolvePipeline retrieves the provisioning pipeline.
func ResolvePipeline(injector Injector) (*provisioner.Pipeline, error) {
	return resolve[*provisioner.Pipeline](injector, "pipeline")
}

// ResolveInspector retrieves the project inspector.
func ResolveInspector(injector Injector) (*inspector.Inspector, error) {
	return resolve[*inspector.Inspector](injector, "inspector")
}

// Handler decorators.

// WithTimer decorates a handler to automatically resolve the timer dependency.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
