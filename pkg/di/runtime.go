// Package di wires flutterkit's services with samber/do.
//
// A Runtime holds module functions that register providers. Every Invoke builds a
// fresh injector, runs the modules in order, calls the handler and shuts the injector
// down again, so commands never share service instances.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container passed to modules and handlers.
type Injector = do.Injector

// Runtime runs handlers inside a freshly configured injector.
type Runtime struct {
	modules []func(Injector) error
}

// New creates a Runtime from modules. Nil modules are ignored.
func New(modules ...func(Injector) error) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds an injector, applies the runtime's modules followed by extra, and runs
// handler. A module error is returned as-is and the handler is not called.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...func(Injector) error) error {
	injector := do.New()
	defer injector.Shutdown()

	for _, module := range append(append([]func(Injector) error{}, r.modules...), extra...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler to cobra's RunE.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}

// RunEWithArgs is RunEWithRuntime for handlers that need the positional arguments.
func RunEWithArgs(
	runtime *Runtime,
	handler func(cmd *cobra.Command, args []string, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, args, injector)
		})
	}
}
