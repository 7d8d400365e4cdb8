package di_test

import (
	"errors"
	"testing"

	"github.com/devantler-tech/flutterkit/pkg/di"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errHandler = errors.New("handler error")
	errModule  = errors.New("module error")
)

func TestRuntime_Invoke(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		modules     []func(di.Injector) error
		handlerErr  error
		want        error
		wantHandler bool
	}{
		{name: "no modules", wantHandler: true},
		{name: "nil module is skipped", modules: []func(di.Injector) error{nil}, wantHandler: true},
		{name: "handler error", handlerErr: errHandler, want: errHandler, wantHandler: true},
		{
			name:    "module error stops before handler",
			modules: []func(di.Injector) error{func(di.Injector) error { return errModule }},
			want:    errModule,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			called := false
			err := di.New(test.modules...).Invoke(func(di.Injector) error {
				called = true

				return test.handlerErr
			})

			assert.Equal(t, test.want, err)
			assert.Equal(t, test.wantHandler, called)
		})
	}
}

func TestRuntime_Invoke_ModuleOrder(t *testing.T) {
	t.Parallel()

	var order []int

	step := func(n int) func(di.Injector) error {
		return func(di.Injector) error {
			order = append(order, n)

			return nil
		}
	}

	err := di.New(step(1)).Invoke(func(di.Injector) error {
		order = append(order, 4)

		return nil
	}, step(2), nil, step(3))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, order)
}

func TestRuntime_Invoke_FreshInjectorPerCall(t *testing.T) {
	t.Parallel()

	type counter struct{ n int }

	built := 0
	runtime := di.New(func(i di.Injector) error {
		do.Provide(i, func(di.Injector) (*counter, error) {
			built++

			return &counter{n: built}, nil
		})

		return nil
	})

	for want := 1; want <= 2; want++ {
		err := runtime.Invoke(func(i di.Injector) error {
			value, err := do.Invoke[*counter](i)
			require.NoError(t, err)
			assert.Equal(t, want, value.n)

			return nil
		})
		require.NoError(t, err)
	}
}

func TestRunEWithRuntime(t *testing.T) {
	t.Parallel()

	type settings struct{ value string }

	runtime := di.New(func(i di.Injector) error {
		do.Provide(i, func(di.Injector) (*settings, error) {
			return &settings{value: "configured"}, nil
		})

		return nil
	})

	cmd := &cobra.Command{Use: "test"}

	var received *cobra.Command

	runE := di.RunEWithRuntime(runtime, func(c *cobra.Command, i di.Injector) error {
		received = c

		resolved, err := do.Invoke[*settings](i)
		require.NoError(t, err)
		assert.Equal(t, "configured", resolved.value)

		return errHandler
	})

	require.ErrorIs(t, runE(cmd, nil), errHandler)
	assert.Same(t, cmd, received)
}

func TestRunEWithArgs(t *testing.T) {
	t.Parallel()

	var received []string

	runE := di.RunEWithArgs(di.New(), func(_ *cobra.Command, args []string, _ di.Injector) error {
		received = args

		return nil
	})

	require.NoError(t, runE(&cobra.Command{Use: "test"}, []string{"telecom_app"}))
	assert.Equal(t, []string{"telecom_app"}, received)
}
