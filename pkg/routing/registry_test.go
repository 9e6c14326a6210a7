package routing_test

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/threatresponse/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type owner struct {
	name string
}

// constant returns a handler that always returns value.
func constant(value any) routing.Handler[*owner] {
	return func(context.Context, *owner, ...any) (any, error) {
		return value, nil
	}
}

func registryOf(t *testing.T, routes map[string]int) *routing.Registry[*owner] {
	t.Helper()

	registry := routing.NewRegistry[*owner]()
	for name, value := range routes {
		require.NoError(t, registry.Register(name)(constant(value)))
	}

	return registry
}

// contents resolves every route and returns name -> handler result.
func contents(t *testing.T, registry *routing.Registry[*owner]) map[string]any {
	t.Helper()

	result := make(map[string]any, registry.Len())

	for _, name := range registry.Routes() {
		handler, err := registry.Resolve(name)
		require.NoError(t, err)

		value, err := handler(context.Background(), nil)
		require.NoError(t, err)

		result[name] = value
	}

	return result
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()

		registry := routing.NewRegistry[*owner]()
		require.NoError(t, registry.Register("enrich.observe.observables")(constant(1)))

		err := registry.Register("enrich.observe.observables")(constant(2))
		require.ErrorIs(t, err, routing.ErrRouteConflict)
		assert.Contains(t, err.Error(), "enrich.observe.observables")

		var routeErr *routing.RouteError
		require.ErrorAs(t, err, &routeErr)
		assert.Equal(t, "enrich.observe.observables", routeErr.Route)

		assert.Equal(t, map[string]any{"enrich.observe.observables": 1}, contents(t, registry))
	})

	t.Run("invalid names", func(t *testing.T) {
		t.Parallel()

		registry := routing.NewRegistry[*owner]()
		for _, name := range []string{"", ".", "a.", ".a", "a..b"} {
			err := registry.Register(name)(constant(1))
			require.ErrorIs(t, err, routing.ErrInvalidRoute, name)
		}

		assert.Equal(t, 0, registry.Len())
	})

	t.Run("must register panics on conflict", func(t *testing.T) {
		t.Parallel()

		registry := routing.NewRegistry[*owner]()
		registry.MustRegister("a", constant(1))

		assert.Panics(t, func() {
			registry.MustRegister("a", constant(2))
		})
	})
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	registry := registryOf(t, map[string]int{"a.b": 1})

	handler, err := registry.Resolve("a.b")
	require.NoError(t, err)
	assert.NotNil(t, handler)
	assert.True(t, registry.Has("a.b"))

	handler, err = registry.Resolve("a")
	require.ErrorIs(t, err, routing.ErrRouteNotFound)
	assert.Nil(t, handler)
	assert.False(t, registry.Has("a"))
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a := registryOf(t, map[string]int{"a": 1, "b": 2})
	b := registryOf(t, map[string]int{"b": 3, "c": 4})

	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 4}, contents(t, routing.Merge(a, b)))
	assert.Equal(t, map[string]any{"a": 1, "b": 3, "c": 4}, contents(t, routing.Merge(b, a)))

	assert.Equal(t, map[string]any{"a": 1, "b": 2}, contents(t, a))
	assert.Equal(t, map[string]any{"b": 3, "c": 4}, contents(t, b))
}

func TestMerge_ManyAndNil(t *testing.T) {
	t.Parallel()

	first := registryOf(t, map[string]int{"x": 1})
	second := registryOf(t, map[string]int{"x": 2, "y": 2})
	third := registryOf(t, map[string]int{"x": 3, "y": 3, "z": 3})

	merged := routing.Merge(first, nil, second, third)
	assert.Equal(t, map[string]any{"x": 1, "y": 2, "z": 3}, contents(t, merged))

	merged.MustRegister("w", constant(0))
	assert.False(t, first.Has("w"))

	assert.Equal(t, 0, routing.Merge[*owner]().Len())
}

func TestRegistry_Mount(t *testing.T) {
	t.Parallel()

	group := registryOf(t, map[string]int{"observe.observables": 1, "health": 2})

	mounted := group.Mount("enrich")
	assert.Equal(t, []string{"enrich.health", "enrich.observe.observables"}, mounted.Routes())
	assert.Equal(t, []string{"health", "observe.observables"}, group.Routes())
}
