package routing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/threatresponse/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	owner *owner
	args  []any
}

func TestResolver_Invoke(t *testing.T) {
	t.Parallel()

	var calls []call

	registry := routing.NewRegistry[*owner]()
	registry.MustRegister("x.y.z", func(_ context.Context, o *owner, args ...any) (any, error) {
		calls = append(calls, call{owner: o, args: args})

		return "result", nil
	})

	self := &owner{name: "self"}

	result, err := registry.Bind(self).Member("x").Member("y").Member("z").Invoke(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "result", result)

	require.Len(t, calls, 1)
	assert.Same(t, self, calls[0].owner)
	assert.Equal(t, []any{1, 2}, calls[0].args)

	_, err = registry.Bind(self).Member("x").Member("y").Invoke(context.Background())
	require.ErrorIs(t, err, routing.ErrRouteNotFound)
	assert.Len(t, calls, 1)
}

func TestResolver_MemberDoesNotMutate(t *testing.T) {
	t.Parallel()

	registry := routing.NewRegistry[*owner]()
	registry.MustRegister("enrich.observe.observables", constant("observe"))
	registry.MustRegister("enrich.deliberate.observables", constant("deliberate"))

	enrich := routing.Start(&owner{}, registry).Member("enrich")
	observe := enrich.Member("observe")
	deliberate := enrich.Member("deliberate")

	assert.Equal(t, "enrich", enrich.Path())
	assert.Equal(t, "enrich.observe", observe.Path())
	assert.Equal(t, "enrich.deliberate", deliberate.Path())

	first, err := observe.Member("observables").Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "observe", first)

	second, err := deliberate.Member("observables").Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "deliberate", second)
}

func TestResolver_HandlerErrorsPropagate(t *testing.T) {
	t.Parallel()

	failure := errors.New("upstream failed")

	registry := routing.NewRegistry[*owner]()
	registry.MustRegister("fail", func(context.Context, *owner, ...any) (any, error) {
		return nil, failure
	})

	_, err := registry.Bind(nil).Member("fail").Invoke(context.Background())
	assert.Same(t, failure, err)
}

func TestResolver_Unbound(t *testing.T) {
	t.Parallel()

	var resolver routing.Resolver[*owner]

	_, err := resolver.Member("a").Invoke(context.Background())
	require.ErrorIs(t, err, routing.ErrRouteNotFound)
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	registry := routing.NewRegistry[*owner]()
	registry.MustRegister("intel.judgement.get", func(_ context.Context, o *owner, args ...any) (any, error) {
		id, err := routing.Arg[string](args, 0)
		if err != nil {
			return nil, err
		}

		return o.name + ":" + id, nil
	})

	result, err := routing.Dispatch(context.Background(), &owner{name: "ctr"}, registry, "intel.judgement.get", "j-1")
	require.NoError(t, err)
	assert.Equal(t, "ctr:j-1", result)

	_, err = routing.Dispatch(context.Background(), &owner{}, registry, "intel.judgement.get", 42)
	require.ErrorIs(t, err, routing.ErrBadArgument)

	_, err = routing.Dispatch(context.Background(), &owner{}, registry, "intel.judgement.get")
	require.ErrorIs(t, err, routing.ErrBadArgument)

	_, err = routing.Dispatch(context.Background(), &owner{}, registry, "intel.judgement.delete", "j-1")
	require.ErrorIs(t, err, routing.ErrRouteNotFound)
}

func TestOptionalArg(t *testing.T) {
	t.Parallel()

	value, err := routing.OptionalArg(nil, 0, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", value)

	value, err = routing.OptionalArg([]any{"given"}, 0, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "given", value)

	_, err = routing.OptionalArg([]any{1}, 0, "fallback")
	require.ErrorIs(t, err, routing.ErrBadArgument)
}
