package routing

import (
	"context"
	"fmt"
	"strings"
)

// Resolver accumulates a route path from member accesses and dispatches on
// Invoke.
type Resolver[O any] struct {
	owner    O
	registry *Registry[O]
	path     []string
}

// Start returns a resolver with an empty path.
func Start[O any](owner O, registry *Registry[O]) Resolver[O] {
	return Resolver[O]{owner: owner, registry: registry}
}

// Member returns a new resolver with name appended to the path.
func (r Resolver[O]) Member(name string) Resolver[O] {
	path := make([]string, len(r.path), len(r.path)+1)
	copy(path, r.path)

	r.path = append(path, name)

	return r
}

// Path returns the accumulated dotted path.
func (r Resolver[O]) Path() string {
	return strings.Join(r.path, ".")
}

// Invoke looks up the accumulated path and calls its handler with the bound
// owner and args. Lookup and handler errors are returned unchanged.
func (r Resolver[O]) Invoke(ctx context.Context, args ...any) (any, error) {
	if r.registry == nil {
		return nil, &RouteError{Route: r.Path(), Err: ErrRouteNotFound}
	}

	handler, err := r.registry.Resolve(r.Path())
	if err != nil {
		return nil, err
	}

	return handler(ctx, r.owner, args...)
}

// Dispatch splits dotted into members and invokes the result.
func Dispatch[O any](ctx context.Context, owner O, registry *Registry[O], dotted string, args ...any) (any, error) {
	resolver := Start(owner, registry)
	for _, segment := range strings.Split(dotted, ".") {
		resolver = resolver.Member(segment)
	}

	return resolver.Invoke(ctx, args...)
}

// Arg returns args[i] as a T.
func Arg[T any](args []any, i int) (T, error) {
	var zero T

	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("%w: missing argument %d", ErrBadArgument, i)
	}

	value, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: argument %d is %T, want %T", ErrBadArgument, i, args[i], zero)
	}

	return value, nil
}

// OptionalArg returns args[i] as a T, or fallback when args has no element i.
func OptionalArg[T any](args []any, i int, fallback T) (T, error) {
	if i >= len(args) || args[i] == nil {
		return fallback, nil
	}

	return Arg[T](args, i)
}
