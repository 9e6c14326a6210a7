package routing

import (
	"context"
	"maps"
	"slices"
	"strings"
)

// Handler implements one route. owner is the value the resolver was bound to.
type Handler[O any] func(ctx context.Context, owner O, args ...any) (any, error)

// Registry maps dotted route names to handlers. Registration is expected to
// finish before the registry is shared; lookups are safe for concurrent use
// afterwards.
type Registry[O any] struct {
	routes map[string]Handler[O]
}

// NewRegistry creates an empty registry.
func NewRegistry[O any]() *Registry[O] {
	return &Registry[O]{routes: make(map[string]Handler[O])}
}

// Register returns a function that stores a handler under name.
func (r *Registry[O]) Register(name string) func(Handler[O]) error {
	return func(handler Handler[O]) error {
		err := validateName(name)
		if err != nil {
			return err
		}

		if _, exists := r.routes[name]; exists {
			return &RouteError{Route: name, Err: ErrRouteConflict}
		}

		r.routes[name] = handler

		return nil
	}
}

// MustRegister registers handler under name and panics on failure. It is
// meant for package initialisation, where a bad route is a programming error.
func (r *Registry[O]) MustRegister(name string, handler Handler[O]) {
	err := r.Register(name)(handler)
	if err != nil {
		panic(err)
	}
}

// Resolve returns the handler registered under name.
func (r *Registry[O]) Resolve(name string) (Handler[O], error) {
	handler, ok := r.routes[name]
	if !ok {
		return nil, &RouteError{Route: name, Err: ErrRouteNotFound}
	}

	return handler, nil
}

// Has reports whether name is registered.
func (r *Registry[O]) Has(name string) bool {
	_, ok := r.routes[name]

	return ok
}

// Len returns the number of routes.
func (r *Registry[O]) Len() int {
	return len(r.routes)
}

// Routes returns the registered names in lexical order.
func (r *Registry[O]) Routes() []string {
	return slices.Sorted(maps.Keys(r.routes))
}

// Mount returns a new registry with every route prefixed by prefix and a dot.
func (r *Registry[O]) Mount(prefix string) *Registry[O] {
	mounted := NewRegistry[O]()
	for name, handler := range r.routes {
		mounted.routes[prefix+"."+name] = handler
	}

	return mounted
}

// Bind returns a resolver with an empty path bound to owner.
func (r *Registry[O]) Bind(owner O) Resolver[O] {
	return Start(owner, r)
}

// Merge returns a new registry holding the union of regs. When several
// registries define the same route, the leftmost one wins. The inputs are
// not modified and nil registries are skipped.
func Merge[O any](regs ...*Registry[O]) *Registry[O] {
	merged := NewRegistry[O]()

	for i := len(regs) - 1; i >= 0; i-- {
		if regs[i] == nil {
			continue
		}

		maps.Copy(merged.routes, regs[i].routes)
	}

	return merged
}

func validateName(name string) error {
	if name == "" {
		return &RouteError{Route: name, Err: ErrInvalidRoute}
	}

	for _, segment := range strings.Split(name, ".") {
		if segment == "" {
			return &RouteError{Route: name, Err: ErrInvalidRoute}
		}
	}

	return nil
}
