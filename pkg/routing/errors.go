package routing

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrInvalidRoute  = errors.New("invalid route name")
	ErrRouteConflict = errors.New("route already registered")
	ErrRouteNotFound = errors.New("route not found")
	ErrBadArgument   = errors.New("bad handler argument")
)

// RouteError names the route a registry operation failed for.
type RouteError struct {
	Route string
	Err   error
}

// Error implements the error interface.
func (e *RouteError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Route)
}

// Unwrap returns ErrInvalidRoute, ErrRouteConflict or ErrRouteNotFound.
func (e *RouteError) Unwrap() error {
	return e.Err
}
