// Package routing maps dotted route names such as "enrich.observe.observables"
// to handler functions and dispatches calls to them.
//
// Each API group owns a Registry populated once at package initialisation.
// Registries compose with Merge, where the left operand wins on collisions,
// and with Mount, which prefixes every route with a group name:
//
//	var routes = routing.NewRegistry[*Client]()
//
//	func init() {
//	    routes.MustRegister("observe.observables", observeObservables)
//	}
//
//	all := routing.Merge(custom, routes.Mount("enrich"))
//
// A Resolver accumulates a path one member at a time and performs the lookup
// only when it is invoked:
//
//	result, err := all.Bind(client).Member("enrich").Member("observe").Member("observables").Invoke(ctx, observables)
//
// Resolvers are values. Member never modifies its receiver, so a partial path
// can be extended in several directions.
package routing
