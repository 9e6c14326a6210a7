// Package ctr provides the configuration, domain types and client interfaces
// for the threat response API.
//
// # Overview
//
// The ctr package defines the API group interfaces (InspectClient,
// EnrichClient, ResponseClient, ProfileClient, IntelClient, CommandsClient)
// and the types they exchange. A concrete client is built by the ctrclient
// package, which wires the request pipeline, authentication and route
// registry:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/threatresponse/pkg/ctr"
//	  "github.com/fivetwenty-io/threatresponse/pkg/ctrclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := ctrclient.New(ctx, &ctr.Config{
//	    Region:       ctr.RegionEU,
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  observables, err := cli.Inspect().Inspect(ctx, "cisco.com 8.8.8.8")
//	  if err != nil { log.Fatal(err) }
//
//	  verdicts, err := cli.Commands().Verdict(ctx, observables)
//	  if err != nil { log.Fatal(err) }
//	  _ = verdicts
//	}
//
// # Routes
//
// Every API operation is also registered under a dotted route name such as
// "enrich.observe.observables" or "intel.judgement.get". Routes can be called
// by name, which is how the CLI "call" command works:
//
//	result, err := cli.Call(ctx, "enrich.deliberate.observables", observables)
//
// or navigated one member at a time:
//
//	result, err := cli.Resolver().Member("profile").Member("whoami").Invoke(ctx)
//
// Config.Routes adds custom routes. They take precedence over the built-in
// routes with the same name.
//
// # Errors
//
// Failed calls return the typed errors of the request package. IsUnauthorized,
// IsNotFound and StatusCode inspect them without importing that package.
package ctr
