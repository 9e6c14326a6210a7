package ctr

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/threatresponse/pkg/request"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
	"golang.org/x/oauth2"
)

// InspectClient extracts observables from free text.
type InspectClient interface {
	Inspect(ctx context.Context, content string) ([]Observable, error)
}

// EnrichClient queries the integration modules about observables.
type EnrichClient interface {
	Observe(ctx context.Context, observables []Observable) (*EnrichResponse, error)
	Deliberate(ctx context.Context, observables []Observable) (*EnrichResponse, error)
	Refer(ctx context.Context, observables []Observable) (*ReferResponse, error)
	Health(ctx context.Context) (*EnrichResponse, error)
}

// ResponseClient lists and triggers response actions.
type ResponseClient interface {
	Actions(ctx context.Context, observables []Observable) (*ActionsResponse, error)
	Trigger(ctx context.Context, moduleID, actionID string, observable Observable) (*TriggerResult, error)
}

// ProfileClient describes the authenticated caller.
type ProfileClient interface {
	WhoAmI(ctx context.Context) (*Profile, error)
}

// EntityClient manages one kind of intel entity.
type EntityClient interface {
	Name() string
	Get(ctx context.Context, id string) (Entity, error)
	Create(ctx context.Context, entity Entity) (Entity, error)
	Update(ctx context.Context, id string, entity Entity) (Entity, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query url.Values) ([]Entity, error)
}

// IntelClient provides access to the intel entity store.
type IntelClient interface {
	Entity(name string) (EntityClient, error)
	Entities() []string
}

// CommandsClient runs multi-step workflows built on the other groups.
type CommandsClient interface {
	// Verdict returns the dispositions for observables.
	Verdict(ctx context.Context, observables []Observable) (*VerdictResult, error)
	// VerdictText extracts observables from text and returns their verdicts.
	VerdictText(ctx context.Context, text string) (*VerdictResult, error)
	// Targets returns the assets on which observables were sighted.
	Targets(ctx context.Context, observables []Observable) (*TargetsResult, error)
	// TargetsText extracts observables from text and returns their targets.
	TargetsText(ctx context.Context, text string) (*TargetsResult, error)
}

// APIClients provides access to every API group.
type APIClients interface {
	Inspect() InspectClient
	Enrich() EnrichClient
	Response() ResponseClient
	Profile() ProfileClient
	Intel() IntelClient
	Commands() CommandsClient
}

// RouteClient dispatches calls by route name.
type RouteClient interface {
	// Routes returns every registered route name in lexical order.
	Routes() []string
	// Resolver returns a resolver with an empty path bound to the client.
	Resolver() routing.Resolver[*Session]
	// Call invokes the route registered under the dotted name.
	Call(ctx context.Context, route string, args ...any) (any, error)
}

// Client is the threat response API client returned by ctrclient.New.
type Client interface {
	APIClients
	RouteClient

	// HTTP returns the request client at the top of the middleware chain.
	HTTP() *request.Client
	// Endpoints returns the endpoints the client talks to.
	Endpoints() Endpoints
	// Token returns the current access token.
	Token() *oauth2.Token
	// Reauthorize exchanges the client credentials for a new token.
	Reauthorize(ctx context.Context) error
}
