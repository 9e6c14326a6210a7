package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/request"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
	"golang.org/x/oauth2"
)

// Client implements the ctr.Client interface.
type Client struct {
	session  *ctr.Session
	authz    *request.Authorization
	registry *routing.Registry[*ctr.Session]

	// API group clients
	inspect  *InspectClient
	enrich   *EnrichClient
	response *ResponseClient
	profile  *ProfileClient
	intel    *IntelClient
	commands *CommandsClient
}

// BuiltinRoutes returns every built-in route mounted under its group name.
func BuiltinRoutes() *routing.Registry[*ctr.Session] {
	return routing.Merge(
		inspectRoutes.Mount(constants.GroupInspect),
		enrichRoutes.Mount(constants.GroupEnrich),
		responseRoutes.Mount(constants.GroupResponse),
		profileRoutes.Mount(constants.GroupProfile),
		intelRoutes.Mount(constants.GroupIntel),
		commandsRoutes.Mount(constants.GroupCommands),
	)
}

// New creates a new threat response client. With client credentials, the
// token exchange happens before New returns.
func New(ctx context.Context, config *ctr.Config) (*Client, error) {
	if config == nil {
		return nil, ctr.ErrConfigRequired
	}

	if config.AccessToken == "" && (config.ClientID == "" || config.ClientSecret == "") {
		return nil, ctr.ErrCredentialsRequired
	}

	endpoints, err := config.Endpoints()
	if err != nil {
		return nil, err
	}

	for _, endpoint := range []string{endpoints.API, endpoints.Intel} {
		err = validateEndpoint(endpoint)
		if err != nil {
			return nil, err
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = ctr.NopLogger{}
	}

	transport, err := request.NewHTTPTransport(
		request.WithProxy(config.ProxyURL),
		request.WithUserAgent(config.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transport: %w", err)
	}

	authz, err := request.NewAuthorization(ctx, buildInnerChain(transport, config, logger), request.AuthConfig{
		TokenURL:     strings.TrimRight(endpoints.API, "/") + constants.TokenPath,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		AccessToken:  config.AccessToken,
		Persister:    config.TokenPersister,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("authorizing client: %w", err)
	}

	relative, err := request.NewRelative(authz, endpoints.API)
	if err != nil {
		return nil, err
	}

	return newClient(&ctr.Session{
		HTTP:      request.NewClient(relative),
		Endpoints: endpoints,
		Logger:    logger,
	}, authz, config.Routes), nil
}

// buildInnerChain wraps the transport in every layer that sits below
// Authorization, so token exchanges get them too.
func buildInnerChain(transport request.Transport, config *ctr.Config, logger ctr.Logger) request.Transport {
	if config.RateLimit != nil && config.RateLimit.RequestsPerSecond > 0 {
		burst := config.RateLimit.Burst
		if burst <= 0 {
			burst = constants.DefaultRateLimitBurst
		}

		transport = request.NewRateLimit(transport, config.RateLimit.RequestsPerSecond, burst)
	}

	if config.MetricsRegisterer != nil {
		transport = request.NewMetrics(transport, config.MetricsRegisterer)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	transport = request.NewTimeout(transport, timeout)
	transport = request.NewStrict(transport)

	return request.NewLogging(transport, logger)
}

func newClient(session *ctr.Session, authz *request.Authorization, custom *routing.Registry[*ctr.Session]) *Client {
	return &Client{
		session:  session,
		authz:    authz,
		registry: routing.Merge(custom, BuiltinRoutes()),
		inspect:  NewInspectClient(session),
		enrich:   NewEnrichClient(session),
		response: NewResponseClient(session),
		profile:  NewProfileClient(session),
		intel:    NewIntelClient(session),
		commands: NewCommandsClient(session),
	}
}

func validateEndpoint(endpoint string) error {
	parsed, err := url.Parse(endpoint)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("%w: %q", request.ErrInvalidBaseURL, endpoint)
	}

	return nil
}

// Inspect implements ctr.Client.Inspect.
func (c *Client) Inspect() ctr.InspectClient {
	return c.inspect
}

// Enrich implements ctr.Client.Enrich.
func (c *Client) Enrich() ctr.EnrichClient {
	return c.enrich
}

// Response implements ctr.Client.Response.
func (c *Client) Response() ctr.ResponseClient {
	return c.response
}

// Profile implements ctr.Client.Profile.
func (c *Client) Profile() ctr.ProfileClient {
	return c.profile
}

// Intel implements ctr.Client.Intel.
func (c *Client) Intel() ctr.IntelClient {
	return c.intel
}

// Commands implements ctr.Client.Commands.
func (c *Client) Commands() ctr.CommandsClient {
	return c.commands
}

// Routes implements ctr.Client.Routes.
func (c *Client) Routes() []string {
	return c.registry.Routes()
}

// Resolver implements ctr.Client.Resolver.
func (c *Client) Resolver() routing.Resolver[*ctr.Session] {
	return c.registry.Bind(c.session)
}

// Call implements ctr.Client.Call.
func (c *Client) Call(ctx context.Context, route string, args ...any) (any, error) {
	if route == "" {
		return nil, constants.ErrRouteRequired
	}

	return routing.Dispatch(ctx, c.session, c.registry, route, args...)
}

// HTTP implements ctr.Client.HTTP.
func (c *Client) HTTP() *request.Client {
	return c.session.HTTP
}

// Endpoints implements ctr.Client.Endpoints.
func (c *Client) Endpoints() ctr.Endpoints {
	return c.session.Endpoints
}

// Token implements ctr.Client.Token.
func (c *Client) Token() *oauth2.Token {
	token := c.authz.Token()

	return token.OAuth2()
}

// Reauthorize implements ctr.Client.Reauthorize.
func (c *Client) Reauthorize(ctx context.Context) error {
	err := c.authz.Reauthorize(ctx)
	if err != nil {
		return fmt.Errorf("reauthorizing client: %w", err)
	}

	return nil
}
