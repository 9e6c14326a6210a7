// Package request implements the request pipeline used by the threat response
// client: a single raw HTTP transport and the middleware layers that wrap it.
//
// # Transport
//
// Every layer implements Transport:
//
//	type Transport interface {
//	    Do(ctx context.Context, req *Request) (*Response, error)
//	}
//
// HTTPTransport performs exactly one round trip per call. Connection failures,
// timeouts and unreadable bodies surface as *TransportError.
//
// # Middleware
//
// Each middleware wraps an inner Transport and adds one behavior:
//
//   - Timeout injects a default request timeout.
//   - Relative resolves request URLs against an absolute base URL.
//   - Logging writes one structured line per call.
//   - Strict turns 4xx/5xx responses into *HTTPError values that embed the
//     JSON error payload returned by the server.
//   - Authorization injects a bearer token obtained with the OAuth2 client
//     credentials grant and re-authenticates once when a call returns 401.
//   - Metrics and RateLimit are opt-in observability and pacing layers.
//
// Proxying is a construction-time concern of HTTPTransport (see WithProxy).
//
// A typical chain, outermost first:
//
//	base, _ := request.NewHTTPTransport(request.WithProxy(proxyURL))
//	strict := request.NewStrict(base)
//	authz, err := request.NewAuthorization(ctx, strict, request.AuthConfig{
//	    TokenURL:     "https://visibility.amp.cisco.com/iroh/oauth2/token",
//	    ClientID:     clientID,
//	    ClientSecret: clientSecret,
//	})
//	if err != nil { return err }
//	relative, _ := request.NewRelative(authz, "https://visibility.amp.cisco.com")
//	client := request.NewClient(request.NewTimeout(relative, 30*time.Second))
//
//	resp, err := client.Get(ctx, "/iroh/profile/whoami")
//
// Requests are never mutated by middleware. Layers that need to change a
// request work on a copy obtained from Clone, WithHeader, WithURL or
// WithTimeout.
package request
