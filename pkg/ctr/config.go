package ctr

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/routing"
	"github.com/prometheus/client_golang/prometheus"
)

// Region selects the regional deployment of the API.
type Region string

// Supported regions.
const (
	RegionUS   Region = constants.RegionUS
	RegionEU   Region = constants.RegionEU
	RegionAPJC Region = constants.RegionAPJC
)

// Endpoints holds the base URLs of one deployment.
type Endpoints struct {
	// API serves authentication, inspection, enrichment, response and profile.
	API string `json:"api"   yaml:"api"`
	// Intel serves the threat intelligence entity store.
	Intel string `json:"intel" yaml:"intel"`
}

var regionEndpoints = map[Region]Endpoints{
	RegionUS:   {API: constants.APIHostUS, Intel: constants.IntelHostUS},
	RegionEU:   {API: constants.APIHostEU, Intel: constants.IntelHostEU},
	RegionAPJC: {API: constants.APIHostAPJC, Intel: constants.IntelHostAPJC},
}

// RegionEndpoints returns the endpoints of region. An empty region means
// RegionUS.
func RegionEndpoints(region Region) (Endpoints, error) {
	if region == "" {
		region = constants.DefaultRegion
	}

	endpoints, ok := regionEndpoints[region]
	if !ok {
		return Endpoints{}, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	return endpoints, nil
}

// Regions returns the supported regions.
func Regions() []Region {
	return []Region{RegionUS, RegionEU, RegionAPJC}
}

// RateLimit paces outgoing requests on the client side.
type RateLimit struct {
	// RequestsPerSecond is the sustained rate. Zero disables rate limiting.
	RequestsPerSecond float64
	// Burst is the number of requests allowed at once.
	Burst int
}

// TokenPersister receives every access token the client obtains, for example
// to cache it in a configuration file.
type TokenPersister interface {
	PersistToken(accessToken string, expiresAt time.Time) error
}

// Config represents client configuration for building a ctr.Client.
//
// # Authentication
//
// ClientID and ClientSecret are exchanged for an access token with the OAuth2
// client credentials grant when the client is created. The token is renewed
// once, transparently, when a call is rejected with 401. AccessToken may be
// given instead of credentials; such a client cannot renew its token.
//
// # Endpoints
//
// Region selects the deployment. BaseURL and IntelURL override the region's
// endpoints, which is mainly useful for tests and proxies.
type Config struct {
	// Region: deployment to talk to. Defaults to RegionUS.
	Region Region
	// BaseURL: overrides the region's API endpoint.
	BaseURL string
	// IntelURL: overrides the region's intel endpoint.
	IntelURL string

	// Authentication options (provide one)
	// ClientID: OAuth2 client ID for the client_credentials grant.
	ClientID string
	// ClientSecret: OAuth2 client secret used with ClientID.
	ClientSecret string
	// AccessToken: if set, used directly as a Bearer token.
	AccessToken string
	// TokenPersister: optional sink for newly obtained tokens.
	TokenPersister TokenPersister

	// Optional configurations
	// ProxyURL: routes http and https traffic through a proxy.
	ProxyURL string
	// Timeout: default per-request timeout. Defaults to 30 seconds.
	Timeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Logger: optional structured logger. Every request is logged through it.
	Logger Logger
	// RateLimit: optional client-side rate limit.
	RateLimit *RateLimit
	// MetricsRegisterer: when set, request metrics are registered with it.
	MetricsRegisterer prometheus.Registerer
	// Routes: custom routes merged over the built-in ones.
	Routes *routing.Registry[*Session]
}

// Endpoints returns the endpoints selected by the region and overrides.
func (c *Config) Endpoints() (Endpoints, error) {
	endpoints, err := RegionEndpoints(c.Region)
	if err != nil {
		return Endpoints{}, err
	}

	if c.BaseURL != "" {
		endpoints.API = c.BaseURL
	}

	if c.IntelURL != "" {
		endpoints.Intel = c.IntelURL
	}

	return endpoints, nil
}
