package ctrclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/threatresponse/internal/client"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
)

// New creates a new threat response API client.
func New(ctx context.Context, config *ctr.Config) (ctr.Client, error) {
	if config == nil {
		return nil, ctr.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = normalizeEndpoint(config.BaseURL)
	normalized.IntelURL = normalizeEndpoint(config.IntelURL)

	cli, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// normalizeEndpoint trims a trailing slash and adds "https://" when no scheme
// is present. Empty endpoints stay empty so the region default applies.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithClientCredentials creates a client for region using the client
// credentials grant.
func NewWithClientCredentials(ctx context.Context, region ctr.Region, clientID, clientSecret string) (ctr.Client, error) {
	return New(ctx, &ctr.Config{
		Region:       region,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewWithToken creates a client for region using a pre-obtained access token.
func NewWithToken(ctx context.Context, region ctr.Region, accessToken string) (ctr.Client, error) {
	return New(ctx, &ctr.Config{
		Region:      region,
		AccessToken: accessToken,
	})
}
