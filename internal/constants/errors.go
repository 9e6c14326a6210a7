package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials     = errors.New("no credentials configured, use 'ctr config set client_id' and 'ctr config set client_secret' or pass --client-id/--client-secret")
	ErrNoAccessToken     = errors.New("no access token available, run 'ctr token' first")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrUnsupportedOutput = errors.New("unsupported output format")
)

// Input errors.
var (
	ErrNoObservables  = errors.New("no observables found in input")
	ErrInvalidPayload = errors.New("payload must be a JSON or YAML document")
	ErrRouteRequired  = errors.New("route name is required")
	ErrEntityRequired = errors.New("entity name is required")
)
