package request

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fivetwenty-io/threatresponse/internal/auth"
)

// TokenPersister receives every token the Authorization middleware stores.
type TokenPersister interface {
	PersistToken(accessToken string, expiresAt time.Time) error
}

// AuthConfig configures the Authorization middleware.
type AuthConfig struct {
	// TokenURL is the absolute URL of the client credentials token endpoint.
	TokenURL     string
	ClientID     string
	ClientSecret string
	// AccessToken is a pre-obtained token. When set, no exchange happens at
	// construction time.
	AccessToken string
	// Persister, when set, is handed every token obtained by an exchange.
	Persister TokenPersister
	// Logger receives persister failures.
	Logger Logger
}

func (c AuthConfig) hasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Authorization injects a bearer token into every call and re-authenticates
// once when a call comes back 401.
//
// The inner transport is used for the token exchange as well, so any timeout,
// logging or strict layer below Authorization applies to it.
type Authorization struct {
	next   Transport
	config AuthConfig
	store  *auth.TokenStore
	logger Logger

	// refreshMu serialises token exchanges.
	refreshMu sync.Mutex
}

// NewAuthorization creates the middleware. With client credentials it
// exchanges them for a token immediately and returns the exchange error, if
// any.
func NewAuthorization(ctx context.Context, next Transport, config AuthConfig) (*Authorization, error) {
	if config.AccessToken == "" && !config.hasCredentials() {
		return nil, ErrCredentialsRequired
	}

	if config.hasCredentials() && config.TokenURL == "" {
		return nil, ErrTokenURLRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	store := auth.NewTokenStore()
	if config.Persister != nil {
		store = auth.NewPersistingTokenStore(config.Persister)
	}

	authz := &Authorization{
		next:   next,
		config: config,
		store:  store,
		logger: logger,
	}

	if config.AccessToken != "" {
		authz.setToken(auth.NewStaticToken(config.AccessToken))

		return authz, nil
	}

	err := authz.exchange(ctx)
	if err != nil {
		return nil, err
	}

	return authz, nil
}

// Token returns a copy of the current token.
func (a *Authorization) Token() auth.Token {
	token := a.store.Get()
	if token == nil {
		return auth.Token{}
	}

	return *token
}

// Do implements Transport.
func (a *Authorization) Do(ctx context.Context, req *Request) (*Response, error) {
	current := a.store.AccessToken()

	resp, err := a.next.Do(ctx, a.authorize(req, current))
	if !isUnauthorized(resp, err) || !a.config.hasCredentials() {
		return resp, err
	}

	fresh, refreshErr := a.reauthorize(ctx, current)
	if refreshErr != nil {
		return nil, refreshErr
	}

	return a.next.Do(ctx, a.authorize(req, fresh))
}

// Reauthorize forces a new token exchange. It fails with
// ErrCredentialsRequired when the middleware was given a static token.
func (a *Authorization) Reauthorize(ctx context.Context) error {
	if !a.config.hasCredentials() {
		return ErrCredentialsRequired
	}

	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	return a.exchange(ctx)
}

func (a *Authorization) authorize(req *Request, accessToken string) *Request {
	return req.WithHeader("Authorization", "Bearer "+accessToken)
}

// reauthorize replaces the stale token. If another call already replaced it
// while this one waited for the lock, the newer token is reused.
func (a *Authorization) reauthorize(ctx context.Context, stale string) (string, error) {
	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	if current := a.store.AccessToken(); current != stale && current != "" {
		return current, nil
	}

	err := a.exchange(ctx)
	if err != nil {
		return "", err
	}

	return a.store.AccessToken(), nil
}

// exchange performs the client credentials grant. Callers hold refreshMu,
// except during construction.
func (a *Authorization) exchange(ctx context.Context) error {
	req := &Request{
		Method: http.MethodPost,
		URL:    a.config.TokenURL,
		Headers: map[string]string{
			"Content-Type": ContentTypeForm,
			"Accept":       ContentTypeJSON,
		},
		Form:      url.Values{"grant_type": {"client_credentials"}},
		BasicAuth: &BasicAuth{Username: a.config.ClientID, Password: a.config.ClientSecret},
	}

	resp, err := a.next.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("requesting access token: %w", err)
	}

	err = resp.RaiseForStatus()
	if err != nil {
		return fmt.Errorf("requesting access token: %w", err)
	}

	var payload auth.TokenResponse

	err = resp.Decode(&payload)
	if err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}

	if payload.AccessToken == "" {
		return ErrMissingAccessToken
	}

	a.setToken(payload.Token(time.Now()))

	return nil
}

func (a *Authorization) setToken(token *auth.Token) {
	err := a.store.Set(token)
	if err != nil {
		a.logger.Warn("Failed to persist access token", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
