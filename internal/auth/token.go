package auth

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// expiryBuffer is subtracted from ExpiresAt when checking validity.
const expiryBuffer = 30 * time.Second

// Token is a bearer access token obtained from the token endpoint.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	Scope       string    `json:"scope,omitempty"`
	ExpiresIn   int       `json:"expires_in,omitempty"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the token is present and not about to expire. A zero
// ExpiresAt means the expiry is unknown and the token is treated as valid
// until the server rejects it.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// OAuth2 converts the token for use with golang.org/x/oauth2 consumers.
func (t *Token) OAuth2() *oauth2.Token {
	if t == nil {
		return nil
	}

	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	token := &oauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   tokenType,
		Expiry:      t.ExpiresAt,
	}

	if t.Scope != "" {
		token = token.WithExtra(map[string]interface{}{"scope": t.Scope})
	}

	return token
}

// TokenResponse is the JSON payload returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token builds a Token acquired at now.
func (r TokenResponse) Token(now time.Time) *Token {
	token := &Token{
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
		Scope:       r.Scope,
		ExpiresIn:   r.ExpiresIn,
		AcquiredAt:  now,
	}

	if r.ExpiresIn > 0 {
		token.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}

	return token
}

// NewStaticToken wraps a pre-obtained access token.
func NewStaticToken(accessToken string) *Token {
	return &Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		AcquiredAt:  time.Now(),
	}
}

// Persister saves tokens outside the process, for example into a config file.
type Persister interface {
	PersistToken(accessToken string, expiresAt time.Time) error
}

// TokenStore holds the current token. It is safe for concurrent use.
type TokenStore struct {
	mu        sync.RWMutex
	token     *Token
	persister Persister
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// NewPersistingTokenStore creates a store that hands every new token to
// persister.
func NewPersistingTokenStore(persister Persister) *TokenStore {
	return &TokenStore{persister: persister}
}

// Set replaces the stored token. The returned error comes from the persister;
// the token is stored either way.
func (s *TokenStore) Set(token *Token) error {
	s.mu.Lock()
	s.token = token
	persister := s.persister
	s.mu.Unlock()

	if persister == nil || token == nil {
		return nil
	}

	return persister.PersistToken(token.AccessToken, token.ExpiresAt)
}

// Get returns the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// AccessToken returns the stored access token, or "".
func (s *TokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return ""
	}

	return s.token.AccessToken
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
