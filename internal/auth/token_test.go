package auth_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/threatresponse/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	tests := getTokenValidityTestCases()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func getTokenValidityTestCases() []struct {
	name     string
	token    *auth.Token
	expected bool
} {
	return []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{
			name:     "nil token",
			token:    nil,
			expected: false,
		},
		{
			name: "empty access token",
			token: &auth.Token{
				AccessToken: "",
			},
			expected: false,
		},
		{
			name:     "valid token without expiry",
			token:    auth.NewStaticToken("test-token"),
			expected: true,
		},
		{
			name: "valid token with future expiry",
			token: &auth.Token{
				AccessToken: "test-token",
				ExpiresAt:   time.Now().Add(1 * time.Hour),
			},
			expected: true,
		},
		{
			name: "expired token",
			token: &auth.Token{
				AccessToken: "test-token",
				ExpiresAt:   time.Now().Add(-1 * time.Hour),
			},
			expected: false,
		},
		{
			name: "token expiring within buffer",
			token: &auth.Token{
				AccessToken: "test-token",
				ExpiresAt:   time.Now().Add(15 * time.Second),
			},
			expected: false, // Should be false due to 30 second buffer
		},
		{
			name: "token expiring just outside buffer",
			token: &auth.Token{
				AccessToken: "test-token",
				ExpiresAt:   time.Now().Add(35 * time.Second),
			},
			expected: true,
		},
	}
}

func TestTokenStore(t *testing.T) {
	t.Parallel()
	t.Run("new store is empty", testNewStoreEmpty)
	t.Run("set and get token", testSetAndGetToken)
	t.Run("clear token", testClearToken)
	t.Run("persists new tokens", testPersistingStore)
	t.Run("concurrent access", testConcurrentTokenAccess)
}

func testNewStoreEmpty(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	assert.Nil(t, store.Get())
}

func testSetAndGetToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	token := &auth.Token{
		AccessToken: "test-token",
		TokenType:   "bearer",
	}

	_ = store.Set(token)
	retrieved := store.Get()
	assert.NotNil(t, retrieved)
	assert.Equal(t, token.AccessToken, retrieved.AccessToken)
	assert.Equal(t, token.TokenType, retrieved.TokenType)
}

func testClearToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	token := &auth.Token{
		AccessToken: "test-token",
	}

	_ = store.Set(token)
	assert.NotNil(t, store.Get())

	store.Clear()
	assert.Nil(t, store.Get())
}

func testConcurrentTokenAccess(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	done := make(chan bool)

	startTokenSetters(store, done)
	startTokenGetters(store, done)

	for range 4 {
		<-done
	}

	// Should not panic and should have a token
	finalToken := store.Get()
	assert.NotNil(t, finalToken)
	assert.True(t, finalToken.AccessToken == "token-1" || finalToken.AccessToken == "token-2")
}

func startTokenSetters(store *auth.TokenStore, done chan bool) {
	go func() {
		for range 100 {
			_ = store.Set(&auth.Token{
				AccessToken: "token-1",
			})
		}

		done <- true
	}()

	go func() {
		for range 100 {
			_ = store.Set(&auth.Token{
				AccessToken: "token-2",
			})
		}

		done <- true
	}()
}

func startTokenGetters(store *auth.TokenStore, done chan bool) {
	go func() {
		for range 100 {
			_ = store.Get()
		}

		done <- true
	}()

	go func() {
		for range 100 {
			_ = store.Get()
		}

		done <- true
	}()
}

type recordingPersister struct {
	tokens []string
	err    error
}

func (p *recordingPersister) PersistToken(accessToken string, _ time.Time) error {
	p.tokens = append(p.tokens, accessToken)

	return p.err
}

func testPersistingStore(t *testing.T) {
	t.Parallel()

	persister := &recordingPersister{}
	store := auth.NewPersistingTokenStore(persister)

	require.NoError(t, store.Set(&auth.Token{AccessToken: "first"}))
	require.NoError(t, store.Set(&auth.Token{AccessToken: "second"}))
	assert.Equal(t, []string{"first", "second"}, persister.tokens)
	assert.Equal(t, "second", store.AccessToken())

	persister.err = assert.AnError
	err := store.Set(&auth.Token{AccessToken: "third"})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "third", store.AccessToken())
}

func TestTokenResponse_Token(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	token := auth.TokenResponse{
		AccessToken: "abc",
		TokenType:   "bearer",
		Scope:       "enrich:read inspect:read",
		ExpiresIn:   600,
	}.Token(now)

	assert.Equal(t, "abc", token.AccessToken)
	assert.Equal(t, now, token.AcquiredAt)
	assert.Equal(t, now.Add(10*time.Minute), token.ExpiresAt)

	noExpiry := auth.TokenResponse{AccessToken: "abc"}.Token(now)
	assert.True(t, noExpiry.ExpiresAt.IsZero())
}

func TestToken_OAuth2(t *testing.T) {
	t.Parallel()

	var missing *auth.Token
	assert.Nil(t, missing.OAuth2())

	expiresAt := time.Now().Add(time.Hour)
	token := &auth.Token{
		AccessToken: "abc",
		Scope:       "profile",
		ExpiresAt:   expiresAt,
	}

	converted := token.OAuth2()
	require.NotNil(t, converted)
	assert.Equal(t, "abc", converted.AccessToken)
	assert.Equal(t, "Bearer", converted.TokenType)
	assert.Equal(t, expiresAt, converted.Expiry)
	assert.Equal(t, "profile", converted.Extra("scope"))
	assert.True(t, converted.Valid())
}
