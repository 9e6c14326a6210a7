package ctrclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/fivetwenty-io/threatresponse/pkg/ctrclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		client, err := ctrclient.New(context.Background(), nil)
		require.ErrorIs(t, err, ctr.ErrConfigRequired)
		assert.Nil(t, client)
	})

	t.Run("normalizes endpoints", func(t *testing.T) {
		t.Parallel()

		config := &ctr.Config{
			BaseURL:     "visibility.example.com/",
			IntelURL:    "http://intel.example.com/",
			AccessToken: "test-token",
		}

		client, err := ctrclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, "https://visibility.example.com", client.Endpoints().API)
		assert.Equal(t, "http://intel.example.com", client.Endpoints().Intel)
		assert.Equal(t, "visibility.example.com/", config.BaseURL)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := ctrclient.NewWithToken(context.Background(), ctr.RegionAPJC, "test-token")
	require.NoError(t, err)
	assert.Equal(t, "test-token", client.Token().AccessToken)
	assert.Contains(t, client.Endpoints().API, "apjc")
}

func TestNewWithClientCredentials(t *testing.T) {
	t.Parallel()

	_, err := ctrclient.NewWithClientCredentials(context.Background(), ctr.RegionUS, "", "")
	require.ErrorIs(t, err, ctr.ErrCredentialsRequired)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClientIntegration(t *testing.T) {
	t.Parallel()

	var (
		exchanges atomic.Int32
		lookups   atomic.Int32
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		writer.Header().Set("Content-Type", "application/json")

		switch req.URL.Path {
		case "/iroh/oauth2/token":
			n := exchanges.Add(1)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token": strings.Repeat("t", int(n)),
				"expires_in":   600,
			})
		case "/iroh/profile/whoami":
			if lookups.Add(1) == 1 {
				writer.WriteHeader(http.StatusUnauthorized)
				_, _ = writer.Write([]byte(`{"error":"token expired"}`))

				return
			}

			assert.Equal(t, "Bearer tt", req.Header.Get("Authorization"))
			_ = json.NewEncoder(writer).Encode(map[string]string{"user-name": "Analyst"})
		default:
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"error":"not_found","error_description":"no such route"}`))
		}
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)

	client, err := ctrclient.New(context.Background(), &ctr.Config{
		BaseURL:      server.URL,
		IntelURL:     server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		UserAgent:    "ctr-integration-test",
		Logger:       ctr.NewZapLogger(zap.New(core)),
	})
	require.NoError(t, err)

	profile, err := client.Profile().WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Analyst", profile.Name)
	assert.Equal(t, int32(2), exchanges.Load())
	assert.Equal(t, int32(2), lookups.Load())

	_, err = client.Call(context.Background(), "intel.indicator.get", "missing")
	require.Error(t, err)
	assert.True(t, ctr.IsNotFound(err))
	assert.Contains(t, err.Error(), `"error_description": "no such route"`)

	responses := logs.FilterMessage("HTTP Response")
	assert.Equal(t, 5, responses.Len())
	assert.Equal(t, 2, responses.FilterLevelExact(zapcore.ErrorLevel).Len())

	first := responses.All()[0].ContextMap()
	assert.Equal(t, http.MethodPost, first["method"])
	assert.Equal(t, server.URL+"/iroh/oauth2/token", first["url"])
	assert.EqualValues(t, http.StatusOK, first["status_code"])
	assert.NotEmpty(t, first["request_id"])
}
