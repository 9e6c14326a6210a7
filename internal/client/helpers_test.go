package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
	"github.com/fivetwenty-io/threatresponse/pkg/ctr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiServer fakes the API and intel hosts on one httptest server.
type apiServer struct {
	*httptest.Server

	mux       *http.ServeMux
	exchanges atomic.Int32
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	server := &apiServer{mux: http.NewServeMux()}
	server.mux.HandleFunc("POST "+constants.TokenPath, func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || username != "client-id" || password != "client-secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})

			return
		}

		n := server.exchanges.Add(1)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"access_token": fmt.Sprintf("token-%d", n),
			"token_type":   "bearer",
			"expires_in":   600,
		})
	})

	server.Server = httptest.NewServer(server.mux)
	t.Cleanup(server.Close)

	return server
}

func (s *apiServer) handle(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, handler)
}

func (s *apiServer) config() *ctr.Config {
	return &ctr.Config{
		BaseURL:      s.URL,
		IntelURL:     s.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func newTestClient(t *testing.T, server *apiServer) *Client {
	t.Helper()

	client, err := New(context.Background(), server.config())
	require.NoError(t, err)

	return client
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody[T any](t *testing.T, r *http.Request) T {
	t.Helper()

	var body T
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

	return body
}

var testObservables = []ctr.Observable{
	{Type: "ip", Value: "1.2.3.4"},
	{Type: "domain", Value: "example.com"},
}
