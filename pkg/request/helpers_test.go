package request_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/fivetwenty-io/threatresponse/pkg/request"
)

const testTokenURL = "https://api.example.com/iroh/oauth2/token"

// fakeTransport records every request it sees and answers through handler.
type fakeTransport struct {
	mu      sync.Mutex
	calls   []*request.Request
	handler func(req *request.Request) (*request.Response, error)
}

func newFakeTransport(handler func(req *request.Request) (*request.Response, error)) *fakeTransport {
	return &fakeTransport{handler: handler}
}

func (f *fakeTransport) Do(_ context.Context, req *request.Request) (*request.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.Clone())
	f.mu.Unlock()

	return f.handler(req)
}

func (f *fakeTransport) Calls() []*request.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*request.Request(nil), f.calls...)
}

func (f *fakeTransport) Count(method, urlSuffix string) int {
	count := 0

	for _, call := range f.Calls() {
		if call.Method == method && strings.HasSuffix(call.URL, urlSuffix) {
			count++
		}
	}

	return count
}

func (f *fakeTransport) Last() *request.Request {
	calls := f.Calls()
	if len(calls) == 0 {
		return nil
	}

	return calls[len(calls)-1]
}

func jsonResponse(req *request.Request, status int, body string) *request.Response {
	return request.NewResponse(req.Method, req.URL, status, http.Header{"Content-Type": {"application/json"}}, []byte(body))
}

func tokenResponse(req *request.Request, token string) *request.Response {
	return jsonResponse(req, http.StatusOK, fmt.Sprintf(`{"access_token":%q,"token_type":"bearer","expires_in":600}`, token))
}

func isTokenRequest(req *request.Request) bool {
	return req.Method == http.MethodPost && req.URL == testTokenURL
}

// tokenSequence returns tokens "token-1", "token-2", ... in order.
type tokenSequence struct {
	mu sync.Mutex
	n  int
}

func (s *tokenSequence) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.n++

	return fmt.Sprintf("token-%d", s.n)
}
