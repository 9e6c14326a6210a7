package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultUserAgent is sent when the caller does not set a User-Agent header.
const DefaultUserAgent = "threatresponse-go"

// Transport performs one request. Every middleware implements it.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do calls f(ctx, req).
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport is the raw transport at the bottom of every chain. It performs
// exactly one network round trip per call.
type HTTPTransport struct {
	client    *retryablehttp.Client
	userAgent string
}

// TransportOption configures an HTTPTransport at construction time.
type TransportOption func(*HTTPTransport) error

// WithProxy routes both http and https traffic through proxyURL. An empty
// proxyURL leaves the transport unchanged.
func WithProxy(proxyURL string) TransportOption {
	return func(t *HTTPTransport) error {
		if proxyURL == "" {
			return nil
		}

		parsed, err := url.Parse(proxyURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidProxyURL, proxyURL)
		}

		transport, ok := t.client.HTTPClient.Transport.(*http.Transport)
		if !ok {
			return fmt.Errorf("%w: underlying round tripper %T does not support proxies", ErrInvalidProxyURL, t.client.HTTPClient.Transport)
		}

		transport.Proxy = http.ProxyURL(parsed)

		return nil
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) TransportOption {
	return func(t *HTTPTransport) error {
		t.client.HTTPClient = httpClient

		return nil
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(userAgent string) TransportOption {
	return func(t *HTTPTransport) error {
		if userAgent != "" {
			t.userAgent = userAgent
		}

		return nil
	}
}

// NewHTTPTransport creates the raw transport.
func NewHTTPTransport(opts ...TransportOption) (*HTTPTransport, error) {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Transport: cleanhttp.DefaultPooledTransport()}
	client.Logger = nil
	client.RetryMax = 0
	client.CheckRetry = neverRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	transport := &HTTPTransport{
		client:    client,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		err := opt(transport)
		if err != nil {
			return nil, err
		}
	}

	return transport, nil
}

// neverRetry keeps the transport at-most-once: retries belong to the caller.
func neverRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	target, err := req.targetURL()
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	httpReq, err := t.newRequest(ctx, req, target)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: target, Err: err}
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: target, Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: target, Err: fmt.Errorf("reading response body: %w", err)}
	}

	resp := NewResponse(req.Method, target, httpResp.StatusCode, httpResp.Header, body)
	resp.Status = httpResp.Status

	return resp, nil
}

func (t *HTTPTransport) newRequest(ctx context.Context, req *Request, target string) (*retryablehttp.Request, error) {
	body, contentType, err := req.encodeBody()
	if err != nil {
		return nil, err
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", ContentTypeJSON)
	}

	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	if req.BasicAuth != nil {
		httpReq.SetBasicAuth(req.BasicAuth.Username, req.BasicAuth.Password)
	}

	return httpReq, nil
}
