package request

import (
	"context"
	"net/http"
)

// Client exposes verb helpers over the outermost layer of a chain.
type Client struct {
	transport Transport
}

// NewClient wraps the outermost transport of a chain.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// Transport returns the wrapped transport.
func (c *Client) Transport() Transport {
	return c.transport
}

// Do performs req through the chain.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	return c.transport.Do(ctx, req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, rawURL string, opts ...Option) (*Response, error) {
	return c.call(ctx, http.MethodGet, rawURL, opts)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, rawURL string, opts ...Option) (*Response, error) {
	return c.call(ctx, http.MethodPost, rawURL, opts)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, rawURL string, opts ...Option) (*Response, error) {
	return c.call(ctx, http.MethodPut, rawURL, opts)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, rawURL string, opts ...Option) (*Response, error) {
	return c.call(ctx, http.MethodPatch, rawURL, opts)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, rawURL string, opts ...Option) (*Response, error) {
	return c.call(ctx, http.MethodDelete, rawURL, opts)
}

func (c *Client) call(ctx context.Context, method, rawURL string, opts []Option) (*Response, error) {
	req := &Request{Method: method, URL: rawURL}
	for _, opt := range opts {
		opt(req)
	}

	return c.transport.Do(ctx, req)
}
