package request

import (
	"context"
	"fmt"
	"net/url"
)

// Relative resolves request URLs against an absolute base URL. Absolute
// request URLs pass through unchanged.
type Relative struct {
	next Transport
	base *url.URL
}

// NewRelative wraps next. baseURL must be absolute.
func NewRelative(next Transport, baseURL string) (*Relative, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	return &Relative{next: next, base: base}, nil
}

// BaseURL returns the configured base.
func (r *Relative) BaseURL() string {
	return r.base.String()
}

// Resolve applies RFC 3986 reference resolution to target.
func (r *Relative) Resolve(target string) (string, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", target, err)
	}

	if ref.IsAbs() {
		return target, nil
	}

	return r.base.ResolveReference(ref).String(), nil
}

// Do implements Transport.
func (r *Relative) Do(ctx context.Context, req *Request) (*Response, error) {
	resolved, err := r.Resolve(req.URL)
	if err != nil {
		return nil, fmt.Errorf("resolving request URL: %w", err)
	}

	if resolved != req.URL {
		req = req.WithURL(resolved)
	}

	return r.next.Do(ctx, req)
}
