package request

import (
	"context"
	"time"
)

// Timeout injects a default timeout into requests that do not carry one.
type Timeout struct {
	next    Transport
	timeout time.Duration
}

// NewTimeout wraps next so that requests without a timeout get timeout.
func NewTimeout(next Transport, timeout time.Duration) *Timeout {
	return &Timeout{next: next, timeout: timeout}
}

// Do implements Transport.
func (t *Timeout) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout == 0 && t.timeout > 0 {
		req = req.WithTimeout(t.timeout)
	}

	return t.next.Do(ctx, req)
}
