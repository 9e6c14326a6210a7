package request

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimit paces outgoing calls with a token bucket. It never retries.
type RateLimit struct {
	next    Transport
	limiter *rate.Limiter
}

// NewRateLimit wraps next, allowing requestsPerSecond on average with bursts
// of up to burst calls. A burst below one is raised to one.
func NewRateLimit(next Transport, requestsPerSecond float64, burst int) *RateLimit {
	if burst < 1 {
		burst = 1
	}

	return &RateLimit{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Do implements Transport.
func (l *RateLimit) Do(ctx context.Context, req *Request) (*Response, error) {
	err := l.limiter.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	return l.next.Do(ctx, req)
}
