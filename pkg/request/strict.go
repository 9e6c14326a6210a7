package request

import "context"

// Strict turns responses with a failing status into *HTTPError values. The
// response is returned alongside the error so callers can still inspect it.
type Strict struct {
	next Transport
}

// NewStrict wraps next.
func NewStrict(next Transport) *Strict {
	return &Strict{next: next}
}

// Do implements Transport.
func (s *Strict) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := s.next.Do(ctx, req)
	if err != nil {
		return resp, err
	}

	err = resp.RaiseForStatus()
	if err != nil {
		return resp, err
	}

	return resp, nil
}
